package utils

import (
	"acs/src/config"
	"acs/src/db"
	"acs/src/models"
	"acs/src/types"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
)

// STATUS_MIGRATION_MAP normalizes status strings written by older releases.
// Values that are already valid pass through unchanged.
var STATUS_MIGRATION_MAP = map[string]types.RequestStatus{
	"pending":               types.REQUEST_SUBMITTED,
	"draft":                 types.REQUEST_SUBMITTED,
	"under-operator-review": types.REQUEST_QUOTE_RECEIVED,
	"under-offer":           types.REQUEST_QUOTE_RECEIVED,
	"quoted":                types.REQUEST_QUOTE_RECEIVED,
	"booked":                types.REQUEST_ACCEPTED,
	"cancelled":             types.REQUEST_REJECTED,
}

func MigrateRequestStatus(status string) types.RequestStatus {
	if mapped, ok := STATUS_MIGRATION_MAP[status]; ok {
		return mapped
	}
	return types.RequestStatus(status)
}

// RequestOverdue reports whether the request has outlived its window without
// an accepted quote.
func RequestOverdue(request *models.QuoteRequest, now time.Time) bool {
	return !request.Status.Terminal() && now.After(request.ExpiresAt)
}

func CreateQuoteRequest(params *types.CreateRequestBody, clientId uint) (*models.QuoteRequest, error) {
	departure, err := time.Parse(config.TIME_PARSE_FORMAT, params.DepartureDate)
	if err != nil {
		return nil, &types.ValidationError{Field: "departure_date", Reason: err.Error()}
	}
	var returnDate *time.Time
	if params.ReturnDate != nil {
		parsed, err := time.Parse(config.TIME_PARSE_FORMAT, *params.ReturnDate)
		if err != nil {
			return nil, &types.ValidationError{Field: "return_date", Reason: err.Error()}
		}
		returnDate = &parsed
	}

	db := db.GetDb()
	var client models.User
	if err := db.Where(&models.User{ID: clientId}).First(&client).Error; err != nil {
		return nil, &types.NotFoundError{Entity: "User", Code: client.Code}
	}

	code, err := NewEntityCode(CODE_REQUEST, client.Surname, &models.QuoteRequest{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	request := models.QuoteRequest{
		Code:          code,
		ClientID:      clientId,
		Origin:        params.From,
		Destination:   params.To,
		DepartureDate: &departure,
		ReturnDate:    returnDate,
		Passengers:    params.Passengers,
		CabinClass:    params.CabinClass,
		Status:        types.REQUEST_SUBMITTED,
		QuotedBy:      types.JSONBArray{},
		ExpiresAt:     now.Add(config.RequestTTL()),
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if params.OperatorCode != "" {
			var operator models.User
			err := tx.
				Where(&models.User{Code: params.OperatorCode, Role: types.ROLE_OPERATOR}).
				First(&operator).
				Error
			if err != nil {
				return &types.NotFoundError{Entity: "Operator", Code: params.OperatorCode}
			}
			request.OperatorID = &operator.ID
		}
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		return AppendOutboxEvent(tx, types.NOTIFY_REQUEST_SUBMITTED, client.Email, request.Code, types.JSONB{
			"request": request.Code,
			"from":    request.Origin,
			"to":      request.Destination,
		})
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetQuoteRequest reads a request by code and normalizes an overdue one to
// expired on the way out, the same lazy check the read path always did.
func GetQuoteRequest(code string) (*models.QuoteRequest, error) {
	db := db.GetDb()
	var request models.QuoteRequest
	err := db.
		Model(&models.QuoteRequest{}).
		Where(&models.QuoteRequest{Code: code}).
		Preload("Quotes").
		Preload("Operator").
		First(&request).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Entity: "QuoteRequest", Code: code}
		}
		return nil, &types.DependencyError{Dependency: "store", Err: err}
	}
	request.Status = MigrateRequestStatus(string(request.Status))
	if RequestOverdue(&request, time.Now()) {
		if err := expireRequest(&request); err != nil {
			return nil, err
		}
	}
	return &request, nil
}

func expireRequest(request *models.QuoteRequest) error {
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.
			Model(&models.QuoteRequest{}).
			Where("id = ? AND status IN (?)", request.ID, []types.RequestStatus{
				types.REQUEST_SUBMITTED,
				types.REQUEST_QUOTE_RECEIVED,
				types.REQUEST_QUOTES_VIEWED,
			}).
			Update("status", types.REQUEST_EXPIRED).
			Error
	})
	if err != nil {
		return err
	}
	request.Status = types.REQUEST_EXPIRED
	return nil
}

// MarkQuotesViewed records the passenger's viewed action. Viewing again is a
// no-op; viewing a closed request is rejected.
func MarkQuotesViewed(code string) (*models.QuoteRequest, error) {
	request, err := GetQuoteRequest(code)
	if err != nil {
		return nil, err
	}
	if request.Status == types.REQUEST_QUOTES_VIEWED {
		return request, nil
	}
	if request.Status != types.REQUEST_QUOTE_RECEIVED {
		return nil, &types.InvalidTransitionError{
			Entity: "QuoteRequest",
			Code:   code,
			From:   string(request.Status),
			To:     string(types.REQUEST_QUOTES_VIEWED),
		}
	}
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.
			Model(&models.QuoteRequest{}).
			Where(&models.QuoteRequest{ID: request.ID, Status: types.REQUEST_QUOTE_RECEIVED}).
			Update("status", types.REQUEST_QUOTES_VIEWED).
			Error
	})
	if err != nil {
		return nil, err
	}
	request.Status = types.REQUEST_QUOTES_VIEWED
	return request, nil
}

// CancelQuoteRequest is the passenger's explicit rejection of the whole
// request. Pending quotes on it are closed out as a side effect.
func CancelQuoteRequest(code string) (*models.QuoteRequest, error) {
	request, err := GetQuoteRequest(code)
	if err != nil {
		return nil, err
	}
	if request.Status.Terminal() {
		return nil, &types.InvalidTransitionError{
			Entity: "QuoteRequest",
			Code:   code,
			From:   string(request.Status),
			To:     string(types.REQUEST_REJECTED),
		}
	}
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Model(&models.QuoteRequest{}).
			Where("id = ? AND status IN (?)", request.ID, []types.RequestStatus{
				types.REQUEST_SUBMITTED,
				types.REQUEST_QUOTE_RECEIVED,
				types.REQUEST_QUOTES_VIEWED,
			}).
			Update("status", types.REQUEST_REJECTED).
			Error
		if err != nil {
			return err
		}
		return tx.
			Model(&models.Quote{}).
			Where(&models.Quote{RequestID: request.ID, Status: types.QUOTE_PENDING}).
			Update("status", types.QUOTE_REJECTED).
			Error
	})
	if err != nil {
		return nil, err
	}
	request.Status = types.REQUEST_REJECTED
	return request, nil
}

// ExpireStaleRequests is the periodic sweep behind the lazy read-time check,
// so a request cannot sit logically expired in storage forever.
func ExpireStaleRequests() {
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&models.QuoteRequest{}).
			Where("status IN (?)", []types.RequestStatus{
				types.REQUEST_SUBMITTED,
				types.REQUEST_QUOTE_RECEIVED,
				types.REQUEST_QUOTES_VIEWED,
			}).
			Where("expires_at < ?", time.Now()).
			Update("status", types.REQUEST_EXPIRED)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			log.Printf("Expired %d stale quote requests\n", result.RowsAffected)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error while expiring stale requests: %s\n", err.Error())
	}
}

func GetOwnRequests(clientId uint) ([]models.QuoteRequest, error) {
	db := db.GetDb()
	var requests []models.QuoteRequest
	err := db.
		Model(&models.QuoteRequest{}).
		Where(&models.QuoteRequest{ClientID: clientId}).
		Preload("Quotes").
		Order("created_at DESC").
		Limit(50).
		Find(&requests).
		Error
	return requests, err
}

func GetOperatorRequests(operatorId uint) ([]models.QuoteRequest, error) {
	db := db.GetDb()
	var requests []models.QuoteRequest
	err := db.
		Model(&models.QuoteRequest{}).
		Where("operator_id = ? OR operator_id IS NULL", operatorId).
		Where("status IN (?)", []types.RequestStatus{
			types.REQUEST_SUBMITTED,
			types.REQUEST_QUOTE_RECEIVED,
			types.REQUEST_QUOTES_VIEWED,
		}).
		Order("created_at DESC").
		Limit(50).
		Find(&requests).
		Error
	return requests, err
}
