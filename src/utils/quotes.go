package utils

import (
	"acs/src/config"
	"acs/src/db"
	"acs/src/lib"
	"acs/src/models"
	"acs/src/types"
	"context"
	"errors"
	"log"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ComputeCommission rounds the platform fee to 2 decimals.
func ComputeCommission(price float64, rate float64) float64 {
	return math.Round(price*rate*100) / 100
}

// SubmitQuote attaches an operator's priced offer to an open request. The
// first quote moves the request from submitted to quote-received and every
// quote pushes the expiry window out from now.
func SubmitQuote(params *types.SubmitQuoteRequestBody, operatorId uint) (*models.Quote, error) {
	if params.Price <= 0 {
		return nil, &types.ValidationError{Field: "price", Reason: "must be greater than zero"}
	}
	request, err := GetQuoteRequest(params.RequestCode)
	if err != nil {
		return nil, err
	}
	if request.Status.Terminal() {
		return nil, &types.ValidationError{Field: "request", Reason: "request is closed for quoting"}
	}

	db := db.GetDb()
	var operator models.User
	if err := db.Where(&models.User{ID: operatorId}).First(&operator).Error; err != nil {
		return nil, &types.NotFoundError{Entity: "Operator", Code: ""}
	}

	code, err := NewEntityCode(CODE_QUOTE, operator.Company, &models.Quote{})
	if err != nil {
		return nil, err
	}

	commission := ComputeCommission(params.Price, config.CommissionRate())
	var notes *string
	if params.Notes != "" {
		notes = &params.Notes
	}
	quote := models.Quote{
		Code:       code,
		RequestID:  request.ID,
		OperatorID: operatorId,
		Price:      params.Price,
		Commission: commission,
		TotalPrice: params.Price + commission,
		Notes:      notes,
		Status:     types.QUOTE_PENDING,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quote).Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.QuoteRequest{}).
			Where(&models.QuoteRequest{ID: request.ID, Status: types.REQUEST_SUBMITTED}).
			Update("status", types.REQUEST_QUOTE_RECEIVED).
			Error; err != nil {
			return err
		}
		quotedBy := request.QuotedBy
		seen := false
		for _, v := range quotedBy {
			if v == operator.Code {
				seen = true
				break
			}
		}
		if !seen {
			quotedBy = append(quotedBy, operator.Code)
		}
		if err := tx.
			Model(&models.QuoteRequest{}).
			Where(&models.QuoteRequest{ID: request.ID}).
			Updates(map[string]any{
				"quoted_by":  quotedBy,
				"expires_at": time.Now().Add(config.RequestTTL()),
			}).
			Error; err != nil {
			return err
		}
		var client models.User
		if err := tx.Where(&models.User{ID: request.ClientID}).First(&client).Error; err != nil {
			return err
		}
		return AppendOutboxEvent(tx, types.NOTIFY_QUOTE_RECEIVED, client.Email, request.Code, types.JSONB{
			"request":     request.Code,
			"quote":       quote.Code,
			"operator":    operator.Code,
			"total_price": quote.TotalPrice,
		})
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// AcceptQuote closes the auction on a request: the chosen quote wins, every
// sibling is rejected, the request goes terminal and the booking snapshot is
// cut, all inside one transaction holding the request row lock.
func AcceptQuote(quoteCode string, clientId uint) (*models.Booking, error) {
	rd := lib.GetRedisClient()
	if rd != nil {
		// Guard against double-submits from retried network calls. The
		// unique index on bookings.quote_id is the hard backstop.
		ok, err := rd.SetNX(context.Background(), "accept:"+quoteCode, clientId, time.Minute).Result()
		if err == nil && !ok {
			return nil, &types.InvalidTransitionError{
				Entity: "Quote",
				Code:   quoteCode,
				From:   string(types.QUOTE_PENDING),
				To:     string(types.QUOTE_ACCEPTED),
			}
		}
	}

	db := db.GetDb()
	var booking *models.Booking
	err := db.Transaction(func(tx *gorm.DB) error {
		var quote models.Quote
		err := tx.
			Where(&models.Quote{Code: quoteCode}).
			First(&quote).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFoundError{Entity: "Quote", Code: quoteCode}
			}
			return err
		}
		if quote.Status != types.QUOTE_PENDING {
			return &types.InvalidTransitionError{
				Entity: "Quote",
				Code:   quoteCode,
				From:   string(quote.Status),
				To:     string(types.QUOTE_ACCEPTED),
			}
		}

		var request models.QuoteRequest
		err = tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.QuoteRequest{ID: quote.RequestID}).
			First(&request).
			Error
		if err != nil {
			return err
		}
		request.Status = MigrateRequestStatus(string(request.Status))
		if RequestOverdue(&request, time.Now()) {
			request.Status = types.REQUEST_EXPIRED
			if err := tx.
				Model(&models.QuoteRequest{}).
				Where(&models.QuoteRequest{ID: request.ID}).
				Update("status", types.REQUEST_EXPIRED).
				Error; err != nil {
				return err
			}
		}
		if request.Status != types.REQUEST_QUOTE_RECEIVED && request.Status != types.REQUEST_QUOTES_VIEWED {
			return &types.InvalidTransitionError{
				Entity: "QuoteRequest",
				Code:   request.Code,
				From:   string(request.Status),
				To:     string(types.REQUEST_ACCEPTED),
			}
		}

		if err := tx.
			Model(&models.Quote{}).
			Where(&models.Quote{ID: quote.ID}).
			Update("status", types.QUOTE_ACCEPTED).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Quote{}).
			Where("request_id = ? AND id <> ? AND status = ?", request.ID, quote.ID, types.QUOTE_PENDING).
			Update("status", types.QUOTE_REJECTED).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.QuoteRequest{}).
			Where(&models.QuoteRequest{ID: request.ID}).
			Update("status", types.REQUEST_ACCEPTED).
			Error; err != nil {
			return err
		}

		quote.Status = types.QUOTE_ACCEPTED
		booking, err = CreateBooking(tx, &request, &quote)
		if err != nil {
			return err
		}

		var client models.User
		if err := tx.Where(&models.User{ID: request.ClientID}).First(&client).Error; err != nil {
			return err
		}
		return AppendOutboxEvent(tx, types.NOTIFY_BOOKING_CONFIRMED, client.Email, booking.Code, types.JSONB{
			"booking":     booking.Code,
			"quote":       quote.Code,
			"total_price": booking.TotalPrice,
		})
	})
	if err != nil {
		// Release the guard so a legitimate retry is not locked out for
		// the rest of the minute.
		if rd != nil {
			rd.Del(context.Background(), "accept:"+quoteCode)
		}
		log.Printf("AcceptQuote failed for [%s]: %s\n", quoteCode, err.Error())
		return nil, err
	}
	return booking, nil
}

// RejectQuote closes a single offer without touching its siblings or the
// request's aggregate state.
func RejectQuote(quoteCode string) (*models.Quote, error) {
	db := db.GetDb()
	var quote models.Quote
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where(&models.Quote{Code: quoteCode}).
			First(&quote).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFoundError{Entity: "Quote", Code: quoteCode}
			}
			return err
		}
		if quote.Status != types.QUOTE_PENDING {
			return &types.InvalidTransitionError{
				Entity: "Quote",
				Code:   quoteCode,
				From:   string(quote.Status),
				To:     string(types.QUOTE_REJECTED),
			}
		}
		if err := tx.
			Model(&models.Quote{}).
			Where(&models.Quote{ID: quote.ID}).
			Update("status", types.QUOTE_REJECTED).
			Error; err != nil {
			return err
		}
		quote.Status = types.QUOTE_REJECTED
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func GetRequestQuotes(requestCode string) ([]models.Quote, error) {
	request, err := GetQuoteRequest(requestCode)
	if err != nil {
		return nil, err
	}
	db := db.GetDb()
	var quotes []models.Quote
	err = db.
		Model(&models.Quote{}).
		Where(&models.Quote{RequestID: request.ID}).
		Preload("Operator").
		Order("created_at DESC").
		Find(&quotes).
		Error
	return quotes, err
}
