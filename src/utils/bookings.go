package utils

import (
	"acs/src/db"
	"acs/src/models"
	"acs/src/types"
	"errors"

	"gorm.io/gorm"
)

// CreateBooking cuts the immutable snapshot for an accepted quote inside the
// caller's transaction. Routing and passenger data come from the request,
// pricing from the quote, and neither is re-read afterwards.
func CreateBooking(tx *gorm.DB, request *models.QuoteRequest, quote *models.Quote) (*models.Booking, error) {
	code, err := GenerateCode(CODE_BOOKING, request.Destination, func(code string) (bool, error) {
		var count int64
		err := tx.Model(&models.Booking{}).Where("code = ?", code).Count(&count).Error
		if err != nil {
			return false, err
		}
		return count > 0, nil
	})
	if err != nil {
		return nil, err
	}

	booking := models.Booking{
		Code:          code,
		RequestID:     request.ID,
		QuoteID:       quote.ID,
		ClientID:      request.ClientID,
		OperatorID:    quote.OperatorID,
		Origin:        request.Origin,
		Destination:   request.Destination,
		DepartureDate: request.DepartureDate,
		ReturnDate:    request.ReturnDate,
		PaxCount:      request.Passengers,
		CabinClass:    request.CabinClass,
		Price:         quote.Price,
		TotalPrice:    quote.TotalPrice,
		Status:        types.BOOKING_PENDING,
		IsPaid:        false,
	}
	if err := tx.Create(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func GetBooking(code string) (*models.Booking, error) {
	db := db.GetDb()
	var booking models.Booking
	err := db.
		Model(&models.Booking{}).
		Where(&models.Booking{Code: code}).
		Preload("Quote").
		Preload("Operator").
		Preload("Passengers").
		First(&booking).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Entity: "Booking", Code: code}
		}
		return nil, &types.DependencyError{Dependency: "store", Err: err}
	}
	return &booking, nil
}

func ConfirmBooking(code string) (*models.Booking, error) {
	return setBookingStatus(code, types.BOOKING_CONFIRMED)
}

// CancelBooking rejects cancellation once the booking has been confirmed.
func CancelBooking(code string) (*models.Booking, error) {
	return setBookingStatus(code, types.BOOKING_CANCELED)
}

func setBookingStatus(code string, newStatus types.BookingStatus) (*models.Booking, error) {
	db := db.GetDb()
	var booking models.Booking
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where(&models.Booking{Code: code}).
			First(&booking).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFoundError{Entity: "Booking", Code: code}
			}
			return err
		}
		if booking.Status == newStatus {
			return nil
		}
		if booking.Status != types.BOOKING_PENDING {
			return &types.InvalidTransitionError{
				Entity: "Booking",
				Code:   code,
				From:   string(booking.Status),
				To:     string(newStatus),
			}
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: booking.ID, Status: types.BOOKING_PENDING}).
			Update("status", newStatus).
			Error; err != nil {
			return err
		}
		booking.Status = newStatus
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// AddPassenger appends a manifest entry with a PAX code derived from the
// booking it belongs to.
func AddPassenger(bookingCode string, fullName string, document string) (*models.Passenger, error) {
	if fullName == "" {
		return nil, &types.ValidationError{Field: "full_name", Reason: "is required"}
	}
	booking, err := GetBooking(bookingCode)
	if err != nil {
		return nil, err
	}
	code, err := NewEntityCode(CODE_PAX, booking.Code, &models.Passenger{})
	if err != nil {
		return nil, err
	}
	passenger := models.Passenger{
		Code:      code,
		BookingID: booking.ID,
		FullName:  fullName,
		Document:  document,
	}
	db := db.GetDb()
	if err := db.Create(&passenger).Error; err != nil {
		return nil, err
	}
	return &passenger, nil
}

func GetClientBookings(clientId uint) ([]models.Booking, error) {
	db := db.GetDb()
	var bookings []models.Booking
	err := db.
		Model(&models.Booking{}).
		Where(&models.Booking{ClientID: clientId}).
		Preload("Quote").
		Order("created_at DESC").
		Limit(50).
		Find(&bookings).
		Error
	return bookings, err
}

func GetOperatorBookings(operatorId uint) ([]models.Booking, error) {
	db := db.GetDb()
	var bookings []models.Booking
	err := db.
		Model(&models.Booking{}).
		Where(&models.Booking{OperatorID: operatorId}).
		Preload("Quote").
		Order("created_at DESC").
		Limit(50).
		Find(&bookings).
		Error
	return bookings, err
}
