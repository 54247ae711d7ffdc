package utils

import (
	"acs/src/db"
	"acs/src/models"
	"acs/src/types"

	"gorm.io/gorm"
)

// CreateRating captures the one-time post-flight feedback for a booking.
// The unique index on booking_id backs up the read-before-write check under
// concurrent submissions.
func CreateRating(bookingCode string, customerUserCode string, ratingValue int, comments string) (*models.Rating, error) {
	if ratingValue < 1 || ratingValue > 5 {
		return nil, &types.ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	booking, err := GetBooking(bookingCode)
	if err != nil {
		return nil, err
	}

	db := db.GetDb()
	var rating models.Rating
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.
			Model(&models.Rating{}).
			Where(&models.Rating{BookingID: booking.ID}).
			Count(&count).
			Error
		if err != nil {
			return err
		}
		if count > 0 {
			return &types.ValidationError{Field: "booking", Reason: "a rating already exists for this booking"}
		}
		operatorCode := ""
		if booking.Operator != nil {
			operatorCode = booking.Operator.Code
		}
		var commentsPtr *string
		if comments != "" {
			commentsPtr = &comments
		}
		rating = models.Rating{
			BookingID:        booking.ID,
			BookingCode:      booking.Code,
			OperatorCode:     operatorCode,
			CustomerUserCode: customerUserCode,
			Rating:           ratingValue,
			Comments:         commentsPtr,
		}
		return tx.Create(&rating).Error
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func GetOperatorRatings(operatorCode string) ([]models.Rating, error) {
	db := db.GetDb()
	var ratings []models.Rating
	err := db.
		Model(&models.Rating{}).
		Where(&models.Rating{OperatorCode: operatorCode}).
		Order("created_at DESC").
		Limit(100).
		Find(&ratings).
		Error
	return ratings, err
}
