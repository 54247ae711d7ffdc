package models

import "acs/src/types"

type Rating struct {
	ID uint `gorm:"primarykey" json:"id"`

	// One rating per booking, enforced by the index rather than a pre-check.
	BookingID        uint   `gorm:"uniqueIndex" json:"booking_id,omitempty"`
	BookingCode      string `json:"booking_code,omitempty"`
	OperatorCode     string `json:"operator_code,omitempty"`
	CustomerUserCode string `json:"customer_user_code,omitempty"`

	Rating   int     `json:"rating"`
	Comments *string `json:"comments,omitempty"`

	Booking *Booking `gorm:"foreignKey:booking_id" json:"booking,omitempty"`

	types.Timestamps
}
