package models

import "acs/src/types"

type Passenger struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Code      string `gorm:"uniqueIndex" json:"code,omitempty"`
	BookingID uint   `json:"booking_id,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	Document  string `json:"document,omitempty"`

	types.Timestamps
}
