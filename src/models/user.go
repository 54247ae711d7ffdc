package models

import (
	"acs/src/types"
	"time"
)

type User struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	Code          string     `gorm:"uniqueIndex" json:"code,omitempty"`
	Name          string     `json:"name,omitempty"`
	Surname       string     `json:"surname,omitempty"`
	Company       string     `json:"company,omitempty"`
	Email         string     `gorm:"uniqueIndex" json:"email,omitempty"`
	Role          types.Role `json:"role,omitempty"`
	UID           string     `json:"uid,omitempty"`
	EmailVerified bool       `json:"email_verified,omitempty"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`

	Requests []*QuoteRequest `gorm:"foreignKey:client_id" json:"requests,omitempty"`
	Bookings []*Booking      `gorm:"foreignKey:client_id" json:"bookings,omitempty"`

	types.Timestamps
}
