package models

import (
	"acs/src/types"
	"time"
)

type QuoteRequest struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	Code          string     `gorm:"uniqueIndex" json:"code,omitempty"`
	ClientID      uint       `json:"client_id,omitempty"`
	OperatorID    *uint      `json:"operator_id,omitempty"`
	Origin        string     `json:"origin,omitempty"`
	Destination   string     `json:"destination,omitempty"`
	DepartureDate *time.Time `json:"departure_date,omitempty"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`
	Passengers    uint8      `json:"passengers,omitempty"`
	CabinClass    string     `json:"cabin_class,omitempty"`

	Status types.RequestStatus `gorm:"default:'submitted'" json:"status,omitempty"`
	// Codes of the operators that have attached a quote so far.
	QuotedBy  types.JSONBArray `gorm:"type:jsonb" json:"quoted_by,omitempty"`
	ExpiresAt time.Time        `json:"expires_at,omitempty"`

	Client   *User    `gorm:"foreignKey:client_id" json:"client,omitempty"`
	Operator *User    `gorm:"foreignKey:operator_id" json:"operator,omitempty"`
	Quotes   []*Quote `gorm:"foreignKey:request_id" json:"quotes,omitempty"`

	types.Timestamps
}
