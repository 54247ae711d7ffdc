package models

import (
	"acs/src/types"
	"time"
)

// Booking carries its own copy of the routing data. The snapshot is taken
// when the quote is accepted and never re-joined against the request.
type Booking struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Code string `gorm:"uniqueIndex" json:"code,omitempty"`

	RequestID uint `json:"request_id,omitempty"`
	// One booking per accepted quote. The unique index makes a retried
	// acceptance collide here instead of double-booking.
	QuoteID    uint `gorm:"uniqueIndex" json:"quote_id,omitempty"`
	ClientID   uint `json:"client_id,omitempty"`
	OperatorID uint `json:"operator_id,omitempty"`

	Origin        string     `json:"origin,omitempty"`
	Destination   string     `json:"destination,omitempty"`
	DepartureDate *time.Time `json:"departure_date,omitempty"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`
	PaxCount      uint8      `json:"pax_count,omitempty"`
	CabinClass    string     `json:"cabin_class,omitempty"`

	Price      float64 `json:"price,omitempty"`
	TotalPrice float64 `json:"total_price,omitempty"`

	Status types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`
	IsPaid bool                `json:"is_paid"`

	Request    *QuoteRequest `gorm:"foreignKey:request_id" json:"request,omitempty"`
	Quote      *Quote        `gorm:"foreignKey:quote_id" json:"quote,omitempty"`
	Client     *User         `gorm:"foreignKey:client_id" json:"client,omitempty"`
	Operator   *User         `gorm:"foreignKey:operator_id" json:"operator,omitempty"`
	Passengers []*Passenger  `gorm:"foreignKey:booking_id" json:"passengers,omitempty"`
	Invoices   []*Invoice    `gorm:"foreignKey:booking_id" json:"invoices,omitempty"`

	types.Timestamps
}
