package models

import (
	"acs/src/types"
	"time"
)

type Invoice struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	Code       string `gorm:"uniqueIndex" json:"code,omitempty"`
	BookingID  uint   `json:"booking_id,omitempty"`
	FlightCode string `json:"flight_code,omitempty"`

	Amount        float64 `json:"amount"`
	AmountPaid    float64 `json:"amount_paid"`
	AmountPending float64 `json:"amount_pending"`

	Status types.InvoiceStatus `gorm:"default:'open'" json:"status,omitempty"`
	PaidAt *time.Time          `json:"paid_at,omitempty"`

	Booking  *Booking   `gorm:"foreignKey:booking_id" json:"booking,omitempty"`
	Payments []*Payment `gorm:"foreignKey:invoice_id" json:"payments,omitempty"`

	types.Timestamps
}
