package models

import (
	"acs/src/types"
	"time"
)

type Payment struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Code      string `gorm:"uniqueIndex" json:"code,omitempty"`
	BookingID uint   `json:"booking_id,omitempty"`
	InvoiceID uint   `json:"invoice_id,omitempty"`

	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Reference     string  `json:"reference,omitempty"`

	Status        types.PaymentStatus `gorm:"default:'pending'" json:"status,omitempty"`
	Notes         *string             `json:"notes,omitempty"`
	ProcessedBy   *string             `json:"processed_by,omitempty"`
	ProcessedDate *time.Time          `json:"processed_date,omitempty"`

	// Operator payout annotation, independent from the client payment status.
	OperatorPaid   bool       `json:"operator_paid"`
	OperatorPaidBy *string    `json:"operator_paid_by,omitempty"`
	OperatorPaidAt *time.Time `json:"operator_paid_at,omitempty"`

	CheckoutSessionId *string `json:"-"`

	Booking *Booking `gorm:"foreignKey:booking_id" json:"booking,omitempty"`
	Invoice *Invoice `gorm:"foreignKey:invoice_id" json:"invoice,omitempty"`

	types.Timestamps
}
