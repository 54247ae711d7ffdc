package utils

import (
	"acs/src/db"
	"acs/src/models"
	"acs/src/types"
	"math"
	"time"

	"gorm.io/gorm"
)

// LedgerTotals derives the invoice ledger from scratch. amountPaid is the sum
// of completed payments, never an incremental add, so replaying or reordering
// a payment cannot double-count. Totals are rounded to cents so accumulated
// float error cannot strand a settled invoice short of paid.
func LedgerTotals(amount float64, payments []*models.Payment) (paid float64, pending float64, status types.InvoiceStatus) {
	for _, p := range payments {
		if p.Status == types.PAYMENT_COMPLETED {
			paid += p.Amount
		}
	}
	paid = math.Round(paid*100) / 100
	pending = math.Round((amount-paid)*100) / 100
	if pending < 0 {
		pending = 0
	}
	switch {
	case pending == 0:
		status = types.INVOICE_PAID
	case pending < amount:
		status = types.INVOICE_BALANCE_DUE
	default:
		status = types.INVOICE_OPEN
	}
	return paid, pending, status
}

func CreateInvoiceForBooking(bookingCode string, flightCode string, amount float64) (*models.Invoice, error) {
	if amount <= 0 {
		return nil, &types.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	booking, err := GetBooking(bookingCode)
	if err != nil {
		return nil, err
	}
	if flightCode == "" {
		flightCode = booking.Code
	}
	code, err := NewEntityCode(CODE_INVOICE, flightCode, &models.Invoice{})
	if err != nil {
		return nil, err
	}
	invoice := models.Invoice{
		Code:          code,
		BookingID:     booking.ID,
		FlightCode:    flightCode,
		Amount:        amount,
		AmountPaid:    0,
		AmountPending: amount,
		Status:        types.INVOICE_OPEN,
	}
	db := db.GetDb()
	if err := db.Create(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// applyPaymentsToInvoice recomputes the ledger inside the caller's
// transaction and stamps paid_at exactly once. Returns the refreshed invoice.
func applyPaymentsToInvoice(tx *gorm.DB, invoiceId uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := tx.
		Where(&models.Invoice{ID: invoiceId}).
		First(&invoice).
		Error; err != nil {
		return nil, err
	}
	var payments []*models.Payment
	if err := tx.
		Model(&models.Payment{}).
		Where(&models.Payment{InvoiceID: invoice.ID}).
		Order("created_at ASC").
		Find(&payments).
		Error; err != nil {
		return nil, err
	}
	paid, pending, status := LedgerTotals(invoice.Amount, payments)
	updates := map[string]any{
		"amount_paid":    paid,
		"amount_pending": pending,
		"status":         status,
	}
	if status == types.INVOICE_PAID && invoice.PaidAt == nil {
		now := time.Now()
		updates["paid_at"] = &now
		invoice.PaidAt = &now
	}
	if err := tx.
		Model(&models.Invoice{}).
		Where(&models.Invoice{ID: invoice.ID}).
		Updates(updates).
		Error; err != nil {
		return nil, err
	}
	invoice.AmountPaid = paid
	invoice.AmountPending = pending
	invoice.Status = status
	return &invoice, nil
}

func GetInvoice(code string) (*models.Invoice, error) {
	db := db.GetDb()
	var invoice models.Invoice
	err := db.
		Model(&models.Invoice{}).
		Where(&models.Invoice{Code: code}).
		Preload("Payments").
		First(&invoice).
		Error
	if err != nil {
		return nil, &types.NotFoundError{Entity: "Invoice", Code: code}
	}
	return &invoice, nil
}

func GetBookingInvoices(bookingCode string) ([]models.Invoice, error) {
	booking, err := GetBooking(bookingCode)
	if err != nil {
		return nil, err
	}
	db := db.GetDb()
	var invoices []models.Invoice
	err = db.
		Model(&models.Invoice{}).
		Where(&models.Invoice{BookingID: booking.ID}).
		Preload("Payments").
		Order("created_at DESC").
		Find(&invoices).
		Error
	return invoices, err
}
