package utils

import (
	"acs/src/models"
	"acs/src/types"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestApplyPaymentsStampsPaidAtOnSettlement(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "invoices"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "booking_id", "amount", "amount_paid", "amount_pending", "status"}).
			AddRow(5, "INV-BK01-AAAAA", 7, 500.0, 300.0, 200.0, "balance-due"))
	mock.ExpectQuery(`SELECT .* FROM "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_id", "amount", "status"}).
			AddRow(11, 5, 300.0, "completed").
			AddRow(12, 5, 200.0, "completed"))
	// amount_paid, amount_pending, paid_at, status, updated_at + id in the filter
	mock.ExpectExec(`UPDATE "invoices" SET`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var invoice *models.Invoice
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var txErr error
		invoice, txErr = applyPaymentsToInvoice(tx, 5)
		return txErr
	})
	assert.NoError(t, err)
	assert.Equal(t, types.INVOICE_PAID, invoice.Status)
	assert.Equal(t, 500.0, invoice.AmountPaid)
	assert.Equal(t, 0.0, invoice.AmountPending)
	assert.NotNil(t, invoice.PaidAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPaymentsDoesNotRestampPaidAt(t *testing.T) {
	gdb, mock := newMockDB(t)
	settledAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "invoices"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "booking_id", "amount", "amount_paid", "amount_pending", "status", "paid_at"}).
			AddRow(5, "INV-BK01-AAAAA", 7, 500.0, 500.0, 0.0, "paid", settledAt))
	mock.ExpectQuery(`SELECT .* FROM "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_id", "amount", "status"}).
			AddRow(11, 5, 500.0, "completed"))
	// no paid_at assignment this time: amount_paid, amount_pending, status,
	// updated_at + id in the filter
	mock.ExpectExec(`UPDATE "invoices" SET`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var invoice *models.Invoice
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var txErr error
		invoice, txErr = applyPaymentsToInvoice(tx, 5)
		return txErr
	})
	assert.NoError(t, err)
	assert.Equal(t, types.INVOICE_PAID, invoice.Status)
	assert.NotNil(t, invoice.PaidAt)
	assert.True(t, invoice.PaidAt.Equal(settledAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}
