package utils

import (
	"acs/src/models"
	"acs/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeCommission(t *testing.T) {
	commission := ComputeCommission(1000.00, 0.03)
	assert.Equal(t, 30.00, commission)
	assert.Equal(t, 1030.00, 1000.00+commission)
	assert.Equal(t, 0.38, ComputeCommission(12.50, 0.03))
	assert.Equal(t, 0.00, ComputeCommission(0, 0.03))
}

func TestLedgerTotalsNoPayments(t *testing.T) {
	paid, pending, status := LedgerTotals(1030.00, nil)
	assert.Equal(t, 0.00, paid)
	assert.Equal(t, 1030.00, pending)
	assert.Equal(t, types.INVOICE_OPEN, status)
}

func TestLedgerTotalsPartialPayment(t *testing.T) {
	payments := []*models.Payment{
		{Amount: 500.00, Status: types.PAYMENT_COMPLETED},
	}
	paid, pending, status := LedgerTotals(1030.00, payments)
	assert.Equal(t, 500.00, paid)
	assert.Equal(t, 530.00, pending)
	assert.Equal(t, types.INVOICE_BALANCE_DUE, status)
}

func TestLedgerTotalsIgnoresNonCompleted(t *testing.T) {
	payments := []*models.Payment{
		{Amount: 500.00, Status: types.PAYMENT_PENDING},
		{Amount: 200.00, Status: types.PAYMENT_FAILED},
		{Amount: 100.00, Status: types.PAYMENT_PROCESSING},
	}
	paid, pending, status := LedgerTotals(1030.00, payments)
	assert.Equal(t, 0.00, paid)
	assert.Equal(t, 1030.00, pending)
	assert.Equal(t, types.INVOICE_OPEN, status)
}

func TestLedgerTotalsSettled(t *testing.T) {
	payments := []*models.Payment{
		{Amount: 500.00, Status: types.PAYMENT_COMPLETED},
		{Amount: 530.00, Status: types.PAYMENT_COMPLETED},
	}
	paid, pending, status := LedgerTotals(1030.00, payments)
	assert.Equal(t, 1030.00, paid)
	assert.Equal(t, 0.00, pending)
	assert.Equal(t, types.INVOICE_PAID, status)
}

func TestLedgerTotalsOverpaymentClampsPending(t *testing.T) {
	payments := []*models.Payment{
		{Amount: 1200.00, Status: types.PAYMENT_COMPLETED},
	}
	paid, pending, status := LedgerTotals(1030.00, payments)
	assert.Equal(t, 1200.00, paid)
	assert.Equal(t, 0.00, pending)
	assert.Equal(t, types.INVOICE_PAID, status)
}

func TestLedgerTotalsBalanceDueThenPaid(t *testing.T) {
	first := &models.Payment{Amount: 300.00, Status: types.PAYMENT_COMPLETED}
	paid, pending, status := LedgerTotals(500.00, []*models.Payment{first})
	assert.Equal(t, 300.00, paid)
	assert.Equal(t, 200.00, pending)
	assert.Equal(t, types.INVOICE_BALANCE_DUE, status)

	second := &models.Payment{Amount: 200.00, Status: types.PAYMENT_COMPLETED}
	paid, pending, status = LedgerTotals(500.00, []*models.Payment{first, second})
	assert.Equal(t, 500.00, paid)
	assert.Equal(t, 0.00, pending)
	assert.Equal(t, types.INVOICE_PAID, status)
}

func TestLedgerTotalsCentPrecision(t *testing.T) {
	payments := []*models.Payment{
		{Amount: 0.10, Status: types.PAYMENT_COMPLETED},
		{Amount: 0.20, Status: types.PAYMENT_COMPLETED},
	}
	paid, pending, status := LedgerTotals(0.30, payments)
	assert.Equal(t, 0.30, paid)
	assert.Equal(t, 0.00, pending)
	assert.Equal(t, types.INVOICE_PAID, status)
}

func TestLedgerTotalsRederivationIsStable(t *testing.T) {
	payments := []*models.Payment{
		{Amount: 515.00, Status: types.PAYMENT_COMPLETED},
		{Amount: 515.00, Status: types.PAYMENT_COMPLETED},
	}
	paid1, pending1, status1 := LedgerTotals(1030.00, payments)
	paid2, pending2, status2 := LedgerTotals(1030.00, payments)
	assert.Equal(t, paid1, paid2)
	assert.Equal(t, pending1, pending2)
	assert.Equal(t, status1, status2)
	assert.Equal(t, types.INVOICE_PAID, status1)
}

func TestMigrateRequestStatusLegacyValues(t *testing.T) {
	assert.Equal(t, types.REQUEST_SUBMITTED, MigrateRequestStatus("pending"))
	assert.Equal(t, types.REQUEST_SUBMITTED, MigrateRequestStatus("draft"))
	assert.Equal(t, types.REQUEST_QUOTE_RECEIVED, MigrateRequestStatus("under-operator-review"))
	assert.Equal(t, types.REQUEST_QUOTE_RECEIVED, MigrateRequestStatus("under-offer"))
	assert.Equal(t, types.REQUEST_QUOTE_RECEIVED, MigrateRequestStatus("quoted"))
	assert.Equal(t, types.REQUEST_ACCEPTED, MigrateRequestStatus("booked"))
	assert.Equal(t, types.REQUEST_REJECTED, MigrateRequestStatus("cancelled"))
}

func TestMigrateRequestStatusCurrentValuesPassThrough(t *testing.T) {
	for _, s := range []types.RequestStatus{
		types.REQUEST_SUBMITTED,
		types.REQUEST_QUOTE_RECEIVED,
		types.REQUEST_QUOTES_VIEWED,
		types.REQUEST_ACCEPTED,
		types.REQUEST_REJECTED,
		types.REQUEST_EXPIRED,
	} {
		assert.Equal(t, s, MigrateRequestStatus(string(s)))
	}
}

func TestRequestStatusTerminal(t *testing.T) {
	assert.True(t, types.REQUEST_ACCEPTED.Terminal())
	assert.True(t, types.REQUEST_REJECTED.Terminal())
	assert.True(t, types.REQUEST_EXPIRED.Terminal())
	assert.False(t, types.REQUEST_SUBMITTED.Terminal())
	assert.False(t, types.REQUEST_QUOTE_RECEIVED.Terminal())
	assert.False(t, types.REQUEST_QUOTES_VIEWED.Terminal())
}

func TestRequestOverdue(t *testing.T) {
	now := time.Now()
	active := &models.QuoteRequest{
		Status:    types.REQUEST_SUBMITTED,
		ExpiresAt: now.Add(-time.Hour),
	}
	assert.True(t, RequestOverdue(active, now))

	fresh := &models.QuoteRequest{
		Status:    types.REQUEST_SUBMITTED,
		ExpiresAt: now.Add(time.Hour),
	}
	assert.False(t, RequestOverdue(fresh, now))

	accepted := &models.QuoteRequest{
		Status:    types.REQUEST_ACCEPTED,
		ExpiresAt: now.Add(-time.Hour),
	}
	assert.False(t, RequestOverdue(accepted, now))
}

func TestAllowedPaymentTransition(t *testing.T) {
	assert.True(t, AllowedPaymentTransition(types.PAYMENT_PENDING, types.PAYMENT_PROCESSING))
	assert.True(t, AllowedPaymentTransition(types.PAYMENT_PENDING, types.PAYMENT_COMPLETED))
	assert.True(t, AllowedPaymentTransition(types.PAYMENT_PENDING, types.PAYMENT_FAILED))
	assert.True(t, AllowedPaymentTransition(types.PAYMENT_PROCESSING, types.PAYMENT_COMPLETED))
	assert.True(t, AllowedPaymentTransition(types.PAYMENT_PROCESSING, types.PAYMENT_FAILED))
	assert.True(t, AllowedPaymentTransition(types.PAYMENT_COMPLETED, types.PAYMENT_REFUNDED))

	assert.False(t, AllowedPaymentTransition(types.PAYMENT_COMPLETED, types.PAYMENT_PENDING))
	assert.False(t, AllowedPaymentTransition(types.PAYMENT_FAILED, types.PAYMENT_COMPLETED))
	assert.False(t, AllowedPaymentTransition(types.PAYMENT_REFUNDED, types.PAYMENT_COMPLETED))
	assert.False(t, AllowedPaymentTransition(types.PAYMENT_PENDING, types.PAYMENT_REFUNDED))
}
