package utils

import (
	"acs/src/db"
	"acs/src/lib"
	"acs/src/models"
	"acs/src/types"
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllowedPaymentTransition is the admin-gated status graph for payments.
func AllowedPaymentTransition(from types.PaymentStatus, to types.PaymentStatus) bool {
	switch from {
	case types.PAYMENT_PENDING:
		return to == types.PAYMENT_PROCESSING || to == types.PAYMENT_COMPLETED || to == types.PAYMENT_FAILED
	case types.PAYMENT_PROCESSING:
		return to == types.PAYMENT_COMPLETED || to == types.PAYMENT_FAILED
	case types.PAYMENT_COMPLETED:
		return to == types.PAYMENT_REFUNDED
	default:
		return false
	}
}

// RecordPayment registers a payment attempt against an invoice. Client
// submissions start out pending; the admin verification flow records the
// payment as completed directly and settles the ledger in the same
// transaction. Card payments additionally get a Stripe checkout session for
// the open balance.
func RecordPayment(invoiceCode string, params *types.RecordPaymentRequestBody, recordedBy *models.User) (*models.Payment, error) {
	if params.Amount <= 0 {
		return nil, &types.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if params.PaymentMethod == "" {
		return nil, &types.ValidationError{Field: "payment_method", Reason: "is required"}
	}
	invoice, err := GetInvoice(invoiceCode)
	if err != nil {
		return nil, err
	}

	code, err := NewEntityCode(CODE_PAYMENT, invoice.Code, &models.Payment{})
	if err != nil {
		return nil, err
	}
	payment := models.Payment{
		Code:          code,
		BookingID:     invoice.BookingID,
		InvoiceID:     invoice.ID,
		Amount:        params.Amount,
		PaymentMethod: params.PaymentMethod,
		Reference:     params.Reference,
		Status:        types.PAYMENT_PENDING,
	}
	adminVerified := recordedBy != nil && recordedBy.Role == types.ROLE_ADMIN
	if adminVerified {
		now := time.Now()
		payment.Status = types.PAYMENT_COMPLETED
		payment.ProcessedBy = &recordedBy.Code
		payment.ProcessedDate = &now
	}

	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if adminVerified {
			return settleCompletedPayment(tx, &payment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if params.PaymentMethod == "card" && !adminVerified {
		url, sessionId, err := lib.CreateInvoiceCheckout(invoice.Code, invoice.AmountPending)
		if err != nil {
			log.Printf("Could not create checkout for payment [%s]: %s\n", payment.Code, err.Error())
		} else if err := attachCheckoutSession(db, &payment, url, sessionId); err != nil {
			log.Printf("Could not attach checkout session to payment [%s]: %s\n", payment.Code, err.Error())
		}
	}
	return &payment, nil
}

// attachCheckoutSession stores the Stripe session id on the payment row and
// caches the hosted URL for the handler to hand back. Failures here leave the
// recorded payment intact; the client can re-request a checkout.
func attachCheckoutSession(db *gorm.DB, payment *models.Payment, url string, sessionId string) error {
	if err := db.
		Model(&models.Payment{}).
		Where(&models.Payment{ID: payment.ID}).
		Update("checkout_session_id", sessionId).
		Error; err != nil {
		return err
	}
	payment.CheckoutSessionId = &sessionId
	rd := lib.GetRedisClient()
	if rd != nil {
		rd.SetEx(context.Background(), payment.Code+":checkout", url, 10*time.Minute)
	}
	return nil
}

// ProcessPayment applies an admin's verdict to a payment. Completion settles
// the invoice ledger and, when the invoice closes, flips the booking's paid
// flag, all in one transaction so the three records cannot disagree.
func ProcessPayment(paymentCode string, adminCode string, newStatus types.PaymentStatus, notes string) (*models.Payment, error) {
	db := db.GetDb()
	var payment models.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Payment{Code: paymentCode}).
			First(&payment).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFoundError{Entity: "Payment", Code: paymentCode}
			}
			return err
		}
		if !AllowedPaymentTransition(payment.Status, newStatus) {
			return &types.InvalidTransitionError{
				Entity: "Payment",
				Code:   paymentCode,
				From:   string(payment.Status),
				To:     string(newStatus),
			}
		}
		now := time.Now()
		updates := map[string]any{
			"status":         newStatus,
			"processed_by":   adminCode,
			"processed_date": &now,
		}
		if notes != "" {
			updates["notes"] = notes
		}
		if err := tx.
			Model(&models.Payment{}).
			Where(&models.Payment{ID: payment.ID}).
			Updates(updates).
			Error; err != nil {
			return err
		}
		payment.Status = newStatus
		payment.ProcessedBy = &adminCode
		payment.ProcessedDate = &now

		if newStatus == types.PAYMENT_COMPLETED || newStatus == types.PAYMENT_REFUNDED {
			return settleCompletedPayment(tx, &payment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// settleCompletedPayment recomputes the invoice ledger for the payment's
// invoice and reconciles the booking paid flag with the outcome. Runs inside
// the caller's transaction.
func settleCompletedPayment(tx *gorm.DB, payment *models.Payment) error {
	invoice, err := applyPaymentsToInvoice(tx, payment.InvoiceID)
	if err != nil {
		return err
	}
	isPaid := invoice.Status == types.INVOICE_PAID
	if err := tx.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: payment.BookingID}).
		Update("is_paid", isPaid).
		Error; err != nil {
		return err
	}
	if payment.Status != types.PAYMENT_COMPLETED {
		return nil
	}
	var client models.User
	err = tx.
		Joins("JOIN bookings ON bookings.client_id = users.id").
		Where("bookings.id = ?", payment.BookingID).
		First(&client).
		Error
	if err != nil {
		return err
	}
	return AppendOutboxEvent(tx, types.NOTIFY_PAYMENT_RECEIVED, client.Email, invoice.Code, types.JSONB{
		"invoice":        invoice.Code,
		"payment":        payment.Code,
		"amount":         payment.Amount,
		"amount_pending": invoice.AmountPending,
	})
}

// MarkOperatorPaid annotates a completed payment with the operator payout,
// independent from the client-facing payment status.
func MarkOperatorPaid(paymentCode string, adminCode string, notes string) (*models.Payment, error) {
	db := db.GetDb()
	var payment models.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where(&models.Payment{Code: paymentCode}).
			First(&payment).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFoundError{Entity: "Payment", Code: paymentCode}
			}
			return err
		}
		if payment.Status != types.PAYMENT_COMPLETED {
			return &types.InvalidTransitionError{
				Entity: "Payment",
				Code:   paymentCode,
				From:   string(payment.Status),
				To:     "operator-paid",
			}
		}
		if payment.OperatorPaid {
			return nil
		}
		now := time.Now()
		updates := map[string]any{
			"operator_paid":    true,
			"operator_paid_by": adminCode,
			"operator_paid_at": &now,
		}
		if notes != "" {
			updates["notes"] = notes
		}
		if err := tx.
			Model(&models.Payment{}).
			Where(&models.Payment{ID: payment.ID}).
			Updates(updates).
			Error; err != nil {
			return err
		}
		payment.OperatorPaid = true
		payment.OperatorPaidBy = &adminCode
		payment.OperatorPaidAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func GetPendingPayments() ([]models.Payment, error) {
	db := db.GetDb()
	var payments []models.Payment
	err := db.
		Model(&models.Payment{}).
		Where("status IN (?)", []types.PaymentStatus{types.PAYMENT_PENDING, types.PAYMENT_PROCESSING}).
		Preload("Invoice").
		Order("created_at ASC").
		Limit(100).
		Find(&payments).
		Error
	return payments, err
}
