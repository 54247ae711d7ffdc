package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type JSONBArray []any

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Metadata map[string]any

type Role string

const (
	ROLE_PASSENGER Role = "passenger"
	ROLE_OPERATOR  Role = "operator"
	ROLE_AGENT     Role = "agent"
	ROLE_ADMIN     Role = "admin"
)

type RequestStatus string

const (
	REQUEST_SUBMITTED      RequestStatus = "submitted"
	REQUEST_QUOTE_RECEIVED RequestStatus = "quote-received"
	REQUEST_QUOTES_VIEWED  RequestStatus = "quotes-viewed"
	REQUEST_ACCEPTED       RequestStatus = "accepted"
	REQUEST_REJECTED       RequestStatus = "rejected"
	REQUEST_EXPIRED        RequestStatus = "expired"
)

// Terminal reports whether no further transition may leave s.
func (s RequestStatus) Terminal() bool {
	return s == REQUEST_ACCEPTED || s == REQUEST_REJECTED || s == REQUEST_EXPIRED
}

type QuoteStatus string

const (
	QUOTE_PENDING  QuoteStatus = "pending"
	QUOTE_ACCEPTED QuoteStatus = "accepted"
	QUOTE_REJECTED QuoteStatus = "rejected"
)

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELED  BookingStatus = "cancelled"
)

type InvoiceStatus string

const (
	INVOICE_OPEN        InvoiceStatus = "open"
	INVOICE_BALANCE_DUE InvoiceStatus = "balance-due"
	INVOICE_PAID        InvoiceStatus = "paid"
)

type PaymentStatus string

const (
	PAYMENT_PENDING    PaymentStatus = "pending"
	PAYMENT_PROCESSING PaymentStatus = "processing"
	PAYMENT_COMPLETED  PaymentStatus = "completed"
	PAYMENT_FAILED     PaymentStatus = "failed"
	PAYMENT_REFUNDED   PaymentStatus = "refunded"
)

type NotificationKind string

const (
	NOTIFY_REQUEST_SUBMITTED NotificationKind = "request-submitted"
	NOTIFY_QUOTE_RECEIVED    NotificationKind = "quote-received"
	NOTIFY_BOOKING_CONFIRMED NotificationKind = "booking-confirmed"
	NOTIFY_PAYMENT_RECEIVED  NotificationKind = "payment-received"
)

type RegisterUserRequestBody struct {
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name" binding:"required"`
	Surname string `json:"surname,omitempty"`
	Company string `json:"company,omitempty"`
	Role    string `json:"role" binding:"required,oneof=passenger operator agent admin"`
}

type CreateRequestBody struct {
	From          string  `json:"from" binding:"required"`
	To            string  `json:"to" binding:"required"`
	DepartureDate string  `json:"departure_date" binding:"required,futuredate" time_format:"2006-01-02 15:04:05 -07:00"`
	ReturnDate    *string `json:"return_date,omitempty" binding:"omitempty,futuredate" time_format:"2006-01-02 15:04:05 -07:00"`
	Passengers    uint8   `json:"passengers" binding:"required,min=1"`
	CabinClass    string  `json:"cabin_class,omitempty"`
	OperatorCode  string  `json:"operator,omitempty"`
}

type SubmitQuoteRequestBody struct {
	RequestCode string  `json:"request" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Notes       string  `json:"notes,omitempty"`
}

type RecordPaymentRequestBody struct {
	Amount        float64 `json:"amount" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Reference     string  `json:"reference,omitempty"`
}

type ProcessPaymentRequestBody struct {
	Status PaymentStatus `json:"status" binding:"required,oneof=processing completed failed refunded"`
	Notes  string        `json:"notes,omitempty"`
}

type AddPassengerRequestBody struct {
	FullName string `json:"full_name" binding:"required"`
	Document string `json:"document,omitempty"`
}

type CreateInvoiceRequestBody struct {
	FlightCode string  `json:"flight_code,omitempty"`
	Amount     float64 `json:"amount" binding:"required"`
}

type MarkOperatorPaidRequestBody struct {
	Notes string `json:"notes,omitempty"`
}

type CreateRatingRequestBody struct {
	Rating   int    `json:"rating" binding:"required"`
	Comments string `json:"comments,omitempty"`
}

type CodeRequestParams struct {
	Code string `uri:"code" binding:"required"`
}

type Claims struct {
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}
