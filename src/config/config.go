package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

const (
	defaultCommissionRate = 0.03
	defaultRequestTTL     = 24 * time.Hour
)

// CommissionRate is the platform fee applied on top of an operator's quoted
// price. Overridable through COMMISSION_RATE (e.g. "0.03").
func CommissionRate() float64 {
	raw := os.Getenv("COMMISSION_RATE")
	if raw == "" {
		return defaultCommissionRate
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate <= 0 || rate >= 1 {
		return defaultCommissionRate
	}
	return rate
}

// RequestTTL is how long a quote request stays open with no accepted quote.
// Overridable through REQUEST_TTL_HOURS.
func RequestTTL() time.Duration {
	raw := os.Getenv("REQUEST_TTL_HOURS")
	if raw == "" {
		return defaultRequestTTL
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return defaultRequestTTL
	}
	return time.Duration(hours) * time.Hour
}
