package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the state of an owner's commission remittance
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentConfirmed PaymentStatus = "CONFIRMED"
)

// ParsePaymentStatus validates a raw payment status
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentConfirmed:
		return PaymentStatus(s), true
	}
	return "", false
}

// OwnerPayment is a claimed commission remittance. It reduces debt only once CONFIRMED.
type OwnerPayment struct {
	ID          int64
	OwnerID     int64
	Amount      decimal.Decimal
	Date        time.Time
	TrxID       string
	Status      PaymentStatus
	ConfirmedAt *time.Time
	CreatedAt   time.Time
}
