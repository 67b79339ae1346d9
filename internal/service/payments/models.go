package payments

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SubmitPaymentRequest заявка владельца об оплате комиссии
type SubmitPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	TrxID  string          `json:"trxId"`
	Date   *string         `json:"date,omitempty"` // "2025-10-15", по умолчанию сегодня
}

// ListPaymentsRequest фильтр списка платежей
type ListPaymentsRequest struct {
	OwnerID *int64
	Status  *string
}

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID          int64           `json:"id"`
	OwnerID     int64           `json:"ownerId"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	TrxID       string          `json:"trxId"`
	Status      string          `json:"status"`
	ConfirmedAt *time.Time      `json:"confirmedAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// PaymentListResponse ответ со списком платежей
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

func fromDomainPayment(p *domain.OwnerPayment) *PaymentResponse {
	return &PaymentResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Amount:      p.Amount,
		Date:        p.Date.Format(domain.DateFormat),
		TrxID:       p.TrxID,
		Status:      string(p.Status),
		ConfirmedAt: p.ConfirmedAt,
		CreatedAt:   p.CreatedAt,
	}
}
