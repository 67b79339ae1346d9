package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SalonID    int64   `json:"salonId"`
	ServiceIDs []int64 `json:"serviceIds"`
	Date       string  `json:"date"`     // "2025-10-15"
	TimeSlot   string  `json:"timeSlot"` // "02:30 PM"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"userId"`
	SalonID    int64           `json:"salonId"`
	ServiceIDs []int64         `json:"serviceIds"`
	Date       string          `json:"date"`
	TimeSlot   string          `json:"timeSlot"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  string          `json:"createdAt"`
	UpdatedAt  string          `json:"updatedAt"`
}

// errBadDate и errBadTimeSlot различают ошибки разбора для ответа клиенту
var (
	errBadDate     = errors.New("invalid date")
	errBadTimeSlot = errors.New("invalid time slot")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadDate, err)
	}

	label, err := types.ParseTimeLabel(r.TimeSlot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadTimeSlot, err)
	}

	return &createBooking.Request{
		UserID:     userID,
		SalonID:    r.SalonID,
		ServiceIDs: r.ServiceIDs,
		Date:       date,
		TimeLabel:  label,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		UserID:     resp.UserID,
		SalonID:    resp.SalonID,
		ServiceIDs: resp.ServiceIDs,
		Date:       resp.Date.Format(domain.DateFormat),
		TimeSlot:   resp.TimeLabel.String(),
		Status:     resp.Status,
		TotalPrice: resp.TotalPrice,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
