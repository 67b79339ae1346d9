package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date    string          `json:"date"`
	SalonID int64           `json:"salonId"`
	Slots   []AvailableSlot `json:"slots"`
}

// AvailableSlot слот дня с признаками доступности
type AvailableSlot struct {
	TimeSlot     string `json:"timeSlot"`
	Segment      string `json:"segment"`
	IsBooked     bool   `json:"isBooked"`
	IsTooSoon    bool   `json:"isTooSoon"`
	IsSelectable bool   `json:"isSelectable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			TimeSlot:     slot.TimeLabel.String(),
			Segment:      string(slot.Segment),
			IsBooked:     slot.IsBooked,
			IsTooSoon:    slot.IsTooSoon,
			IsSelectable: slot.IsSelectable,
		}
	}

	return &AvailableSlotsResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		SalonID: resp.SalonID,
		Slots:   slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(salonID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		SalonID: salonID,
		Date:    date,
	}, nil
}
