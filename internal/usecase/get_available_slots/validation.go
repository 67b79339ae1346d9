package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// buildSlots размечает расписание дня: занятость и правило буфера
func buildSlots(date time.Time, occupied []types.TimeLabel, now time.Time) []Slot {
	booked := make(map[int]struct{}, len(occupied))
	for _, l := range occupied {
		booked[l.Minutes()] = struct{}{}
	}

	schedule := domain.Schedule()
	slots := make([]Slot, 0, len(schedule))

	for _, s := range schedule {
		_, isBooked := booked[s.Label.Minutes()]

		slot := domain.AvailableSlot{
			TimeLabel: s.Label,
			Segment:   s.Segment,
			IsBooked:  isBooked,
			IsTooSoon: domain.IsTooSoon(date, s.Label, now),
		}

		slots = append(slots, Slot{
			TimeLabel:    slot.TimeLabel,
			Segment:      slot.Segment,
			IsBooked:     slot.IsBooked,
			IsTooSoon:    slot.IsTooSoon,
			IsSelectable: slot.IsSelectable(),
		})
	}

	return slots
}
