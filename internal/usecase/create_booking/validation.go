package create_booking

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.TimeLabel.IsZero() {
		return fmt.Errorf("%w: timeSlot is required", ErrInvalidInput)
	}

	if !domain.IsScheduledLabel(req.TimeLabel) {
		return fmt.Errorf("%w: timeSlot %s is not a salon slot", ErrInvalidInput, req.TimeLabel)
	}

	return validateServiceIDs(req.ServiceIDs)
}

// validateServiceIDs проверяет, что список услуг не пуст, без повторов и положительных ID
func validateServiceIDs(ids []int64) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(ids) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: service id=%d selected twice", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// totalPrice суммирует цены выбранных услуг. Каждая услуга должна принадлежать салону.
func totalPrice(ids []int64, services []domain.Service) (decimal.Decimal, error) {
	prices := make(map[int64]decimal.Decimal, len(services))
	for _, s := range services {
		prices[s.ID] = s.Price
	}

	total := decimal.Zero
	for _, id := range ids {
		price, ok := prices[id]
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
		total = total.Add(price)
	}

	return total, nil
}

// isOccupied проверяет, занят ли слот живым бронированием
func isOccupied(occupied []types.TimeLabel, label types.TimeLabel) bool {
	for _, o := range occupied {
		if o.Equal(label) {
			return true
		}
	}
	return false
}
