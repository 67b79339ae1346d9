package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
)

// UseCase use case для получения слотов салона на дату
type UseCase struct {
	bookingRepo  BookingRepository
	salonRepo    SalonRepository
	commission   CommissionEvaluator
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	commission CommissionEvaluator,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		salonRepo:    salonRepo,
		commission:   commission,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%d, date=%s", req.SalonID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе сервиса
	now := uc.timeProvider.Now().In(uc.loc)

	if domain.IsDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем салон
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetAvailableSlots: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Салон должен принимать бронирования
	if !salon.IsOpenForListing() {
		uc.logger.Warn("GetAvailableSlots: salon id=%d is not open", req.SalonID)
		return nil, ErrSalonNotBookable
	}

	suspended, err := uc.commission.IsSuspended(ctx, salon)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to evaluate commission for salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to evaluate commission: %v", ErrInternal, err)
	}
	if suspended {
		uc.logger.Warn("GetAvailableSlots: salon id=%d is suspended", req.SalonID)
		return nil, ErrSalonNotBookable
	}

	// 5. Получаем занятые слоты
	occupied, err := uc.bookingRepo.GetOccupiedLabels(ctx, req.SalonID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get occupied slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupied slots: %v", ErrInternal, err)
	}

	// 6. Размечаем расписание дня
	slots := buildSlots(req.Date, occupied, now)

	uc.logger.Info("GetAvailableSlots: salon=%d, date=%s, booked=%d",
		req.SalonID, req.Date.Format(domain.DateFormat), len(occupied))

	return &Response{
		Date:    req.Date,
		SalonID: req.SalonID,
		Slots:   slots,
	}, nil
}
