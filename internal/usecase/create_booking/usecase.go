package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
)

// UseCase use case для создания бронирования (допуск слота)
type UseCase struct {
	bookingRepo  BookingRepository
	salonRepo    SalonRepository
	serviceRepo  ServiceRepository
	commission   CommissionEvaluator
	userClient   UserServiceClient
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	serviceRepo ServiceRepository,
	commission CommissionEvaluator,
	userClient UserServiceClient,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		salonRepo:    salonRepo,
		serviceRepo:  serviceRepo,
		commission:   commission,
		userClient:   userClient,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Занятость слота гарантируется частичным уникальным индексом: из двух
// одновременных запросов на один слот успешен ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, salon=%d, date=%s, time=%s, services=%v",
		req.UserID, req.SalonID, req.Date.Format(domain.DateFormat), req.TimeLabel, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе сервиса
	now := uc.timeProvider.Now().In(uc.loc)

	if domain.IsDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем салон и проверяем, что он принимает бронирования
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("CreateBooking: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateBooking: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	if err := uc.checkBookable(ctx, salon); err != nil {
		return nil, err
	}

	// 4. Правило буфера: сегодня нельзя занять слот раньше чем через час
	if domain.IsTooSoon(req.Date, req.TimeLabel, now) {
		uc.logger.Warn("CreateBooking: slot %s on %s is too soon", req.TimeLabel, req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, domain.BookingBufferMinutes)
	}

	// 5. Цены услуг фиксируются в бронировании
	services, err := uc.serviceRepo.GetByIDs(ctx, req.SalonID, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get services for salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	total, err := totalPrice(req.ServiceIDs, services)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v in salon id=%d", err, req.SalonID)
		return nil, err
	}

	// 6. Быстрая проверка занятости (окончательное решение принимает БД)
	occupied, err := uc.bookingRepo.GetOccupiedLabels(ctx, req.SalonID, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get occupied slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupied slots: %v", ErrInternal, err)
	}

	if isOccupied(occupied, req.TimeLabel) {
		uc.logger.Warn("CreateBooking: slot %s on %s already booked in salon id=%d",
			req.TimeLabel, req.Date.Format(domain.DateFormat), req.SalonID)
		uc.recordAdmission(domain.OutcomeDuplicate)
		return nil, ErrDuplicateBooking
	}

	booking := &domain.Booking{
		UserID:     req.UserID,
		SalonID:    req.SalonID,
		ServiceIDs: append([]int64(nil), req.ServiceIDs...),
		Date:       req.Date,
		TimeLabel:  req.TimeLabel,
		Status:     domain.StatusPending,
		TotalPrice: total,
	}

	// 7. Атомарная вставка
	var result domain.AdmissionResult
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.recordAdmission(result.Outcome)

	if result.Outcome != domain.OutcomeAdmitted {
		uc.logger.Warn("CreateBooking: lost race for slot %s on %s in salon id=%d",
			req.TimeLabel, req.Date.Format(domain.DateFormat), req.SalonID)
		return nil, ErrDuplicateBooking
	}

	created := result.Booking
	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)

	// 8. Уведомляем владельца салона
	customerName := uc.userClient.DisplayName(ctx, req.UserID)
	uc.notifier.Notify(ctx, salon.OwnerID, domain.BookingCreatedNotice(customerName))

	return &Response{
		ID:         created.ID,
		UserID:     created.UserID,
		SalonID:    created.SalonID,
		ServiceIDs: created.ServiceIDs,
		Date:       created.Date,
		TimeLabel:  created.TimeLabel,
		Status:     string(created.Status),
		TotalPrice: created.TotalPrice,
		CreatedAt:  created.CreatedAt,
		UpdatedAt:  created.UpdatedAt,
	}, nil
}

// checkBookable проверяет флаги салона и приостановку за неуплату комиссии
func (uc *UseCase) checkBookable(ctx context.Context, salon *domain.Salon) error {
	if !salon.IsOpenForListing() {
		uc.logger.Warn("CreateBooking: salon id=%d is not open (active=%t, status=%s)",
			salon.ID, salon.IsActive, salon.Status)
		return ErrSalonNotBookable
	}

	suspended, err := uc.commission.IsSuspended(ctx, salon)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to evaluate commission for salon id=%d: %v", salon.ID, err)
		return fmt.Errorf("%w: failed to evaluate commission: %v", ErrInternal, err)
	}

	if suspended {
		uc.logger.Warn("CreateBooking: salon id=%d is suspended for unpaid commission", salon.ID)
		return ErrSalonNotBookable
	}

	return nil
}

func (uc *UseCase) recordAdmission(outcome domain.AdmissionOutcome) {
	if uc.metrics != nil {
		uc.metrics.RecordAdmission(outcome.String())
	}
}
