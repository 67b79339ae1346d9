package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: чтение и жизненный цикл статусов
type Service struct {
	bookingRepo  BookingRepository
	salonRepo    SalonRepository
	userClient   UserServiceClient
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	userClient UserServiceClient,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		salonRepo:    salonRepo,
		userClient:   userClient,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно клиенту, владельцу салона и администратору.
func (s *Service) GetByID(ctx context.Context, id int64, caller domain.Identity) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, caller.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != caller.UserID && !caller.IsAdmin() {
		salon, err := s.getSalon(ctx, "GetByID", booking.SalonID)
		if err != nil {
			return nil, err
		}
		if salon.OwnerID != caller.UserID {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", caller.UserID, id)
			return nil, ErrAccessDenied
		}
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя.
// Опционально фильтрует по статусу.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetSalonBookings получает бронирования салона с фильтрацией по периоду и статусу.
// Доступно владельцу салона и администратору.
func (s *Service) GetSalonBookings(ctx context.Context, req *models.GetSalonBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetSalonBookings: fetching bookings for salon=%d, user=%d", req.SalonID, req.Caller.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if err := s.checkOwnerAccess(ctx, "GetSalonBookings", req.SalonID, req.Caller, true); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonBookings: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonBookings: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonBookings: successfully fetched %d bookings for salon=%d", len(bookings), req.SalonID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус бронирования от имени владельца салона.
// PENDING -> CONFIRMED | REJECTED, CONFIRMED -> COMPLETED. Клиент получает уведомление.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.Caller.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return nil, err
	}

	salon, err := s.getSalon(ctx, "UpdateStatus", booking.SalonID)
	if err != nil {
		return nil, err
	}

	if salon.OwnerID != req.Caller.UserID {
		s.logger.Warn("UpdateStatus: user=%d is not the owner of salon=%d", req.Caller.UserID, salon.ID)
		return nil, ErrAccessDenied
	}

	if verdict := domain.CheckTransition(booking, newStatus, domain.ActorOwner, s.timeProvider.Now()); verdict != domain.TransitionAllowed {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return nil, ErrInvalidTransition
	}

	updated, err := s.transition(ctx, "UpdateStatus", booking, newStatus)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, booking.UserID, domain.BookingStatusNotice(salon.Name, newStatus))

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(updated), nil
}

// Cancel отменяет бронирование по инициативе клиента.
// Возможна только для PENDING и только в течение часа после создания. Владелец получает уведомление.
func (s *Service) Cancel(ctx context.Context, bookingID int64, caller domain.Identity) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, caller.UserID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != caller.UserID {
		s.logger.Warn("Cancel: user=%d is not the customer of booking id=%d", caller.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	switch domain.CheckTransition(booking, domain.StatusRejected, domain.ActorCustomer, s.timeProvider.Now()) {
	case domain.TransitionAllowed:
	case domain.TransitionWindowExpired:
		s.logger.Warn("Cancel: cancellation window expired for booking id=%d", bookingID)
		return nil, ErrCancellationWindowExpired
	default:
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrInvalidTransition
	}

	updated, err := s.transition(ctx, "Cancel", booking, domain.StatusRejected)
	if err != nil {
		return nil, err
	}

	salon, err := s.getSalon(ctx, "Cancel", booking.SalonID)
	if err != nil {
		s.logger.Warn("Cancel: booking id=%d cancelled but owner was not notified: %v", bookingID, err)
	} else {
		customerName := s.userClient.DisplayName(ctx, booking.UserID)
		s.notifier.Notify(ctx, salon.OwnerID, domain.BookingCancelledNotice(customerName))
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return models.FromDomainBooking(updated), nil
}

// Вспомогательные методы

// transition выполняет условный UPDATE: статус меняется, только если он всё ещё равен прочитанному
func (s *Service) transition(ctx context.Context, method string, booking *domain.Booking, to domain.BookingStatus) (*domain.Booking, error) {
	updated, err := s.bookingRepo.UpdateStatus(ctx, booking.ID, booking.Status, to)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrStatusChanged):
			s.logger.Warn("%s: booking id=%d status changed concurrently", method, booking.ID)
			return nil, ErrInvalidTransition
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", method, booking.ID, err)
		return nil, fmt.Errorf("%w: %s - update status: %v", ErrInternal, method, err)
	}
	return updated, nil
}

func (s *Service) getBooking(ctx context.Context, method string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", method, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}

func (s *Service) getSalon(ctx context.Context, method string, id int64) (*domain.Salon, error) {
	salon, err := s.salonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("%s: salon id=%d not found", method, id)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("%s: failed to get salon id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - failed to get salon: %v", ErrInternal, method, err)
	}
	return salon, nil
}

// checkOwnerAccess проверяет, что пользователь владеет салоном (или является администратором, если allowAdmin)
func (s *Service) checkOwnerAccess(ctx context.Context, method string, salonID int64, caller domain.Identity, allowAdmin bool) error {
	if allowAdmin && caller.IsAdmin() {
		return nil
	}

	salon, err := s.getSalon(ctx, method, salonID)
	if err != nil {
		return err
	}

	if salon.OwnerID != caller.UserID {
		s.logger.Warn("%s: user=%d is not the owner of salon=%d", method, caller.UserID, salonID)
		return ErrAccessDenied
	}

	return nil
}
