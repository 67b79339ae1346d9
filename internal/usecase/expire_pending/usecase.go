package expire_pending

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
)

// ErrInternal возвращается, если не удалось получить бронирования
var ErrInternal = errors.New("expire_pending: internal error")

// Response итог прохода
type Response struct {
	Stale    int
	Rejected int
}

// UseCase отклоняет PENDING бронирования, слот которых уже начался.
// При политике none ничего не делает.
type UseCase struct {
	bookingRepo  BookingRepository
	salonRepo    SalonRepository
	notifier     Notifier
	timeProvider TimeProvider
	loc          *time.Location
	policy       domain.StalePendingPolicy
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	notifier Notifier,
	loc *time.Location,
	policy domain.StalePendingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		salonRepo:    salonRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		policy:       policy,
		logger:       logger,
	}
}

// Execute выполняет один проход
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	if uc.policy != domain.StalePendingReject {
		return &Response{}, nil
	}

	now := uc.timeProvider.Now().In(uc.loc)

	bookings, err := uc.bookingRepo.GetPendingBefore(ctx, now)
	if err != nil {
		uc.logger.Error("ExpirePending: failed to get pending bookings: %v", err)
		return nil, fmt.Errorf("%w: get pending bookings: %v", ErrInternal, err)
	}

	resp := &Response{}
	salonNames := make(map[int64]string)

	for _, booking := range bookings {
		if booking.StartsAt(uc.loc).After(now) {
			continue
		}
		resp.Stale++

		// Условный переход: владелец мог подтвердить бронирование между выборкой и обновлением
		if _, err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusPending, domain.StatusRejected); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				continue
			}
			uc.logger.Error("ExpirePending: failed to reject booking id=%d: %v", booking.ID, err)
			continue
		}
		resp.Rejected++

		name, ok := salonNames[booking.SalonID]
		if !ok {
			if salon, err := uc.salonRepo.GetByID(ctx, booking.SalonID); err == nil {
				name = salon.Name
			} else {
				uc.logger.Warn("ExpirePending: failed to get salon id=%d: %v", booking.SalonID, err)
			}
			salonNames[booking.SalonID] = name
		}

		uc.notifier.Notify(ctx, booking.UserID, domain.BookingStatusNotice(name, domain.StatusRejected))
		uc.logger.Info("ExpirePending: rejected stale booking id=%d", booking.ID)
	}

	return resp, nil
}
