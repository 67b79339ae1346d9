package send_reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ErrInternal возвращается, если не удалось получить бронирования
var ErrInternal = errors.New("send_reminders: internal error")

// UseCase напоминает владельцу о предстоящих сегодня визитах.
// Напоминание уходит, когда до начала слота осталось больше нуля и не больше lead минут.
type UseCase struct {
	bookingRepo  BookingRepository
	salonRepo    SalonRepository
	store        ReminderStore
	userClient   UserServiceClient
	notifier     Notifier
	timeProvider TimeProvider
	loc          *time.Location
	lead         time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	store ReminderStore,
	userClient UserServiceClient,
	notifier Notifier,
	loc *time.Location,
	leadMinutes int,
	logger Logger,
) *UseCase {
	if leadMinutes <= 0 {
		leadMinutes = domain.DefaultReminderLeadMinutes
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		salonRepo:    salonRepo,
		store:        store,
		userClient:   userClient,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		lead:         time.Duration(leadMinutes) * time.Minute,
		logger:       logger,
	}
}

// Execute выполняет один проход напоминаний
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now().In(uc.loc)

	// 1. Бронирования на сегодня, которые ещё могут состояться
	bookings, err := uc.bookingRepo.GetByDateAndStatuses(ctx, now, domain.UpcomingStatuses)
	if err != nil {
		uc.logger.Error("SendReminders: failed to get today's bookings: %v", err)
		return nil, fmt.Errorf("%w: get bookings: %v", ErrInternal, err)
	}

	resp := &Response{Checked: len(bookings)}
	salonOwners := make(map[int64]int64)

	for _, booking := range bookings {
		// 2. Окно напоминания: 0 < до начала <= lead
		delta := booking.StartsAt(uc.loc).Sub(now)
		if delta <= 0 || delta > uc.lead {
			continue
		}
		resp.Due++

		// 3. Атомарная отметка, повторные проходы и другие экземпляры её увидят
		marked, err := uc.store.MarkBookingReminded(ctx, booking.ID)
		if err != nil {
			uc.logger.Warn("SendReminders: skipping booking id=%d, reminder store unavailable: %v", booking.ID, err)
			continue
		}
		if !marked {
			continue
		}

		// 4. Владелец салона
		ownerID, ok := salonOwners[booking.SalonID]
		if !ok {
			salon, err := uc.salonRepo.GetByID(ctx, booking.SalonID)
			if err != nil {
				uc.logger.Error("SendReminders: failed to get salon id=%d for booking id=%d: %v", booking.SalonID, booking.ID, err)
				if err := uc.store.UnmarkBooking(ctx, booking.ID); err != nil {
					uc.logger.Warn("SendReminders: failed to unmark booking id=%d: %v", booking.ID, err)
				}
				continue
			}
			ownerID = salon.OwnerID
			salonOwners[booking.SalonID] = ownerID
		}

		// 5. Уведомляем владельца
		customerName := uc.userClient.DisplayName(ctx, booking.UserID)
		uc.notifier.Notify(ctx, ownerID, domain.BookingReminderNotice(customerName))
		resp.Sent++

		uc.logger.Info("SendReminders: reminded owner=%d about booking id=%d at %s", ownerID, booking.ID, booking.TimeLabel)
	}

	return resp, nil
}
