package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/sms"
)

// SMSRelay доставляет события уведомлений из Kafka по SMS
type SMSRelay struct {
	users   UserDirectory
	sender  SMSSender
	metrics Metrics
	log     Logger
}

// NewSMSRelay создает обработчик событий для SMS-воркера
func NewSMSRelay(users UserDirectory, sender SMSSender, metrics Metrics, log Logger) *SMSRelay {
	return &SMSRelay{
		users:   users,
		sender:  sender,
		metrics: metrics,
		log:     log,
	}
}

// Handle отправляет одно событие. Пользователь без телефона пропускается без ошибки.
func (r *SMSRelay) Handle(ctx context.Context, event events.NotificationEvent) error {
	user, err := r.users.GetUser(ctx, event.UserID)
	if err != nil {
		r.record(resultFailed)
		return fmt.Errorf("SMSRelay: get user %d: %w", event.UserID, err)
	}

	body := event.Title + "\n" + event.Message
	if err := r.sender.Send(ctx, user.Phone, body); err != nil {
		if errors.Is(err, sms.ErrEmptyRecipient) {
			r.log.Warn("SMSRelay: user_id=%d has no phone, event id=%s skipped", event.UserID, event.ID)
			return nil
		}
		r.record(resultFailed)
		return fmt.Errorf("SMSRelay: send event %s: %w", event.ID, err)
	}

	r.record(resultOK)
	r.log.Info("SMSRelay: delivered event id=%s type=%s user_id=%d", event.ID, event.Type, event.UserID)
	return nil
}

func (r *SMSRelay) record(result string) {
	if r.metrics != nil {
		r.metrics.RecordNotification(channelSMS, result)
	}
}
