package notifier

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
)

const (
	channelInbox = "inbox"
	channelKafka = "kafka"
	channelSMS   = "sms"

	resultOK     = "ok"
	resultFailed = "failed"
)

// Notifier доставляет уведомления: запись во входящие и событие в Kafka.
// Ошибки логируются и не возвращаются вызывающему: уведомление не должно
// отменять уже выполненную бизнес-операцию.
type Notifier struct {
	repo      NotificationRepository
	publisher EventPublisher
	metrics   Metrics
	log       Logger
}

// New создает Notifier. publisher может быть nil, тогда событие не публикуется.
func New(repo NotificationRepository, publisher EventPublisher, metrics Metrics, log Logger) *Notifier {
	return &Notifier{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
	}
}

// Notify отправляет уведомление пользователю userID
func (n *Notifier) Notify(ctx context.Context, userID int64, content domain.NotificationContent) {
	notification := &domain.Notification{
		UserID:  userID,
		Type:    content.Type,
		Title:   content.Title,
		Message: content.Message,
	}

	// 1. Сохраняем во входящие
	saved, err := n.repo.Create(ctx, notification)
	if err != nil {
		n.log.Error("Notify: failed to store notification user_id=%d type=%s: %v", userID, content.Type, err)
		n.record(channelInbox, resultFailed)
		return
	}
	n.record(channelInbox, resultOK)

	// 2. Публикуем событие для SMS-воркера
	if n.publisher == nil {
		return
	}

	event := events.NewNotificationEvent(saved)
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.log.Warn("Notify: failed to publish event id=%s user_id=%d: %v", event.ID, userID, err)
		n.record(channelKafka, resultFailed)
		return
	}
	n.record(channelKafka, resultOK)

	n.log.Info("Notify: notification sent user_id=%d type=%s", userID, content.Type)
}

func (n *Notifier) record(channel, result string) {
	if n.metrics != nil {
		n.metrics.RecordNotification(channel, result)
	}
}
