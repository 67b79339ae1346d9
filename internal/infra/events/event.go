package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// NotificationEvent событие доставки уведомления во внешние каналы (SMS)
type NotificationEvent struct {
	ID        string                  `json:"id"`
	Type      domain.NotificationType `json:"type"`
	UserID    int64                   `json:"user_id"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	CreatedAt time.Time               `json:"created_at"`
}

// NewNotificationEvent создает событие с новым идентификатором
func NewNotificationEvent(n *domain.Notification) NotificationEvent {
	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return NotificationEvent{
		ID:        uuid.NewString(),
		Type:      n.Type,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		CreatedAt: createdAt,
	}
}
