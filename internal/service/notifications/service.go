package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	GetByUserID(ctx context.Context, userID int64, limit uint64) ([]*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NotificationResponse уведомление во входящих
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse входящие пользователя
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Unread        int                    `json:"unread"`
}

// Service входящие уведомления пользователя
type Service struct {
	repo   NotificationRepository
	logger Logger
}

// NewService создает сервис входящих уведомлений
func NewService(repo NotificationRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List возвращает последние уведомления пользователя. limit=0 означает значение по умолчанию.
func (s *Service) List(ctx context.Context, caller domain.Identity, limit int) (*NotificationListResponse, error) {
	if limit < 0 || limit > maxLimit {
		return nil, fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidInput, maxLimit)
	}
	if limit == 0 {
		limit = defaultLimit
	}

	items, err := s.repo.GetByUserID(ctx, caller.UserID, uint64(limit))
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", caller.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &NotificationListResponse{Notifications: make([]NotificationResponse, 0, len(items))}
	for _, n := range items {
		if !n.IsRead {
			resp.Unread++
		}
		resp.Notifications = append(resp.Notifications, NotificationResponse{
			ID:        n.ID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return resp, nil
}

// MarkAllRead отмечает все уведомления пользователя прочитанными
func (s *Service) MarkAllRead(ctx context.Context, caller domain.Identity) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, caller.UserID)
	if err != nil {
		s.logger.Error("MarkAllRead: repository error for user=%d: %v", caller.UserID, err)
		return 0, fmt.Errorf("%w: MarkAllRead - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkAllRead: marked %d notifications read for user=%d", updated, caller.UserID)
	return updated, nil
}
