package notifications

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/notifications"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidLimit  = "некорректный параметр limit"
)

type NotificationService interface {
	List(ctx context.Context, caller domain.Identity, limit int) (*notifications.NotificationListResponse, error)
	MarkAllRead(ctx context.Context, caller domain.Identity) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MarkReadResponse число отмеченных уведомлений
type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/notifications?limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	result, err := h.service.List(r.Context(), caller, limit)
	if err != nil {
		h.logger.Error("GET /notifications - Failed to list notifications: user_id=%d, error=%v", caller.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// MarkAllRead POST /api/v1/notifications/read
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	updated, err := h.service.MarkAllRead(r.Context(), caller)
	if err != nil {
		h.logger.Error("POST /notifications/read - Failed to mark read: user_id=%d, error=%v", caller.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /notifications/read - Marked read: user_id=%d, count=%d", caller.UserID, updated)
	handlers.RespondJSON(w, http.StatusOK, MarkReadResponse{Updated: updated})
}
