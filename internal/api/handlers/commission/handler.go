package commission

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/commission"
)

const (
	msgInvalidOwnerID = "некорректный ID владельца"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "доступ запрещён"
)

type CommissionService interface {
	GetStatus(ctx context.Context, caller domain.Identity, ownerID int64) (domain.CommissionStatus, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// StatusResponse состояние комиссии владельца на сегодня
type StatusResponse struct {
	OwnerID          int64           `json:"ownerId"`
	TotalEarnings    decimal.Decimal `json:"totalEarnings"`
	CommissionTarget decimal.Decimal `json:"commissionTarget"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	Debt             decimal.Decimal `json:"debt"`
	IsDue            bool            `json:"isDue"`
	IsSuspended      bool            `json:"isSuspended"`
}

type Handler struct {
	service CommissionService
	logger  Logger
}

func NewHandler(service CommissionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerId}/commission
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, err := handlers.PathInt64(r, "ownerId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	caller, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	status, err := h.service.GetStatus(r.Context(), caller, ownerID)
	if err != nil {
		if errors.Is(err, commission.ErrAccessDenied) {
			h.logger.Warn("GET /owners/{id}/commission - Access denied: owner_id=%d, user_id=%d", ownerID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /owners/{id}/commission - Failed to evaluate: owner_id=%d, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, StatusResponse{
		OwnerID:          ownerID,
		TotalEarnings:    status.TotalEarnings,
		CommissionTarget: status.CommissionTarget,
		TotalPaid:        status.TotalPaid,
		Debt:             status.Debt,
		IsDue:            status.IsDue,
		IsSuspended:      status.IsSuspended,
	})
}
