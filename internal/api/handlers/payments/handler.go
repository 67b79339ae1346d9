package payments

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/payments"
)

const (
	msgInvalidPaymentID   = "некорректный ID платежа"
	msgInvalidOwnerID     = "некорректный параметр ownerId"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "платёж не найден"
	msgForbidden          = "доступ запрещён"
	msgAlreadyConfirmed   = "платёж уже подтверждён"
)

type PaymentService interface {
	Submit(ctx context.Context, caller domain.Identity, req *payments.SubmitPaymentRequest) (*payments.PaymentResponse, error)
	List(ctx context.Context, caller domain.Identity, req *payments.ListPaymentsRequest) (*payments.PaymentListResponse, error)
	Confirm(ctx context.Context, caller domain.Identity, id int64) (*payments.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Submit POST /api/v1/payments
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req payments.SubmitPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	payment, err := h.service.Submit(r.Context(), caller, &req)
	if err != nil {
		h.respondError(w, "POST /payments", err)
		return
	}

	h.logger.Info("POST /payments - Payment submitted: payment_id=%d, owner_id=%d", payment.ID, caller.UserID)
	handlers.RespondJSON(w, http.StatusCreated, payment)
}

// List GET /api/v1/payments?ownerId=&status=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &payments.ListPaymentsRequest{}
	if raw := r.URL.Query().Get("ownerId"); raw != "" {
		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ownerID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidOwnerID)
			return
		}
		req.OwnerID = &ownerID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.List(r.Context(), caller, req)
	if err != nil {
		h.respondError(w, "GET /payments", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Payments)
}

// Confirm POST /api/v1/admin/payments/{paymentId}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	paymentID, err := handlers.PathInt64(r, "paymentId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	caller, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	payment, err := h.service.Confirm(r.Context(), caller, paymentID)
	if err != nil {
		h.respondError(w, "POST /admin/payments/{id}/confirm", err)
		return
	}

	h.logger.Info("POST /admin/payments/{id}/confirm - Payment confirmed: payment_id=%d", paymentID)
	handlers.RespondJSON(w, http.StatusOK, payment)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, payments.ErrPaymentNotFound):
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, payments.ErrAlreadyConfirmed):
		h.logger.Warn("%s - Payment already confirmed", route)
		handlers.RespondConflict(w, msgAlreadyConfirmed)

	case errors.Is(err, payments.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, payments.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
