package reviews

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reviews"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSalonNotFound      = "салон не найден"
	msgOwnSalon           = "владелец не может оставить отзыв своему салону"
)

type ReviewService interface {
	Create(ctx context.Context, caller domain.Identity, salonID int64, req *reviews.CreateReviewRequest) (*reviews.CreateReviewResponse, error)
	List(ctx context.Context, salonID int64) (*reviews.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/salons/{salonId}/reviews
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	result, err := h.service.List(r.Context(), salonID)
	if err != nil {
		h.logger.Error("GET /salons/{id}/reviews - Failed to list reviews: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Reviews)
}

// Create POST /api/v1/salons/{salonId}/reviews
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("POST /salons/{id}/reviews - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	caller, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req reviews.CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), caller, salonID, &req)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{id}/reviews - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("POST /salons/{id}/reviews - Own salon: salon_id=%d, user_id=%d", salonID, caller.UserID)
			handlers.RespondForbidden(w, msgOwnSalon)

		case errors.Is(err, reviews.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /salons/{id}/reviews - Failed to create review: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/reviews - Review created: salon_id=%d, review_id=%d, rating=%.1f",
		salonID, result.Review.ID, result.SalonRating)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
