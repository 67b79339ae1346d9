package salons

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSalonNotFound      = "салон не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgSalonExists        = "у владельца уже есть салон"
	msgForbidden          = "доступ запрещён"
)

// Handler HTTP обработчики каталога салонов и их услуг
type Handler struct {
	service SalonService
	logger  Logger
}

func NewHandler(service SalonService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	caller, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
	}
	return caller, ok
}

func (h *Handler) salonID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("%s - Invalid salon ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return 0, false
	}
	return id, true
}

// respondError переводит ошибки сервиса салонов в HTTP ответ
func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, salons.ErrSalonNotFound):
		h.logger.Warn("%s - Salon not found", route)
		handlers.RespondNotFound(w, msgSalonNotFound)

	case errors.Is(err, salons.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found", route)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, salons.ErrSalonAlreadyExists):
		h.logger.Warn("%s - Salon already exists", route)
		handlers.RespondConflict(w, msgSalonExists)

	case errors.Is(err, salons.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, salons.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
