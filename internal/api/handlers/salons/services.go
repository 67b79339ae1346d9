package salons

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

// ListServices GET /api/v1/salons/{salonId}/services
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	const route = "GET /salons/{id}/services"

	salonID, ok := h.salonID(w, r, route)
	if !ok {
		return
	}

	result, err := h.service.ListServices(r.Context(), salonID)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Services)
}

// AddService POST /api/v1/salons/{salonId}/services
func (h *Handler) AddService(w http.ResponseWriter, r *http.Request) {
	const route = "POST /salons/{id}/services"

	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	salonID, ok := h.salonID(w, r, route)
	if !ok {
		return
	}

	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	service, err := h.service.AddService(r.Context(), caller, salonID, &req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Service added: salon_id=%d, service_id=%d", route, salonID, service.ID)
	handlers.RespondJSON(w, http.StatusCreated, service)
}

// UpdateService PATCH /api/v1/salons/{salonId}/services/{serviceId}
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /salons/{id}/services/{id}"

	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	salonID, ok := h.salonID(w, r, route)
	if !ok {
		return
	}
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	service, err := h.service.UpdateService(r.Context(), caller, salonID, serviceID, &req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, service)
}

// DeleteService DELETE /api/v1/salons/{salonId}/services/{serviceId}
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /salons/{id}/services/{id}"

	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	salonID, ok := h.salonID(w, r, route)
	if !ok {
		return
	}
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.DeleteService(r.Context(), caller, salonID, serviceID); err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Service deleted: salon_id=%d, service_id=%d", route, salonID, serviceID)
	handlers.RespondNoContent(w)
}
