package salons

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

// SetStatusRequest тело запроса модерации
type SetStatusRequest struct {
	Status string `json:"status"`
}

// SetPriorityRequest тело запроса приоритета. null сбрасывает приоритет.
type SetPriorityRequest struct {
	Priority *int `json:"priority"`
}

// ListAll GET /api/v1/admin/salons?search=
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListAll(r.Context(), caller, r.URL.Query().Get("search"))
	if err != nil {
		h.respondError(w, "GET /admin/salons", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Salons)
}

// SetStatus PATCH /api/v1/admin/salons/{salonId}/status
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /admin/salons/{id}/status"

	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	salonID, ok := h.salonID(w, r, route)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	salon, err := h.service.SetStatus(r.Context(), caller, salonID, req.Status)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Salon status changed: salon_id=%d, status=%s", route, salonID, salon.Status)
	handlers.RespondJSON(w, http.StatusOK, salon)
}

// SetPriority PATCH /api/v1/admin/salons/{salonId}/priority
func (h *Handler) SetPriority(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /admin/salons/{id}/priority"

	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	salonID, ok := h.salonID(w, r, route)
	if !ok {
		return
	}

	var req SetPriorityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	salon, err := h.service.SetPriority(r.Context(), caller, salonID, req.Priority)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, salon)
}

// Delete DELETE /api/v1/admin/salons/{salonId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/salons/{id}"

	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	salonID, ok := h.salonID(w, r, route)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), caller, salonID); err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Salon deleted: salon_id=%d", route, salonID)
	handlers.RespondNoContent(w)
}
