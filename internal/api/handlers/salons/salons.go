package salons

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

// List GET /api/v1/salons?search=
// Только одобренные, активные и не приостановленные за долг салоны
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	result, err := h.service.ListBookable(r.Context(), search)
	if err != nil {
		h.respondError(w, "GET /salons", err)
		return
	}

	h.logger.Info("GET /salons - Salons listed: count=%d", len(result.Salons))
	handlers.RespondJSON(w, http.StatusOK, result.Salons)
}

// Get GET /api/v1/salons/{salonId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const route = "GET /salons/{id}"

	salonID, ok := h.salonID(w, r, route)
	if !ok {
		return
	}

	salon, err := h.service.Get(r.Context(), salonID)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, salon)
}

// Mine GET /api/v1/salons/mine
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	salon, err := h.service.GetMine(r.Context(), caller)
	if err != nil {
		h.respondError(w, "GET /salons/mine", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, salon)
}

// Create POST /api/v1/salons
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /salons"

	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.CreateSalonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	salon, err := h.service.Create(r.Context(), caller, &req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Salon created: salon_id=%d, owner_id=%d", route, salon.ID, caller.UserID)
	handlers.RespondJSON(w, http.StatusCreated, salon)
}

// Update PATCH /api/v1/salons/{salonId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /salons/{id}"

	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	salonID, ok := h.salonID(w, r, route)
	if !ok {
		return
	}

	var req models.UpdateSalonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	salon, err := h.service.Update(r.Context(), caller, salonID, &req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Salon updated: salon_id=%d, user_id=%d", route, salonID, caller.UserID)
	handlers.RespondJSON(w, http.StatusOK, salon)
}
