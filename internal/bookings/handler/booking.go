package handler

import (
	"encoding/json"
	"net/http"

	"hotelluxury/internal/auth"
	"hotelluxury/internal/bookings/service"
	apperrors "hotelluxury/pkg/errors"
	httputil "hotelluxury/pkg/http"
	"hotelluxury/pkg/logger"
	"hotelluxury/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service       service.BookingService
	requireAuth   auth.RouteGuard
	mutationGuard auth.RouteGuard
	log           *logger.Logger
}

// NewBookingHandler wires the booking routes. requireAuth guards the owner
// listing; mutationGuard guards update and delete and may be auth.Open.
func NewBookingHandler(service service.BookingService, requireAuth auth.RouteGuard, mutationGuard auth.RouteGuard, log *logger.Logger) *BookingHandler {
	if mutationGuard == nil {
		mutationGuard = auth.Open
	}
	return &BookingHandler{
		service:       service,
		requireAuth:   requireAuth,
		mutationGuard: mutationGuard,
		log:           log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	result, err := h.service.Create(r.Context(), &booking)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ListByEmail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	bookings, err := h.service.ListByEmail(r.Context(), ps.ByName("email"), identity)
	if err != nil {
		h.writeError(w, "ListByEmail", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByEmail", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.BookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "Update", apperrors.InvalidInput("Invalid request body"))
		return
	}

	identity, _ := auth.IdentityFromContext(r.Context())
	result, err := h.service.Update(r.Context(), ps.ByName("id"), &update, identity)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	result, err := h.service.Delete(r.Context(), ps.ByName("id"), identity)
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/booking", h.Create)
	router.GET("/booking/:email", h.requireAuth(h.ListByEmail))
	router.PATCH("/bookings/:id", h.mutationGuard(h.Update))
	router.DELETE("/bookings/:id", h.mutationGuard(h.Delete))
}
