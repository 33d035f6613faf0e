package handler

import (
	"encoding/json"
	"net/http"

	"hotelluxury/internal/auth"
	"hotelluxury/internal/rooms/service"
	apperrors "hotelluxury/pkg/errors"
	httputil "hotelluxury/pkg/http"
	"hotelluxury/pkg/logger"
	"hotelluxury/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RoomHandler struct {
	service       service.RoomService
	mutationGuard auth.RouteGuard
	log           *logger.Logger
}

func NewRoomHandler(service service.RoomService, mutationGuard auth.RouteGuard, log *logger.Logger) *RoomHandler {
	if mutationGuard == nil {
		mutationGuard = auth.Open
	}
	return &RoomHandler{
		service:       service,
		mutationGuard: mutationGuard,
		log:           log,
	}
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.List(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

// UpdateStatus accepts exactly {"status": ...}; any other field is rejected.
func (h *RoomHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.RoomStatusUpdate
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&update); err != nil {
		h.writeError(w, "UpdateStatus", apperrors.InvalidInput("Invalid request body: only 'status' may be set"))
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/all-rooms", h.List)
	router.GET("/all-rooms/:id", h.GetByID)
	router.PATCH("/status/:id", h.mutationGuard(h.UpdateStatus))
}
