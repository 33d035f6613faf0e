package handler

import (
	"encoding/json"
	"net/http"

	"hotelluxury/internal/auth"
	apperrors "hotelluxury/pkg/errors"
	httputil "hotelluxury/pkg/http"
	"hotelluxury/pkg/logger"
	"hotelluxury/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
)

type SessionHandler struct {
	tokens   auth.TokenIssuer
	cookies  auth.CookiePolicy
	validate *validator.Validate
	log      *logger.Logger
}

func NewSessionHandler(tokens auth.TokenIssuer, cookies auth.CookiePolicy, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		tokens:   tokens,
		cookies:  cookies,
		validate: validator.New(),
		log:      log,
	}
}

// Issue signs the posted identity and hands it back as the session cookie.
func (h *SessionHandler) Issue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var identity auth.Identity
	if err := json.NewDecoder(r.Body).Decode(&identity); err != nil {
		h.writeError(w, "Issue", apperrors.InvalidInput("Invalid request body"))
		return
	}
	identity.Email = sanitizer.NormalizeEmail(identity.Email)

	if err := h.validate.Struct(identity); err != nil {
		h.log.Warn("Session identity rejected", "error", err)
		h.writeError(w, "Issue", apperrors.InvalidInput("A valid email is required"))
		return
	}
	if len(identity.Claims) > auth.MaxIdentityClaims {
		h.writeError(w, "Issue", apperrors.InvalidInput("Too many identity attributes"))
		return
	}

	token, err := h.tokens.Issue(identity)
	if err != nil {
		h.log.Error("Failed to issue session token", "error", err)
		h.writeError(w, "Issue", apperrors.Internal("Failed to issue session", err))
		return
	}

	http.SetCookie(w, h.cookies.Session(token))
	h.log.Info("Session issued", "email", identity.Email)

	if err := httputil.WriteAck(w); err != nil {
		h.log.Error("failed to write ack response", "handler", "Issue", "operation", "WriteAck", "error", err)
	}
}

// Revoke always succeeds, whether or not a session existed.
func (h *SessionHandler) Revoke(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	http.SetCookie(w, h.cookies.Cleared())

	if err := httputil.WriteAck(w); err != nil {
		h.log.Error("failed to write ack response", "handler", "Revoke", "operation", "WriteAck", "error", err)
	}
}

func (h *SessionHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *SessionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/jwt", h.Issue)
	router.GET("/logout", h.Revoke)
}
