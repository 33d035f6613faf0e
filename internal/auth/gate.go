package auth

import (
	"net/http"

	apperrors "hotelluxury/pkg/errors"
	httputil "hotelluxury/pkg/http"
	"hotelluxury/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

const UnauthorizedMessage = "unauthorized access"

// RouteGuard wraps a route handle. Gate.Require is one; Open is the other.
type RouteGuard func(next httprouter.Handle) httprouter.Handle

// Open lets every request through.
func Open(next httprouter.Handle) httprouter.Handle {
	return next
}

// Gate proves who the caller is. It does not check resource ownership;
// handlers compare the identity with the resource owner themselves.
type Gate struct {
	tokens TokenVerifier
	log    *logger.Logger
}

func NewGate(tokens TokenVerifier, log *logger.Logger) *Gate {
	return &Gate{
		tokens: tokens,
		log:    log,
	}
}

func (g *Gate) Require(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			g.reject(w, r, ErrMissingToken)
			return
		}

		identity, err := g.tokens.Verify(cookie.Value)
		if err != nil {
			g.reject(w, r, err)
			return
		}

		next(w, r.WithContext(WithIdentity(r.Context(), identity)), ps)
	}
}

func (g *Gate) reject(w http.ResponseWriter, r *http.Request, cause error) {
	g.log.Warn("Request rejected by auth gate",
		"method", r.Method,
		"path", r.URL.Path,
		"reason", cause.Error(),
	)
	if err := httputil.WriteError(w, apperrors.Unauthorized(UnauthorizedMessage)); err != nil {
		g.log.Error("failed to write error response", "handler", "Gate", "operation", "WriteError", "error", err)
	}
}
