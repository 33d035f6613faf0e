package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jub0bs/fcors"
	"github.com/jub0bs/fcors/risky"
)

// CORS allows credentialed cross-origin requests from the listed origins only.
func CORS(origins []string) (func(http.Handler) http.Handler, error) {
	if len(origins) == 0 {
		return nil, fmt.Errorf("at least one CORS origin is required")
	}

	opts := []fcors.Option{
		fcors.FromOrigins(origins[0], origins[1:]...),
		fcors.WithMethods(http.MethodPatch, http.MethodDelete),
		fcors.WithRequestHeaders("Content-Type", DefaultIdempotencyHeader),
		fcors.ExposeResponseHeaders(RequestIDHeader),
	}
	if hasInsecureOrigin(origins) {
		// Local development front-ends are served over plain HTTP.
		opts = append(opts, risky.DangerouslyTolerateInsecureOrigins())
	}

	cors, err := fcors.AllowAccessWithCredentials(opts[0], opts[1:]...)
	if err != nil {
		return nil, fmt.Errorf("failed to build CORS middleware: %w", err)
	}
	return cors, nil
}

func hasInsecureOrigin(origins []string) bool {
	for _, origin := range origins {
		if strings.HasPrefix(origin, "http://") {
			return true
		}
	}
	return false
}
