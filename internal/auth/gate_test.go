package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotelluxury/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

func TestGate_Require(t *testing.T) {
	tokens, _ := NewTokenManager(testSecret)
	valid, err := tokens.Issue(Identity{Email: "guest@example.com", Claims: map[string]any{"name": "Guest"}})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
		wantCalled bool
	}{
		{"no cookie", nil, http.StatusUnauthorized, false},
		{"empty cookie", &http.Cookie{Name: CookieName, Value: ""}, http.StatusUnauthorized, false},
		{"tampered cookie", &http.Cookie{Name: CookieName, Value: valid + "x"}, http.StatusUnauthorized, false},
		{"valid cookie", &http.Cookie{Name: CookieName, Value: valid}, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var seen *Identity
			next := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				called = true
				seen, _ = IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}

			gate := NewGate(tokens, logger.NewNop())
			req := httptest.NewRequest(http.MethodGet, "/booking/guest@example.com", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()

			gate.Require(next)(w, req, nil)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("downstream called = %v, want %v", called, tt.wantCalled)
			}
			if tt.wantCalled && (seen == nil || seen.Email != "guest@example.com") {
				t.Errorf("identity not attached to context: %+v", seen)
			}
			if tt.wantCalled {
				if name, _ := seen.Claim("name"); name != "Guest" {
					t.Errorf("name claim = %v, want Guest", name)
				}
			}
			if !tt.wantCalled && !strings.Contains(w.Body.String(), `"message":"unauthorized access"`) {
				t.Errorf("unexpected body %q", w.Body.String())
			}
		})
	}
}

func TestIdentityFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := IdentityFromContext(req.Context()); ok {
		t.Error("expected no identity on a bare context")
	}
}

func TestCookiePolicy(t *testing.T) {
	prod := NewCookiePolicy(true).Session("tok")
	if !prod.Secure || prod.SameSite != http.SameSiteNoneMode || !prod.HttpOnly {
		t.Errorf("production cookie attributes wrong: %+v", prod)
	}

	dev := NewCookiePolicy(false).Session("tok")
	if dev.Secure || dev.SameSite != http.SameSiteStrictMode || !dev.HttpOnly {
		t.Errorf("development cookie attributes wrong: %+v", dev)
	}
	if dev.MaxAge != 0 {
		t.Errorf("session cookie must not carry Max-Age, got %d", dev.MaxAge)
	}

	cleared := NewCookiePolicy(false).Cleared().String()
	if !strings.Contains(cleared, "Max-Age=0") {
		t.Errorf("cleared cookie should expire immediately, got %q", cleared)
	}
}
