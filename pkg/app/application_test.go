package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotelluxury/pkg/client"
	"hotelluxury/pkg/config"
	"hotelluxury/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type echoHandler struct{}

func (echoHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/echo", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	router.GET("/panic", func(http.ResponseWriter, *http.Request, httprouter.Params) {
		panic("boom")
	})
}

func newTestApplication(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Port:            "0",
		CORSOrigins:     []string{"http://localhost:5173"},
		RequestTimeout:  time.Second,
		IdempotencyTTL:  time.Minute,
		MaxRequestSize:  1024,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
		Log:             logger.NewNop(),
		Client:          client.NewClient(),
	}

	a := NewApplication(cfg)
	if err := a.SetApp(echoHandler{}); err != nil {
		t.Fatalf("SetApp() error: %v", err)
	}
	t.Cleanup(a.idempotencyStore.Stop)
	return a.Handler()
}

func TestApplication_Routes(t *testing.T) {
	h := newTestApplication(t)

	tests := []struct {
		name        string
		method      string
		path        string
		contentType string
		body        string
		wantStatus  int
		wantBody    string
	}{
		{"liveness", http.MethodGet, "/", "", "", http.StatusOK, "Hotel Luxury is running"},
		{"health", http.MethodGet, "/health", "", "", http.StatusOK, `"status":"ok"`},
		{"json post", http.MethodPost, "/echo", "application/json", `{}`, http.StatusOK, `"ok":true`},
		{"wrong content type", http.MethodPost, "/echo", "text/plain", `{}`, http.StatusUnsupportedMediaType, ""},
		{"panic is recovered", http.MethodGet, "/panic", "", "", http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unknown route", http.MethodGet, "/nowhere", "", "", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", w.Body.String(), tt.wantBody)
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Error("expected X-Request-ID on every response")
			}
		})
	}
}

func TestApplication_MetricsExposeHTTPRequests(t *testing.T) {
	h := newTestApplication(t)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `hotel_http_requests_total{code="200",method="get"} 1`) {
		t.Errorf("expected request counter in metrics output")
	}
}

func TestApplication_CORSPreflight(t *testing.T) {
	h := newTestApplication(t)

	req := httptest.NewRequest(http.MethodOptions, "/echo", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Access-Control-Allow-Credentials = %q, want true", got)
	}
}
