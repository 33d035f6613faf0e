package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

const DefaultIdempotencyHeader = "Idempotency-Key"

type IdempotencyStore interface {
	Get(key string) (*CachedResponse, bool)
	Set(key string, response *CachedResponse)
	Stop() // Stop cleanup goroutines and release resources
}

type CachedResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	CreatedAt  time.Time
}

// TTLIdempotencyStore keeps replayable responses in a ttlcache that evicts
// expired entries in the background.
type TTLIdempotencyStore struct {
	cache *ttlcache.Cache[string, *CachedResponse]
}

func NewTTLIdempotencyStore(ttl time.Duration) *TTLIdempotencyStore {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, *CachedResponse](ttl),
		ttlcache.WithDisableTouchOnHit[string, *CachedResponse](),
	)
	go cache.Start()

	return &TTLIdempotencyStore{cache: cache}
}

func (s *TTLIdempotencyStore) Get(key string) (*CachedResponse, bool) {
	item := s.cache.Get(key)
	if item == nil || item.IsExpired() {
		return nil, false
	}
	return item.Value(), true
}

func (s *TTLIdempotencyStore) Set(key string, response *CachedResponse) {
	response.CreatedAt = time.Now()
	s.cache.Set(key, response, ttlcache.DefaultTTL)
}

func (s *TTLIdempotencyStore) Stop() {
	s.cache.Stop()
}

type responseCapture struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (rc *responseCapture) WriteHeader(statusCode int) {
	rc.statusCode = statusCode
	rc.ResponseWriter.WriteHeader(statusCode)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	rc.body.Write(b)
	return rc.ResponseWriter.Write(b)
}

// Idempotency replays the first 2xx response seen for a key on POST, PUT,
// PATCH and DELETE. Keys are scoped to method, path and the values of
// scopeCookies, so a key only replays for the session that created it.
// Responses that set cookies are never stored.
func Idempotency(store IdempotencyStore, headerName string, scopeCookies ...string) func(http.Handler) http.Handler {
	if headerName == "" {
		headerName = DefaultIdempotencyHeader
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(headerName)
			if key == "" || !isReplayableMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			scoped := scopedKey(r, key, scopeCookies)

			if cached, found := store.Get(scoped); found {
				replayCachedResponse(w, cached)
				return
			}

			capture := &responseCapture{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				body:           &bytes.Buffer{},
			}
			next.ServeHTTP(capture, r)

			if shouldCacheResponse(capture.statusCode, w.Header()) {
				store.Set(scoped, &CachedResponse{
					StatusCode: capture.statusCode,
					Headers:    w.Header().Clone(),
					Body:       capture.body.Bytes(),
				})
			}
		})
	}
}

func isReplayableMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// scopedKey hashes the scope cookies so session tokens never sit in the store.
func scopedKey(r *http.Request, key string, scopeCookies []string) string {
	parts := []string{r.Method, r.URL.Path, key}
	if len(scopeCookies) > 0 {
		h := sha256.New()
		for _, name := range scopeCookies {
			if c, err := r.Cookie(name); err == nil {
				h.Write([]byte(c.Value))
			}
			h.Write([]byte{0})
		}
		parts = append(parts, hex.EncodeToString(h.Sum(nil)))
	}
	return strings.Join(parts, " ")
}

func replayCachedResponse(w http.ResponseWriter, cached *CachedResponse) {
	for key, values := range cached.Headers {
		if key == RequestIDHeader {
			continue
		}
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.Header().Set("Idempotent-Replayed", "true")
	w.WriteHeader(cached.StatusCode)
	_, _ = w.Write(cached.Body)
}

func shouldCacheResponse(statusCode int, headers http.Header) bool {
	if len(headers.Values("Set-Cookie")) > 0 {
		return false
	}
	return statusCode >= 200 && statusCode < 300
}
