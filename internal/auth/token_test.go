package auth

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "a-very-long-test-secret"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	if _, err := NewTokenManager(""); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m, err := NewTokenManager(testSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := m.Issue(Identity{Email: "guest@example.com"})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	identity, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if identity.Email != "guest@example.com" {
		t.Errorf("email = %q, want guest@example.com", identity.Email)
	}
}

func TestTokenManager_RoundTripKeepsClaims(t *testing.T) {
	m, _ := NewTokenManager(testSecret)

	var posted Identity
	body := `{"email":"a@x.com","name":"Alice","tier":3,"exp":1,"iat":1}`
	if err := json.Unmarshal([]byte(body), &posted); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if _, ok := posted.Claim("exp"); ok {
		t.Fatal("registered claim names must not come from the posted identity")
	}

	token, err := m.Issue(posted)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	raw := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, raw, func(*jwt.Token) (any, error) { return []byte(testSecret), nil }); err != nil {
		t.Fatalf("ParseWithClaims() error: %v", err)
	}
	if raw["name"] != "Alice" || raw["email"] != "a@x.com" {
		t.Errorf("token payload %v is missing posted attributes", raw)
	}
	if exp, _ := raw["exp"].(float64); exp < float64(time.Now().Unix()) {
		t.Errorf("exp = %v, want the 30-day expiry", raw["exp"])
	}

	identity, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if identity.Email != "a@x.com" {
		t.Errorf("email = %q", identity.Email)
	}
	if name, _ := identity.Claim("name"); name != "Alice" {
		t.Errorf("name claim = %v, want Alice", name)
	}
	if tier, _ := identity.Claim("tier"); tier != float64(3) {
		t.Errorf("tier claim = %v, want 3", tier)
	}
	if _, ok := identity.Claim("iat"); ok {
		t.Error("registered claims must not leak into identity claims")
	}
}

func TestTokenManager_Expiry(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	base, _ := NewTokenManager(testSecret)

	token, err := base.WithClock(fixedClock(issued)).Issue(Identity{Email: "guest@example.com"})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr bool
	}{
		{"same day", issued.Add(time.Hour), false},
		{"day 29", issued.Add(29 * 24 * time.Hour), false},
		{"day 31", issued.Add(31 * 24 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := base.WithClock(fixedClock(tt.at)).Verify(token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestTokenManager_RejectsForeignTokens(t *testing.T) {
	m, _ := NewTokenManager(testSecret)
	other, _ := NewTokenManager("another-long-test-secret")

	foreign, err := other.Issue(Identity{Email: "guest@example.com"})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "guest@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "guest@example.com",
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}

	tests := map[string]string{
		"wrong secret":   foreign,
		"alg none":       unsigned,
		"missing expiry": noExpiry,
		"garbage":        "not-a-token",
		"empty":          "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := m.Verify(token); err == nil {
				t.Errorf("expected %s token to be rejected", name)
			}
		})
	}
}
