package validation

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Email string         `json:"email" validate:"required,email"`
	Extra map[string]any `json:"-" validate:"omitempty,extra_keys"`
}

func TestNew_ExtraKeys(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	tests := []struct {
		name    string
		extra   map[string]any
		wantErr bool
	}{
		{"no extra", nil, false},
		{"plain keys", map[string]any{"date": "2024-06-01", "price": 120}, false},
		{"reserved id", map[string]any{"_id": "x"}, true},
		{"reserved createdAt", map[string]any{"createdAt": "x"}, true},
		{"operator key", map[string]any{"$set": map[string]any{}}, true},
		{"dotted key", map[string]any{"a.b": 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(sample{Email: "a@x.com", Extra: tt.extra})
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_TooManyExtraKeys(t *testing.T) {
	v, _ := New()
	extra := make(map[string]any)
	for i := 0; i < 65; i++ {
		extra["k"+strings.Repeat("x", i)] = i
	}
	if err := v.Struct(sample{Email: "a@x.com", Extra: extra}); err == nil {
		t.Error("expected too many attributes to be rejected")
	}
}

func TestTranslate(t *testing.T) {
	v, _ := New()

	err := Translate(v.Struct(sample{Email: "nope"}))
	var verrs ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) != 1 {
		t.Fatalf("expected one ValidationError, got %v", err)
	}
	if verrs[0].Field != "email" || verrs[0].Message != "email must be a valid email address" {
		t.Errorf("unexpected translation %+v", verrs[0])
	}
	if _, ok := verrs.Details()["errors"]; !ok {
		t.Error("Details() must carry the error list")
	}

	plain := errors.New("not a validator error")
	if Translate(plain) != plain {
		t.Error("non-validator errors must pass through unchanged")
	}
}
