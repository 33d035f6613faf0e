package validator

import (
	"errors"
	"testing"

	"hotelluxury/pkg/logger"
	"hotelluxury/pkg/model"
	"hotelluxury/pkg/validation"
)

func strPtr(s string) *string { return &s }

func TestValidate(t *testing.T) {
	v := NewBookingValidator(logger.NewNop())

	tests := []struct {
		name      string
		booking   model.Booking
		wantField string
	}{
		{"valid", model.Booking{Email: "a@x.com", RoomID: "r1"}, ""},
		{"local phone kept opaque", model.Booking{Email: "a@x.com", RoomID: "r1", Extra: map[string]any{"phone": "01712345678"}}, ""},
		{"missing email", model.Booking{RoomID: "r1"}, "email"},
		{"bad email", model.Booking{Email: "guest", RoomID: "r1"}, "email"},
		{"missing room", model.Booking{Email: "a@x.com"}, "roomId"},
		{"reserved extra", model.Booking{Email: "a@x.com", RoomID: "r1", Extra: map[string]any{"_id": "x"}}, "Extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.booking)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verrs validation.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if verrs[0].Field != tt.wantField {
				t.Errorf("field = %q, want %q", verrs[0].Field, tt.wantField)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	v := NewBookingValidator(logger.NewNop())

	tests := []struct {
		name    string
		update  model.BookingUpdate
		wantErr bool
	}{
		{"room only", model.BookingUpdate{RoomID: strPtr("r2")}, false},
		{"clear phone", model.BookingUpdate{Extra: map[string]any{"phone": ""}}, false},
		{"free-form phone", model.BookingUpdate{Extra: map[string]any{"phone": "N/A"}}, false},
		{"bad email", model.BookingUpdate{Email: strPtr("nope")}, true},
		{"empty room", model.BookingUpdate{RoomID: strPtr("")}, true},
		{"createdAt in extra", model.BookingUpdate{Extra: map[string]any{"createdAt": "x"}}, true},
		{"operator in extra", model.BookingUpdate{Extra: map[string]any{"$inc": 1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateUpdate(&tt.update)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUpdate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
