package model

import (
	"encoding/json"
	"testing"
)

func TestBooking_UnmarshalJSON_CollectsExtra(t *testing.T) {
	body := `{"email":"a@x.com","roomId":"r1","date":"2024-06-01","price":120,"roomName":"Deluxe"}`

	var b Booking
	if err := json.Unmarshal([]byte(body), &b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Email != "a@x.com" || b.RoomID != "r1" {
		t.Errorf("known fields not decoded: %+v", b)
	}
	if len(b.Extra) != 3 {
		t.Fatalf("expected 3 extra attributes, got %d: %v", len(b.Extra), b.Extra)
	}
	if b.Extra["roomName"] != "Deluxe" {
		t.Errorf("expected roomName to be carried, got %v", b.Extra["roomName"])
	}
	if _, ok := b.Extra["email"]; ok {
		t.Errorf("known keys must not leak into Extra")
	}
}

func TestBooking_MarshalJSON_InlinesExtra(t *testing.T) {
	b := Booking{
		ID:     "65f000000000000000000001",
		Email:  "a@x.com",
		RoomID: "r1",
		Extra:  map[string]any{"date": "2024-06-01", "email": "spoofed@x.com"},
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["_id"] != "65f000000000000000000001" {
		t.Errorf("expected _id in output, got %v", out["_id"])
	}
	if out["date"] != "2024-06-01" {
		t.Errorf("expected extra attribute inlined, got %v", out["date"])
	}
	if out["email"] != "a@x.com" {
		t.Errorf("known field must win over extra, got %v", out["email"])
	}
	if _, ok := out["createdAt"]; ok {
		t.Errorf("nil createdAt must be omitted")
	}
}

func TestBookingUpdate_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"empty object", `{}`, true},
		{"named field", `{"roomId":"r2"}`, false},
		{"extra only", `{"date":"2024-07-01"}`, false},
		{"reserved key goes to extra", `{"_id":"x"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u BookingUpdate
			if err := json.Unmarshal([]byte(tt.body), &u); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := u.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoom_JSONKeepsDescriptiveAttributes(t *testing.T) {
	body := `{"_id":"65f000000000000000000002","price_range":"100-200","status":"available","title":"Ocean View","images":["a.jpg"]}`

	var r Room
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.PriceRange != "100-200" || r.Status != "available" {
		t.Errorf("known fields not decoded: %+v", r)
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out map[string]any
	_ = json.Unmarshal(data, &out)
	if out["title"] != "Ocean View" {
		t.Errorf("expected title to survive, got %v", out["title"])
	}
	if imgs, ok := out["images"].([]any); !ok || len(imgs) != 1 {
		t.Errorf("expected images array to survive, got %v", out["images"])
	}
}

func TestIsSafeAttributeKey(t *testing.T) {
	tests := map[string]bool{
		"date":       true,
		"":           false,
		"$set":       false,
		"a.b":        false,
		"check_in":   true,
		"$where":     false,
		"guestCount": true,
	}
	for key, want := range tests {
		if got := IsSafeAttributeKey(key); got != want {
			t.Errorf("IsSafeAttributeKey(%q) = %v, want %v", key, got, want)
		}
	}
}
