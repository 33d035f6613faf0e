package model

import (
	"encoding/json"
	"time"
)

// Booking is owned by Email. Opaque booking details (dates, price, phone,
// room name...) travel in Extra and are stored as top-level document fields
// exactly as sent.
type Booking struct {
	ID        string         `json:"_id,omitempty" bson:"_id,omitempty"`
	Email     string         `json:"email" bson:"email" validate:"required,email"`
	RoomID    string         `json:"roomId" bson:"roomId" validate:"required,max=64"`
	CreatedAt *time.Time     `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	Extra     map[string]any `json:"-" bson:",inline" validate:"omitempty,max=64,extra_keys"`
}

var bookingKnownKeys = []string{"_id", "email", "roomId", "createdAt"}

type bookingFields Booking

func (b Booking) MarshalJSON() ([]byte, error) {
	return mergeExtra(bookingFields(b), b.Extra)
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	var fields bookingFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := splitExtra(data, bookingKnownKeys...)
	if err != nil {
		return err
	}
	*b = Booking(fields)
	b.Extra = extra
	return nil
}

// BookingUpdate carries a partial replacement. Nil fields are left alone;
// email and roomId cannot be blanked.
// Reserved keys (_id, createdAt) land in Extra and are rejected by validation.
type BookingUpdate struct {
	Email  *string        `json:"email,omitempty" validate:"omitnil,email"`
	RoomID *string        `json:"roomId,omitempty" validate:"omitnil,min=1,max=64"`
	Extra  map[string]any `json:"-" validate:"omitempty,max=64,extra_keys"`
}

var bookingUpdateKnownKeys = []string{"email", "roomId"}

type bookingUpdateFields BookingUpdate

func (u *BookingUpdate) UnmarshalJSON(data []byte) error {
	var fields bookingUpdateFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := splitExtra(data, bookingUpdateKnownKeys...)
	if err != nil {
		return err
	}
	*u = BookingUpdate(fields)
	u.Extra = extra
	return nil
}

func (u *BookingUpdate) IsEmpty() bool {
	return u.Email == nil && u.RoomID == nil && len(u.Extra) == 0
}
