package model

import "encoding/json"

// Room is created out-of-band. Only PriceRange and Status are interpreted;
// every other attribute is carried through Extra untouched.
type Room struct {
	ID         string         `json:"_id,omitempty" bson:"_id,omitempty"`
	PriceRange string         `json:"price_range,omitempty" bson:"price_range,omitempty"`
	Status     string         `json:"status,omitempty" bson:"status,omitempty"`
	Extra      map[string]any `json:"-" bson:",inline"`
}

var roomKnownKeys = []string{"_id", "price_range", "status"}

type roomFields Room

func (r Room) MarshalJSON() ([]byte, error) {
	return mergeExtra(roomFields(r), r.Extra)
}

func (r *Room) UnmarshalJSON(data []byte) error {
	var fields roomFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := splitExtra(data, roomKnownKeys...)
	if err != nil {
		return err
	}
	*r = Room(fields)
	r.Extra = extra
	return nil
}

// RoomStatusUpdate is the only shape accepted by the status endpoint.
type RoomStatusUpdate struct {
	Status string `json:"status" validate:"required,min=1,max=64"`
}
