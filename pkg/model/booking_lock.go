package model

import "time"

// BookingLock is an advisory lock document. Its _id is derived from the
// (email, roomId) pair so a concurrent second insert fails on the unique _id.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
