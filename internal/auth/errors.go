package auth

import "errors"

var (
	ErrMissingToken = errors.New("session token missing")

	ErrInvalidToken = errors.New("session token invalid or expired")

	ErrEmptySecret = errors.New("signing secret cannot be empty")
)
