package state

import "errors"

// Sentinel errors returned by the facade. Match with errors.Is.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrUsernameTaken   = errors.New("username taken")
	ErrUnauthorized    = errors.New("unauthorized")
)
