package adapter

import "errors"

var (
	ErrStatusDisabled      = errors.New("no status url configured")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrUnavailable         = errors.New("server unavailable")
	ErrInternalServerError = errors.New("internal server error")
)
