package models

import "errors"

var (
	// ErrInvalidEntry is returned by ParseEntry for malformed entry strings.
	ErrInvalidEntry = errors.New("invalid entry")
)
