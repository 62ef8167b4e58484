package utils

import "github.com/google/uuid"

// UUIDGenerator hands out time-ordered ids for sessions and request traces.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, falling back to a random v4 if the clock
// source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// Valid reports whether id parses as a UUID. Incoming trace ids that fail
// the check are replaced.
func (g *UUIDGenerator) Valid(id string) bool {
	return uuid.Validate(id) == nil
}
