package http

import (
	"context"

	"github.com/MKhiriev/go-mapping-keeper/internal/server"
)

//go:generate mockgen -source=interfaces.go -destination=mapping_admin_mock_test.go -package=http

// MappingAdmin is the part of the mapping server the admin API drives.
type MappingAdmin interface {
	Status(ctx context.Context) (server.Status, error)
	Save(ctx context.Context) error
	KickUser(ctx context.Context, username string) error
}
