//go:generate mockgen -source=interfaces.go -destination=../mock/mapping_store_mock.go -package=mock
package server

import (
	"context"

	"github.com/MKhiriev/go-mapping-keeper/internal/mapping"
)

// Server defines the common lifecycle contract for transport servers managed
// by this package.
//
// Implementations are expected to block in [RunServer] until shutdown is
// requested and to release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}

// MappingWriter persists the changes described by delta. tree is the state
// the delta leads to and is never mutated after the call starts.
type MappingWriter interface {
	Save(ctx context.Context, tree mapping.Tree, delta mapping.Delta) error
}

// MappingReader loads the last persisted mappings.
type MappingReader interface {
	Load(ctx context.Context) (*mapping.HashTree, error)
}
