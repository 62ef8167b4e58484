package store

import (
	"context"

	"github.com/MKhiriev/go-mapping-keeper/internal/mapping"
)

// MappingRepository persists the authoritative mapping tree.
type MappingRepository interface {
	// Load reads every stored mapping into a new tree.
	Load(ctx context.Context) (*mapping.HashTree, error)

	// Save writes the entries listed in delta, taking their values from
	// tree. Entries absent from tree are deleted. The write is atomic.
	Save(ctx context.Context, tree mapping.Tree, delta mapping.Delta) error
}

// ErrorClassificator decides whether a database error is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
