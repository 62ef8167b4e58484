// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-mapping-keeper/internal/codec"
	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
	"github.com/MKhiriev/go-mapping-keeper/internal/mapping"
	"github.com/MKhiriev/go-mapping-keeper/models"
)

// mappingRepository is the SQL implementation of [MappingRepository]. Each
// mapped entry is one row keyed by its string form; the entry itself is
// stored as a codec blob so it can be rebuilt with its parent chain.
type mappingRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewMappingRepository constructs a [MappingRepository] over db.
func NewMappingRepository(db *DB, log *logger.Logger) MappingRepository {
	log.Debug().Msg("creating mapping repository")
	return &mappingRepository{
		db:     db,
		logger: log,
	}
}

// Load reads the whole mappings table.
func (r *mappingRepository) Load(ctx context.Context) (*mapping.HashTree, error) {
	query, args, err := buildSelectMappingsQuery(r.db.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "*mappingRepository.Load").Msg("error selecting mappings")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tree := mapping.NewHashTree()
	for rows.Next() {
		var (
			blob   []byte
			target string
			access int
			doc    string
		)
		if err = rows.Scan(&blob, &target, &access, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		entry, err := codec.UnmarshalEntry(blob)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptedEntry, err)
		}
		tree.Insert(entry, models.Mapping{
			TargetName: target,
			Access:     models.AccessModifier(access),
			Doc:        doc,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	r.logger.Info().Int("mappings", tree.Len()).Msg("mappings loaded")
	return tree, nil
}

// Save upserts changed entries that still hold a mapping and deletes the
// rest, in one transaction. A transient failure is retried once.
func (r *mappingRepository) Save(ctx context.Context, tree mapping.Tree, delta mapping.Delta) error {
	if delta.IsEmpty() {
		return nil
	}

	upserts, deletes, err := splitUpdates(delta.Updates(tree))
	if err != nil {
		return err
	}

	err = r.save(ctx, upserts, deletes)
	if err != nil && r.db.errorClassificator.Classify(err) == Retryable {
		r.logger.Warn().Err(err).Msg("retrying mapping save")
		err = r.save(ctx, upserts, deletes)
	}
	if err != nil {
		return err
	}

	r.logger.Debug().Int("upserted", len(upserts)).Int("deleted", len(deletes)).Msg("mappings saved")
	return nil
}

func splitUpdates(updates []mapping.Update) (upserts []mappingRow, deletes []string, err error) {
	for _, u := range updates {
		key := u.Entry.String()
		if u.Removed {
			deletes = append(deletes, key)
			continue
		}

		blob, err := codec.MarshalEntry(u.Entry)
		if err != nil {
			return nil, nil, err
		}
		upserts = append(upserts, mappingRow{
			key:        key,
			entry:      blob,
			targetName: u.Mapping.TargetName,
			access:     int(u.Mapping.Access),
			doc:        u.Mapping.Doc,
		})
	}
	return upserts, deletes, nil
}

func (r *mappingRepository) save(ctx context.Context, upserts []mappingRow, deletes []string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				r.logger.Err(rbErr).Str("func", "*mappingRepository.save").Msg("rollback failed")
			}
		}
	}()

	for _, row := range upserts {
		query, args, err := buildUpsertMappingQuery(r.db.builder, row)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: upsert %s: %w", ErrExecutingStatement, row.key, err)
		}
	}

	if len(deletes) > 0 {
		query, args, err := buildDeleteMappingsQuery(r.db.builder, deletes)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: delete: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}
