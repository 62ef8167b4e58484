package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-mapping-keeper/internal/config"
	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
	"github.com/MKhiriev/go-mapping-keeper/migrations"
)

// DB is an open mappings database together with what the repository needs
// to speak its dialect.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database named by cfg.DSN and applies pending
// migrations. postgres:// and postgresql:// URLs use the pgx driver, any
// other DSN is handed to SQLite.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	var (
		db  *DB
		err error
	)
	if isPostgresDSN(cfg.DSN) {
		db, err = NewConnectPostgres(ctx, cfg, log)
	} else {
		db, err = NewConnectSQLite(ctx, cfg, log)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate brings the schema up to date.
func (db *DB) Migrate() error {
	if err := migrations.Migrate(db.DB, db.dialect); err != nil {
		db.logger.Err(err).Str("func", "*DB.Migrate").Msg("error migrating database")
		return fmt.Errorf("migrate %s database: %w", db.dialect, err)
	}
	return nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
