// Package store persists the authoritative mapping tree in SQL.
//
// SQLite (mattn/go-sqlite3) is the default backend; a postgres:// DSN
// switches to PostgreSQL through pgx. The schema is managed by goose
// migrations and queries are built with squirrel so the same repository
// serves both dialects.
package store
