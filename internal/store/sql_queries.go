package store

import (
	sq "github.com/Masterminds/squirrel"
)

const mappingsTable = "mappings"

// upsertSuffix works for both PostgreSQL and SQLite 3.24+.
const upsertSuffix = `ON CONFLICT (entry_key) DO UPDATE SET
	entry = excluded.entry,
	target_name = excluded.target_name,
	access = excluded.access,
	doc = excluded.doc,
	updated_at = CURRENT_TIMESTAMP`

type mappingRow struct {
	key        string
	entry      []byte
	targetName string
	access     int
	doc        string
}

func buildSelectMappingsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.
		Select("entry", "target_name", "access", "doc").
		From(mappingsTable).
		OrderBy("entry_key").
		ToSql()
}

func buildUpsertMappingQuery(b sq.StatementBuilderType, row mappingRow) (string, []any, error) {
	return b.
		Insert(mappingsTable).
		Columns("entry_key", "entry", "target_name", "access", "doc").
		Values(row.key, row.entry, row.targetName, row.access, row.doc).
		Suffix(upsertSuffix).
		ToSql()
}

func buildDeleteMappingsQuery(b sq.StatementBuilderType, keys []string) (string, []any, error) {
	return b.
		Delete(mappingsTable).
		Where(sq.Eq{"entry_key": keys}).
		ToSql()
}
