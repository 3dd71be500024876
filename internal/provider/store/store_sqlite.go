package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	txcontext "provider-registry/pkg/platform/tx"
)

//go:embed schema/sqlite.sql
var sqliteSchema string

// OpenSQLite opens or creates a SQLite database at path, applies pragmas and
// the registry schema.
//
// The connection pool is limited to one connection: SQLite allows a single
// writer and the registry already serializes writes.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return db, nil
}

// NewSQLiteStore returns a store that speaks the SQLite dialect.
func NewSQLiteStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		db:     db,
		runner: txcontext.NewRunner(db),
		q: queries{
			insertProvider: `INSERT INTO providers (provider_id, principal, full_name, specialty, npi_number, active, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			updateProvider: `UPDATE providers
				SET full_name = ?, specialty = ?, npi_number = ?, active = ?, updated_at = ?
				WHERE provider_id = ?`,
			selectProvider: `SELECT provider_id, principal, full_name, specialty, npi_number, active, created_at, updated_at
				FROM providers WHERE provider_id = ?`,
			upsertIndex: `INSERT INTO principal_index (principal, provider_id) VALUES (?, ?)
				ON CONFLICT (principal) DO UPDATE SET provider_id = excluded.provider_id`,
			selectIndex:    `SELECT provider_id FROM principal_index WHERE principal = ?`,
			existsProvider: `SELECT EXISTS (SELECT 1 FROM providers WHERE provider_id = ?)`,
			maxUpdatedAt:   `SELECT COALESCE(MAX(updated_at), 0) FROM providers`,
			countActive:    `SELECT COUNT(*) FROM providers WHERE active = 1`,
		},
		isUniqueViolation: isSQLiteUniqueViolation,
	}
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
