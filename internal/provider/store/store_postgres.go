package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/lib/pq"

	txcontext "provider-registry/pkg/platform/tx"
)

//go:embed schema/postgres.sql
var postgresSchema string

// WriterLockKey is the advisory lock taken by every registry write
// transaction on Postgres.
const WriterLockKey = 7_310_215_004

// WriterLockStatement serializes writers across processes sharing a database.
var WriterLockStatement = fmt.Sprintf("SELECT pg_advisory_xact_lock(%d)", WriterLockKey)

// NewPostgresStore returns a store that speaks the Postgres dialect.
func NewPostgresStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		db:     db,
		runner: txcontext.NewRunner(db),
		q: queries{
			insertProvider: `INSERT INTO providers (provider_id, principal, full_name, specialty, npi_number, active, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			updateProvider: `UPDATE providers
				SET full_name = $1, specialty = $2, npi_number = $3, active = $4, updated_at = $5
				WHERE provider_id = $6`,
			selectProvider: `SELECT provider_id, principal, full_name, specialty, npi_number, active, created_at, updated_at
				FROM providers WHERE provider_id = $1`,
			upsertIndex: `INSERT INTO principal_index (principal, provider_id) VALUES ($1, $2)
				ON CONFLICT (principal) DO UPDATE SET provider_id = EXCLUDED.provider_id`,
			selectIndex:    `SELECT provider_id FROM principal_index WHERE principal = $1`,
			existsProvider: `SELECT EXISTS (SELECT 1 FROM providers WHERE provider_id = $1)`,
			maxUpdatedAt:   `SELECT COALESCE(MAX(updated_at), 0) FROM providers`,
			countActive:    `SELECT COUNT(*) FROM providers WHERE active`,
		},
		isUniqueViolation: isPostgresUniqueViolation,
	}
}

// MigratePostgres applies the registry schema. Safe to run repeatedly.
func MigratePostgres(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("apply postgres schema: %w", err)
	}
	return nil
}

func isPostgresUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
