package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"provider-registry/internal/provider/models"
	id "provider-registry/pkg/domain"
	txcontext "provider-registry/pkg/platform/tx"
)

// queries holds the dialect specific statements for SQLStore.
type queries struct {
	insertProvider string
	updateProvider string
	selectProvider string
	upsertIndex    string
	selectIndex    string
	existsProvider string
	maxUpdatedAt   string
	countActive    string
}

// SQLStore persists providers in a relational database. Writes that touch
// both tables run in the transaction carried by ctx, or in their own when
// ctx carries none.
type SQLStore struct {
	db                *sql.DB
	q                 queries
	runner            *txcontext.Runner
	isUniqueViolation func(error) bool
}

// Create inserts the provider and points the owner's index entry at it.
func (s *SQLStore) Create(ctx context.Context, provider *models.Provider) error {
	return s.runner.RunInTx(ctx, func(txCtx context.Context) error {
		exec := txcontext.Exec(txCtx, s.db)
		_, err := exec.ExecContext(txCtx, s.q.insertProvider,
			provider.ID.String(),
			provider.Owner.String(),
			provider.FullName,
			provider.Specialty,
			provider.NPINumber,
			provider.Active,
			provider.CreatedAt,
			provider.UpdatedAt,
		)
		if err != nil {
			if s.isUniqueViolation(err) {
				return ErrAlreadyExists
			}
			return fmt.Errorf("insert provider: %w", err)
		}
		if _, err := exec.ExecContext(txCtx, s.q.upsertIndex, provider.Owner.String(), provider.ID.String()); err != nil {
			return fmt.Errorf("upsert principal index: %w", err)
		}
		return nil
	})
}

// Update overwrites the mutable columns of an existing provider.
func (s *SQLStore) Update(ctx context.Context, provider *models.Provider) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, s.q.updateProvider,
		provider.FullName,
		provider.Specialty,
		provider.NPINumber,
		provider.Active,
		provider.UpdatedAt,
		provider.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update provider: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update provider rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) FindByID(ctx context.Context, providerID id.ProviderID) (*models.Provider, error) {
	var (
		p        models.Provider
		rawID    string
		rawOwner string
	)
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, s.q.selectProvider, providerID.String()).Scan(
		&rawID,
		&rawOwner,
		&p.FullName,
		&p.Specialty,
		&p.NPINumber,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find provider: %w", err)
	}
	p.ID = id.ProviderID(rawID)
	p.Owner = id.Principal(rawOwner)
	return &p, nil
}

func (s *SQLStore) FindIDByPrincipal(ctx context.Context, principal id.Principal) (id.ProviderID, error) {
	var providerID string
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, s.q.selectIndex, principal.String()).Scan(&providerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("find principal index: %w", err)
	}
	return id.ProviderID(providerID), nil
}

func (s *SQLStore) Exists(ctx context.Context, providerID id.ProviderID) (bool, error) {
	var exists bool
	if err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, s.q.existsProvider, providerID.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("check provider: %w", err)
	}
	return exists, nil
}

// CountActive returns the number of providers whose status is active.
func (s *SQLStore) CountActive(ctx context.Context) (int64, error) {
	var n int64
	if err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, s.q.countActive).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active providers: %w", err)
	}
	return n, nil
}

// MaxLogicalTime returns the largest updated_at stored, or 0 when empty.
func (s *SQLStore) MaxLogicalTime(ctx context.Context) (int64, error) {
	var maxTime int64
	if err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, s.q.maxUpdatedAt).Scan(&maxTime); err != nil {
		return 0, fmt.Errorf("max logical time: %w", err)
	}
	return maxTime, nil
}
