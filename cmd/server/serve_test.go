package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provider-registry/internal/platform/config"
	"provider-registry/internal/provider/models"
	"provider-registry/internal/provider/service"
	dErrors "provider-registry/pkg/domain-errors"
	txcontext "provider-registry/pkg/platform/tx"
)

func TestOpenBackendMemory(t *testing.T) {
	be, err := openBackend(context.Background(), config.Config{Storage: config.Storage{Driver: config.DriverMemory}})
	require.NoError(t, err)

	assert.Nil(t, be.db)
	assert.Nil(t, be.tx)
	assert.Empty(t, be.health)
	assert.False(t, be.transactionalAudit, "in-memory audit log cannot join a transaction")
}

func TestOpenBackendSQLiteResumesClock(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{
		Server:  config.Server{TxTimeout: time.Second},
		Storage: config.Storage{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "registry.db")},
	}
	profile := models.Profile{FullName: "Dr. Jane Smith", Specialty: "Cardiology", NPINumber: "1234567890"}

	be, err := openBackend(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, be.transactionalAudit)
	svc, err := service.New(be.store, be.clock, service.WithTx(be.tx))
	require.NoError(t, err)
	_, err = svc.RegisterProvider(ctx, "alice", "provider-1", profile)
	require.NoError(t, err)
	_, err = svc.DeactivateProvider(ctx, "alice", "provider-1")
	require.NoError(t, err)
	require.NoError(t, be.db.Close())

	be, err = openBackend(ctx, cfg)
	require.NoError(t, err)
	defer be.db.Close()
	svc, err = service.New(be.store, be.clock, service.WithTx(be.tx))
	require.NoError(t, err)

	_, err = svc.ReactivateProvider(ctx, "alice", "provider-1")
	require.NoError(t, err)
	p, err := svc.GetProvider(ctx, "provider-1")
	require.NoError(t, err)
	assert.True(t, p.Active)
	assert.Equal(t, int64(3), p.UpdatedAt, "clock resumes after the last persisted mutation")

	active, err := be.store.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), active, "active count is read from the store, not process history")
}

func TestSQLStoreTx(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{Storage: config.Storage{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "tx.db")}}
	be, err := openBackend(ctx, cfg)
	require.NoError(t, err)
	defer be.db.Close()
	tx := newSQLStoreTx(txcontext.NewRunner(be.db), 50*time.Millisecond)

	t.Run("cancelled context never starts", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		called := false
		err := tx.RunInTx(cancelled, func(context.Context) error {
			called = true
			return nil
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
		assert.False(t, called)
	})

	t.Run("default deadline is applied", func(t *testing.T) {
		err := tx.RunInTx(ctx, func(txCtx context.Context) error {
			_, ok := txCtx.Deadline()
			assert.True(t, ok)
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("expired deadline maps to timeout", func(t *testing.T) {
		err := tx.RunInTx(ctx, func(txCtx context.Context) error {
			<-txCtx.Done()
			return txCtx.Err()
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	})

	t.Run("domain errors pass through", func(t *testing.T) {
		forbidden := dErrors.New(dErrors.CodeForbidden, "not the owner")
		err := tx.RunInTx(ctx, func(context.Context) error { return forbidden })
		assert.True(t, errors.Is(err, forbidden))
	})
}
