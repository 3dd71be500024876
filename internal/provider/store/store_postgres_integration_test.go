//go:build integration

package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"provider-registry/internal/provider/clock"
	txcontext "provider-registry/pkg/platform/tx"
	"provider-registry/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	contractSuite
	postgres *containers.PostgresContainer
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	s := new(PostgresStoreSuite)
	s.newStore = func() providerStore {
		s.Require().NoError(s.postgres.TruncateTables(context.Background(), "principal_index", "providers", "audit_outbox"))
		return NewPostgresStore(s.postgres.DB)
	}
	suite.Run(t, s)
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.Require().NoError(MigratePostgres(context.Background(), s.postgres.DB))
}

func (s *PostgresStoreSuite) TestMigrateIsIdempotent() {
	s.Require().NoError(MigratePostgres(context.Background(), s.postgres.DB))
}

// TestSerializedWritersObserveIncreasingClock checks that commit order under
// the advisory lock matches sequence order.
func (s *PostgresStoreSuite) TestSerializedWritersObserveIncreasingClock() {
	ctx := context.Background()
	st := s.newStore()
	s.Require().NoError(st.Create(ctx, testProvider("prov-1", "owner-a", 0)))

	runner := txcontext.NewRunner(s.postgres.DB, txcontext.WithLockStatement(WriterLockStatement))
	seq := clock.NewSequence(s.postgres.DB, "provider_logical_time")

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = runner.RunInTx(ctx, func(txCtx context.Context) error {
				p, err := st.FindByID(txCtx, "prov-1")
				if err != nil {
					return err
				}
				now, err := seq.Next(txCtx)
				if err != nil {
					return err
				}
				if now <= p.UpdatedAt {
					s.T().Errorf("logical time went backwards: %d <= %d", now, p.UpdatedAt)
				}
				p.ApplyDeactivation(now)
				return st.Update(txCtx, p)
			})
		}()
	}
	wg.Wait()

	found, err := st.FindByID(ctx, "prov-1")
	s.Require().NoError(err)
	s.False(found.Active)
	s.Positive(found.UpdatedAt)
}
