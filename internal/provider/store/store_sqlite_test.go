package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	txcontext "provider-registry/pkg/platform/tx"
)

type SQLiteStoreSuite struct {
	contractSuite
}

func TestSQLiteStoreSuite(t *testing.T) {
	s := new(SQLiteStoreSuite)
	s.newStore = func() providerStore {
		db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "registry.db"))
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		return NewSQLiteStore(db)
	}
	suite.Run(t, s)
}

func (s *SQLiteStoreSuite) openDB() *sql.DB {
	db, err := OpenSQLite(context.Background(), filepath.Join(s.T().TempDir(), "registry.db"))
	s.Require().NoError(err)
	s.T().Cleanup(func() { db.Close() })
	return db
}

func (s *SQLiteStoreSuite) TestRollbackDiscardsBothTables() {
	ctx := context.Background()
	db := s.openDB()
	st := NewSQLiteStore(db)
	runner := txcontext.NewRunner(db)

	err := runner.RunInTx(ctx, func(txCtx context.Context) error {
		if err := st.Create(txCtx, testProvider("prov-1", "owner-a", 1)); err != nil {
			return err
		}
		return sql.ErrConnDone
	})
	s.Require().ErrorIs(err, sql.ErrConnDone)

	exists, err := st.Exists(ctx, "prov-1")
	s.Require().NoError(err)
	s.False(exists)
	_, err = st.FindIDByPrincipal(ctx, "owner-a")
	s.ErrorIs(err, ErrNotFound)
}

func (s *SQLiteStoreSuite) TestReopenKeepsRecords() {
	ctx := context.Background()
	path := filepath.Join(s.T().TempDir(), "registry.db")

	db, err := OpenSQLite(ctx, path)
	s.Require().NoError(err)
	s.Require().NoError(NewSQLiteStore(db).Create(ctx, testProvider("prov-1", "owner-a", 3)))
	s.Require().NoError(db.Close())

	db, err = OpenSQLite(ctx, path)
	s.Require().NoError(err)
	defer db.Close()

	st := NewSQLiteStore(db)
	found, err := st.FindByID(ctx, "prov-1")
	s.Require().NoError(err)
	s.True(found.Active)
	maxTime, err := st.MaxLogicalTime(ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), maxTime)
}
