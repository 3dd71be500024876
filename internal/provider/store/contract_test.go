package store

import (
	"context"
	"errors"

	"github.com/stretchr/testify/suite"

	"provider-registry/internal/provider/models"
	id "provider-registry/pkg/domain"
	"provider-registry/pkg/platform/sentinel"
)

// providerStore is the surface every backend must honour.
type providerStore interface {
	Create(ctx context.Context, provider *models.Provider) error
	Update(ctx context.Context, provider *models.Provider) error
	FindByID(ctx context.Context, providerID id.ProviderID) (*models.Provider, error)
	FindIDByPrincipal(ctx context.Context, principal id.Principal) (id.ProviderID, error)
	Exists(ctx context.Context, providerID id.ProviderID) (bool, error)
	MaxLogicalTime(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

// contractSuite holds behaviour shared by all store backends. Embedding
// suites set newStore.
type contractSuite struct {
	suite.Suite
	newStore func() providerStore
}

func testProvider(providerID, owner string, at int64) *models.Provider {
	return &models.Provider{
		ID:        id.ProviderID(providerID),
		Owner:     id.Principal(owner),
		FullName:  "Dr. Alice Smith",
		Specialty: "Cardiology",
		NPINumber: "NPI123",
		Active:    true,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func (s *contractSuite) TestCreateAndFind() {
	ctx := context.Background()

	s.Run("stores record and indexes owner", func() {
		st := s.newStore()
		p := testProvider("prov-1", "owner-a", 1)
		s.Require().NoError(st.Create(ctx, p))

		found, err := st.FindByID(ctx, p.ID)
		s.Require().NoError(err)
		s.Equal(p, found)

		providerID, err := st.FindIDByPrincipal(ctx, p.Owner)
		s.Require().NoError(err)
		s.Equal(p.ID, providerID)

		exists, err := st.Exists(ctx, p.ID)
		s.Require().NoError(err)
		s.True(exists)
	})

	s.Run("duplicate id returns already used and keeps original", func() {
		st := s.newStore()
		s.Require().NoError(st.Create(ctx, testProvider("prov-1", "owner-a", 1)))

		dup := testProvider("prov-1", "owner-b", 2)
		dup.FullName = "Mallory"
		err := st.Create(ctx, dup)
		s.Require().Error(err)
		s.True(errors.Is(err, sentinel.ErrAlreadyUsed))

		found, err := st.FindByID(ctx, "prov-1")
		s.Require().NoError(err)
		s.Equal(id.Principal("owner-a"), found.Owner)
		s.Equal("Dr. Alice Smith", found.FullName)

		_, err = st.FindIDByPrincipal(ctx, "owner-b")
		s.True(errors.Is(err, sentinel.ErrNotFound))
	})

	s.Run("second registration by same owner moves the index", func() {
		st := s.newStore()
		s.Require().NoError(st.Create(ctx, testProvider("prov-1", "owner-a", 1)))
		s.Require().NoError(st.Create(ctx, testProvider("prov-2", "owner-a", 2)))

		providerID, err := st.FindIDByPrincipal(ctx, "owner-a")
		s.Require().NoError(err)
		s.Equal(id.ProviderID("prov-2"), providerID)

		exists, err := st.Exists(ctx, "prov-1")
		s.Require().NoError(err)
		s.True(exists)
	})
}

func (s *contractSuite) TestMissingRecords() {
	ctx := context.Background()
	st := s.newStore()

	_, err := st.FindByID(ctx, "missing")
	s.True(errors.Is(err, sentinel.ErrNotFound))

	_, err = st.FindIDByPrincipal(ctx, "nobody")
	s.True(errors.Is(err, sentinel.ErrNotFound))

	exists, err := st.Exists(ctx, "missing")
	s.Require().NoError(err)
	s.False(exists)

	err = st.Update(ctx, testProvider("missing", "owner-a", 1))
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *contractSuite) TestUpdate() {
	ctx := context.Background()
	st := s.newStore()
	s.Require().NoError(st.Create(ctx, testProvider("prov-1", "owner-a", 1)))

	p, err := st.FindByID(ctx, "prov-1")
	s.Require().NoError(err)
	p.ApplyProfile(models.Profile{FullName: "Dr. Bob", Specialty: "Neurology", NPINumber: "NPI999"}, 5)
	p.ApplyDeactivation(6)
	s.Require().NoError(st.Update(ctx, p))

	found, err := st.FindByID(ctx, "prov-1")
	s.Require().NoError(err)
	s.Equal("Dr. Bob", found.FullName)
	s.Equal("Neurology", found.Specialty)
	s.Equal("NPI999", found.NPINumber)
	s.False(found.Active)
	s.Equal(int64(1), found.CreatedAt)
	s.Equal(int64(6), found.UpdatedAt)
	s.Equal(id.Principal("owner-a"), found.Owner)

	maxTime, err := st.MaxLogicalTime(ctx)
	s.Require().NoError(err)
	s.Equal(int64(6), maxTime)
}

func (s *contractSuite) TestReturnedRecordsAreCopies() {
	ctx := context.Background()
	st := s.newStore()
	s.Require().NoError(st.Create(ctx, testProvider("prov-1", "owner-a", 1)))

	found, err := st.FindByID(ctx, "prov-1")
	s.Require().NoError(err)
	found.FullName = "changed without update"

	again, err := st.FindByID(ctx, "prov-1")
	s.Require().NoError(err)
	s.Equal("Dr. Alice Smith", again.FullName)
}

func (s *contractSuite) TestMaxLogicalTimeEmpty() {
	maxTime, err := s.newStore().MaxLogicalTime(context.Background())
	s.Require().NoError(err)
	s.Zero(maxTime)
}

func (s *contractSuite) TestCountActive() {
	ctx := context.Background()
	st := s.newStore()

	n, err := st.CountActive(ctx)
	s.Require().NoError(err)
	s.Zero(n)

	s.Require().NoError(st.Create(ctx, testProvider("prov-1", "owner-a", 1)))
	s.Require().NoError(st.Create(ctx, testProvider("prov-2", "owner-b", 2)))
	inactive := testProvider("prov-2", "owner-b", 2)
	inactive.ApplyDeactivation(3)
	s.Require().NoError(st.Update(ctx, inactive))

	n, err = st.CountActive(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}
