package store

import (
	"context"
	"sync"

	"provider-registry/internal/provider/models"
	id "provider-registry/pkg/domain"
	"provider-registry/pkg/platform/sentinel"
)

// ErrNotFound is returned when a provider or principal index entry is absent.
var ErrNotFound = sentinel.ErrNotFound

// ErrAlreadyExists is returned by Create when the provider id is taken.
var ErrAlreadyExists = sentinel.ErrAlreadyUsed

// InMemoryStore keeps providers and the principal index in maps. Each call is
// atomic on its own; callers serialize read-modify-write sequences.
type InMemoryStore struct {
	mu          sync.RWMutex
	providers   map[id.ProviderID]*models.Provider
	byPrincipal map[id.Principal]id.ProviderID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		providers:   make(map[id.ProviderID]*models.Provider),
		byPrincipal: make(map[id.Principal]id.ProviderID),
	}
}

// Create stores a new provider and points the owner's index entry at it.
func (s *InMemoryStore) Create(_ context.Context, provider *models.Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.providers[provider.ID]; ok {
		return ErrAlreadyExists
	}
	s.providers[provider.ID] = provider.Clone()
	s.byPrincipal[provider.Owner] = provider.ID
	return nil
}

// Update replaces an existing record. The owner index is left untouched.
func (s *InMemoryStore) Update(_ context.Context, provider *models.Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.providers[provider.ID]; !ok {
		return ErrNotFound
	}
	s.providers[provider.ID] = provider.Clone()
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, providerID id.ProviderID) (*models.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	provider, ok := s.providers[providerID]
	if !ok {
		return nil, ErrNotFound
	}
	return provider.Clone(), nil
}

func (s *InMemoryStore) FindIDByPrincipal(_ context.Context, principal id.Principal) (id.ProviderID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	providerID, ok := s.byPrincipal[principal]
	if !ok {
		return "", ErrNotFound
	}
	return providerID, nil
}

func (s *InMemoryStore) Exists(_ context.Context, providerID id.ProviderID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.providers[providerID]
	return ok, nil
}

// MaxLogicalTime returns the largest UpdatedAt held, or 0 when empty.
func (s *InMemoryStore) MaxLogicalTime(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var maxTime int64
	for _, p := range s.providers {
		if p.UpdatedAt > maxTime {
			maxTime = p.UpdatedAt
		}
	}
	return maxTime, nil
}

// CountActive returns the number of providers whose status is active.
func (s *InMemoryStore) CountActive(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, p := range s.providers {
		if p.Active {
			n++
		}
	}
	return n, nil
}

// Count returns the number of stored providers.
func (s *InMemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.providers)
}
