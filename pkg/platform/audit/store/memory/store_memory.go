// Package memory keeps audit events in process, in append order. It backs
// the memory and SQLite deployments and the service tests.
package memory

import (
	"context"
	"sync"

	audit "provider-registry/pkg/platform/audit"
)

type InMemoryStore struct {
	mu        sync.RWMutex
	log       []audit.Event
	bySubject map[string][]int
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{bySubject: make(map[string][]int)}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bySubject[event.Subject] = append(s.bySubject[event.Subject], len(s.log))
	s.log = append(s.log, event)
	return nil
}

// ListBySubject returns the events recorded for one provider, oldest first.
func (s *InMemoryStore) ListBySubject(_ context.Context, subject string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.bySubject[subject]
	out := make([]audit.Event, len(idx))
	for i, pos := range idx {
		out[i] = s.log[pos]
	}
	return out, nil
}

// ListAll returns every event in the order it was appended.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event(nil), s.log...), nil
}

func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.log)
}
