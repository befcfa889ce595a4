// Package inmem keeps memory sets in a process-local map.
package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/sandevgo/tuskmem/internal/core"
)

type Store struct {
	mu   sync.RWMutex
	sets map[string]core.MemorySet
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		sets: make(map[string]core.MemorySet),
		now:  time.Now,
	}
}

// WithClock replaces the clock used for UpdatedAt.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Get(_ context.Context, userID string) (core.MemorySet, error) {
	s.mu.RLock()
	set, ok := s.sets[userID]
	s.mu.RUnlock()

	if !ok {
		return core.MemorySet{UserID: userID, Facts: []core.MemoryFact{}, UpdatedAt: s.now()}, nil
	}
	return set.Clone(), nil
}

func (s *Store) Put(_ context.Context, userID string, facts []core.MemoryFact) error {
	set := core.MemorySet{
		UserID:    userID,
		Facts:     core.CloneFacts(facts),
		UpdatedAt: s.now(),
	}

	s.mu.Lock()
	s.sets[userID] = set
	s.mu.Unlock()
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sets)
}
