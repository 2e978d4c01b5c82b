// Package memory is a process-local storage.Store.
package memory

import (
	"context"
	"sync"

	"ledger/internal/storage"
)

type Store struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func New() *Store {
	return &Store{slots: map[string][]byte{}}
}

// Seed creates a store with preset slot contents.
func Seed(slots map[string][]byte) *Store {
	s := New()
	for k, v := range slots {
		s.slots[k] = append([]byte(nil), v...)
	}
	return s
}

// Load returns a copy of the slot bytes.
func (s *Store) Load(_ context.Context, slot string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.slots[slot]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Save stores a copy of data under slot.
func (s *Store) Save(_ context.Context, slot string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = append([]byte(nil), data...)
	return nil
}

func (s *Store) Close() error {
	return nil
}
