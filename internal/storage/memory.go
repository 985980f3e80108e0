package storage

import (
	"context"
	"sync"
)

// MemorySlot keeps items in process memory. Used in tests and for throwaway runs.
type MemorySlot struct {
	mu    sync.Mutex
	items map[string]string
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{items: make(map[string]string)}
}

func (s *MemorySlot) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[key]
	return v, ok, nil
}

func (s *MemorySlot) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

func (s *MemorySlot) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

func (s *MemorySlot) Close() error {
	return nil
}
