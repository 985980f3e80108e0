// Package store holds the ordered, in-memory list of workouts for a session
// and moves it to and from a persistence slot.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hperssn/mapty/internal/domain"
	"github.com/hperssn/mapty/internal/storage"
)

var ErrNotFound = errors.New("workout not found")

// Store is an ordered, append-only list of workouts. It is not safe for
// concurrent use; the controller owning it serializes access.
type Store struct {
	workouts []*domain.Workout
}

func New() *Store {
	return &Store{}
}

func (s *Store) Add(w *domain.Workout) {
	s.workouts = append(s.workouts, w)
}

// All returns the workouts in insertion order. The slice is a copy.
func (s *Store) All() []*domain.Workout {
	out := make([]*domain.Workout, len(s.workouts))
	copy(out, s.workouts)
	return out
}

func (s *Store) Len() int {
	return len(s.workouts)
}

func (s *Store) FindByID(id string) (*domain.Workout, error) {
	for _, w := range s.workouts {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// LoadFrom replaces the contents with a decoded snapshot. An empty or
// malformed snapshot leaves the store empty.
func (s *Store) LoadFrom(serialized string) {
	s.workouts = nil
	if serialized == "" {
		return
	}

	workouts, err := storage.DecodeWorkouts(serialized)
	if err != nil {
		log.Printf("ignoring unreadable workout snapshot: %v", err)
		return
	}
	s.workouts = workouts
}

// Load reads the snapshot under storage.WorkoutsKey. A missing key is not an error.
func (s *Store) Load(ctx context.Context, slot storage.Slot) error {
	serialized, ok, err := slot.GetItem(ctx, storage.WorkoutsKey)
	if err != nil {
		s.workouts = nil
		return fmt.Errorf("read workouts: %w", err)
	}
	if !ok {
		s.workouts = nil
		return nil
	}
	s.LoadFrom(serialized)
	return nil
}

// SaveTo overwrites the slot with the full list.
func (s *Store) SaveTo(ctx context.Context, slot storage.Slot) error {
	serialized, err := storage.EncodeWorkouts(s.workouts)
	if err != nil {
		return fmt.Errorf("encode workouts: %w", err)
	}
	if err := slot.SetItem(ctx, storage.WorkoutsKey, serialized); err != nil {
		return fmt.Errorf("write workouts: %w", err)
	}
	return nil
}

// Clear removes the persisted copy and then empties the store. The store is
// left as it was when the slot refuses the removal.
func (s *Store) Clear(ctx context.Context, slot storage.Slot) error {
	if err := slot.RemoveItem(ctx, storage.WorkoutsKey); err != nil {
		return fmt.Errorf("remove workouts: %w", err)
	}
	s.workouts = nil
	return nil
}
