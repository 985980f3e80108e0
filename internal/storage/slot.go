package storage

import (
	"context"
	"fmt"
)

// WorkoutsKey is the slot key holding the serialized workout list.
const WorkoutsKey = "workouts"

// Slot is a flat key-value store holding one string per key.
type Slot interface {
	// GetItem returns the stored value and whether the key exists.
	GetItem(ctx context.Context, key string) (string, bool, error)

	SetItem(ctx context.Context, key, value string) error

	RemoveItem(ctx context.Context, key string) error

	Close() error
}

// Open returns the slot implementation for driver ("sqlite", "postgres" or "memory").
func Open(driver, dsn string) (Slot, error) {
	switch driver {
	case "sqlite", "sqlite3":
		return NewSQLiteSlot(dsn)
	case "postgres":
		return NewPostgresSlot(dsn)
	case "memory":
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
