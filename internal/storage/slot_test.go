package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func exerciseSlot(t *testing.T, slot Slot) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := slot.GetItem(ctx, WorkoutsKey)
	require.NoError(t, err)
	require.False(t, ok, "fresh slot should be empty")

	require.NoError(t, slot.SetItem(ctx, WorkoutsKey, "[]"))
	require.NoError(t, slot.SetItem(ctx, WorkoutsKey, `[{"id":"1"}]`))

	value, ok, err := slot.GetItem(ctx, WorkoutsKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":"1"}]`, value, "set must overwrite")

	require.NoError(t, slot.RemoveItem(ctx, WorkoutsKey))
	_, ok, err = slot.GetItem(ctx, WorkoutsKey)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, slot.RemoveItem(ctx, "never-set"))
}

func TestMemorySlot(t *testing.T) {
	exerciseSlot(t, NewMemorySlot())
}

func TestSQLiteSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapty.db")

	slot, err := NewSQLiteSlot(path)
	require.NoError(t, err)
	exerciseSlot(t, slot)

	require.NoError(t, slot.SetItem(context.Background(), WorkoutsKey, "kept"))
	require.NoError(t, slot.Close())

	reopened, err := NewSQLiteSlot(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.GetItem(context.Background(), WorkoutsKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "kept", value)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("redis", "")
	require.Error(t, err)

	slot, err := Open("memory", "")
	require.NoError(t, err)
	require.IsType(t, &MemorySlot{}, slot)
}
