package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hperssn/mapty/internal/domain"
	"github.com/hperssn/mapty/internal/storage"
	"github.com/hperssn/mapty/internal/store"
)

func seeded(t *testing.T) *store.Store {
	t.Helper()

	at := time.Date(2024, time.April, 3, 8, 0, 0, 0, time.UTC)
	s := store.New()
	for i, coords := range []domain.Coords{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}, {Lat: 3, Lng: 3}} {
		var (
			w   *domain.Workout
			err error
		)
		if i%2 == 0 {
			w, err = domain.NewRunning(at.Add(time.Duration(i)*time.Hour), coords, 5+float64(i), 25, 170)
		} else {
			w, err = domain.NewCycling(at.Add(time.Duration(i)*time.Hour), coords, 20, 60, -5)
		}
		require.NoError(t, err)
		s.Add(w)
	}
	return s
}

func TestStore_AddAndAllKeepsOrder(t *testing.T) {
	s := seeded(t)

	all := s.All()
	require.Len(t, all, 3)
	require.Equal(t, 3, s.Len())
	for i, w := range all {
		require.Equal(t, float64(i+1), w.Coords.Lat)
	}

	all[0] = nil
	require.NotNil(t, s.All()[0], "All must return a copy")
}

func TestStore_FindByID(t *testing.T) {
	s := seeded(t)
	want := s.All()[1]

	got, err := s.FindByID(want.ID)
	require.NoError(t, err)
	require.Same(t, want, got)

	_, err = s.FindByID("missing")
	require.True(t, errors.Is(err, store.ErrNotFound))
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemorySlot()
	original := seeded(t)

	require.NoError(t, original.SaveTo(ctx, slot))

	fresh := store.New()
	require.NoError(t, fresh.Load(ctx, slot))
	require.Equal(t, original.All(), fresh.All())
}

func TestStore_LoadFromIsIdempotent(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemorySlot()
	require.NoError(t, seeded(t).SaveTo(ctx, slot))
	snapshot, _, _ := slot.GetItem(ctx, storage.WorkoutsKey)

	once := store.New()
	once.LoadFrom(snapshot)

	twice := store.New()
	twice.LoadFrom(snapshot)
	twice.LoadFrom(snapshot)

	require.Equal(t, once.All(), twice.All())
	require.Equal(t, 3, twice.Len())
}

func TestStore_LoadFromBadSnapshotLeavesStoreEmpty(t *testing.T) {
	for _, snapshot := range []string{"", "null", "{", `[{"type":"rowing"}]`} {
		s := seeded(t)
		s.LoadFrom(snapshot)
		require.Zero(t, s.Len(), "snapshot %q", snapshot)
	}
}

func TestStore_LoadAbsentKey(t *testing.T) {
	s := seeded(t)
	require.NoError(t, s.Load(context.Background(), storage.NewMemorySlot()))
	require.Zero(t, s.Len())
}

func TestStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemorySlot()
	s := seeded(t)
	require.NoError(t, s.SaveTo(ctx, slot))

	w, err := domain.NewRunning(time.Now().UTC(), domain.Coords{Lat: 9, Lng: 9}, 3, 20, 160)
	require.NoError(t, err)
	s.Add(w)
	require.NoError(t, s.SaveTo(ctx, slot))

	reloaded := store.New()
	require.NoError(t, reloaded.Load(ctx, slot))
	require.Equal(t, 4, reloaded.Len())
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemorySlot()
	s := seeded(t)
	require.NoError(t, s.SaveTo(ctx, slot))

	require.NoError(t, s.Clear(ctx, slot))
	require.Zero(t, s.Len())

	_, ok, err := slot.GetItem(ctx, storage.WorkoutsKey)
	require.NoError(t, err)
	require.False(t, ok)
}

type readOnlySlot struct {
	storage.Slot
}

var errReadOnly = errors.New("read-only slot")

func (readOnlySlot) RemoveItem(context.Context, string) error { return errReadOnly }

func TestStore_ClearKeepsWorkoutsWhenRemoveFails(t *testing.T) {
	ctx := context.Background()
	slot := readOnlySlot{Slot: storage.NewMemorySlot()}
	s := seeded(t)
	require.NoError(t, s.SaveTo(ctx, slot))

	require.ErrorIs(t, s.Clear(ctx, slot), errReadOnly)
	require.Equal(t, 3, s.Len())

	_, ok, err := slot.GetItem(ctx, storage.WorkoutsKey)
	require.NoError(t, err)
	require.True(t, ok)
}
