package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/tuskmem/internal/core"
	"github.com/sandevgo/tuskmem/internal/storage/storetest"
)

func TestMemoryRepo(t *testing.T) {
	storetest.Run(t, func(t *testing.T, now func() time.Time) core.Store {
		db, err := NewDB(context.Background(), inMemory)
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return NewMemoryRepo(db).WithClock(now)
	})
}

func TestNewDB_FileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "tuskmem.db")
	at := time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)

	db, err := NewDB(ctx, path)
	require.NoError(t, err)
	repo := NewMemoryRepo(db).WithClock(func() time.Time { return at })
	require.NoError(t, repo.Put(ctx, "u1", []core.MemoryFact{
		{Content: "likes coding", Category: core.CategoryInterest, Weight: 2, LastReinforced: at},
	}))
	require.NoError(t, db.Close())

	db, err = NewDB(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	set, err := NewMemoryRepo(db).Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, set.Facts, 1)
	assert.Equal(t, "likes coding", set.Facts[0].Content)
	assert.True(t, set.UpdatedAt.Equal(at))
}

func TestMemoryRepo_RejectsZeroWeight(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(ctx, inMemory)
	require.NoError(t, err)
	defer db.Close()

	repo := NewMemoryRepo(db)
	require.NoError(t, repo.Put(ctx, "u1", []core.MemoryFact{
		{Content: "kept", Category: core.CategoryGoal, Weight: 1, LastReinforced: time.Now()},
	}))

	err = repo.Put(ctx, "u1", []core.MemoryFact{
		{Content: "weightless", Category: core.CategoryGoal, Weight: 0, LastReinforced: time.Now()},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrStoreUnavailable))

	set, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, set.Facts, 1, "failed put must roll back")
	assert.Equal(t, "kept", set.Facts[0].Content)
}

func TestMemoryRepo_ClosedDB(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(ctx, inMemory)
	require.NoError(t, err)
	repo := NewMemoryRepo(db)
	require.NoError(t, db.Close())

	_, err = repo.Get(ctx, "u1")
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)

	err = repo.Put(ctx, "u1", nil)
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
}
