package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/tuskmem/internal/config"
	"github.com/sandevgo/tuskmem/internal/core"
	"github.com/sandevgo/tuskmem/internal/storage/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T, now func() time.Time) core.Store {
		s := miniredis.RunT(t)
		client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
		t.Cleanup(func() { client.Close() })
		return NewStore(client, "test").WithClock(now)
	})
}

func TestStore_KeyLayout(t *testing.T) {
	s := miniredis.RunT(t)
	client := NewClient(&config.RedisConfig{Addr: s.Addr(), Timeout: time.Second})
	store := NewStore(client, "")
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "u1", []core.MemoryFact{
		{Content: "likes coding", Category: core.CategoryInterest, Weight: 1, LastReinforced: time.Now()},
	}))

	assert.True(t, s.Exists("tuskmem:memory:u1"))
	assert.Equal(t, time.Duration(0), s.TTL("tuskmem:memory:u1"), "memory sets never expire")
}

func TestStore_Unavailable(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr(), MaxRetries: -1})
	defer client.Close()
	store := NewStore(client, "test")

	ctx := context.Background()
	s.Close()

	_, err := store.Get(ctx, "u1")
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)

	err = store.Put(ctx, "u1", nil)
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
}

func TestStore_CorruptDocument(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	defer client.Close()
	store := NewStore(client, "test")

	require.NoError(t, s.Set("test:memory:u1", "{not json"))

	_, err := store.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
}
