// Package storetest holds the behaviour every core.Store must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/tuskmem/internal/core"
)

// Factory builds an empty store whose UpdatedAt values come from now.
type Factory func(t *testing.T, now func() time.Time) core.Store

// Clock is a settable test clock.
type Clock struct {
	t time.Time
}

func NewClock(t time.Time) *Clock { return &Clock{t: t} }

func (c *Clock) Now() time.Time          { return c.t }
func (c *Clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// Run exercises the Get/Put contract against a fresh store per subtest.
func Run(t *testing.T, newStore Factory) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("fresh user", func(t *testing.T) {
		clock := NewClock(start)
		s := newStore(t, clock.Now)

		set, err := s.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", set.UserID)
		assert.NotNil(t, set.Facts)
		assert.Empty(t, set.Facts)
		assert.True(t, set.UpdatedAt.Equal(start))
	})

	t.Run("get does not persist", func(t *testing.T) {
		clock := NewClock(start)
		s := newStore(t, clock.Now)

		_, err := s.Get(ctx, "u1")
		require.NoError(t, err)

		clock.Advance(time.Hour)
		set, err := s.Get(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, set.UpdatedAt.Equal(start.Add(time.Hour)), "fresh set must carry the current time")
	})

	t.Run("put then get", func(t *testing.T) {
		clock := NewClock(start)
		s := newStore(t, clock.Now)

		facts := []core.MemoryFact{
			{Content: "likes coding", Category: core.CategoryInterest, Weight: 2, LastReinforced: start.Add(-48 * time.Hour)},
			{Content: "often anxious", Category: core.CategoryEmotion, Weight: 1.5, LastReinforced: start},
		}
		clock.Advance(time.Minute)
		require.NoError(t, s.Put(ctx, "u1", facts))

		clock.Advance(time.Hour)
		set, err := s.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", set.UserID)
		assert.True(t, set.UpdatedAt.Equal(start.Add(time.Minute)))
		require.Len(t, set.Facts, 2)
		for i := range facts {
			assert.Equal(t, facts[i].Content, set.Facts[i].Content)
			assert.Equal(t, facts[i].Category, set.Facts[i].Category)
			assert.InDelta(t, facts[i].Weight, set.Facts[i].Weight, 1e-9)
			assert.True(t, facts[i].LastReinforced.Equal(set.Facts[i].LastReinforced))
		}
	})

	t.Run("put overwrites", func(t *testing.T) {
		s := newStore(t, NewClock(start).Now)

		require.NoError(t, s.Put(ctx, "u1", []core.MemoryFact{
			{Content: "a", Category: core.CategoryGoal, Weight: 1, LastReinforced: start},
			{Content: "b", Category: core.CategoryGoal, Weight: 1, LastReinforced: start},
		}))
		require.NoError(t, s.Put(ctx, "u1", []core.MemoryFact{
			{Content: "c", Category: core.CategoryGoal, Weight: 3, LastReinforced: start},
		}))

		set, err := s.Get(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, set.Facts, 1)
		assert.Equal(t, "c", set.Facts[0].Content)
	})

	t.Run("put empty keeps user", func(t *testing.T) {
		clock := NewClock(start)
		s := newStore(t, clock.Now)

		require.NoError(t, s.Put(ctx, "u1", nil))
		clock.Advance(time.Hour)

		set, err := s.Get(ctx, "u1")
		require.NoError(t, err)
		assert.NotNil(t, set.Facts)
		assert.Empty(t, set.Facts)
		assert.True(t, set.UpdatedAt.Equal(start), "stored set keeps its own UpdatedAt")
	})

	t.Run("users are isolated", func(t *testing.T) {
		s := newStore(t, NewClock(start).Now)

		require.NoError(t, s.Put(ctx, "u1", []core.MemoryFact{{Content: "x", Category: core.CategoryGoal, Weight: 1, LastReinforced: start}}))

		set, err := s.Get(ctx, "u2")
		require.NoError(t, err)
		assert.Empty(t, set.Facts)
	})

	t.Run("returned sets are copies", func(t *testing.T) {
		s := newStore(t, NewClock(start).Now)

		facts := []core.MemoryFact{{Content: "x", Category: core.CategoryGoal, Weight: 1, LastReinforced: start}}
		require.NoError(t, s.Put(ctx, "u1", facts))
		facts[0].Content = "mutated by caller"

		set, err := s.Get(ctx, "u1")
		require.NoError(t, err)
		set.Facts[0].Weight = 99

		again, err := s.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "x", again.Facts[0].Content)
		assert.InDelta(t, 1, again.Facts[0].Weight, 1e-9)
	})
}
