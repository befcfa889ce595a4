package memory

import (
	"errors"
	"time"

	"github.com/sandevgo/tuskmem/internal/core"
)

// ConsolidateMemory runs decay, merge and rank over a snapshot of a user's
// memory with the default capacity. It touches no shared state.
//
// An *InvalidCandidateError is returned together with a usable set; any other
// error leaves the set zero.
func ConsolidateMemory(userID string, existing core.MemorySet, candidates []core.CandidateFact, now time.Time) (core.MemorySet, error) {
	return consolidate(userID, existing, candidates, now, core.DefaultCapacity)
}

func consolidate(userID string, existing core.MemorySet, candidates []core.CandidateFact, now time.Time, capacity int) (core.MemorySet, error) {
	merged, err := Merge(Decay(existing.Facts, now), candidates, now)

	var invalid *InvalidCandidateError
	if err != nil && !errors.As(err, &invalid) {
		return core.MemorySet{}, err
	}

	return core.MemorySet{
		UserID:    userID,
		Facts:     Rank(merged, capacity),
		UpdatedAt: now,
	}, err
}
