package core

import "context"

// Store maps a user identity to its memory set.
//
// Get returns a fresh empty set for unknown users without persisting it.
// Put overwrites the stored facts and refreshes UpdatedAt. Neither decays,
// merges nor truncates; that is the consolidation cycle's job.
type Store interface {
	Get(ctx context.Context, userID string) (MemorySet, error)
	Put(ctx context.Context, userID string, facts []MemoryFact) error
}
