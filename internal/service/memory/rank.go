package memory

import (
	"cmp"
	"slices"

	"github.com/sandevgo/tuskmem/internal/core"
)

// Rank orders facts by weight, heaviest first, and keeps at most capacity of
// them. Equal weights keep their input order.
func Rank(facts []core.MemoryFact, capacity int) []core.MemoryFact {
	ranked := core.CloneFacts(facts)
	slices.SortStableFunc(ranked, func(a, b core.MemoryFact) int {
		return cmp.Compare(b.Weight, a.Weight)
	})

	if capacity < 0 {
		capacity = 0
	}
	if len(ranked) > capacity {
		ranked = ranked[:capacity]
	}
	return ranked
}
