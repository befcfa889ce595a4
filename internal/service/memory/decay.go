package memory

import (
	"math"
	"time"

	"github.com/sandevgo/tuskmem/internal/core"
)

const (
	decayGraceDays = 7
	decayStep      = 0.5
	day            = 24 * time.Hour
)

// Decay ages facts by whole days since they were last reinforced.
//
// Facts idle for more than a week lose decayStep of weight, floored at zero,
// and facts left without weight are dropped. The result depends only on now
// and each fact's LastReinforced; the input slice is not modified.
//
// Every call applies the decrement again, so a host that persists decayed
// weights and consolidates the same idle user twice in a day charges that
// user twice.
func Decay(facts []core.MemoryFact, now time.Time) []core.MemoryFact {
	out := make([]core.MemoryFact, 0, len(facts))
	for _, f := range facts {
		if daysSince(f.LastReinforced, now) > decayGraceDays {
			f.Weight = math.Max(0, f.Weight-decayStep)
		}
		if f.Weight <= 0 {
			continue
		}
		out = append(out, f)
	}
	return out
}

func daysSince(t, now time.Time) int {
	return int(math.Floor(float64(now.Sub(t)) / float64(day)))
}
