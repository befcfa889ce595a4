package memory

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sandevgo/tuskmem/internal/core"
)

func TestConsolidateMemory_OverflowTruncation(t *testing.T) {
	t.Parallel()

	var candidates []core.CandidateFact
	for i := 1; i <= 5; i++ {
		candidates = append(candidates, core.CandidateFact{Content: fmt.Sprintf("fact number %d", i), Category: core.CategoryInterest})
	}

	set, err := ConsolidateMemory("u1", core.MemorySet{UserID: "u1"}, candidates, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := contents(set.Facts)
	want := []string{"fact number 1", "fact number 2", "fact number 3"}
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Errorf("got %v, want %v", got, want)
	}
	if set.UserID != "u1" || !set.UpdatedAt.Equal(now) {
		t.Errorf("unexpected envelope %+v", set)
	}
}

func TestConsolidateMemory_FullDecayRemoval(t *testing.T) {
	t.Parallel()

	existing := core.MemorySet{UserID: "u1", Facts: []core.MemoryFact{
		{Content: "fading", Category: core.CategoryEmotion, Weight: 0.5, LastReinforced: daysAgo(10)},
	}}

	set, err := ConsolidateMemory("u1", existing, nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Facts) != 0 {
		t.Errorf("expected decayed fact to be gone, got %+v", set.Facts)
	}
}

func TestConsolidateMemory_DecayBeforeMerge(t *testing.T) {
	t.Parallel()

	// decays to 0 and is dropped before the candidate could reinforce it
	existing := core.MemorySet{Facts: []core.MemoryFact{
		{Content: "likes coding", Category: core.CategoryInterest, Weight: 0.5, LastReinforced: daysAgo(20)},
	}}

	set, err := ConsolidateMemory("u1", existing, []core.CandidateFact{{Content: "likes coding", Category: core.CategoryInterest}}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Facts) != 1 || set.Facts[0].Weight != 1 {
		t.Errorf("expected a fresh fact at weight 1, got %+v", set.Facts)
	}
}

func TestConsolidateMemory_NewFactDisplacesWeaker(t *testing.T) {
	t.Parallel()

	existing := core.MemorySet{Facts: []core.MemoryFact{
		{Content: "aaa", Category: core.CategoryGoal, Weight: 3, LastReinforced: now},
		{Content: "bbb", Category: core.CategoryGoal, Weight: 1.5, LastReinforced: daysAgo(9)},
		{Content: "ccc", Category: core.CategoryGoal, Weight: 2, LastReinforced: now},
	}}

	set, err := ConsolidateMemory("u1", existing, []core.CandidateFact{{Content: "ddd", Category: core.CategoryGoal}}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := contents(set.Facts)
	if len(got) != 3 || got[0] != "aaa" || got[1] != "ccc" || got[2] != "bbb" {
		t.Errorf("got %v", got)
	}
}

func TestConsolidateMemory_CapacityInvariant(t *testing.T) {
	t.Parallel()

	existing := core.MemorySet{UserID: "u1"}
	for round := 0; round < 20; round++ {
		var candidates []core.CandidateFact
		for i := 0; i < round%6; i++ {
			candidates = append(candidates, core.CandidateFact{
				Content:  fmt.Sprintf("round %d item %d", round, i),
				Category: core.CategoryCharacteristic,
			})
		}

		at := now.Add(time.Duration(round) * 3 * day)
		set, err := ConsolidateMemory("u1", existing, candidates, at)
		if err != nil {
			t.Fatalf("round %d: unexpected error: %v", round, err)
		}
		if len(set.Facts) > core.DefaultCapacity {
			t.Fatalf("round %d: %d facts exceed capacity", round, len(set.Facts))
		}
		for _, f := range set.Facts {
			if f.Weight <= 0 {
				t.Fatalf("round %d: weightless fact %+v survived", round, f)
			}
		}
		existing = set
	}
}

func TestConsolidateMemory_InvalidCandidateIsPartial(t *testing.T) {
	t.Parallel()

	set, err := ConsolidateMemory("u1", core.MemorySet{}, []core.CandidateFact{
		{Content: "ok", Category: core.CategoryGoal},
		{Content: "bad", Category: "unknown"},
	}, now)

	if !errors.Is(err, core.ErrInvalidCandidate) {
		t.Fatalf("expected ErrInvalidCandidate, got %v", err)
	}
	if len(set.Facts) != 1 || set.Facts[0].Content != "ok" {
		t.Errorf("valid candidate should be kept, got %+v", set.Facts)
	}
}

func TestConsolidateMemory_DoesNotShareExisting(t *testing.T) {
	t.Parallel()

	existing := core.MemorySet{Facts: []core.MemoryFact{
		{Content: "likes coding", Category: core.CategoryInterest, Weight: 1, LastReinforced: daysAgo(1)},
	}}

	set, _ := ConsolidateMemory("u1", existing, []core.CandidateFact{{Content: "likes coding", Category: core.CategoryInterest}}, now)
	set.Facts[0].Content = "changed"

	if existing.Facts[0].Content != "likes coding" || existing.Facts[0].Weight != 1 {
		t.Errorf("snapshot mutated: %+v", existing.Facts[0])
	}
}
