package memory

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sandevgo/tuskmem/internal/core"
)

const (
	maxWeight     = 5
	initialWeight = 1
)

// RejectedCandidate is a candidate that failed validation during a merge.
type RejectedCandidate struct {
	Index     int
	Candidate core.CandidateFact
	Err       error
}

// InvalidCandidateError reports every candidate a merge had to skip.
// It unwraps to core.ErrInvalidCandidate.
type InvalidCandidateError struct {
	Rejected []RejectedCandidate
}

func (e *InvalidCandidateError) Error() string {
	parts := make([]string, 0, len(e.Rejected))
	for _, r := range e.Rejected {
		parts = append(parts, fmt.Sprintf("#%d: %v", r.Index, r.Err))
	}
	return fmt.Sprintf("%d candidate(s) rejected: %s", len(e.Rejected), strings.Join(parts, "; "))
}

func (e *InvalidCandidateError) Unwrap() error {
	return core.ErrInvalidCandidate
}

// Merge folds candidates into existing facts.
//
// A candidate whose content contains, or is contained in, an existing fact's
// content reinforces the first such fact: weight +1 capped at maxWeight, and
// LastReinforced set to now. Anything else is appended with initialWeight.
// Facts appended earlier in the same call take part in matching.
//
// Invalid candidates are skipped; the merged facts are still returned along
// with an *InvalidCandidateError listing them.
func Merge(existing []core.MemoryFact, candidates []core.CandidateFact, now time.Time) ([]core.MemoryFact, error) {
	merged := core.CloneFacts(existing)
	var rejected []RejectedCandidate

	for i, c := range candidates {
		if err := c.Validate(); err != nil {
			rejected = append(rejected, RejectedCandidate{Index: i, Candidate: c, Err: err})
			continue
		}

		if idx := findSimilar(merged, c.Content); idx >= 0 {
			merged[idx].Weight = math.Min(maxWeight, merged[idx].Weight+1)
			merged[idx].LastReinforced = now
			continue
		}

		merged = append(merged, core.MemoryFact{
			Content:        c.Content,
			Category:       c.Category,
			Weight:         initialWeight,
			LastReinforced: now,
		})
	}

	if len(rejected) > 0 {
		return merged, &InvalidCandidateError{Rejected: rejected}
	}
	return merged, nil
}

// findSimilar returns the index of the first fact related to content by
// case-sensitive substring containment in either direction, or -1.
func findSimilar(facts []core.MemoryFact, content string) int {
	for i, f := range facts {
		if strings.Contains(f.Content, content) || strings.Contains(content, f.Content) {
			return i
		}
	}
	return -1
}
