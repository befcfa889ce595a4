package core

import (
	"fmt"
	"strings"
	"time"
)

// Category is the closed set of kinds a remembered fact can belong to.
type Category string

const (
	CategoryEmotion        Category = "emotion"
	CategoryInterest       Category = "interest"
	CategoryGoal           Category = "goal"
	CategoryCharacteristic Category = "characteristic"
)

// DefaultCapacity is the number of facts retained per user.
const DefaultCapacity = 3

func (c Category) Valid() bool {
	switch c {
	case CategoryEmotion, CategoryInterest, CategoryGoal, CategoryCharacteristic:
		return true
	}
	return false
}

// MemoryFact is a single durable observation about a user.
type MemoryFact struct {
	Content        string    `json:"content"`
	Category       Category  `json:"category"`
	Weight         float64   `json:"weight"`
	LastReinforced time.Time `json:"lastUsed"`
}

// MemorySet holds every fact known about one user.
type MemorySet struct {
	UserID    string       `json:"userId"`
	Facts     []MemoryFact `json:"memories"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Clone returns a copy whose fact slice shares nothing with s.
func (s MemorySet) Clone() MemorySet {
	s.Facts = CloneFacts(s.Facts)
	return s
}

// CloneFacts copies facts into a fresh, non-nil slice.
func CloneFacts(facts []MemoryFact) []MemoryFact {
	out := make([]MemoryFact, len(facts))
	copy(out, facts)
	return out
}

// CandidateFact is an unvalidated fact proposal from an extractor.
type CandidateFact struct {
	Content  string   `json:"content"`
	Category Category `json:"category"`
}

func (c CandidateFact) Validate() error {
	if strings.TrimSpace(c.Content) == "" {
		return fmt.Errorf("%w: empty content", ErrInvalidCandidate)
	}
	if !c.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidCandidate, c.Category)
	}
	return nil
}

// Validate checks a fact posted for direct overwrite.
func (f MemoryFact) Validate() error {
	if err := (CandidateFact{Content: f.Content, Category: f.Category}).Validate(); err != nil {
		return err
	}
	if f.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive, got %v", ErrInvalidCandidate, f.Weight)
	}
	return nil
}
