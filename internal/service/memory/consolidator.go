package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/tuskmem/internal/core"
	"github.com/sandevgo/tuskmem/pkg/log"
)

// Consolidator runs consolidation cycles against a store. Cycles for the same
// user are serialized; cycles for different users run independently.
type Consolidator struct {
	store     core.Store
	extractor core.Extractor
	template  PromptTemplate
	capacity  int
	now       func() time.Time
	locks     *userLocks
}

type Option func(*Consolidator)

func WithCapacity(capacity int) Option {
	return func(c *Consolidator) {
		if capacity > 0 {
			c.capacity = capacity
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Consolidator) {
		if now != nil {
			c.now = now
		}
	}
}

func WithPromptTemplate(t PromptTemplate) Option {
	return func(c *Consolidator) {
		c.template = t
	}
}

// NewConsolidator wires a store and an optional extractor. Without an
// extractor Summarize fails with core.ErrExtraction.
func NewConsolidator(store core.Store, extractor core.Extractor, opts ...Option) *Consolidator {
	c := &Consolidator{
		store:     store,
		extractor: extractor,
		template:  DefaultPromptTemplate,
		capacity:  core.DefaultCapacity,
		now:       time.Now,
		locks:     newUserLocks(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Consolidator) Memory(ctx context.Context, userID string) (core.MemorySet, error) {
	set, err := c.store.Get(ctx, userID)
	if err != nil {
		return core.MemorySet{}, storeError("get", err)
	}
	return set, nil
}

func (c *Consolidator) Prompt(ctx context.Context, userID string) (string, error) {
	set, err := c.Memory(ctx, userID)
	if err != nil {
		return "", err
	}
	return c.template.Render(set), nil
}

// Consolidate runs decay, merge and rank for userID and stores the result.
//
// Rejected candidates do not abort the cycle: the stored set is returned with
// an *InvalidCandidateError. Store failures abort it and nothing is written.
func (c *Consolidator) Consolidate(ctx context.Context, userID string, candidates []core.CandidateFact) (core.MemorySet, error) {
	logger := log.FromCtx(ctx).With().Str("component", "consolidator").Str("user_id", userID).Logger()

	unlock := c.locks.lock(userID)
	defer unlock()

	existing, err := c.store.Get(ctx, userID)
	if err != nil {
		return core.MemorySet{}, storeError("get", err)
	}

	set, mergeErr := consolidate(userID, existing, candidates, c.now(), c.capacity)
	var invalid *InvalidCandidateError
	if mergeErr != nil && !errors.As(mergeErr, &invalid) {
		return core.MemorySet{}, mergeErr
	}
	if invalid != nil {
		logger.Warn().Err(invalid).Int("rejected", len(invalid.Rejected)).Msg("skipped invalid candidates")
	}

	if err := c.store.Put(ctx, userID, set.Facts); err != nil {
		return core.MemorySet{}, storeError("put", err)
	}

	logger.Info().
		Int("before", len(existing.Facts)).
		Int("candidates", len(candidates)).
		Int("after", len(set.Facts)).
		Msg("memory consolidated")

	return set, mergeErr
}

// Summarize extracts candidates from a transcript and consolidates them.
// Extraction runs outside the user's lock.
func (c *Consolidator) Summarize(ctx context.Context, userID string, transcript []core.Message) (core.MemorySet, error) {
	if c.extractor == nil {
		return core.MemorySet{}, fmt.Errorf("%w: no extractor configured", core.ErrExtraction)
	}

	candidates, err := c.extractor.Extract(ctx, transcript)
	if err != nil {
		if !errors.Is(err, core.ErrExtraction) {
			err = fmt.Errorf("%w: %w", core.ErrExtraction, err)
		}
		return core.MemorySet{}, err
	}

	log.FromCtx(ctx).Debug().
		Str("user_id", userID).
		Int("candidates", len(candidates)).
		Msg("candidates extracted")

	return c.Consolidate(ctx, userID, candidates)
}

// Overwrite replaces a user's facts verbatim after validating them.
func (c *Consolidator) Overwrite(ctx context.Context, userID string, facts []core.MemoryFact) error {
	for i, f := range facts {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("fact #%d: %w", i, err)
		}
	}

	unlock := c.locks.lock(userID)
	defer unlock()

	if err := c.store.Put(ctx, userID, core.CloneFacts(facts)); err != nil {
		return storeError("put", err)
	}
	return nil
}

func storeError(op string, err error) error {
	if errors.Is(err, core.ErrStoreUnavailable) {
		return fmt.Errorf("%s memory: %w", op, err)
	}
	return fmt.Errorf("%s memory: %w: %w", op, core.ErrStoreUnavailable, err)
}
