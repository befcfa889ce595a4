package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/tuskmem/internal/core"
	"github.com/sandevgo/tuskmem/pkg/log"
)

// MemoryRepo stores memory sets in two tables: one row per user and one
// row per fact, ordered by position.
type MemoryRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewMemoryRepo(db *sql.DB) *MemoryRepo {
	return &MemoryRepo{db: db, now: time.Now}
}

// WithClock replaces the clock used for UpdatedAt.
func (r *MemoryRepo) WithClock(now func() time.Time) *MemoryRepo {
	r.now = now
	return r
}

func (r *MemoryRepo) Get(ctx context.Context, userID string) (core.MemorySet, error) {
	set := core.MemorySet{UserID: userID, Facts: []core.MemoryFact{}}

	var updatedAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT updated_at FROM memory_sets WHERE user_id = ?`, userID,
	).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		set.UpdatedAt = r.now()
		return set, nil
	}
	if err != nil {
		return core.MemorySet{}, unavailable("query memory set", err)
	}

	if set.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return core.MemorySet{}, unavailable("parse updated_at", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT content, category, weight, last_reinforced
		 FROM memory_facts WHERE user_id = ? ORDER BY position ASC`, userID,
	)
	if err != nil {
		return core.MemorySet{}, unavailable("query memory facts", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f core.MemoryFact
		var category, lastReinforced string
		if err := rows.Scan(&f.Content, &category, &f.Weight, &lastReinforced); err != nil {
			return core.MemorySet{}, unavailable("scan memory fact", err)
		}
		f.Category = core.Category(category)
		if f.LastReinforced, err = parseTime(lastReinforced); err != nil {
			return core.MemorySet{}, unavailable("parse last_reinforced", err)
		}
		set.Facts = append(set.Facts, f)
	}
	if err := rows.Err(); err != nil {
		return core.MemorySet{}, unavailable("iterate memory facts", err)
	}

	log.FromCtx(ctx).Debug().Str("user_id", userID).Int("count", len(set.Facts)).Msg("loaded memory facts")
	return set, nil
}

func (r *MemoryRepo) Put(ctx context.Context, userID string, facts []core.MemoryFact) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin tx", err)
	}
	defer tx.Rollback()

	// 1. Upsert the set row
	_, err = tx.ExecContext(ctx,
		`INSERT INTO memory_sets (user_id, updated_at) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET updated_at = excluded.updated_at`,
		userID, formatTime(r.now()),
	)
	if err != nil {
		return unavailable("upsert memory set", err)
	}

	// 2. Replace its facts
	if _, err := tx.ExecContext(ctx, `DELETE FROM memory_facts WHERE user_id = ?`, userID); err != nil {
		return unavailable("clear memory facts", err)
	}

	for i, f := range facts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO memory_facts (user_id, position, content, category, weight, last_reinforced)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			userID, i, f.Content, string(f.Category), f.Weight, formatTime(f.LastReinforced),
		)
		if err != nil {
			return unavailable("insert memory fact", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", core.ErrStoreUnavailable, op, err)
}
