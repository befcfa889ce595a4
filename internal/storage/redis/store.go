// Package redis stores memory sets as JSON documents in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"

	"github.com/sandevgo/tuskmem/internal/config"
	"github.com/sandevgo/tuskmem/internal/core"
)

type Store struct {
	client    goredis.UniversalClient
	namespace string
	now       func() time.Time
}

// document is the stored shape of a memory set; the user id lives in the key.
type document struct {
	Facts     []core.MemoryFact `json:"memories"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func NewStore(client goredis.UniversalClient, namespace string) *Store {
	if namespace == "" {
		namespace = "tuskmem"
	}
	return &Store{
		client:    client,
		namespace: namespace,
		now:       time.Now,
	}
}

// NewClient builds a single node client from configuration.
func NewClient(cfg *config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})
}

// WithClock replaces the clock used for UpdatedAt.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) key(userID string) string {
	return s.namespace + ":memory:" + userID
}

func (s *Store) Get(ctx context.Context, userID string) (core.MemorySet, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return core.MemorySet{UserID: userID, Facts: []core.MemoryFact{}, UpdatedAt: s.now()}, nil
	}
	if err != nil {
		return core.MemorySet{}, fmt.Errorf("%w: redis get: %w", core.ErrStoreUnavailable, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return core.MemorySet{}, fmt.Errorf("%w: decode memory set: %w", core.ErrStoreUnavailable, err)
	}
	if doc.Facts == nil {
		doc.Facts = []core.MemoryFact{}
	}

	return core.MemorySet{UserID: userID, Facts: doc.Facts, UpdatedAt: doc.UpdatedAt}, nil
}

func (s *Store) Put(ctx context.Context, userID string, facts []core.MemoryFact) error {
	data, err := json.Marshal(document{Facts: core.CloneFacts(facts), UpdatedAt: s.now()})
	if err != nil {
		return fmt.Errorf("encode memory set: %w", err)
	}

	if err := s.client.Set(ctx, s.key(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %w", core.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
