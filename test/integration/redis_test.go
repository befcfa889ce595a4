package integration

import (
	"context"
	"testing"
	"time"

	"github.com/sandevgo/tuskmem/internal/config"
	"github.com/sandevgo/tuskmem/internal/core"
	"github.com/sandevgo/tuskmem/internal/storage/redis"
	"github.com/sandevgo/tuskmem/internal/storage/storetest"
	"github.com/sandevgo/tuskmem/test"
)

// TestLiveRedis runs the store conformance suite against a real server in a
// throwaway namespace per subtest.
func TestLiveRedis(t *testing.T) {
	test.LoadEnv(t)
	test.RequireEnv(t, "REDIS_ADDR")

	ctx := context.Background()
	cfg := config.NewRedisConfig(ctx)
	client := redis.NewClient(cfg)
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis at %s unreachable: %v", cfg.Addr, err)
	}

	storetest.Run(t, func(t *testing.T, now func() time.Time) core.Store {
		ns := "tuskmem-test:" + t.Name()
		t.Cleanup(func() {
			keys, _ := client.Keys(ctx, ns+":*").Result()
			if len(keys) > 0 {
				_ = client.Del(ctx, keys...).Err()
			}
		})
		return redis.NewStore(client, ns).WithClock(now)
	})
}
