//go:build integration
// +build integration

package test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	goStats "github.com/MrEthical07/goStats"
	"github.com/MrEthical07/goStats/sinks/redissink"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// redisMode describes which Redis backend the compatibility suite is running against.
type redisMode struct {
	name  string
	setup func(t *testing.T) (redis.UniversalClient, func())
}

// redisModes returns miniredis always, plus a real standalone Redis when
// REDIS_ADDR is set (e.g. "127.0.0.1:6379").
func redisModes(t *testing.T) []redisMode {
	t.Helper()
	modes := []redisMode{
		{
			name: "miniredis",
			setup: func(t *testing.T) (redis.UniversalClient, func()) {
				t.Helper()
				mr, err := miniredis.Run()
				if err != nil {
					t.Fatalf("miniredis: %v", err)
				}
				rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
				return rdb, func() { _ = rdb.Close(); mr.Close() }
			},
		},
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		modes = append(modes, redisMode{
			name: "standalone:" + addr,
			setup: func(t *testing.T) (redis.UniversalClient, func()) {
				t.Helper()
				rdb := redis.NewClient(&redis.Options{Addr: addr})
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				if err := rdb.Ping(ctx).Err(); err != nil {
					t.Skipf("cannot connect to Redis at %s: %v", addr, err)
				}
				rdb.FlushDB(context.Background())
				return rdb, func() { rdb.FlushDB(context.Background()); _ = rdb.Close() }
			},
		})
	}

	return modes
}

func TestRedisCompatReporterPublishesLatest(t *testing.T) {
	for _, mode := range redisModes(t) {
		t.Run(mode.name, func(t *testing.T) {
			rdb, cleanup := mode.setup(t)
			defer cleanup()

			reg, err := goStats.NewRegistry(goStats.MetricsConfig{Enabled: true, RollingWindow: time.Minute})
			if err != nil {
				t.Fatalf("NewRegistry: %v", err)
			}
			sink, err := redissink.New(rdb, redissink.Config{Key: "compat:latest", TTL: time.Minute})
			if err != nil {
				t.Fatalf("redissink.New: %v", err)
			}
			rep, err := goStats.NewReporter(reg, goStats.ReporterConfig{Interval: time.Hour, BufferSize: 1}, sink)
			if err != nil {
				t.Fatalf("NewReporter: %v", err)
			}
			defer rep.Close()

			reg.RecordRequest(goStats.EndpointConfigCreate)
			reg.RecordDestination(goStats.DestinationWebhook)

			ctx := context.Background()
			if err := rep.Flush(ctx); err != nil {
				t.Fatalf("Flush: %v", err)
			}
			rep.Close()

			raw, err := sink.Latest(ctx)
			if err != nil {
				t.Fatalf("Latest: %v", err)
			}
			var snap goStats.Snapshot
			if err := json.Unmarshal(raw, &snap); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got := snap.Values["notifications_config.create.total"]; got != 1 {
				t.Fatalf("create total = %d, want 1", got)
			}
			if got := snap.Values["notifications.message_destination.webhook"]; got != 1 {
				t.Fatalf("webhook = %d, want 1", got)
			}

			ttl, err := rdb.TTL(ctx, "compat:latest").Result()
			if err != nil {
				t.Fatalf("TTL: %v", err)
			}
			if ttl <= 0 || ttl > time.Minute {
				t.Fatalf("ttl = %v, want (0, 1m]", ttl)
			}
		})
	}
}
