package redissink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	goStats "github.com/MrEthical07/goStats"
)

// ErrNoSnapshot is returned by Latest when the key is missing or expired.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Default key layout.
const (
	DefaultKey     = "gostats:snapshot:latest"
	DefaultChannel = "gostats:snapshots"
	DefaultTTL     = 5 * time.Minute
)

// Config controls where snapshots land.
type Config struct {
	Key     string
	Channel string // empty disables PUBLISH
	TTL     time.Duration
	Nested  bool
}

// Sink implements goStats.SnapshotSink on a redis.UniversalClient.
type Sink struct {
	rdb redis.UniversalClient
	cfg Config
}

// New returns a sink writing through rdb. Zero Key and TTL take the defaults.
func New(rdb redis.UniversalClient, cfg Config) (*Sink, error) {
	if rdb == nil {
		return nil, errors.New("redissink: nil redis client")
	}
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.TTL < 0 {
		return nil, fmt.Errorf("redissink: negative TTL %s", cfg.TTL)
	}
	return &Sink{rdb: rdb, cfg: cfg}, nil
}

// Publish stores snap under the key and announces it on the channel in one
// MULTI/EXEC round trip.
func (s *Sink) Publish(ctx context.Context, snap goStats.Snapshot) error {
	data, err := goStats.MarshalSnapshot(snap, s.cfg.Nested)
	if err != nil {
		return err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.cfg.Key, data, s.cfg.TTL)
		if s.cfg.Channel != "" {
			pipe.Publish(ctx, s.cfg.Channel, data)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redissink: publish %s: %w", snap.ID, err)
	}
	return nil
}

// Latest returns the raw JSON of the most recent snapshot.
func (s *Sink) Latest(ctx context.Context) ([]byte, error) {
	data, err := s.rdb.Get(ctx, s.cfg.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("redissink: get %s: %w", s.cfg.Key, err)
	}
	return data, nil
}
