package goStats

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/goStats/internal/dispatch"
)

// Reporter publishes registry snapshots to a sink on a fixed interval.
//
// Snapshots are taken on the ticker goroutine and handed to the sink through
// a bounded queue, so a slow sink never delays counter updates. Sink errors
// are logged and counted, never retried.
type Reporter struct {
	reg    *Registry
	cfg    ReporterConfig
	sink   SnapshotSink
	logger *slog.Logger
	queue  *dispatch.Dispatcher[Snapshot]

	published atomic.Uint64
	failed    atomic.Uint64

	mu      sync.Mutex
	started bool
	closed  bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// ReporterOption customizes a reporter at construction time.
type ReporterOption func(*Reporter)

// WithReporterLogger sets the logger used for publish failures.
func WithReporterLogger(logger *slog.Logger) ReporterOption {
	return func(r *Reporter) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReporter builds a reporter for reg. A nil sink drops every snapshot.
func NewReporter(reg *Registry, cfg ReporterConfig, sink SnapshotSink, opts ...ReporterOption) (*Reporter, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("%w: Reporter Interval must be > 0", ErrInvalidConfig)
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	r := &Reporter{
		reg:    reg,
		cfg:    cfg,
		sink:   sink,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.queue = dispatch.New(dispatch.Config{
		BufferSize: cfg.BufferSize,
		DropIfFull: cfg.DropIfFull,
	}, r.publish)

	return r, nil
}

// Start launches the ticker. It stops when ctx ends or Close is called.
// With cfg.Enabled=false Start does nothing and only Flush publishes.
func (r *Reporter) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrReporterClosed
	}
	if r.started {
		return ErrReporterStarted
	}
	r.started = true
	if !r.cfg.Enabled {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.loop(ctx)

	r.logger.Info("metrics reporter started", slog.Duration("interval", r.cfg.Interval))
	return nil
}

func (r *Reporter) loop(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.queue.Submit(ctx, r.reg.Snapshot())
		case <-ctx.Done():
			return
		}
	}
}

// Flush takes a snapshot now and queues it. It returns [ErrSnapshotDropped]
// if the queue rejected it.
func (r *Reporter) Flush(ctx context.Context) error {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return ErrReporterClosed
	}

	if !r.queue.Submit(ctx, r.reg.Snapshot()) {
		if ctx != nil && ctx.Err() != nil {
			return fmt.Errorf("%w: %w", ErrSnapshotDropped, ctx.Err())
		}
		return ErrSnapshotDropped
	}
	return nil
}

// Close stops the ticker and waits until every queued snapshot reached the
// sink. It is safe to call more than once.
func (r *Reporter) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	r.wg.Wait()
	r.queue.Close()

	r.logger.Debug("metrics reporter closed",
		slog.Uint64("published", r.published.Load()),
		slog.Uint64("failed", r.failed.Load()),
		slog.Uint64("dropped", r.queue.Dropped()),
	)
}

// Published returns how many snapshots the sink accepted.
func (r *Reporter) Published() uint64 { return r.published.Load() }

// Failed returns how many snapshots the sink returned an error for.
func (r *Reporter) Failed() uint64 { return r.failed.Load() }

// Dropped returns how many snapshots never reached the sink because the
// queue was full.
func (r *Reporter) Dropped() uint64 { return r.queue.Dropped() }

func (r *Reporter) publish(ctx context.Context, snap Snapshot) {
	if err := r.sink.Publish(ctx, snap); err != nil {
		r.failed.Add(1)
		r.logger.Warn("metrics snapshot publish failed",
			slog.String("snapshot_id", snap.ID),
			slog.Any("error", err),
		)
		return
	}
	r.published.Add(1)
}
