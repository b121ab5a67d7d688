package goStats

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"
)

// SnapshotSink receives snapshots from a [Reporter]. Publish runs on the
// reporter's dispatch goroutine, one snapshot at a time.
type SnapshotSink interface {
	Publish(ctx context.Context, snap Snapshot) error
}

// SinkFunc adapts a function to [SnapshotSink].
type SinkFunc func(ctx context.Context, snap Snapshot) error

func (f SinkFunc) Publish(ctx context.Context, snap Snapshot) error {
	return f(ctx, snap)
}

// NoOpSink drops snapshots.
type NoOpSink struct{}

func (NoOpSink) Publish(context.Context, Snapshot) error { return nil }

// ChannelSink writes snapshots into a buffered channel.
type ChannelSink struct {
	snaps chan Snapshot
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		snaps: make(chan Snapshot, buffer),
	}
}

func (s *ChannelSink) Publish(ctx context.Context, snap Snapshot) error {
	select {
	case s.snaps <- snap:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ChannelSink) Snapshots() <-chan Snapshot {
	return s.snaps
}

// JSONWriterSink writes one JSON document per line.
type JSONWriterSink struct {
	writer io.Writer
	nested bool
	mu     sync.Mutex
}

// NewJSONWriterSink writes flat snapshots, or nested ones when nested is set.
func NewJSONWriterSink(w io.Writer, nested bool) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
		nested: nested,
	}
}

func (s *JSONWriterSink) Publish(ctx context.Context, snap Snapshot) error {
	if s == nil || s.writer == nil {
		return nil
	}
	data, err := MarshalSnapshot(snap, s.nested)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.writer.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// LogSink logs every snapshot as one structured record.
type LogSink struct {
	logger *slog.Logger
	level  slog.Level
}

func NewLogSink(logger *slog.Logger, level slog.Level) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger, level: level}
}

func (s *LogSink) Publish(ctx context.Context, snap Snapshot) error {
	if !s.logger.Enabled(ctx, s.level) {
		return nil
	}
	values := make([]any, 0, len(snap.Values))
	for name, v := range snap.Values {
		values = append(values, slog.Int64(name, v))
	}
	s.logger.Log(ctx, s.level, "metrics snapshot",
		slog.String("snapshot_id", snap.ID),
		slog.Time("taken_at", snap.TakenAt),
		slog.Group("values", values...),
	)
	return nil
}

type nestedSnapshot struct {
	ID      string         `json:"id"`
	TakenAt time.Time      `json:"taken_at"`
	Values  map[string]any `json:"values"`
}

// MarshalSnapshot encodes snap with its values either flat or nested.
func MarshalSnapshot(snap Snapshot, nested bool) ([]byte, error) {
	if !nested {
		return json.Marshal(snap)
	}
	values, err := snap.Nested()
	if err != nil {
		return nil, err
	}
	return json.Marshal(nestedSnapshot{
		ID:      snap.ID,
		TakenAt: snap.TakenAt,
		Values:  values,
	})
}
