package goStats

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestRegistry(t *testing.T, enabled bool) (*Registry, *manualClock) {
	t.Helper()
	clock := newManualClock()
	reg, err := NewRegistry(MetricsConfig{Enabled: enabled, RollingWindow: time.Minute}, WithClock(clock))
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	return reg, clock
}

func expectUnknownMetricPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		p := recover()
		if p == nil {
			t.Fatal("expected panic")
		}
		err, ok := p.(error)
		if !ok || !errors.Is(err, ErrUnknownMetric) {
			t.Fatalf("expected ErrUnknownMetric panic, got %v", p)
		}
	}()
	fn()
}

func TestRegistryDisabledNoIncrement(t *testing.T) {
	reg, clock := newTestRegistry(t, false)
	reg.Inc(MetricRequestTotal)
	reg.Add(MetricRequestCount, 4)
	clock.Advance(time.Minute)

	if got := reg.Value(MetricRequestTotal); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := reg.Value(MetricRequestCount); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if reg.Enabled() {
		t.Fatal("expected registry to report disabled")
	}
}

func TestRegistryDisabledStillFailsFastOnUnknownID(t *testing.T) {
	reg, _ := newTestRegistry(t, false)
	expectUnknownMetricPanic(t, func() { reg.Inc(metricIDCount) })
}

func TestRegistryEnabledIncrement(t *testing.T) {
	reg, clock := newTestRegistry(t, true)
	reg.Inc(MetricSendMessageTotal)
	reg.Inc(MetricSendMessageTotal)
	reg.Add(MetricSendMessageTotal, 3)
	reg.Add(MetricSendMessageCount, 2)

	if got := reg.Value(MetricSendMessageTotal); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	clock.Advance(time.Minute)
	if got := reg.Value(MetricSendMessageCount); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestRegistryLookupByNameSharesCounter(t *testing.T) {
	reg, _ := newTestRegistry(t, true)

	reg.Lookup("notifications_config.create.total").Add(2)
	if got := reg.Value(MetricConfigCreateTotal); got != 2 {
		t.Fatalf("expected name and id to address one counter, got %d", got)
	}
	if reg.Counter(MetricConfigCreateTotal) != reg.Lookup("notifications_config.create.total") {
		t.Fatal("expected the same counter instance")
	}
	if _, ok := reg.Lookup("notifications_config.create.count").(*RollingCounter); !ok {
		t.Fatal("expected a rolling counter for a .count metric")
	}
}

func TestRegistryLookupUnknownNamePanics(t *testing.T) {
	reg, _ := newTestRegistry(t, true)
	expectUnknownMetricPanic(t, func() { reg.Lookup("notifications_config.create.totl") })
	expectUnknownMetricPanic(t, func() { reg.Counter(MetricID(9999)) })
}

func TestRegistryFind(t *testing.T) {
	reg, _ := newTestRegistry(t, true)
	if _, ok := reg.Find("request_total"); !ok {
		t.Fatal("expected request_total to be found")
	}
	if c, ok := reg.Find("nope"); ok || c != nil {
		t.Fatal("expected unknown name to be absent")
	}
}

func TestRegistryReset(t *testing.T) {
	reg, clock := newTestRegistry(t, true)
	reg.Add(MetricRequestTotal, 10)
	reg.Add(MetricRequestCount, 10)
	clock.Advance(time.Minute)

	reg.Reset()
	for _, v := range reg.Collect() {
		if v.Value != 0 {
			t.Fatalf("%s: expected 0 after reset, got %d", v.Name, v.Value)
		}
	}
}

func TestRegistryNilSafeHelpers(t *testing.T) {
	var reg *Registry
	reg.Inc(MetricRequestTotal)
	reg.Add(MetricRequestTotal, 1)
	reg.RecordRequest(EndpointConfigInfo)
	if reg.Enabled() {
		t.Fatal("nil registry reported enabled")
	}
}

func TestRegistryIndependentInstances(t *testing.T) {
	a, _ := newTestRegistry(t, true)
	b, _ := newTestRegistry(t, true)
	a.Inc(MetricRequestTotal)
	if got := b.Value(MetricRequestTotal); got != 0 {
		t.Fatalf("registries share state: %d", got)
	}
}

func TestNewRegistryWindowHandling(t *testing.T) {
	reg, err := NewRegistry(MetricsConfig{Enabled: true})
	if err != nil {
		t.Fatalf("zero window should default: %v", err)
	}
	rc, ok := reg.Counter(MetricRequestCount).(*RollingCounter)
	if !ok || rc.Window() != DefaultRollingWindow {
		t.Fatalf("expected default window %s", DefaultRollingWindow)
	}

	if _, err := NewRegistry(MetricsConfig{RollingWindow: -time.Second}); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestNewRegistryFromDefsRejectsBadTable(t *testing.T) {
	defs := []MetricDef{{ID: 0, Name: "a.b"}, {ID: 1, Name: "a.b.c"}}
	if _, err := NewRegistryFromDefs(defs, MetricsConfig{Enabled: true}); !errors.Is(err, ErrNameCollision) {
		t.Fatalf("expected ErrNameCollision, got %v", err)
	}
}

func TestNewRegistryLogsConstruction(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := NewRegistry(MetricsConfig{Enabled: true}, WithLogger(logger)); err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"msg":"metrics registry built"`) {
		t.Fatalf("expected construction log line, got %q", buf.String())
	}
}

func TestRegistryConcurrentIncrementSafe(t *testing.T) {
	reg, clock := newTestRegistry(t, true)

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				reg.Inc(MetricEventsListTotal)
				reg.Inc(MetricEventsListCount)
			}
		}()
	}
	wg.Wait()

	if got := reg.Value(MetricEventsListTotal); got != goroutines*perG {
		t.Fatalf("expected %d, got %d", goroutines*perG, got)
	}
	clock.Advance(time.Minute)
	if got := reg.Value(MetricEventsListCount); got != goroutines*perG {
		t.Fatalf("expected %d rolling, got %d", goroutines*perG, got)
	}
}
