package goStats

import (
	"fmt"
	"io"
	"log/slog"
)

// Registry owns one counter per catalog entry for the lifetime of the process.
//
// The name and ID indexes are built once in the constructor and never
// mutated afterwards, so lookups take no locks. Counters themselves are
// mutated concurrently through the [Counter] interface.
type Registry struct {
	enabled  bool
	defs     []MetricDef
	counters []Counter
	byID     map[MetricID]int
	byName   map[string]int
	logger   *slog.Logger
}

// RegistryOption customizes a registry at construction time.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	clock  Clock
	logger *slog.Logger
}

// WithClock sets the time source for rolling counters.
func WithClock(clock Clock) RegistryOption {
	return func(o *registryOptions) {
		o.clock = clock
	}
}

// WithLogger sets the logger used for registry diagnostics.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(o *registryOptions) {
		o.logger = logger
	}
}

// NewRegistry builds a registry for the built-in notification metrics catalog.
func NewRegistry(cfg MetricsConfig, opts ...RegistryOption) (*Registry, error) {
	return NewRegistryFromDefs(defaultDefs[:], cfg, opts...)
}

// NewRegistryFromDefs builds a registry for an arbitrary definition table.
// The table is validated with [ValidateCatalog]; a bad table is a startup error.
func NewRegistryFromDefs(defs []MetricDef, cfg MetricsConfig, opts ...RegistryOption) (*Registry, error) {
	if err := ValidateCatalog(defs); err != nil {
		return nil, err
	}

	window := cfg.RollingWindow
	if window == 0 {
		window = DefaultRollingWindow
	}
	if window < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWindow, window)
	}

	o := registryOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = SystemClock()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := &Registry{
		enabled:  cfg.Enabled,
		defs:     make([]MetricDef, len(defs)),
		counters: make([]Counter, len(defs)),
		byID:     make(map[MetricID]int, len(defs)),
		byName:   make(map[string]int, len(defs)),
		logger:   o.logger,
	}
	copy(r.defs, defs)

	rolling := 0
	for i, def := range r.defs {
		switch def.Kind {
		case KindRolling:
			r.counters[i] = NewRollingCounter(window, o.clock)
			rolling++
		default:
			r.counters[i] = NewMonotonicCounter()
		}
		r.byID[def.ID] = i
		r.byName[def.Name] = i
	}

	r.logger.Debug("metrics registry built",
		slog.Int("metrics", len(r.defs)),
		slog.Int("rolling", rolling),
		slog.Duration("window", window),
		slog.Bool("enabled", r.enabled),
	)

	return r, nil
}

// Enabled reports whether the ID-based helpers record anything.
func (r *Registry) Enabled() bool {
	return r != nil && r.enabled
}

// Len returns the number of catalog entries.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Defs returns a copy of the registry's definition table in snapshot order.
func (r *Registry) Defs() []MetricDef {
	out := make([]MetricDef, len(r.defs))
	copy(out, r.defs)
	return out
}

// Def returns the definition for id. It panics if id is not in the catalog.
func (r *Registry) Def(id MetricID) MetricDef {
	return r.defs[r.indexOf(id)]
}

// Counter returns the counter for id. It panics with [ErrUnknownMetric] if
// id is not in the catalog: a misnamed metric is a programming error.
func (r *Registry) Counter(id MetricID) Counter {
	return r.counters[r.indexOf(id)]
}

// Lookup returns the counter registered under name. It panics with
// [ErrUnknownMetric] if the name is not in the catalog.
func (r *Registry) Lookup(name string) Counter {
	i, ok := r.byName[name]
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrUnknownMetric, name))
	}
	return r.counters[i]
}

// Find is the non-panicking form of Lookup for callers that take metric
// names from outside the program.
func (r *Registry) Find(name string) (Counter, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.counters[i], true
}

// Inc increments id. A nil or disabled registry records nothing, but an
// unknown id still panics.
func (r *Registry) Inc(id MetricID) {
	if r == nil {
		return
	}
	c := r.Counter(id)
	if !r.enabled {
		return
	}
	c.Increment()
}

// Add adds n to id with the same rules as Inc.
func (r *Registry) Add(id MetricID, n int64) {
	if r == nil {
		return
	}
	c := r.Counter(id)
	if !r.enabled {
		return
	}
	c.Add(n)
}

// Value returns the current value of id.
func (r *Registry) Value(id MetricID) int64 {
	return r.Counter(id).Value()
}

// Reset zeroes every counter. Updates racing with Reset may be lost.
func (r *Registry) Reset() {
	for _, c := range r.counters {
		c.Reset()
	}
}

func (r *Registry) indexOf(id MetricID) int {
	i, ok := r.byID[id]
	if !ok {
		panic(fmt.Errorf("%w: id %d", ErrUnknownMetric, id))
	}
	return i
}
