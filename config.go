package goStats

import (
	"fmt"
	"time"
)

// Config groups every tunable of the stats subsystem.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Config struct {
	Metrics  MetricsConfig
	Reporter ReporterConfig
	Stats    StatsConfig
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls counter construction.
//
// With Enabled=false the registry is still fully built, so name lookups keep
// failing fast on typos, but the ID-based Inc/Add helpers become no-ops.
type MetricsConfig struct {
	Enabled       bool
	RollingWindow time.Duration
}

/*
====================================
REPORTER CONFIG
====================================
*/

// ReporterConfig controls the periodic snapshot publisher.
type ReporterConfig struct {
	Enabled    bool
	Interval   time.Duration
	BufferSize int
	DropIfFull bool
	// Nested selects the nested JSON shape for sinks that serialize snapshots.
	Nested bool
}

/*
====================================
STATS ENDPOINT CONFIG
====================================
*/

// StatsConfig controls access to the stats HTTP endpoint.
type StatsConfig struct {
	RequireAuth   bool
	SigningMethod string // "hs256" (default) or "ed25519"
	SigningKey    []byte
	Issuer        string
	Audience      string
	Scope         string
	Leeway        time.Duration
}

// DefaultConfig returns the configuration the notifications plugin ships with:
// metrics on, one-minute rolling windows, reporter and auth off.
func DefaultConfig() Config {
	return Config{
		Metrics: MetricsConfig{
			Enabled:       true,
			RollingWindow: DefaultRollingWindow,
		},
		Reporter: ReporterConfig{
			Enabled:    false,
			Interval:   DefaultRollingWindow,
			BufferSize: 16,
			DropIfFull: true,
			Nested:     true,
		},
		Stats: StatsConfig{
			RequireAuth:   false,
			SigningMethod: "hs256",
			Scope:         "stats:read",
			Leeway:        5 * time.Second,
		},
	}
}

/*
====================================
VALIDATION
====================================
*/

// Validate reports the first invalid field, wrapped in [ErrInvalidConfig].
func (c *Config) Validate() error {
	if c.Metrics.RollingWindow <= 0 {
		return fmt.Errorf("%w: Metrics RollingWindow must be > 0: %w", ErrInvalidConfig, ErrInvalidWindow)
	}

	if c.Reporter.Enabled {
		if c.Reporter.Interval <= 0 {
			return fmt.Errorf("%w: Reporter Interval must be > 0", ErrInvalidConfig)
		}
		if c.Reporter.BufferSize <= 0 {
			return fmt.Errorf("%w: Reporter BufferSize must be > 0", ErrInvalidConfig)
		}
	}

	if c.Stats.RequireAuth {
		switch c.Stats.SigningMethod {
		case "hs256", "ed25519":
		default:
			return fmt.Errorf("%w: unsupported Stats SigningMethod %q", ErrInvalidConfig, c.Stats.SigningMethod)
		}
		if len(c.Stats.SigningKey) == 0 {
			return fmt.Errorf("%w: Stats SigningKey is required when RequireAuth is true", ErrInvalidConfig)
		}
		if c.Stats.Scope == "" {
			return fmt.Errorf("%w: Stats Scope must not be empty when RequireAuth is true", ErrInvalidConfig)
		}
		if c.Stats.Leeway < 0 || c.Stats.Leeway > 2*time.Minute {
			return fmt.Errorf("%w: Stats Leeway must be within [0, 2m]", ErrInvalidConfig)
		}
	}

	return nil
}

// LintWarning is an advisory finding that does not make a config invalid.
type LintWarning struct {
	Code    string
	Message string
}

// LintWarnings is the result of [Config.Lint].
type LintWarnings []LintWarning

// Codes returns the warning codes in order.
func (ws LintWarnings) Codes() []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Code)
	}
	return out
}

// Lint flags settings that are valid but probably not what an operator wants.
func (c *Config) Lint() LintWarnings {
	var ws LintWarnings

	if !c.Metrics.Enabled {
		ws = append(ws, LintWarning{"metrics_disabled", "metrics are disabled; the stats endpoint will report zeros"})
	}
	if c.Metrics.RollingWindow > 0 && c.Metrics.RollingWindow < time.Second {
		ws = append(ws, LintWarning{"window_subsecond", "rolling windows under one second make rates noisy"})
	}
	if c.Reporter.Enabled && c.Reporter.Interval > 0 && c.Reporter.Interval < c.Metrics.RollingWindow {
		ws = append(ws, LintWarning{"reporter_faster_than_window", "reporter publishes more often than rolling counters change"})
	}
	if c.Reporter.Enabled && !c.Reporter.DropIfFull {
		ws = append(ws, LintWarning{"reporter_blocking", "reporter blocks the ticker when the sink falls behind"})
	}
	if !c.Stats.RequireAuth {
		ws = append(ws, LintWarning{"stats_unauthenticated", "stats endpoint is served without authentication"})
	}

	return ws
}
