package goStats

import (
	"slices"
	"testing"
	"time"
)

func containsCode(codes []string, code string) bool {
	return slices.Contains(codes, code)
}

func TestLint_DefaultConfigOnlyWarnsAboutAuth(t *testing.T) {
	cfg := DefaultConfig()
	codes := cfg.Lint().Codes()

	if len(codes) != 1 || codes[0] != "stats_unauthenticated" {
		t.Fatalf("expected only stats_unauthenticated, got %v", codes)
	}
}

func TestLint_MetricsDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metrics.Enabled = false
	if !containsCode(cfg.Lint().Codes(), "metrics_disabled") {
		t.Error("expected metrics_disabled warning")
	}
}

func TestLint_SubsecondWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metrics.RollingWindow = 250 * time.Millisecond
	if !containsCode(cfg.Lint().Codes(), "window_subsecond") {
		t.Error("expected window_subsecond warning")
	}
}

func TestLint_ReporterSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reporter.Enabled = true
	cfg.Reporter.Interval = 10 * time.Second
	cfg.Reporter.DropIfFull = false

	codes := cfg.Lint().Codes()
	if !containsCode(codes, "reporter_faster_than_window") {
		t.Error("expected reporter_faster_than_window warning")
	}
	if !containsCode(codes, "reporter_blocking") {
		t.Error("expected reporter_blocking warning")
	}
}

func TestLint_AuthenticatedStatsNoWarning(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stats.RequireAuth = true
	cfg.Stats.SigningKey = []byte("stats-secret")

	ws := cfg.Lint()
	if len(ws) != 0 {
		t.Fatalf("expected no warnings, got %v", ws.Codes())
	}
}
