package env_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"wheel_backend/internal/config/env"
	"wheel_backend/internal/model"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestWheelConfig_FromYAML(t *testing.T) {
	path := writeYAML(t, `
wheel:
  outcomes:
    - outcome: win
      weight: 1
    - outcome: reinstall
      weight: 10
    - outcome: shutdown
      weight: 89
  warnings:
    min: 2
    max: 3
    pool: ["a", "b", "c"]
  spin:
    min_turns: 4
    max_turns: 6
    duration: 3s
    announce_delay: 250ms
`)

	cfg, err := env.NewWheelConfigFromYAML(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outcomes := cfg.Outcomes()
	if len(outcomes) != 3 || outcomes[2].Outcome != model.OutcomeShutdown || outcomes[2].Weight != 89 {
		t.Errorf("unexpected outcomes: %+v", outcomes)
	}
	if lo, hi := cfg.WarningRange(); lo != 2 || hi != 3 {
		t.Errorf("unexpected warning range [%d,%d]", lo, hi)
	}
	if len(cfg.WarningPool()) != 3 {
		t.Errorf("unexpected pool: %v", cfg.WarningPool())
	}
	if lo, hi := cfg.SpinTurns(); lo != 4 || hi != 6 {
		t.Errorf("unexpected turns [%d,%d]", lo, hi)
	}
	if cfg.SpinDuration() != 3*time.Second || cfg.AnnounceDelay() != 250*time.Millisecond {
		t.Errorf("unexpected spin timings %s %s", cfg.SpinDuration(), cfg.AnnounceDelay())
	}
}

func TestWheelConfig_Defaults(t *testing.T) {
	cfg, err := env.NewWheelConfigFromYAML(writeYAML(t, "wheel: {}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Outcomes() != nil || cfg.WarningPool() != nil {
		t.Error("empty tables must be left for built-in defaults")
	}
	if lo, hi := cfg.WarningRange(); lo != 10 || hi != 15 {
		t.Errorf("expected [10,15], got [%d,%d]", lo, hi)
	}
	if lo, hi := cfg.SpinTurns(); lo != 8 || hi != 11 {
		t.Errorf("expected [8,11], got [%d,%d]", lo, hi)
	}
	if cfg.SpinDuration() != 8*time.Second || cfg.AnnounceDelay() != time.Second {
		t.Errorf("unexpected spin timings %s %s", cfg.SpinDuration(), cfg.AnnounceDelay())
	}
}

func TestWheelConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown outcome": "wheel:\n  outcomes:\n    - outcome: jackpot\n      weight: 100\n",
		"bad turns":       "wheel:\n  spin:\n    min_turns: 9\n    max_turns: 3\n",
		"bad yaml":        "wheel: [",
	}
	for name, content := range cases {
		if _, err := env.NewWheelConfigFromYAML(writeYAML(t, content)); err == nil {
			t.Errorf("%s: expected error, got nil", name)
		}
	}

	if _, err := env.NewWheelConfigFromYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: expected error, got nil")
	}
}

func TestSimulationConfig_Defaults(t *testing.T) {
	cfg, err := env.NewSimulationConfigFromYAML(writeYAML(t, "simulation: {}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TimeScale() != 1 {
		t.Errorf("expected time scale 1, got %g", cfg.TimeScale())
	}
	sd := cfg.Shutdown()
	if sd.Screen != 2*time.Second || sd.BlackMin != 10*time.Second || sd.BlackMax != 45*time.Second || sd.RevealHold != 3*time.Second {
		t.Errorf("unexpected shutdown timings %+v", sd)
	}
	ri := cfg.Reinstall()
	if ri.Total != 30*time.Second || ri.StepEvery != 4*time.Second || len(ri.Steps) != 7 {
		t.Errorf("unexpected reinstall timings %+v", ri)
	}
}

func TestSimulationConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"negative scale": "simulation:\n  time_scale: -1\n",
		"black range":    "simulation:\n  shutdown:\n    black_min: 50s\n    black_max: 10s\n",
		"progress range": "simulation:\n  reinstall:\n    progress_min: 3\n    progress_max: 1\n",
		"loading":        "simulation:\n  reinstall:\n    loading: 40s\n    total: 30s\n",
	}
	for name, content := range cases {
		if _, err := env.NewSimulationConfigFromYAML(writeYAML(t, content)); err == nil {
			t.Errorf("%s: expected error, got nil", name)
		}
	}
}
