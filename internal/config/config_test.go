package config

import (
	"os"
	"path/filepath"
	"testing"

	"hostile-sim/internal/personality"
)

const schema = "../../schemas/hostile.cue"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hostile.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `
max_drones: 3
detect_range_m: 30
wind_up: false
personality_weights:
  balanced: 1
  sniper: 3
squad:
  throttle_ms: 100
hull_max: 150
scenario: last-stand
seed: 7
`)
	cfg, err := Load(path, schema)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.MaxDrones != 3 || cfg.Scenario != "last-stand" || cfg.Seed != 7 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.TickMs != 50 {
		t.Errorf("expected default tick 50, got %d", cfg.TickMs)
	}

	tun := cfg.Tuning()
	if tun.DetectRange != 30 {
		t.Errorf("detect range not applied: %v", tun.DetectRange)
	}
	if tun.LoseTrackRange != 50 {
		t.Errorf("lose-track range should keep default, got %v", tun.LoseTrackRange)
	}
	if !tun.DisableWindUp {
		t.Error("wind_up: false should disable the wind-up phase")
	}
	if tun.Squad.ThrottleMs != 100 {
		t.Errorf("squad throttle not applied: %d", tun.Squad.ThrottleMs)
	}

	cat, err := cfg.Catalog(personality.DefaultCatalog())
	if err != nil {
		t.Fatalf("Catalog() returned error: %v", err)
	}
	if p := cat.Probability("sniper"); p < 0.74 || p > 0.76 {
		t.Errorf("expected sniper probability 0.75, got %v", p)
	}
}

func TestLoadConfig_ClampsDrones(t *testing.T) {
	cfg, err := Load(writeConfig(t, "max_drones: 12\n"), schema)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.MaxDrones != 6 {
		t.Errorf("expected max_drones clamped to 6, got %d", cfg.MaxDrones)
	}
}

func TestLoadConfig_ZeroFalseStartDisables(t *testing.T) {
	cfg, err := Load(writeConfig(t, "false_start_chance: 0\n"), schema)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if got := cfg.Tuning().FalseStartChance; got >= 0 {
		t.Errorf("false_start_chance: 0 should disable false starts, got %v", got)
	}

	cfg, err = Load(writeConfig(t, "false_start_chance: 0.3\n"), schema)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if got := cfg.Tuning().FalseStartChance; got != 0.3 {
		t.Errorf("expected false start chance 0.3, got %v", got)
	}
}

func TestLoadConfig_RejectsNegativeRange(t *testing.T) {
	if _, err := Load(writeConfig(t, "detect_range_m: -5\n"), schema); err == nil {
		t.Fatal("expected schema validation error")
	}
}

func TestLoadConfig_RejectsUnknownField(t *testing.T) {
	if _, err := Load(writeConfig(t, "fleets: []\n"), schema); err == nil {
		t.Fatal("expected closed definition to reject unknown field")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), schema); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefaultTuningWhenEmpty(t *testing.T) {
	tun := Default().Tuning()
	if tun.MaxDrones != 2 || tun.DisableWindUp {
		t.Errorf("unexpected default tuning: max=%d windup-disabled=%v", tun.MaxDrones, tun.DisableWindUp)
	}
}
