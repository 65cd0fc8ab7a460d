// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"hostile-sim/internal/hostile"
	"hostile-sim/internal/personality"
)

// Squad tunes multi-drone coordination.
type Squad struct {
	ThrottleMs           int64   `yaml:"throttle_ms"`
	CrossfireWindowMs    int64   `yaml:"crossfire_window_ms"`
	CoordinationWindowMs int64   `yaml:"coordination_window_ms"`
	AssaultRangeM        float64 `yaml:"assault_range_m"`
}

// Config is the root configuration of a hostile-drone simulation.
type Config struct {
	MaxDrones          int                `yaml:"max_drones"`
	SpawnIntervalMs    int64              `yaml:"spawn_interval_ms"`
	SpawnDistanceMinM  float64            `yaml:"spawn_distance_min_m"`
	SpawnDistanceMaxM  float64            `yaml:"spawn_distance_max_m"`
	DetectRangeM       float64            `yaml:"detect_range_m"`
	LoseTrackRangeM    float64            `yaml:"lose_track_range_m"`
	ReacquireRangeM    float64            `yaml:"reacquire_range_m"`
	AttackRangeM       float64            `yaml:"attack_range_m"`
	WindUp             *bool              `yaml:"wind_up"`
	FalseStartChance   *float64           `yaml:"false_start_chance"`
	PersonalityWeights map[string]float64 `yaml:"personality_weights"`
	Squad              Squad              `yaml:"squad"`
	HullMax            float64            `yaml:"hull_max"`
	HullRegenPerSec    float64            `yaml:"hull_regen_per_s"`
	Scenario           string             `yaml:"scenario"`
	Seed               int64              `yaml:"seed"`
	TickMs             int64              `yaml:"tick_ms"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		MaxDrones:       hostile.DefaultMaxDrones,
		HullMax:         100,
		HullRegenPerSec: 2,
		Scenario:        "ambush",
		TickMs:          50,
	}
}

// Load loads YAML config and validates it against a CUE schema
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.MaxDrones = hostile.ClampDrones(cfg.MaxDrones)

	slog.Info("loaded configuration", "path", configPath, "max_drones", cfg.MaxDrones, "scenario", cfg.Scenario)
	return cfg, nil
}

// ValidateWithCue validates a YAML configuration file against the #Config
// definition of a CUE schema file.
func ValidateWithCue(configFile, cueFile string) error {
	ctx := cuecontext.New()

	yamlBytes, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("cannot read YAML config: %w", err)
	}
	f, err := cueyaml.Extract(configFile, yamlBytes)
	if err != nil {
		return fmt.Errorf("cannot parse YAML config: %w", err)
	}
	configVal := ctx.BuildFile(f)
	if configVal.Err() != nil {
		return fmt.Errorf("cannot build config value: %w", configVal.Err())
	}

	schemaBytes, err := os.ReadFile(cueFile)
	if err != nil {
		return fmt.Errorf("cannot read CUE schema: %w", err)
	}
	schemaVal := ctx.CompileBytes(schemaBytes)
	if schemaVal.Err() != nil {
		return fmt.Errorf("cannot compile CUE schema: %w", schemaVal.Err())
	}
	def := schemaVal.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return fmt.Errorf("schema %s has no #Config definition", cueFile)
	}

	final := def.Unify(configVal)
	if err := final.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Tuning maps the configuration onto the drone AI constants. Unset values
// keep their defaults.
func (c *Config) Tuning() hostile.Tuning {
	t := hostile.DefaultTuning()
	t.MaxDrones = hostile.ClampDrones(c.MaxDrones)
	setI(&t.SpawnIntervalMs, c.SpawnIntervalMs)
	setF(&t.SpawnDistanceMin, c.SpawnDistanceMinM)
	setF(&t.SpawnDistanceMax, c.SpawnDistanceMaxM)
	setF(&t.DetectRange, c.DetectRangeM)
	setF(&t.LoseTrackRange, c.LoseTrackRangeM)
	setF(&t.ReacquireRange, c.ReacquireRangeM)
	setF(&t.AttackRange, c.AttackRangeM)
	if c.WindUp != nil {
		t.DisableWindUp = !*c.WindUp
	}
	if c.FalseStartChance != nil {
		// zero switches false starts off; the tuning treats negatives as disabled
		t.FalseStartChance = *c.FalseStartChance
		if t.FalseStartChance == 0 {
			t.FalseStartChance = -1
		}
	}
	setI(&t.Squad.ThrottleMs, c.Squad.ThrottleMs)
	setI(&t.Squad.CrossfireWindowMs, c.Squad.CrossfireWindowMs)
	setI(&t.Squad.CoordinationWindowMs, c.Squad.CoordinationWindowMs)
	setF(&t.Squad.AssaultRange, c.Squad.AssaultRangeM)
	return t
}

// Catalog applies the configured spawn weights to base.
func (c *Config) Catalog(base *personality.Catalog) (*personality.Catalog, error) {
	if len(c.PersonalityWeights) == 0 {
		return base, nil
	}
	cat, err := base.WithWeights(c.PersonalityWeights)
	if err != nil {
		return nil, fmt.Errorf("personality weights: %w", err)
	}
	return cat, nil
}

func setF(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

func setI(dst *int64, v int64) {
	if v > 0 {
		*dst = v
	}
}
