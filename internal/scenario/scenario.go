package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Trigger event types understood by the simulator.
const (
	EventTimeElapsed     = "time_elapsed"     // seconds spent in the current phase
	EventDronesDestroyed = "drones_destroyed" // drones destroyed since the run started
	EventHullBelow       = "hull_below"       // hull percentage
)

// Scenario scripts the player the hostile drones are hunting, as ordered phases.
type Scenario struct {
	Name        string  `yaml:"name,omitempty"`
	Description string  `yaml:"description,omitempty"`
	Phases      []Phase `yaml:"phases"`
}

// Phase describes one stage of player behaviour and the triggers that end it.
type Phase struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Player      PlayerScript `yaml:"player"`
	// MaxDrones overrides the population cap while the phase is active.
	MaxDrones int       `yaml:"max_drones,omitempty"`
	Triggers  []Trigger `yaml:"triggers,omitempty"`
}

// PlayerScript is the scripted movement and fire of the player.
type PlayerScript struct {
	Speed          float64 `yaml:"speed_mps"`
	TurnRate       float64 `yaml:"turn_rate_dps"`
	Altitude       float64 `yaml:"altitude_ft"`
	Camo           bool    `yaml:"camo"`
	FireRange      float64 `yaml:"fire_range_m"`
	FireArc        float64 `yaml:"fire_arc_deg"` // either side of the facing
	FireDamage     float64 `yaml:"fire_damage"`
	FireIntervalMs int64   `yaml:"fire_interval_ms"`
}

// Fires reports whether the script shoots back at all.
func (p PlayerScript) Fires() bool {
	return p.FireDamage > 0 && p.FireRange > 0 && p.FireIntervalMs > 0
}

// Trigger moves the scenario to another phase based on an event.
type Trigger struct {
	Event string `yaml:"event"`
	Value int    `yaml:"value"`
	Next  string `yaml:"next"`
}

// Event represents a runtime occurrence that may advance the scenario.
type Event struct {
	Type  string
	Value int
}

// Load reads a YAML scenario definition from disk.
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// Resolve returns the built-in arc called name, or loads name as a file.
func Resolve(name string) (*Scenario, error) {
	if s, ok := BuiltIn()[name]; ok {
		return &s, nil
	}
	return Load(name)
}

// Validate checks phase names are unique and every trigger points at a phase.
func (s *Scenario) Validate() error {
	if len(s.Phases) == 0 {
		return errors.New("no phases")
	}
	seen := make(map[string]bool, len(s.Phases))
	for _, p := range s.Phases {
		if p.Name == "" {
			return errors.New("phase without name")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate phase %q", p.Name)
		}
		seen[p.Name] = true
	}
	for _, p := range s.Phases {
		for _, tr := range p.Triggers {
			switch tr.Event {
			case EventTimeElapsed, EventDronesDestroyed, EventHullBelow:
			default:
				return fmt.Errorf("phase %q: unknown trigger event %q", p.Name, tr.Event)
			}
			if !seen[tr.Next] {
				return fmt.Errorf("phase %q: trigger targets unknown phase %q", p.Name, tr.Next)
			}
		}
	}
	return nil
}

// Phase returns the phase called name.
func (s *Scenario) Phase(name string) (Phase, bool) {
	for _, p := range s.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return Phase{}, false
}

// NextPhase returns the name of the next phase given the current phase and event.
// If no trigger matches, ok will be false.
func (s *Scenario) NextPhase(current string, ev Event) (next string, ok bool) {
	p, found := s.Phase(current)
	if !found {
		return "", false
	}
	for _, tr := range p.Triggers {
		if tr.Event != ev.Type {
			continue
		}
		if ev.Type == EventHullBelow {
			if ev.Value < tr.Value {
				return tr.Next, true
			}
			continue
		}
		if ev.Value >= tr.Value {
			return tr.Next, true
		}
	}
	return "", false
}
