// Package personality holds the immutable behaviour profiles and weapon
// tables a hostile drone is configured from at spawn.
package personality

import (
	"errors"
	"fmt"
	"sort"
)

// Band is a closed distance interval in metres.
type Band struct {
	Min float64
	Max float64
}

// Contains reports whether d lies inside the band.
func (b Band) Contains(d float64) bool { return d >= b.Min && d <= b.Max }

// Center returns the middle of the band.
func (b Band) Center() float64 { return (b.Min + b.Max) / 2 }

// Profile is a named bundle of behaviour multipliers. Ranges maps a weapon
// name to the distances at which this personality may fire it.
type Profile struct {
	Name             string
	SpeedMult        float64
	AccuracyMult     float64
	Aggression       float64
	EvasionSkill     float64
	HesitationChance float64
	// EvasionInterval bounds how long a strafe direction is held, in ms.
	EvasionIntervalMinMs int
	EvasionIntervalMaxMs int
	Weight               float64
	Ranges               map[string]Band
}

// Clone returns a deep copy so callers can never alias catalog state.
func (p Profile) Clone() Profile {
	out := p
	out.Ranges = make(map[string]Band, len(p.Ranges))
	for k, v := range p.Ranges {
		out.Ranges[k] = v
	}
	return out
}

func (p Profile) validate(arsenal *Arsenal) error {
	if p.Name == "" {
		return errors.New("profile without name")
	}
	if p.Weight < 0 {
		return fmt.Errorf("profile %s: negative weight", p.Name)
	}
	if p.Aggression < 0 || p.Aggression > 1 {
		return fmt.Errorf("profile %s: aggression %.2f outside [0,1]", p.Name, p.Aggression)
	}
	if p.SpeedMult <= 0 || p.AccuracyMult <= 0 {
		return fmt.Errorf("profile %s: multipliers must be positive", p.Name)
	}
	if p.EvasionIntervalMinMs < 0 || p.EvasionIntervalMaxMs < p.EvasionIntervalMinMs {
		return fmt.Errorf("profile %s: invalid evasion interval", p.Name)
	}
	if len(p.Ranges) == 0 {
		return fmt.Errorf("profile %s: no weapon ranges", p.Name)
	}
	for name, b := range p.Ranges {
		if _, ok := arsenal.Lookup(name); !ok {
			return fmt.Errorf("profile %s: unknown weapon %q", p.Name, name)
		}
		if b.Min < 0 || b.Max < b.Min {
			return fmt.Errorf("profile %s: invalid band for %s", p.Name, name)
		}
	}
	return nil
}

// Source is the random draw the catalog needs for weighted selection.
type Source interface {
	Float64() float64
}

// Catalog is an immutable set of profiles with a weighted spawn distribution.
type Catalog struct {
	arsenal  *Arsenal
	profiles []Profile
	index    map[string]int
	total    float64
}

// NewCatalog validates the profiles against the arsenal. Names must be
// unique and the weights must sum to a positive value.
func NewCatalog(arsenal *Arsenal, profiles ...Profile) (*Catalog, error) {
	if arsenal == nil {
		return nil, errors.New("catalog needs an arsenal")
	}
	c := &Catalog{arsenal: arsenal, index: make(map[string]int, len(profiles))}
	for _, p := range profiles {
		if err := p.validate(arsenal); err != nil {
			return nil, err
		}
		if _, dup := c.index[p.Name]; dup {
			return nil, fmt.Errorf("duplicate profile %q", p.Name)
		}
		c.index[p.Name] = len(c.profiles)
		c.profiles = append(c.profiles, p.Clone())
		c.total += p.Weight
	}
	if c.total <= 0 {
		return nil, errors.New("profile weights sum to zero")
	}
	return c, nil
}

// Arsenal returns the weapon table the catalog was validated against.
func (c *Catalog) Arsenal() *Arsenal { return c.arsenal }

// Lookup returns a copy of the named profile.
func (c *Catalog) Lookup(name string) (Profile, bool) {
	i, ok := c.index[name]
	if !ok {
		return Profile{}, false
	}
	return c.profiles[i].Clone(), true
}

// Names lists profile names in declaration order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.profiles))
	for i, p := range c.profiles {
		out[i] = p.Name
	}
	return out
}

// Probability returns the spawn probability of the named profile.
func (c *Catalog) Probability(name string) float64 {
	i, ok := c.index[name]
	if !ok {
		return 0
	}
	return c.profiles[i].Weight / c.total
}

// Pick draws one profile by weight and returns a copy of it.
func (c *Catalog) Pick(r Source) Profile {
	x := r.Float64() * c.total
	for _, p := range c.profiles {
		if p.Weight <= 0 {
			continue
		}
		if x < p.Weight {
			return p.Clone()
		}
		x -= p.Weight
	}
	// float rounding can leave x just above the last bucket
	for i := len(c.profiles) - 1; i >= 0; i-- {
		if c.profiles[i].Weight > 0 {
			return c.profiles[i].Clone()
		}
	}
	return c.profiles[0].Clone()
}

// WithWeights returns a new catalog with the given spawn weights replaced.
// Unknown names are rejected.
func (c *Catalog) WithWeights(weights map[string]float64) (*Catalog, error) {
	names := make([]string, 0, len(weights))
	for n := range weights {
		names = append(names, n)
	}
	sort.Strings(names)
	profiles := make([]Profile, len(c.profiles))
	for i, p := range c.profiles {
		profiles[i] = p.Clone()
	}
	for _, n := range names {
		i, ok := c.index[n]
		if !ok {
			return nil, fmt.Errorf("unknown personality %q", n)
		}
		profiles[i].Weight = weights[n]
	}
	return NewCatalog(c.arsenal, profiles...)
}

// DefaultCatalog returns the stock personalities over DefaultArsenal.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultArsenal(), DefaultProfiles()...)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultProfiles returns the stock personality table.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Name: "balanced", SpeedMult: 1.0, AccuracyMult: 1.0, Aggression: 0.5, EvasionSkill: 0.5,
			HesitationChance: 0.15, EvasionIntervalMinMs: 400, EvasionIntervalMaxMs: 700, Weight: 30,
			Ranges: map[string]Band{
				PulseCannon:    {Min: 0, Max: 20},
				PlasmaLauncher: {Min: 10, Max: 30},
				RailGun:        {Min: 25, Max: 45},
			},
		},
		{
			Name: "aggressive", SpeedMult: 1.25, AccuracyMult: 0.9, Aggression: 0.85, EvasionSkill: 0.3,
			HesitationChance: 0.05, EvasionIntervalMinMs: 500, EvasionIntervalMaxMs: 900, Weight: 25,
			Ranges: map[string]Band{
				PulseCannon:    {Min: 0, Max: 20},
				PlasmaLauncher: {Min: 0, Max: 30},
			},
		},
		{
			Name: "cautious", SpeedMult: 0.85, AccuracyMult: 1.1, Aggression: 0.25, EvasionSkill: 0.75,
			HesitationChance: 0.35, EvasionIntervalMinMs: 300, EvasionIntervalMaxMs: 500, Weight: 20,
			Ranges: map[string]Band{
				PlasmaLauncher: {Min: 15, Max: 30},
				RailGun:        {Min: 25, Max: 45},
			},
		},
		{
			Name: "sniper", SpeedMult: 0.9, AccuracyMult: 1.2, Aggression: 0.4, EvasionSkill: 0.4,
			HesitationChance: 0.2, EvasionIntervalMinMs: 600, EvasionIntervalMaxMs: 1000, Weight: 15,
			Ranges: map[string]Band{
				PlasmaLauncher: {Min: 20, Max: 30},
				RailGun:        {Min: 25, Max: 45},
			},
		},
		{
			Name: "erratic", SpeedMult: 1.1, AccuracyMult: 0.8, Aggression: 0.6, EvasionSkill: 0.9,
			HesitationChance: 0.25, EvasionIntervalMinMs: 200, EvasionIntervalMaxMs: 400, Weight: 10,
			Ranges: map[string]Band{
				PulseCannon:    {Min: 0, Max: 20},
				PlasmaLauncher: {Min: 5, Max: 30},
				RailGun:        {Min: 15, Max: 45},
			},
		},
	}
}
