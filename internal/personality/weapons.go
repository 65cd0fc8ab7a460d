package personality

import (
	"errors"
	"fmt"
)

// Weapon names of the default arsenal.
const (
	PulseCannon    = "pulse_cannon"
	PlasmaLauncher = "plasma_launcher"
	RailGun        = "rail_gun"
)

// Weapon describes one drone weapon. Intervals are per-shot delays in ms.
type Weapon struct {
	Name          string
	Damage        float64
	Range         float64
	Accuracy      float64
	ShotsMin      int
	ShotsMax      int
	IntervalMinMs int
	IntervalMaxMs int
}

// MeanInterval is the average delay between two shots of a burst.
func (w Weapon) MeanInterval() float64 {
	return float64(w.IntervalMinMs+w.IntervalMaxMs) / 2
}

func (w Weapon) validate() error {
	switch {
	case w.Name == "":
		return errors.New("weapon without name")
	case w.Damage <= 0 || w.Range <= 0:
		return fmt.Errorf("weapon %s: damage and range must be positive", w.Name)
	case w.Accuracy <= 0 || w.Accuracy > 1:
		return fmt.Errorf("weapon %s: accuracy %.2f outside (0,1]", w.Name, w.Accuracy)
	case w.ShotsMin < 1 || w.ShotsMax < w.ShotsMin:
		return fmt.Errorf("weapon %s: invalid shot range %d..%d", w.Name, w.ShotsMin, w.ShotsMax)
	case w.IntervalMinMs < 1 || w.IntervalMaxMs < w.IntervalMinMs:
		return fmt.Errorf("weapon %s: invalid interval %d..%d", w.Name, w.IntervalMinMs, w.IntervalMaxMs)
	}
	return nil
}

// Arsenal is an immutable, ordered set of weapons.
type Arsenal struct {
	weapons []Weapon
	index   map[string]int
}

// NewArsenal validates the weapons and builds a lookup table. Order is kept
// so that selection ties resolve the same way on every run.
func NewArsenal(weapons ...Weapon) (*Arsenal, error) {
	if len(weapons) == 0 {
		return nil, errors.New("arsenal is empty")
	}
	a := &Arsenal{index: make(map[string]int, len(weapons))}
	for _, w := range weapons {
		if err := w.validate(); err != nil {
			return nil, err
		}
		if _, dup := a.index[w.Name]; dup {
			return nil, fmt.Errorf("duplicate weapon %q", w.Name)
		}
		a.index[w.Name] = len(a.weapons)
		a.weapons = append(a.weapons, w)
	}
	return a, nil
}

// DefaultArsenal returns the three stock drone weapons.
func DefaultArsenal() *Arsenal {
	a, err := NewArsenal(
		Weapon{Name: PulseCannon, Damage: 2, Range: 20, Accuracy: 0.80, ShotsMin: 4, ShotsMax: 10, IntervalMinMs: 70, IntervalMaxMs: 120},
		Weapon{Name: PlasmaLauncher, Damage: 4, Range: 30, Accuracy: 0.75, ShotsMin: 6, ShotsMax: 12, IntervalMinMs: 40, IntervalMaxMs: 80},
		Weapon{Name: RailGun, Damage: 8, Range: 45, Accuracy: 0.70, ShotsMin: 4, ShotsMax: 8, IntervalMinMs: 100, IntervalMaxMs: 160},
	)
	if err != nil {
		panic(err)
	}
	return a
}

// Lookup returns the weapon with the given name.
func (a *Arsenal) Lookup(name string) (Weapon, bool) {
	i, ok := a.index[name]
	if !ok {
		return Weapon{}, false
	}
	return a.weapons[i], true
}

// Weapons returns a copy of the arsenal in declaration order.
func (a *Arsenal) Weapons() []Weapon {
	out := make([]Weapon, len(a.weapons))
	copy(out, a.weapons)
	return out
}

// Fastest returns the weapon among names with the shortest mean shot interval.
func (a *Arsenal) Fastest(names []string) (Weapon, bool) {
	var best Weapon
	found := false
	for _, n := range names {
		w, ok := a.Lookup(n)
		if !ok {
			continue
		}
		if !found || w.MeanInterval() < best.MeanInterval() {
			best, found = w, true
		}
	}
	return best, found
}
