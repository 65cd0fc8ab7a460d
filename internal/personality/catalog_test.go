package personality

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogRejectsDuplicateNames(t *testing.T) {
	p := DefaultProfiles()[0]
	_, err := NewCatalog(DefaultArsenal(), p, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNewCatalogRejectsUnknownWeapon(t *testing.T) {
	p := DefaultProfiles()[0]
	p.Ranges = map[string]Band{"flamethrower": {Min: 0, Max: 5}}
	_, err := NewCatalog(DefaultArsenal(), p)
	require.Error(t, err)
}

func TestNewCatalogRejectsZeroWeights(t *testing.T) {
	p := DefaultProfiles()[0]
	p.Weight = 0
	_, err := NewCatalog(DefaultArsenal(), p)
	require.Error(t, err)
}

func TestNewCatalogRejectsInvertedBand(t *testing.T) {
	p := DefaultProfiles()[0]
	p.Ranges = map[string]Band{PulseCannon: {Min: 20, Max: 5}}
	_, err := NewCatalog(DefaultArsenal(), p)
	require.Error(t, err)
}

func TestLookupReturnsCopy(t *testing.T) {
	c := DefaultCatalog()
	p, ok := c.Lookup("balanced")
	require.True(t, ok)
	p.Ranges[PulseCannon] = Band{Min: 99, Max: 100}
	p.Aggression = 0

	again, _ := c.Lookup("balanced")
	assert.Equal(t, Band{Min: 0, Max: 20}, again.Ranges[PulseCannon])
	assert.Equal(t, 0.5, again.Aggression)
}

func TestPickConvergesToWeights(t *testing.T) {
	c := DefaultCatalog()
	r := rand.New(rand.NewSource(42))
	const n = 20000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		counts[c.Pick(r).Name]++
	}
	for _, name := range c.Names() {
		got := float64(counts[name]) / n
		want := c.Probability(name)
		assert.InDelta(t, want, got, 0.015, name)
	}
}

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func TestPickBoundaries(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, "balanced", c.Pick(fixedSource(0)).Name)
	assert.Equal(t, "erratic", c.Pick(fixedSource(math.Nextafter(1, 0))).Name)
}

func TestWithWeights(t *testing.T) {
	c := DefaultCatalog()
	only, err := c.WithWeights(map[string]float64{
		"balanced": 0, "aggressive": 0, "cautious": 0, "sniper": 1, "erratic": 0,
	})
	require.NoError(t, err)
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		assert.Equal(t, "sniper", only.Pick(r).Name)
	}
	// original untouched
	assert.InDelta(t, 0.3, c.Probability("balanced"), 1e-9)

	_, err = c.WithWeights(map[string]float64{"ghost": 1})
	assert.Error(t, err)
}

func TestArsenalFastest(t *testing.T) {
	a := DefaultArsenal()
	w, ok := a.Fastest([]string{PulseCannon, PlasmaLauncher, RailGun})
	require.True(t, ok)
	assert.Equal(t, PlasmaLauncher, w.Name)

	w, ok = a.Fastest([]string{RailGun, PulseCannon})
	require.True(t, ok)
	assert.Equal(t, PulseCannon, w.Name)

	_, ok = a.Fastest(nil)
	assert.False(t, ok)
}

func TestNewArsenalValidation(t *testing.T) {
	_, err := NewArsenal()
	assert.Error(t, err)
	_, err = NewArsenal(Weapon{Name: "x", Damage: 1, Range: 10, Accuracy: 0.5, ShotsMin: 3, ShotsMax: 2, IntervalMinMs: 10, IntervalMaxMs: 20})
	assert.Error(t, err)
}
