package sim

import (
	"math"
	"math/rand"
	"testing"

	"hostile-sim/internal/hostile"
	"hostile-sim/internal/scenario"
)

func TestPlayerMoveFollowsFacing(t *testing.T) {
	p := player{}
	p.Facing = 90
	p.move(scenario.PlayerScript{Speed: 10, Altitude: 30}, 1)
	if math.Abs(p.X-10) > 1e-9 || math.Abs(p.Y) > 1e-9 {
		t.Fatalf("facing east should move +X, got (%v, %v)", p.X, p.Y)
	}
	if p.Altitude != 15 {
		t.Fatalf("expected climb at 15 ft/s, got %v", p.Altitude)
	}
	p.move(scenario.PlayerScript{TurnRate: 300, Altitude: 30}, 1)
	if p.Facing != 30 {
		t.Fatalf("expected facing to wrap to 30, got %v", p.Facing)
	}
	if p.Altitude != 30 {
		t.Fatalf("expected altitude to settle at 30, got %v", p.Altitude)
	}
}

func TestPlayerFireIntervalAndReveal(t *testing.T) {
	sc := scenario.PlayerScript{FireRange: 40, FireArc: 30, FireDamage: 10, FireIntervalMs: 500}
	p := player{camo: true}
	r := rand.New(rand.NewSource(1))
	drones := []hostile.Drone{{ID: 1, Distance: 30}, {ID: 2, Distance: 12}}

	d, _, shot := p.fire(sc, 1000, drones, r)
	if !shot || d.ID != 2 {
		t.Fatalf("expected a shot at the closest drone, got shot=%v id=%d", shot, d.ID)
	}
	if p.effectiveCamo(1000 + camoRevealMs - 1) {
		t.Fatal("firing under camo should reveal the player")
	}
	if !p.effectiveCamo(1000 + camoRevealMs) {
		t.Fatal("camo should return after the reveal window")
	}
	if _, _, shot := p.fire(sc, 1200, drones, r); shot {
		t.Fatal("fired inside the interval")
	}
	if _, _, shot := p.fire(sc, 1500, nil, r); shot {
		t.Fatal("fired with nothing in the cone")
	}
}

func TestPlayerHitChance(t *testing.T) {
	if got := playerHitChance(0, 40); got != 0.9 {
		t.Errorf("point blank %v", got)
	}
	if got := playerHitChance(80, 40); got != 0.5 {
		t.Errorf("beyond range %v", got)
	}
	if got := playerHitChance(10, 0); got != 0 {
		t.Errorf("no range %v", got)
	}
}
