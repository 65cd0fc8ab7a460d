package sim

import (
	"math"
	"math/rand"

	"hostile-sim/internal/hostile"
	"hostile-sim/internal/scenario"
)

const (
	playerClimbRate   = 15   // ft/s
	camoRevealMs      = 3000 // firing under camo exposes the player this long
	stealthBreakRange = 15.0 // drones closer than this keep track when camo engages
)

// player is the scripted target the drones hunt.
type player struct {
	hostile.Player
	camo        bool
	hidden      bool // camouflage was effective last tick
	revealUntil int64
	nextShot    int64
}

// move applies one tick of the phase script.
func (p *player) move(sc scenario.PlayerScript, dt float64) {
	p.Facing = math.Mod(p.Facing+sc.TurnRate*dt+360, 360)
	rad := p.Facing * math.Pi / 180
	p.X += math.Sin(rad) * sc.Speed * dt
	p.Y += math.Cos(rad) * sc.Speed * dt

	step := playerClimbRate * dt
	switch diff := sc.Altitude - p.Altitude; {
	case math.Abs(diff) <= step:
		p.Altitude = sc.Altitude
	case diff > 0:
		p.Altitude += step
	default:
		p.Altitude -= step
	}
}

// effectiveCamo is camouflage that is on and not revealed by firing.
func (p *player) effectiveCamo(now int64) bool {
	return p.camo && now >= p.revealUntil
}

// closest picks the nearest drone of those inside the fire cone.
func closest(drones []hostile.Drone) (hostile.Drone, bool) {
	if len(drones) == 0 {
		return hostile.Drone{}, false
	}
	best := drones[0]
	for _, d := range drones[1:] {
		if d.Distance < best.Distance {
			best = d
		}
	}
	return best, true
}

// playerHitChance falls from 0.9 at point blank to 0.5 at the edge of range.
func playerHitChance(dist, rangeM float64) float64 {
	if rangeM <= 0 {
		return 0
	}
	return 0.9 - 0.4*math.Min(dist/rangeM, 1)
}

// fire shoots at most one round per interval at the closest drone of
// inCone. It returns the target, whether it was hit and whether a shot was
// taken at all.
func (p *player) fire(sc scenario.PlayerScript, now int64, inCone []hostile.Drone, r *rand.Rand) (hostile.Drone, bool, bool) {
	if !sc.Fires() || now < p.nextShot {
		return hostile.Drone{}, false, false
	}
	d, ok := closest(inCone)
	if !ok {
		return hostile.Drone{}, false, false
	}
	p.nextShot = now + sc.FireIntervalMs
	if p.camo {
		p.revealUntil = now + camoRevealMs
	}
	return d, r.Float64() < playerHitChance(d.Distance, sc.FireRange), true
}
