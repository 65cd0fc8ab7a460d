package hostile

import "math"

// moveToward steps d toward target and reports whether it has arrived.
func moveToward(d *Drone, target Point, speed, dt float64) bool {
	dx, dy := target.X-d.X, target.Y-d.Y
	dist := math.Hypot(dx, dy)
	if dist < 0.5 {
		return true
	}
	step := speed * dt
	if step > dist {
		step = dist
	}
	d.X += dx / dist * step
	d.Y += dy / dist * step
	return false
}

// adjustAltitude closes the altitude gap to the player at the climb rate.
func (m *Manager) adjustAltitude(d *Drone, dt float64) {
	switch {
	case d.AltitudeDiff > 5:
		d.Altitude = math.Max(0, d.Altitude-d.ClimbRate*dt)
	case d.AltitudeDiff < -5:
		d.Altitude = math.Min(m.tuning.AltitudeMax, d.Altitude+d.ClimbRate*dt)
	}
}

func (m *Manager) speedOf(d *Drone, now int64) float64 {
	if now < d.BoostUntil {
		return d.Speed * m.tuning.DistressSpeedBoost
	}
	return d.Speed
}

func (m *Manager) patrolPoint(p Player) Point {
	r := uniform(m.rnd, m.tuning.PatrolRadiusMin, m.tuning.PatrolRadiusMax)
	return pointAt(p.X, p.Y, uniform(m.rnd, 0, 360), r)
}

func (m *Manager) evasionInterval(d *Drone) int64 {
	lo, hi := int64(d.Personality.EvasionIntervalMinMs), int64(d.Personality.EvasionIntervalMaxMs)
	if hi <= 0 {
		return 500
	}
	return between(m.rnd, lo, hi)
}

// evade strafes perpendicular to the player. Direction flips on a
// personality interval; a flip may be a feint that doubles back shortly
// after.
func (m *Manager) evade(d *Drone, t *tick) {
	dx, dy := t.player.X-d.X, t.player.Y-d.Y
	dist := math.Hypot(dx, dy)
	if dist < 0.5 {
		return
	}
	switch {
	case d.evasionSwitchAt == 0:
		d.EvasionDir = coin(m.rnd)
		d.evasionSwitchAt = t.now + m.evasionInterval(d)
	case d.feintReturnAt > 0:
		if t.now >= d.feintReturnAt {
			d.EvasionDir = -d.EvasionDir
			d.feintReturnAt = 0
			d.evasionSwitchAt = t.now + m.evasionInterval(d)
		}
	case t.now >= d.evasionSwitchAt:
		d.EvasionDir = -d.EvasionDir
		if chance(m.rnd, m.tuning.FeintChanceScale*d.EvasionSkill) {
			d.feintReturnAt = t.now + between(m.rnd, m.tuning.FeintDelay.Min, m.tuning.FeintDelay.Max)
		} else {
			d.evasionSwitchAt = t.now + m.evasionInterval(d)
		}
	}
	step := m.tuning.EvasionSpeed * (0.5 + d.EvasionSkill) * t.dt * d.EvasionDir
	d.X += -dy / dist * step
	d.Y += dx / dist * step
}

func (m *Manager) beingAimedAt(d *Drone) bool {
	return math.Abs(d.Bearing) < m.tuning.EvasionAngle
}

// moveEngaging pursues the player. Aimed-at drones strafe while closing
// slowly; assault partners converge from their offset angle; flankers take
// the side opposite another engaging drone; everyone else charges.
func (m *Manager) moveEngaging(d *Drone, t *tick) {
	p := t.player
	dist := distance(d.X, d.Y, p.X, p.Y)
	if dist < 0.5 {
		return
	}
	speed := m.speedOf(d, t.now) * m.tuning.EngageSpeedMult

	switch {
	case (m.beingAimedAt(d) || d.Suppressed) && dist > 5:
		m.evade(d, t)
		moveToward(d, Point{p.X, p.Y}, speed*0.5, t.dt)
	case d.AssaultAngle != 0:
		from := compassAngle(p.X, p.Y, d.X, d.Y)
		target := pointAt(p.X, p.Y, from+d.AssaultAngle, math.Max(dist*0.7, 1))
		moveToward(d, target, speed, t.dt)
	case d.Role != RolePrimary:
		if other := m.flankAnchor(d); other != nil {
			opposite := compassAngle(p.X, p.Y, other.X, other.Y) + 180
			moveToward(d, pointAt(p.X, p.Y, opposite, m.tuning.FlankDistance), speed, t.dt)
			break
		}
		moveToward(d, Point{p.X, p.Y}, speed, t.dt)
	default:
		moveToward(d, Point{p.X, p.Y}, speed, t.dt)
	}
	m.adjustAltitude(d, t.dt)
}

// flankAnchor is the first other drone in combat, in collection order.
func (m *Manager) flankAnchor(d *Drone) *Drone {
	for _, o := range m.active() {
		if o != d && o.State.combat() {
			return o
		}
	}
	return nil
}
