package hostile

import (
	"math"

	"hostile-sim/internal/personality"
)

// HitChance is the per-shot hit probability of a burst: weapon accuracy
// scaled by the drone's skill, minus distance and altitude penalties,
// floored at 0.2 and never above the scaled accuracy.
func HitChance(w personality.Weapon, accuracyMult, dist, altDiff float64) float64 {
	base := w.Accuracy * accuracyMult
	hc := base - dist/w.Range*0.2
	if a := math.Abs(altDiff); a > 20 {
		hc -= math.Min(0.3, a/150)
	}
	hc = math.Max(0.2, hc)
	hc = math.Min(hc, base)
	return math.Min(hc, 1)
}

// selectWeapon picks a weapon whose personality band covers the current
// distance. Wounded drones take the fastest one; otherwise bands centred
// near the blend of current and learned range are favoured.
func (m *Manager) selectWeapon(d *Drone) (personality.Weapon, bool) {
	var cands []personality.Weapon
	for _, w := range m.weapons {
		if b, ok := d.Personality.Ranges[w.Name]; ok && b.Contains(d.Distance) {
			cands = append(cands, w)
		}
	}
	if len(cands) == 0 {
		return personality.Weapon{}, false
	}
	if d.Wounded {
		names := make([]string, len(cands))
		for i, w := range cands {
			names[i] = w.Name
		}
		return m.arsenal.Fastest(names)
	}

	target := d.Distance
	if d.PreferredRange > 0 {
		target = (1-m.tuning.PreferredBlend)*d.Distance + m.tuning.PreferredBlend*d.PreferredRange
	}
	weights := make([]float64, len(cands))
	var total float64
	for i, w := range cands {
		weights[i] = 1 / (1 + math.Abs(d.Personality.Ranges[w.Name].Center()-target))
		total += weights[i]
	}
	x := m.rnd.Float64() * total
	for i, w := range cands {
		if x < weights[i] {
			return w, true
		}
		x -= weights[i]
	}
	return cands[len(cands)-1], true
}

func (m *Manager) beginBurst(d *Drone, now int64) {
	w, ok := m.arsenal.Lookup(d.AttackWeapon)
	if !ok {
		w = m.weapons[0]
		d.AttackWeapon = w.Name
	}
	d.ShotsToFire = int(between(m.rnd, int64(w.ShotsMin), int64(w.ShotsMax)))
	d.ShotsFired = 0
	d.HitsThisBurst = 0
	d.HitChance = HitChance(w, d.AccuracySkill, d.Distance, d.AltitudeDiff)
	d.NextShotAt = now
	d.attackDistance = d.Distance
}

// fireBurst fires every shot that is due. It reports whether the burst is
// over and whether the drone broke it off early.
func (m *Manager) fireBurst(d *Drone, t *tick) (done, brokeOff bool) {
	w, _ := m.arsenal.Lookup(d.AttackWeapon)
	for d.ShotsFired < d.ShotsToFire && t.now >= d.NextShotAt {
		if m.playerDown {
			return true, true
		}
		m.audio.Play(d.ID, ChannelCombat, WeaponSound(w.Name), d.Emitter())
		hit := m.rnd.Float64() < d.HitChance
		d.ShotsFired++
		ev := m.event(EventShot, d, t.now)
		ev.Weapon = w.Name
		ev.Distance = d.Distance
		if hit {
			d.HitsThisBurst++
			ev.Hit = true
			ev.Damage = w.Damage
			m.audio.Cue(SoundProjectile)
			if !t.dmg.ApplyDamage(w.Damage, t.now) {
				m.playerDown = true
			}
		}
		m.emit(ev)
		d.NextShotAt += between(m.rnd, int64(w.IntervalMinMs), int64(w.IntervalMaxMs))
		if m.frustrated(d) {
			return true, true
		}
	}
	return d.ShotsFired >= d.ShotsToFire, false
}

// frustrated rolls whether a poorly landing burst is abandoned. Calm
// drones give up more easily.
func (m *Manager) frustrated(d *Drone) bool {
	if d.ShotsFired < m.tuning.FrustrationMinShots || d.ShotsFired >= d.ShotsToFire {
		return false
	}
	rate := float64(d.HitsThisBurst) / float64(d.ShotsFired)
	if rate >= m.tuning.FrustrationHitRate {
		return false
	}
	return chance(m.rnd, 0.5*(1-d.Aggression)+0.15)
}

// finishBurst records the outcome and sends the drone to cooldown.
func (m *Manager) finishBurst(d *Drone, now int64, aborted bool) {
	m.recordOutcome(d, now, aborted)
	m.enter(d, m.to(d, StateCooldown), now)
}

// recordOutcome adds the current burst to the weapon history and reports
// it. It does nothing outside attacking.
func (m *Manager) recordOutcome(d *Drone, now int64, aborted bool) {
	if d.AttackWeapon == "" || d.State != StateAttacking {
		return
	}
	d.recordBurst(BurstOutcome{
		Weapon:   d.AttackWeapon,
		Shots:    d.ShotsFired,
		Hits:     d.HitsThisBurst,
		Distance: d.attackDistance,
	}, m.tuning.HistorySize, m.tuning.PreferredHitRate)
	typ := EventBurstComplete
	if aborted {
		typ = EventBurstAborted
	}
	ev := m.event(typ, d, now)
	ev.Weapon = d.AttackWeapon
	ev.Shots = d.ShotsFired
	ev.Hits = d.HitsThisBurst
	if w, ok := m.arsenal.Lookup(d.AttackWeapon); ok {
		ev.Damage = float64(d.HitsThisBurst) * w.Damage
	}
	ev.Distance = d.attackDistance
	m.emit(ev)
	m.log.Debug("burst finished", "drone_id", d.ID, "weapon", d.AttackWeapon,
		"shots", d.ShotsFired, "hits", d.HitsThisBurst, "aborted", aborted)
}
