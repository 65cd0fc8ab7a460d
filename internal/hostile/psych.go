package hostile

import "math"

// DamageDrone applies player damage to a drone and reports whether it was
// destroyed. Events raised here are returned by the next Update.
func (m *Manager) DamageDrone(id int, amount float64, now int64) bool {
	d, ok := m.lookup(id)
	if !ok || !d.Alive() || amount <= 0 {
		return false
	}
	d.Health = math.Max(0, d.Health-amount)
	m.audio.Cue(SoundHitConfirm)
	if d.Health <= 0 {
		m.destroy(d, now)
		return true
	}
	d.recentDamage = append(d.recentDamage, damageMark{at: now, amount: amount})

	m.checkWounded(d, now)
	m.checkSuppression(d, now)
	m.checkDistress(d, amount, now)
	return false
}

// checkWounded applies the wounded modifiers once, on first crossing the
// threshold.
func (m *Manager) checkWounded(d *Drone, now int64) {
	if d.Wounded || d.Health > m.tuning.WoundedThreshold {
		return
	}
	d.Wounded = true
	d.EvasionSkill = math.Min(1, d.EvasionSkill*m.tuning.WoundedEvasionMult)
	d.Aggression *= m.tuning.WoundedAggressionMult
	m.emit(m.event(EventWounded, d, now))
}

func (m *Manager) checkSuppression(d *Drone, now int64) {
	cutoff := now - m.tuning.SuppressionWindowMs
	kept := d.recentDamage[:0]
	var total float64
	for _, mark := range d.recentDamage {
		if mark.at >= cutoff {
			kept = append(kept, mark)
			total += mark.amount
		}
	}
	d.recentDamage = kept

	if d.Suppressed || now < d.SuppressionImmuneUntil || total <= m.tuning.SuppressionDamage {
		return
	}
	d.Suppressed = true
	d.SuppressedUntil = now + between(m.rnd, m.tuning.Suppression.Min, m.tuning.Suppression.Max)
	m.emit(m.event(EventSuppressed, d, now))
	switch d.State {
	case StateAttacking:
		m.finishBurst(d, now, true)
	case StateWindingUp:
		m.enter(d, m.to(d, StateCooldown), now)
	}
}

func (m *Manager) checkDistress(d *Drone, hit float64, now int64) {
	if d.distressSent || (hit < m.tuning.DistressHit && d.Health > m.tuning.DistressHealth) {
		return
	}
	d.distressSent = true
	d.DistressActive = true
	d.distressUntil = now + m.tuning.DistressBoostMs
	m.emit(m.event(EventDistress, d, now))

	for _, o := range m.active() {
		if o == d || (o.State != StatePatrol && o.State != StateSearching) {
			continue
		}
		if distance(d.X, d.Y, o.X, o.Y) > m.tuning.DistressRadius {
			continue
		}
		o.BoostUntil = now + m.tuning.DistressBoostMs
		m.enter(o, m.to(o, StateDetecting), now)
		ev := m.event(EventAlerted, o, now)
		ev.Other = d.ID
		m.emit(ev)
	}
}

// updatePsych expires timed psychological states.
func (m *Manager) updatePsych(d *Drone, now int64) {
	if d.Suppressed && now >= d.SuppressedUntil {
		d.Suppressed = false
		d.SuppressionImmuneUntil = now + m.tuning.SuppressionImmunityMs
		m.emit(m.event(EventSuppressionEnded, d, now))
	}
	if d.DistressActive && now >= d.distressUntil {
		d.DistressActive = false
	}
}

func (m *Manager) destroy(d *Drone, now int64) {
	// a burst cut short by death still counts
	m.recordOutcome(d, now, true)
	d.State = StateDestroyed
	d.StateStart = now
	d.StateDuration = 0
	d.DestroyedAt = now
	d.clearTactics()
	m.activeValid = false

	m.audio.Stop(d.ID, ChannelAmbient)
	m.audio.Stop(d.ID, ChannelPassby)
	m.audio.Stop(d.ID, ChannelSupersonic)
	e := d.Emitter()
	m.audio.Play(d.ID, ChannelExplosion, SoundExplosion, e)
	m.audio.Play(d.ID, ChannelDebris, SoundDebris, e)
	m.speech.Speak("Hostile destroyed")
	m.emit(m.event(EventDestroyed, d, now))
	m.log.Info("drone destroyed", "drone_id", d.ID, "personality", d.Personality.Name)
}

// ForceLoseTrack breaks contact for every detecting or engaging drone
// farther than loseRange, sending it to searching. Calling it again in the
// same tick is a no-op since those drones are already searching. It returns
// how many drones were affected.
func (m *Manager) ForceLoseTrack(now int64, loseRange float64) int {
	n := 0
	for _, d := range m.active() {
		if d.State != StateDetecting && d.State != StateEngaging {
			continue
		}
		if d.Distance <= loseRange {
			continue
		}
		m.enter(d, m.to(d, StateSearching), now)
		m.emit(m.event(EventForcedSearch, d, now))
		n++
	}
	return n
}
