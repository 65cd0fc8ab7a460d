package hostile

// transition is the result of a state step: where to go next and for how
// long the new state lasts.
type transition struct {
	next     State
	duration int64
}

// to draws the duration for entering s. Every timed state draws from its
// own range so two drones never move in lockstep.
func (m *Manager) to(d *Drone, s State) transition {
	t := m.tuning
	span := func(sp Span) int64 { return between(m.rnd, sp.Min, sp.Max) }
	switch s {
	case StateSpawning:
		return transition{s, span(t.Spawning)}
	case StateDetecting:
		dur := span(t.Detecting)
		if chance(m.rnd, d.Personality.HesitationChance) {
			dur += span(t.Hesitation)
		}
		return transition{s, dur}
	case StateWindingUp:
		return transition{s, span(t.WindUp)}
	case StateAttacking:
		return transition{s, span(t.AttackCap)}
	case StateCooldown:
		return transition{s, span(t.Cooldown)}
	case StateSearching:
		return transition{s, t.SearchTimeoutMs}
	}
	return transition{next: s}
}

// ranges are the detection distances in effect for one tick.
type ranges struct {
	detect, lose, reacquire, attack float64
}

func (m *Manager) rangesFor(camo bool) ranges {
	t := m.tuning
	r := ranges{detect: t.DetectRange, lose: t.LoseTrackRange, reacquire: t.ReacquireRange, attack: t.AttackRange}
	if camo {
		r.detect *= t.StealthFactor
		r.lose *= t.StealthFactor
		r.reacquire *= t.StealthFactor
	}
	return r
}

// advance runs the current state's behaviour and applies its transition.
func (m *Manager) advance(d *Drone, t *tick) {
	var (
		tr transition
		ok bool
	)
	switch d.State {
	case StateSpawning:
		tr, ok = m.stepSpawning(d, t)
	case StatePatrol:
		tr, ok = m.stepPatrol(d, t)
	case StateDetecting:
		tr, ok = m.stepDetecting(d, t)
	case StateEngaging:
		tr, ok = m.stepEngaging(d, t)
	case StateWindingUp:
		tr, ok = m.stepWindingUp(d, t)
	case StateAttacking:
		m.stepAttacking(d, t)
		return
	case StateCooldown:
		tr, ok = m.stepCooldown(d, t)
	case StateSearching:
		tr, ok = m.stepSearching(d, t)
	}
	if ok {
		m.enter(d, tr, t.now)
	}
}

func (m *Manager) stepSpawning(d *Drone, t *tick) (transition, bool) {
	if d.expired(t.now) {
		return m.to(d, StatePatrol), true
	}
	return transition{}, false
}

func (m *Manager) stepPatrol(d *Drone, t *tick) (transition, bool) {
	if d.Distance <= t.ranges.detect {
		return m.to(d, StateDetecting), true
	}
	if moveToward(d, d.PatrolTarget, m.speedOf(d, t.now), t.dt) {
		d.PatrolTarget = m.patrolPoint(t.player)
	}
	return transition{}, false
}

func (m *Manager) stepDetecting(d *Drone, t *tick) (transition, bool) {
	if !d.expired(t.now) {
		return transition{}, false
	}
	if !d.falseStartUsed && chance(m.rnd, m.tuning.FalseStartChance) {
		d.falseStartUsed = true
		m.emit(m.event(EventFalseStart, d, t.now))
		return m.to(d, StatePatrol), true
	}
	return m.to(d, StateEngaging), true
}

func (m *Manager) stepEngaging(d *Drone, t *tick) (transition, bool) {
	if d.Distance > t.ranges.lose {
		return m.to(d, StateSearching), true
	}
	d.refreshLastKnown(t.player)
	m.coordinate(d, t)
	m.moveEngaging(d, t)

	if d.Distance > t.ranges.attack || !m.canFire(d, t.now) {
		return transition{}, false
	}
	w, ok := m.selectWeapon(d)
	if !ok {
		return transition{}, false
	}
	d.AttackWeapon = w.Name
	if m.tuning.DisableWindUp || d.Role == RoleCrossfire {
		return m.to(d, StateAttacking), true
	}
	return m.to(d, StateWindingUp), true
}

func (m *Manager) canFire(d *Drone, now int64) bool {
	return !d.Suppressed && !m.playerDown && now >= d.HoldFireUntil
}

func (m *Manager) stepWindingUp(d *Drone, t *tick) (transition, bool) {
	if d.expired(t.now) {
		return m.to(d, StateAttacking), true
	}
	return transition{}, false
}

func (m *Manager) stepAttacking(d *Drone, t *tick) {
	done, brokeOff := m.fireBurst(d, t)
	if done || d.expired(t.now) {
		m.finishBurst(d, t.now, brokeOff)
	}
}

func (m *Manager) stepCooldown(d *Drone, t *tick) (transition, bool) {
	if d.Suppressed || m.beingAimedAt(d) {
		m.evade(d, t)
	}
	if t.now >= d.nextReassess {
		d.nextReassess = t.now + m.tuning.CooldownReassessMs
		moved := distance(d.lastAttackPlayer.X, d.lastAttackPlayer.Y, t.player.X, t.player.Y)
		if d.Distance < m.tuning.ReengageDistance || moved > m.tuning.PlayerMovedDistance {
			if d.Distance <= t.ranges.lose {
				return m.to(d, StateEngaging), true
			}
			return m.to(d, StateSearching), true
		}
	}
	if d.expired(t.now) {
		if d.Distance <= t.ranges.lose {
			return m.to(d, StateEngaging), true
		}
		return m.to(d, StateSearching), true
	}
	return transition{}, false
}

func (m *Manager) stepSearching(d *Drone, t *tick) (transition, bool) {
	if d.Distance <= t.ranges.reacquire {
		return m.to(d, StateDetecting), true
	}
	if d.expired(t.now) {
		return m.to(d, StatePatrol), true
	}
	if t.now-d.lastExpand >= m.tuning.SearchExpandMs && m.expandSearch(d, t.now) {
		ev := m.event(EventSearchExpanded, d, t.now)
		ev.Distance = d.searchRadius
		m.emit(ev)
	}
	if d.waypointIdx >= len(d.Waypoints) {
		return m.to(d, StatePatrol), true
	}
	wp := d.Waypoints[d.waypointIdx]
	moveToward(d, wp, m.speedOf(d, t.now), t.dt)
	if distance(d.X, d.Y, wp.X, wp.Y) <= waypointReach {
		d.waypointIdx++
		if d.waypointIdx >= len(d.Waypoints) {
			return m.to(d, StatePatrol), true
		}
	}
	return transition{}, false
}

// enter applies a transition and runs the entry actions of the new state.
func (m *Manager) enter(d *Drone, tr transition, now int64) {
	prev := d.State
	d.State = tr.next
	d.StateStart = now
	d.StateDuration = tr.duration
	m.log.Debug("drone state", "drone_id", d.ID, "from", prev.String(), "state", tr.next.String(),
		"duration_ms", tr.duration)

	switch tr.next {
	case StatePatrol:
		d.clearTactics()
		d.PatrolTarget = m.patrolPoint(m.player)
		if prev == StateSearching {
			m.emit(m.event(EventPatrol, d, now))
		}

	case StateDetecting:
		d.refreshLastKnown(m.player)
		m.audio.Play(d.ID, ChannelCombat, SoundBeacon, d.Emitter())
		if prev == StateSearching {
			m.speech.Speak("Drone reacquired")
			m.emit(m.event(EventReacquired, d, now))
		} else {
			m.emit(m.event(EventDetected, d, now))
		}

	case StateEngaging:
		d.refreshLastKnown(m.player)
		d.falseStartUsed = false
		// roles are reassigned on the first coordination pass
		d.Role = RoleNone
		d.squadRan = false
		if prev == StateDetecting {
			m.speech.Speak("Drone engaging")
			m.audio.Play(d.ID, ChannelCombat, SoundScan, d.Emitter())
		}
		m.emit(m.event(EventEngaged, d, now))

	case StateWindingUp:
		m.audio.Play(d.ID, ChannelCombat, SoundWindUp, d.Emitter())
		ev := m.event(EventWindUp, d, now)
		ev.Weapon = d.AttackWeapon
		m.emit(ev)

	case StateAttacking:
		m.beginBurst(d, now)
		ev := m.event(EventBurstStarted, d, now)
		ev.Weapon = d.AttackWeapon
		ev.Shots = d.ShotsToFire
		ev.Distance = d.Distance
		m.emit(ev)

	case StateCooldown:
		d.AssaultAngle = 0
		d.lastAttackPlayer = Point{m.player.X, m.player.Y}
		d.nextReassess = now + m.tuning.CooldownReassessMs

	case StateSearching:
		d.clearTactics()
		m.startSearch(d, now)
		m.speech.Speak("Drone lost contact")
		m.emit(m.event(EventLost, d, now))
	}
}
