package hostile

// coordinate assigns d's tactical role. It runs at most once per throttle
// interval per drone and reads neighbours as they are at this point of the
// tick: drones earlier in the collection are already updated, later ones
// still hold last tick's state.
func (m *Manager) coordinate(d *Drone, t *tick) {
	sq := m.tuning.Squad
	if d.squadRan && t.now-d.lastSquad < sq.ThrottleMs {
		return
	}
	d.squadRan = true
	d.lastSquad = t.now

	var engaging, firing []*Drone
	for _, o := range m.active() {
		if o == d {
			continue
		}
		switch o.State {
		case StateEngaging:
			engaging = append(engaging, o)
		case StateWindingUp, StateAttacking:
			firing = append(firing, o)
		}
	}

	role := RolePrimary
	switch {
	case len(engaging) == 0 && len(firing) == 0:
		// solo
	case len(firing) > 0:
		role = RoleSupport
		for _, o := range firing {
			if o.State == StateWindingUp || t.now-o.StateStart <= sq.CrossfireWindowMs {
				role = RoleCrossfire
				break
			}
		}
		if role == RoleSupport && d.Role != RoleSupport && chance(m.rnd, sq.SupportHoldChance) {
			d.HoldFireUntil = t.now + between(m.rnd, sq.SupportHold.Min, sq.SupportHold.Max)
		}
	default:
		for _, o := range engaging {
			if o.Aggression > d.Aggression || (o.Aggression == d.Aggression && o.ID < d.ID) {
				role = RoleFlanker
				break
			}
		}
		m.tryAssault(d, engaging, t)
	}

	if role == RolePrimary {
		for _, o := range engaging {
			if o.Role == RolePrimary {
				o.setRole(RoleFlanker)
				m.emitRole(o, t.now)
			}
		}
	}
	if d.setRole(role) {
		m.emitRole(d, t.now)
	}
}

func (m *Manager) emitRole(d *Drone, now int64) {
	ev := m.event(EventRoleChanged, d, now)
	ev.Role = d.Role
	m.emit(ev)
}

// tryAssault pairs d with another engaging drone that committed within the
// coordination window while both are inside assault range. The pair gets
// mirrored approach angles and a shared hold-fire deadline so they open
// fire together.
func (m *Manager) tryAssault(d *Drone, engaging []*Drone, t *tick) {
	sq := m.tuning.Squad
	if d.AssaultAngle != 0 || d.Distance > sq.AssaultRange {
		return
	}
	for _, o := range engaging {
		if o.AssaultAngle != 0 || o.Distance > sq.AssaultRange {
			continue
		}
		gap := d.StateStart - o.StateStart
		if gap < 0 {
			gap = -gap
		}
		if gap > sq.CoordinationWindowMs {
			continue
		}
		side := coin(m.rnd)
		// a hold either partner already carries delays both
		hold := max(t.now+sq.AssaultHoldMs, d.HoldFireUntil, o.HoldFireUntil)
		d.beginAssault(side*sq.AssaultAngle, hold)
		o.beginAssault(-side*sq.AssaultAngle, hold)
		m.audio.Play(d.ID, ChannelCombat, SoundCoordination, d.Emitter())
		ev := m.event(EventCoordinatedAssault, d, t.now)
		ev.Other = o.ID
		m.emit(ev)
		m.log.Debug("coordinated assault", "drone_id", d.ID, "partner", o.ID)
		return
	}
}
