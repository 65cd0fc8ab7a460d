// Package hostile is the combat AI of the hostile drones: a frame-stepped
// state machine per drone, squad coordination, and the manager that owns
// the drone collection and talks to the audio, speech and damage sinks.
package hostile

import (
	"log/slog"
	"math"

	"hostile-sim/internal/personality"
)

// Player is the read-only view of the player for one tick. Altitude is in
// feet, Facing in compass degrees.
type Player struct {
	X, Y     float64
	Altitude float64
	Facing   float64
}

// Frame is the per-tick input of Update.
type Frame struct {
	Now    int64   // ms
	DT     float64 // s
	Player Player
	// Camo is true while the player's camouflage is effective.
	Camo bool
}

type tick struct {
	now    int64
	dt     float64
	player Player
	ranges ranges
	dmg    DamageSink
}

// Manager owns the drones. It is not safe for concurrent use; callers
// serialise Update and the query methods.
type Manager struct {
	catalog *personality.Catalog
	arsenal *personality.Arsenal
	weapons []personality.Weapon
	tuning  Tuning
	audio   AudioSink
	speech  Speaker
	rnd     Rand
	log     *slog.Logger

	drones    []*Drone
	nextID    int
	maxDrones int

	spawnTimer  int64
	spawnPrimed bool

	activeCache []*Drone
	activeValid bool

	events     []Event
	now        int64
	player     Player
	playerDown bool

	lastTargetLock int64
	lastAimBeacon  int64
}

// NewManager wires a manager. A nil catalog is a programming error and
// panics; nil sinks become no-ops, a nil rnd is seeded from the clock and a
// nil logger falls back to slog.Default.
func NewManager(catalog *personality.Catalog, tuning Tuning, audio AudioSink, speech Speaker, rnd Rand, logger *slog.Logger) *Manager {
	if catalog == nil {
		panic("hostile: manager needs a personality catalog")
	}
	if audio == nil {
		audio = nopAudio{}
	}
	if speech == nil {
		speech = nopSpeaker{}
	}
	if rnd == nil {
		rnd = newDefaultRand()
	}
	if logger == nil {
		logger = slog.Default()
	}
	tuning = tuning.normalized()
	return &Manager{
		catalog:        catalog,
		arsenal:        catalog.Arsenal(),
		weapons:        catalog.Arsenal().Weapons(),
		tuning:         tuning,
		audio:          audio,
		speech:         speech,
		rnd:            rnd,
		log:            logger,
		maxDrones:      tuning.MaxDrones,
		lastTargetLock: math.MinInt64 / 2,
		lastAimBeacon:  math.MinInt64 / 2,
	}
}

// Tuning returns the normalised constants in use.
func (m *Manager) Tuning() Tuning { return m.tuning }

// Update advances the simulation by one frame and returns the events raised
// since the previous call. New drones are appended after every existing
// drone has been updated; destroyed drones are pruned after the pass once
// the audio sink reports them silent.
func (m *Manager) Update(f Frame, dmg DamageSink) []Event {
	if dmg == nil {
		dmg = nopDamage{}
	}
	m.activeValid = false
	m.now = f.Now
	m.player = f.Player
	t := &tick{now: f.Now, dt: f.DT, player: f.Player, ranges: m.rangesFor(f.Camo), dmg: dmg}

	var spawned *Drone
	if !m.spawnPrimed || f.Now-m.spawnTimer >= m.tuning.SpawnIntervalMs {
		m.spawnPrimed = true
		m.spawnTimer = f.Now
		if len(m.active()) < m.maxDrones {
			spawned = m.spawn(t)
		}
	}

	for _, d := range m.drones {
		if d.State == StateDestroyed {
			continue
		}
		updateSpatial(d, f.Player, f.DT)
		m.updatePsych(d, f.Now)
		m.advance(d, t)
		m.updateAmbient(d)
	}

	if spawned != nil {
		m.drones = append(m.drones, spawned)
		m.activeValid = false
	}
	m.prune(f.Now)
	m.aimAssist(f.Now)

	out := m.events
	m.events = nil
	return out
}

func (m *Manager) spawn(t *tick) *Drone {
	tu := m.tuning
	p := m.catalog.Pick(m.rnd)
	angle := uniform(m.rnd, 0, 360)
	pos := pointAt(t.player.X, t.player.Y, angle, uniform(m.rnd, tu.SpawnDistanceMin, tu.SpawnDistanceMax))
	alt := uniform(m.rnd, tu.SpawnAltitudeMin, tu.SpawnAltitudeMax)
	speed := (tu.BaseSpeed + uniform(m.rnd, -tu.SpeedJitter, tu.SpeedJitter)) * p.SpeedMult

	d := newDrone(m.nextID, p, pos.X, pos.Y, alt, speed, tu.ClimbRate, tu.HealthMax, t.now)
	m.nextID++
	d.StateDuration = m.to(d, StateSpawning).duration
	updateSpatial(d, t.player, 0)

	m.audio.Play(d.ID, ChannelTakeoff, SoundTakeoff, d.Emitter())
	m.audio.Play(d.ID, ChannelAmbient, SoundHum, d.Emitter())
	m.speech.Speak("Hostile detected")

	ev := m.event(EventSpawned, d, t.now)
	ev.Distance = d.Distance
	m.emit(ev)
	m.log.Info("drone spawned", "drone_id", d.ID, "personality", p.Name,
		"distance", math.Round(d.Distance*10)/10, "altitude", math.Round(alt))
	return d
}

// updateAmbient keeps the movement sounds of a flying drone positioned.
func (m *Manager) updateAmbient(d *Drone) {
	e := d.Emitter()
	if m.audio.IsBusy(d.ID, ChannelAmbient) {
		m.audio.SetPosition(d.ID, ChannelAmbient, e)
	}
	var ch Channel
	var s Sound
	switch d.State {
	case StateEngaging:
		ch, s = ChannelSupersonic, SoundSupersonic
	case StatePatrol, StateCooldown:
		ch, s = ChannelPassby, SoundPassby
	default:
		return
	}
	if m.audio.IsBusy(d.ID, ch) {
		m.audio.SetPosition(d.ID, ch, e)
		return
	}
	m.audio.Play(d.ID, ch, s, e)
}

// prune removes destroyed drones once none of their channels is playing.
func (m *Manager) prune(now int64) {
	kept := m.drones[:0]
	for _, d := range m.drones {
		if d.State == StateDestroyed && m.silent(d.ID) {
			m.emit(m.event(EventRemoved, d, now))
			m.log.Info("drone removed", "drone_id", d.ID)
			continue
		}
		kept = append(kept, d)
	}
	for i := len(kept); i < len(m.drones); i++ {
		m.drones[i] = nil
	}
	m.drones = kept
}

func (m *Manager) silent(id int) bool {
	for _, ch := range Channels {
		if m.audio.IsBusy(id, ch) {
			return false
		}
	}
	return true
}

// aimAssist gives the player a two-tier aiming cue for the first drone in
// range and roughly ahead: a lock tone when nearly centred, a softer beacon
// when within the wide arc.
func (m *Manager) aimAssist(now int64) {
	tu := m.tuning
	for _, d := range m.active() {
		if d.Distance > tu.AimAssistRange {
			continue
		}
		b := math.Abs(d.Bearing)
		if b <= tu.TargetLockAngle {
			if now-m.lastTargetLock >= tu.TargetLockCooldownMs {
				m.audio.Cue(SoundTargetLock)
				m.lastTargetLock = now
				m.lastAimBeacon = now
			}
			return
		}
		if b <= tu.AimBeaconAngle {
			if now-m.lastAimBeacon >= tu.AimBeaconCooldownMs {
				m.audio.Cue(SoundAimBeacon)
				m.lastAimBeacon = now
			}
			return
		}
	}
}

func (m *Manager) event(t EventType, d *Drone, now int64) Event {
	return Event{
		Type:        t,
		DroneID:     d.ID,
		At:          now,
		Personality: d.Personality.Name,
		State:       d.State,
		Role:        d.Role,
		Distance:    d.Distance,
		Other:       -1,
	}
}

func (m *Manager) emit(e Event) { m.events = append(m.events, e) }

// active returns the non-destroyed drones, rebuilt at most once per tick.
func (m *Manager) active() []*Drone {
	if !m.activeValid {
		m.activeCache = m.activeCache[:0]
		for _, d := range m.drones {
			if d.State != StateDestroyed {
				m.activeCache = append(m.activeCache, d)
			}
		}
		m.activeValid = true
	}
	return m.activeCache
}

func (m *Manager) lookup(id int) (*Drone, bool) {
	for _, d := range m.drones {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

// ActiveDrones returns copies of the non-destroyed drones in collection
// order.
func (m *Manager) ActiveDrones() []Drone {
	act := m.active()
	out := make([]Drone, len(act))
	for i, d := range act {
		out[i] = d.snapshot()
	}
	return out
}

// Drones returns copies of every drone still held, destroyed ones included.
func (m *Manager) Drones() []Drone {
	out := make([]Drone, len(m.drones))
	for i, d := range m.drones {
		out[i] = d.snapshot()
	}
	return out
}

// Drone returns a copy of the drone with the given id.
func (m *Manager) Drone(id int) (Drone, bool) {
	d, ok := m.lookup(id)
	if !ok {
		return Drone{}, false
	}
	return d.snapshot(), true
}

// ActiveCount is the number of non-destroyed drones.
func (m *Manager) ActiveCount() int { return len(m.active()) }

// ClosestDroneDistance is the distance of the nearest active drone, or
// NoDrone when there is none.
func (m *Manager) ClosestDroneDistance() float64 {
	closest := NoDrone
	for _, d := range m.active() {
		if d.Distance < closest {
			closest = d.Distance
		}
	}
	return closest
}

// DronesInRange returns active drones within rangeM metres and, when arc is
// set, within ±arc degrees of the player's facing.
func (m *Manager) DronesInRange(rangeM float64, arc *float64) []Drone {
	var out []Drone
	for _, d := range m.active() {
		if d.Distance > rangeM {
			continue
		}
		if arc != nil && math.Abs(d.Bearing) > *arc {
			continue
		}
		out = append(out, d.snapshot())
	}
	return out
}

// ClearAll silences and drops every drone.
func (m *Manager) ClearAll() {
	for _, d := range m.drones {
		for _, ch := range Channels {
			m.audio.Stop(d.ID, ch)
		}
	}
	m.drones = nil
	m.activeCache = nil
	m.activeValid = false
	m.playerDown = false
	m.log.Info("drones cleared")
}

// SetMaxDrones changes the population cap, clamped to
// [MinDrones, MaxDronesConfigurable]. Existing drones are kept.
func (m *Manager) SetMaxDrones(n int) {
	m.maxDrones = ClampDrones(n)
}

// MaxDrones is the current population cap.
func (m *Manager) MaxDrones() int { return m.maxDrones }

// PlayerDown reports whether the damage sink has declared the player dead.
func (m *Manager) PlayerDown() bool { return m.playerDown }
