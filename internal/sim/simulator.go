// Simulator driving the hostile drone AI against a scripted player
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"hostile-sim/internal/config"
	"hostile-sim/internal/hostile"
	"hostile-sim/internal/personality"
	"hostile-sim/internal/scenario"
	"hostile-sim/internal/telemetry"
)

// TelemetryWriter is an interface to support different output writers.
type TelemetryWriter interface {
	Write(telemetry.DroneStateRow) error
}

// Optional: Writers can also support batch mode
type batchWriter interface {
	WriteBatch([]telemetry.DroneStateRow) error
}

// EventWriter handles combat events.
type EventWriter interface {
	WriteEvent(telemetry.CombatEventRow) error
}

// Optional: event writers may support batch mode.
type batchEventWriter interface {
	WriteEvents([]telemetry.CombatEventRow) error
}

// StateWriter handles per-tick session state rows.
type StateWriter interface {
	WriteState(telemetry.SessionStateRow) error
}

type totals struct {
	spawned   int
	destroyed int
	shots     int
	hits      int
}

// Simulator runs a Manager against a scripted player on a virtual clock and
// streams the results to writers.
type Simulator struct {
	sessionID    string
	cfg          *config.Config
	manager      *hostile.Manager
	hull         *Hull
	audio        *TimedAudio
	scenario     *scenario.Scenario
	phase        scenario.Phase
	phaseStart   int64
	player       player
	now          int64
	epoch        time.Time
	tickInterval time.Duration
	rand         *rand.Rand
	writer       TelemetryWriter
	eventWriter  EventWriter
	stateWriter  StateWriter
	metrics      *metrics
	log          *slog.Logger
	totals       totals
	baseMax      int
	mu           sync.Mutex
}

// NewSimulator wires the AI, the hull and the scenario. An empty sessionID
// gets a random UUID; a nil scenario resolves cfg.Scenario; a nil rand is
// seeded from cfg.Seed, or from the clock when that is zero.
func NewSimulator(sessionID string, cfg *config.Config, sc *scenario.Scenario, w TelemetryWriter, ew EventWriter, tickInterval time.Duration, r *rand.Rand, logger *slog.Logger) (*Simulator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if tickInterval <= 0 {
		tickInterval = time.Duration(cfg.TickMs) * time.Millisecond
	}
	if tickInterval <= 0 {
		tickInterval = 50 * time.Millisecond
	}
	if sc == nil {
		name := cfg.Scenario
		if name == "" {
			name = "ambush"
		}
		var err error
		if sc, err = scenario.Resolve(name); err != nil {
			return nil, err
		}
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	if r == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		r = rand.New(rand.NewSource(seed))
	}
	catalog, err := cfg.Catalog(personality.DefaultCatalog())
	if err != nil {
		return nil, err
	}

	speech := LogSpeaker{Log: logger.With("component", "speech")}
	audio := NewTimedAudio()
	tuning := cfg.Tuning()
	s := &Simulator{
		sessionID:    sessionID,
		cfg:          cfg,
		manager:      hostile.NewManager(catalog, tuning, audio, speech, r, logger.With("component", "hostile")),
		hull:         NewHull(cfg.HullMax, cfg.HullRegenPerSec, speech, logger),
		audio:        audio,
		scenario:     sc,
		phase:        sc.Phases[0],
		epoch:        time.Now().UTC(),
		tickInterval: tickInterval,
		rand:         r,
		writer:       w,
		eventWriter:  ew,
		log:          logger,
		baseMax:      tuning.MaxDrones,
	}
	if sw, ok := w.(StateWriter); ok {
		s.stateWriter = sw
	}
	s.player.Altitude = s.phase.Player.Altitude
	s.enterPhase(s.phase)

	if s.metrics, err = newMetrics(func() int64 {
		s.mu.Lock()
		defer s.mu.Unlock()
		return int64(s.manager.ActiveCount())
	}); err != nil {
		return nil, err
	}
	return s, nil
}

// SessionID identifies the run on every telemetry row.
func (s *Simulator) SessionID() string { return s.sessionID }

// TickInterval is the wall-clock and simulated length of one tick.
func (s *Simulator) TickInterval() time.Duration { return s.tickInterval }

func (s *Simulator) timestamp() time.Time {
	return s.epoch.Add(time.Duration(s.now) * time.Millisecond)
}

func (s *Simulator) enterPhase(p scenario.Phase) {
	s.phase = p
	s.phaseStart = s.now
	s.player.camo = p.Player.Camo
	if p.MaxDrones > 0 {
		s.manager.SetMaxDrones(p.MaxDrones)
	} else {
		s.manager.SetMaxDrones(s.baseMax)
	}
}

// DroneView is the admin's view of one drone.
type DroneView struct {
	ID          int     `json:"id"`
	Personality string  `json:"personality"`
	State       string  `json:"state"`
	Role        string  `json:"role"`
	Distance    float64 `json:"distance_m"`
	Bearing     float64 `json:"bearing"`
	Altitude    float64 `json:"altitude_ft"`
	Health      float64 `json:"health"`
	Weapon      string  `json:"weapon,omitempty"`
	Wounded     bool    `json:"wounded"`
	Suppressed  bool    `json:"suppressed"`
}

func viewOf(d hostile.Drone) DroneView {
	return DroneView{
		ID:          d.ID,
		Personality: d.Personality.Name,
		State:       d.State.String(),
		Role:        d.Role.String(),
		Distance:    d.Distance,
		Bearing:     d.Bearing,
		Altitude:    d.Altitude,
		Health:      d.Health,
		Weapon:      d.AttackWeapon,
		Wounded:     d.Wounded,
		Suppressed:  d.Suppressed,
	}
}

func viewsOf(ds []hostile.Drone) []DroneView {
	out := make([]DroneView, len(ds))
	for i, d := range ds {
		out[i] = viewOf(d)
	}
	return out
}

// Drones returns the live drones.
func (s *Simulator) Drones() []DroneView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return viewsOf(s.manager.ActiveDrones())
}

// Closest returns the distance to the nearest live drone, 999 if none.
func (s *Simulator) Closest() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.ClosestDroneDistance()
}

// InRange returns drones within rangeM and, when arc is set, within arc
// degrees either side of the player's facing.
func (s *Simulator) InRange(rangeM float64, arc *float64) []DroneView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return viewsOf(s.manager.DronesInRange(rangeM, arc))
}

// ClearAll removes every drone immediately.
func (s *Simulator) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager.ClearAll()
	s.log.Info("all drones cleared")
}

// SetMaxDrones changes the population cap; it is clamped to 1..6. It also
// becomes the cap phases without their own limit fall back to.
func (s *Simulator) SetMaxDrones(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager.SetMaxDrones(n)
	s.baseMax = s.manager.MaxDrones()
	s.log.Info("max drones changed", "max_drones", s.baseMax)
	return s.baseMax
}

// BreakStealth forces tracking drones farther than 15 m to search, as if
// the player had just engaged camouflage.
func (s *Simulator) BreakStealth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.ForceLoseTrack(s.now, stealthBreakRange)
}

// Session returns the most recent session state.
func (s *Simulator) Session() telemetry.SessionStateRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionRow()
}

// Over reports whether the hull has been breached.
func (s *Simulator) Over() bool { return s.hull.Breached() }

func (s *Simulator) sessionRow() telemetry.SessionStateRow {
	return telemetry.SessionStateRow{
		SessionID:       s.sessionID,
		Phase:           s.phase.Name,
		ActiveDrones:    s.manager.ActiveCount(),
		MaxDrones:       s.manager.MaxDrones(),
		ClosestDistance: s.manager.ClosestDroneDistance(),
		Hull:            s.hull.Value(),
		HullMax:         s.hull.Max(),
		Camo:            s.player.effectiveCamo(s.now),
		PlayerDown:      s.manager.PlayerDown() || s.hull.Breached(),
		Spawned:         s.totals.spawned,
		Destroyed:       s.totals.destroyed,
		ShotsFired:      s.totals.shots,
		ShotsHit:        s.totals.hits,
		SimTimeMs:       s.now,
		Timestamp:       s.timestamp(),
	}
}
