package sim

import (
	"context"
	"log/slog"
	"math"
	"time"

	"hostile-sim/internal/hostile"
	"hostile-sim/internal/logging"
	"hostile-sim/internal/scenario"
	"hostile-sim/internal/telemetry"
)

// Run starts the simulation loop and stops when the context is done or the
// hull is breached.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulator", "session_id", s.sessionID, "tick_interval", s.tickInterval, "scenario", s.scenario.Name)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
			if s.Over() {
				log.Info("player destroyed, stopping simulator", "sim_time_ms", s.Now())
				return
			}
		case <-ctx.Done():
			log.Info("stopping simulator")
			return
		}
	}
}

// Step runs n ticks back to back without waiting on the wall clock.
func (s *Simulator) Step(ctx context.Context, n int) {
	for i := 0; i < n && !s.Over(); i++ {
		s.tick(ctx)
	}
}

// Now is the simulated time in ms.
func (s *Simulator) Now() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// tick advances the player, the AI and the hull by one interval and writes
// what happened.
func (s *Simulator) tick(ctx context.Context) {
	log := logging.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	dt := s.tickInterval.Seconds()
	s.now += s.tickInterval.Milliseconds()
	s.audio.Advance(s.now)
	s.checkTriggers(log)

	script := s.phase.Player
	s.player.move(script, dt)
	camo := s.player.effectiveCamo(s.now)
	if camo && !s.player.hidden {
		if n := s.manager.ForceLoseTrack(s.now, stealthBreakRange); n > 0 {
			log.Debug("camouflage broke contact", "drones", n)
		}
	}

	events := s.manager.Update(hostile.Frame{
		Now:    s.now,
		DT:     dt,
		Player: s.player.Player,
		Camo:   camo,
	}, s.hull)
	s.player.hidden = camo

	arc := script.FireArc
	if d, hit, shot := s.player.fire(script, s.now, s.manager.DronesInRange(script.FireRange, &arc), s.rand); shot && hit {
		if s.manager.DamageDrone(d.ID, script.FireDamage, s.now) {
			log.Debug("player destroyed drone", "drone_id", d.ID)
		}
	}
	s.hull.Regenerate(dt, s.manager.ClosestDroneDistance())

	s.count(ctx, events)
	s.write(log, events)
}

// checkTriggers moves the scenario on when the current phase's triggers fire.
func (s *Simulator) checkTriggers(log *slog.Logger) {
	checks := []scenario.Event{
		{Type: scenario.EventTimeElapsed, Value: int((s.now - s.phaseStart) / 1000)},
		{Type: scenario.EventDronesDestroyed, Value: s.totals.destroyed},
		{Type: scenario.EventHullBelow, Value: int(math.Ceil(s.hull.Percent()))},
	}
	for _, ev := range checks {
		next, ok := s.scenario.NextPhase(s.phase.Name, ev)
		if !ok {
			continue
		}
		p, _ := s.scenario.Phase(next)
		log.Info("scenario phase change", "from", s.phase.Name, "to", next, "trigger", ev.Type)
		s.enterPhase(p)
		return
	}
}

func (s *Simulator) count(ctx context.Context, events []hostile.Event) {
	for _, e := range events {
		switch e.Type {
		case hostile.EventSpawned:
			s.totals.spawned++
		case hostile.EventDestroyed:
			s.totals.destroyed++
		case hostile.EventShot:
			s.totals.shots++
			if e.Hit {
				s.totals.hits++
			}
		}
		s.metrics.record(ctx, e)
	}
}

func (s *Simulator) write(log *slog.Logger, events []hostile.Event) {
	ts := s.timestamp()

	drones := s.manager.ActiveDrones()
	batch := make([]telemetry.DroneStateRow, 0, len(drones))
	for _, d := range drones {
		batch = append(batch, telemetry.NewDroneStateRow(s.sessionID, d, s.now, ts))
	}
	if s.writer != nil {
		// Batch support if writer implements WriteBatch
		if bw, ok := s.writer.(batchWriter); ok {
			if err := bw.WriteBatch(batch); err != nil {
				log.Error("batch write failed", "err", err)
			}
		} else {
			for _, row := range batch {
				if err := s.writer.Write(row); err != nil {
					log.Error("write failed", "drone_id", row.DroneID, "err", err)
				}
			}
		}
	}

	if len(events) > 0 && s.eventWriter != nil {
		rows := make([]telemetry.CombatEventRow, len(events))
		for i, e := range events {
			rows[i] = telemetry.NewCombatEventRow(s.sessionID, e, s.epoch.Add(time.Duration(e.At)*time.Millisecond))
		}
		if bw, ok := s.eventWriter.(batchEventWriter); ok {
			if err := bw.WriteEvents(rows); err != nil {
				log.Error("event batch write failed", "err", err)
			}
		} else {
			for _, r := range rows {
				if err := s.eventWriter.WriteEvent(r); err != nil {
					log.Error("event write failed", "event", r.EventType, "err", err)
				}
			}
		}
	}

	if s.stateWriter != nil {
		if err := s.stateWriter.WriteState(s.sessionRow()); err != nil {
			log.Error("state write failed", "err", err)
		}
	}
}
