package hostile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostile-sim/internal/personality"
)

func TestWoundedAppliedOnce(t *testing.T) {
	m, _, _ := newTestManager(t, 61, quietTuning())
	m.player = behind
	d := place(t, m, "balanced", 0, 30, StatePatrol, 0)
	d.Health = 30

	assert.False(t, m.DamageDrone(d.ID, 10, 100))
	require.True(t, d.Wounded)
	assert.InDelta(t, 0.3, d.Aggression, 1e-9)
	assert.InDelta(t, 0.75, d.EvasionSkill, 1e-9)

	assert.False(t, m.DamageDrone(d.ID, 2, 200))
	assert.InDelta(t, 0.3, d.Aggression, 1e-9)
	assert.InDelta(t, 0.75, d.EvasionSkill, 1e-9)

	evs := m.Update(frame(216, behind), nil)
	assert.Len(t, eventsOf(evs, EventWounded), 1)

	// the catalog copy is untouched
	p, _ := m.catalog.Lookup("balanced")
	assert.Equal(t, 0.5, p.Aggression)
}

func TestSuppressionAbortsBurstAndExpires(t *testing.T) {
	m, _, _ := newTestManager(t, 67, quietTuning())
	m.player = behind
	d := place(t, m, "balanced", 0, -15, StateEngaging, 0)
	d.AttackWeapon = personality.PulseCannon
	m.enter(d, m.to(d, StateAttacking), 0)

	m.DamageDrone(d.ID, 12, 0)
	require.False(t, d.Suppressed)
	m.DamageDrone(d.ID, 12, 500)
	require.True(t, d.Suppressed)
	assert.Equal(t, StateCooldown, d.State)
	assert.GreaterOrEqual(t, d.SuppressedUntil, int64(2500))
	assert.LessOrEqual(t, d.SuppressedUntil, int64(4000))

	evs := m.Update(frame(516, behind), &fakeHull{alive: true})
	assert.Len(t, eventsOf(evs, EventSuppressed), 1)
	assert.Len(t, eventsOf(evs, EventBurstAborted), 1)

	var ended []Event
	for now := int64(532); now <= 4100; now += 16 {
		evs := m.Update(frame(now, behind), &fakeHull{alive: true})
		ended = append(ended, eventsOf(evs, EventSuppressionEnded)...)
		if d.Suppressed {
			require.NotEqual(t, StateWindingUp, d.State)
			require.NotEqual(t, StateAttacking, d.State)
		}
	}
	require.Len(t, ended, 1)
	require.False(t, d.Suppressed)

	// immune right after recovering
	at := ended[0].At
	m.DamageDrone(d.ID, 11, at+100)
	m.DamageDrone(d.ID, 11, at+200)
	assert.False(t, d.Suppressed)
}

func TestDeathMidBurstRecordsOutcome(t *testing.T) {
	m, _, _ := newTestManager(t, 71, quietTuning())
	m.player = behind
	d := place(t, m, "balanced", 0, -15, StateEngaging, 0)
	d.AttackWeapon = personality.PulseCannon
	m.enter(d, m.to(d, StateAttacking), 0)
	d.ShotsFired = 2
	d.HitsThisBurst = 1

	require.True(t, m.DamageDrone(d.ID, 1000, 200))
	require.Equal(t, StateDestroyed, d.State)
	require.Len(t, d.History, 1)
	assert.Equal(t, personality.PulseCannon, d.History[0].Weapon)
	assert.Equal(t, 2, d.History[0].Shots)
	assert.Equal(t, 1, d.History[0].Hits)

	evs := m.Update(frame(216, behind), &fakeHull{alive: true})
	aborted := eventsOf(evs, EventBurstAborted)
	require.Len(t, aborted, 1)
	assert.Equal(t, 2, aborted[0].Shots)
	assert.Len(t, eventsOf(evs, EventDestroyed), 1)
}

func TestDistressAlertsIdleNeighbours(t *testing.T) {
	m, _, _ := newTestManager(t, 71, quietTuning())
	m.player = behind
	hurt := place(t, m, "balanced", 0, 20, StateEngaging, 0)
	near := place(t, m, "cautious", 10, 30, StatePatrol, 0)
	far := place(t, m, "sniper", 200, 0, StatePatrol, 0)
	lost := place(t, m, "erratic", 0, 50, StateSearching, 0)
	busy := place(t, m, "aggressive", -10, 20, StateEngaging, 0)

	m.DamageDrone(hurt.ID, 16, 1000)
	assert.True(t, hurt.DistressActive)
	assert.Equal(t, StateDetecting, near.State)
	assert.Equal(t, StateDetecting, lost.State)
	assert.Equal(t, StatePatrol, far.State)
	assert.Equal(t, StateEngaging, busy.State)
	assert.EqualValues(t, 6000, near.BoostUntil)
	assert.InDelta(t, near.Speed*1.3, m.speedOf(near, 2000), 1e-9)
	assert.InDelta(t, near.Speed, m.speedOf(near, 6000), 1e-9)

	evs := m.Update(frame(1016, behind), nil)
	assert.Len(t, eventsOf(evs, EventDistress), 1)
	alerted := eventsOf(evs, EventAlerted)
	require.Len(t, alerted, 2)
	assert.Equal(t, hurt.ID, alerted[0].Other)

	// one beacon per drone
	m.DamageDrone(hurt.ID, 20, 1100)
	evs = m.Update(frame(1116, behind), nil)
	assert.Empty(t, eventsOf(evs, EventDistress))

	m.Update(frame(6100, behind), nil)
	assert.False(t, hurt.DistressActive)
}

func TestDestroyedDroneWaitsForSilence(t *testing.T) {
	m, audio, sp := newTestManager(t, 73, quietTuning())
	audio.sticky[ChannelExplosion] = true
	m.player = behind
	d := place(t, m, "balanced", 0, 30, StatePatrol, 0)

	require.True(t, m.DamageDrone(d.ID, 150, 100))
	assert.Equal(t, StateDestroyed, d.State)
	assert.Zero(t, d.Health)
	assert.Contains(t, sp.lines, "Hostile destroyed")
	assert.Equal(t, 1, audio.count(SoundExplosion))
	assert.Equal(t, 1, audio.count(SoundDebris))

	evs := m.Update(frame(116, behind), nil)
	assert.Len(t, eventsOf(evs, EventDestroyed), 1)
	assert.Empty(t, eventsOf(evs, EventRemoved))
	assert.Len(t, m.Drones(), 1)
	assert.Empty(t, m.ActiveDrones())
	assert.Equal(t, NoDrone, m.ClosestDroneDistance())

	evs = m.Update(frame(132, behind), nil)
	assert.Empty(t, eventsOf(evs, EventRemoved))

	audio.Stop(d.ID, ChannelExplosion)
	evs = m.Update(frame(148, behind), nil)
	assert.Len(t, eventsOf(evs, EventRemoved), 1)
	assert.Empty(t, m.Drones())

	assert.False(t, m.DamageDrone(d.ID, 10, 200), "removed drones take no damage")
}

func TestForceLoseTrackIdempotent(t *testing.T) {
	m, _, _ := newTestManager(t, 79, quietTuning())
	m.player = behind
	a := place(t, m, "balanced", 0, 30, StateEngaging, 0)
	b := place(t, m, "cautious", 30, 0, StateDetecting, 0)
	near := place(t, m, "sniper", 5, 5, StateEngaging, 0)
	idle := place(t, m, "erratic", 0, 40, StatePatrol, 0)

	assert.Equal(t, 2, m.ForceLoseTrack(100, 15))
	assert.Equal(t, 0, m.ForceLoseTrack(100, 15))

	assert.Equal(t, StateSearching, a.State)
	assert.Equal(t, StateSearching, b.State)
	assert.Equal(t, StateEngaging, near.State)
	assert.Equal(t, StatePatrol, idle.State)

	evs := m.Update(frame(116, behind), nil)
	assert.Len(t, eventsOf(evs, EventForcedSearch), 2)
}
