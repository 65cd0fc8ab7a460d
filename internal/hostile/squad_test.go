package hostile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// behind keeps drones out of the evasion cone.
var behind = Player{X: 0, Y: 0, Altitude: 50, Facing: 180}

func TestCoordinatedAssault(t *testing.T) {
	m, audio, _ := newTestManager(t, 31, quietTuning())
	m.player = behind
	a := place(t, m, "balanced", 20, 20, StateEngaging, 0)
	b := place(t, m, "aggressive", -20, 20, StateEngaging, 500)

	evs := m.Update(frame(600, behind), nil)

	require.NotZero(t, a.AssaultAngle)
	require.NotZero(t, b.AssaultAngle)
	assert.Equal(t, a.AssaultAngle, -b.AssaultAngle)
	assert.Equal(t, a.HoldFireUntil, b.HoldFireUntil)
	assert.EqualValues(t, 600+m.tuning.Squad.AssaultHoldMs, a.HoldFireUntil)

	coord := eventsOf(evs, EventCoordinatedAssault)
	require.Len(t, coord, 1)
	assert.Equal(t, a.ID, coord[0].DroneID)
	assert.Equal(t, b.ID, coord[0].Other)
	assert.Equal(t, 1, audio.count(SoundCoordination))

	// hold fire keeps both in pursuit
	assert.Equal(t, StateEngaging, a.State)
	assert.Equal(t, StateEngaging, b.State)
	assert.Equal(t, RoleFlanker, a.Role)
	assert.Equal(t, RolePrimary, b.Role)

	// no second cue for the same pair
	evs = m.Update(frame(900, behind), nil)
	assert.Empty(t, eventsOf(evs, EventCoordinatedAssault))
}

func TestAssaultSharesLeftoverHold(t *testing.T) {
	m, _, _ := newTestManager(t, 31, quietTuning())
	m.player = behind
	a := place(t, m, "balanced", 20, 20, StateEngaging, 0)
	b := place(t, m, "aggressive", -20, 20, StateEngaging, 500)
	a.HoldFireUntil = 3400

	m.Update(frame(600, behind), nil)

	require.NotZero(t, a.AssaultAngle)
	require.NotZero(t, b.AssaultAngle)
	assert.EqualValues(t, 3400, a.HoldFireUntil)
	assert.Equal(t, a.HoldFireUntil, b.HoldFireUntil)
}

func TestNoAssaultOutsideWindow(t *testing.T) {
	m, _, _ := newTestManager(t, 31, quietTuning())
	m.player = behind
	a := place(t, m, "balanced", 20, 20, StateEngaging, 0)
	b := place(t, m, "aggressive", -20, 20, StateEngaging, 2000)

	m.Update(frame(2100, behind), nil)
	assert.Zero(t, a.AssaultAngle)
	assert.Zero(t, b.AssaultAngle)
}

func TestCrossfireSkipsWindUp(t *testing.T) {
	m, _, _ := newTestManager(t, 37, quietTuning())
	m.player = behind
	follower := place(t, m, "aggressive", 0, -15, StateEngaging, 0)
	lead := place(t, m, "balanced", 10, -10, StateAttacking, 900)
	lead.ShotsToFire = 6
	lead.NextShotAt = 1 << 40

	m.Update(frame(1000, behind), &fakeHull{alive: true})
	assert.Equal(t, RoleCrossfire, follower.Role)
	assert.Equal(t, StateAttacking, follower.State)
}

func TestSupportMayHoldFire(t *testing.T) {
	tune := quietTuning()
	tune.Squad.SupportHoldChance = 1
	m, _, _ := newTestManager(t, 41, tune)
	m.player = behind
	follower := place(t, m, "aggressive", 0, -15, StateEngaging, 0)
	lead := place(t, m, "balanced", 10, -10, StateAttacking, 0)
	lead.ShotsToFire = 6
	lead.NextShotAt = 1 << 40

	m.Update(frame(2000, behind), &fakeHull{alive: true})
	assert.Equal(t, RoleSupport, follower.Role)
	assert.Equal(t, StateEngaging, follower.State)
	assert.GreaterOrEqual(t, follower.HoldFireUntil, int64(2800))
	assert.LessOrEqual(t, follower.HoldFireUntil, int64(3400))
}

func TestSinglePrimaryAmongEngaging(t *testing.T) {
	m, _, _ := newTestManager(t, 43, quietTuning())
	m.player = behind
	place(t, m, "balanced", 0, -45, StateEngaging, 0)
	top := place(t, m, "aggressive", 45, 0, StateEngaging, 0)
	place(t, m, "cautious", -45, 0, StateEngaging, 0)
	place(t, m, "sniper", 32, -32, StateEngaging, 0)

	now := int64(0)
	for i := 0; i < 10; i++ {
		now += 16
		m.Update(frame(now, behind), nil)
		primaries := 0
		for _, d := range m.ActiveDrones() {
			if d.State == StateEngaging && d.Role == RolePrimary {
				primaries++
			}
		}
		require.Equal(t, 1, primaries, "tick %d", i)
	}
	assert.Equal(t, RolePrimary, top.Role)
}

func TestSoloDroneIsPrimary(t *testing.T) {
	m, _, _ := newTestManager(t, 47, quietTuning())
	m.player = behind
	d := place(t, m, "cautious", 0, -45, StateEngaging, 0)
	evs := m.Update(frame(16, behind), nil)
	assert.Equal(t, RolePrimary, d.Role)
	roles := eventsOf(evs, EventRoleChanged)
	require.Len(t, roles, 1)
	assert.Equal(t, RolePrimary, roles[0].Role)
}

func TestSquadThrottle(t *testing.T) {
	m, _, _ := newTestManager(t, 53, quietTuning())
	m.player = behind
	d := place(t, m, "cautious", 0, -45, StateEngaging, 0)
	m.Update(frame(16, behind), nil)
	require.Equal(t, RolePrimary, d.Role)

	other := place(t, m, "aggressive", 45, 0, StateEngaging, 16)
	m.Update(frame(100, behind), nil)
	// d has not been re-evaluated yet, other has and took primary
	assert.Equal(t, RoleFlanker, d.Role)
	assert.Equal(t, RolePrimary, other.Role)
}
