package telemetry

import (
	"testing"
	"time"

	"hostile-sim/internal/hostile"
	"hostile-sim/internal/personality"
)

func TestNewDroneStateRow(t *testing.T) {
	p, _ := personality.DefaultCatalog().Lookup("sniper")
	d := hostile.Drone{
		ID:           3,
		Personality:  p,
		X:            12,
		Y:            -4,
		Altitude:     55,
		Health:       80,
		State:        hostile.StateAttacking,
		Role:         hostile.RoleFlanker,
		AttackWeapon: personality.RailGun,
		Wounded:      true,
	}
	ts := time.Unix(100, 0)
	row := NewDroneStateRow("sess-1", d, 1500, ts)

	if row.DroneID != "hostile-3" || row.SessionID != "sess-1" {
		t.Errorf("unexpected tags: %+v", row)
	}
	if row.State != "attacking" || row.Role != "flanker" || row.Personality != "sniper" {
		t.Errorf("unexpected labels: %+v", row)
	}
	if row.Weapon != personality.RailGun || !row.Wounded || row.SimTimeMs != 1500 || !row.Timestamp.Equal(ts) {
		t.Errorf("unexpected fields: %+v", row)
	}
}

func TestNewCombatEventRow(t *testing.T) {
	e := hostile.Event{
		Type:    hostile.EventCoordinatedAssault,
		DroneID: 1,
		At:      900,
		State:   hostile.StateEngaging,
		Role:    hostile.RolePrimary,
		Other:   2,
	}
	row := NewCombatEventRow("s", e, time.Unix(0, 0))
	if row.EventType != "coordinated_assault" || row.OtherID != "hostile-2" || row.Role != "primary" {
		t.Errorf("unexpected row %+v", row)
	}

	e.Other = -1
	e.Role = hostile.RoleNone
	row = NewCombatEventRow("s", e, time.Unix(0, 0))
	if row.OtherID != "" || row.Role != "" {
		t.Errorf("expected empty partner and role, got %+v", row)
	}
}

func TestTableNames(t *testing.T) {
	if (DroneStateRow{}).TableName() == "" || (CombatEventRow{}).TableName() == "" || (SessionStateRow{}).TableName() == "" {
		t.Fatal("table names must not be empty")
	}
}
