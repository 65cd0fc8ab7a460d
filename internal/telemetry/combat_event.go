package telemetry

import (
	"time"

	"hostile-sim/internal/hostile"
)

// CombatEventRow is one AI event: a shot, a state change, a squad decision.
type CombatEventRow struct {
	SessionID   string    `json:"session_id"`
	EventType   string    `json:"event_type"`
	DroneID     string    `json:"drone_id"`
	Personality string    `json:"personality,omitempty"`
	State       string    `json:"state"`
	Weapon      string    `json:"weapon,omitempty"`
	Role        string    `json:"role,omitempty"`
	Shots       int       `json:"shots,omitempty"`
	Hits        int       `json:"hits,omitempty"`
	Damage      float64   `json:"damage,omitempty"`
	Distance    float64   `json:"distance_m"`
	Hit         bool      `json:"hit,omitempty"`
	OtherID     string    `json:"other_id,omitempty"`
	SimTimeMs   int64     `json:"sim_time_ms"`
	Timestamp   time.Time `json:"ts"`
}

// CombatEventTableName is overridable via COMBAT_EVENT_TABLE.
var CombatEventTableName = envOr("COMBAT_EVENT_TABLE", "hostile_combat_events")

func (CombatEventRow) TableName() string { return CombatEventTableName }

// NewCombatEventRow converts an AI event.
func NewCombatEventRow(session string, e hostile.Event, ts time.Time) CombatEventRow {
	row := CombatEventRow{
		SessionID:   session,
		EventType:   string(e.Type),
		DroneID:     DroneID(e.DroneID),
		Personality: e.Personality,
		State:       e.State.String(),
		Weapon:      e.Weapon,
		Shots:       e.Shots,
		Hits:        e.Hits,
		Damage:      e.Damage,
		Distance:    e.Distance,
		Hit:         e.Hit,
		SimTimeMs:   e.At,
		Timestamp:   ts,
	}
	if e.Role != hostile.RoleNone {
		row.Role = e.Role.String()
	}
	if e.Other >= 0 {
		row.OtherID = DroneID(e.Other)
	}
	return row
}
