package telemetry

import "time"

// SessionStateRow captures per-tick simulator state.
type SessionStateRow struct {
	SessionID       string    `json:"session_id"`
	Phase           string    `json:"phase"`
	ActiveDrones    int       `json:"active_drones"`
	MaxDrones       int       `json:"max_drones"`
	ClosestDistance float64   `json:"closest_distance_m"`
	Hull            float64   `json:"hull"`
	HullMax         float64   `json:"hull_max"`
	Camo            bool      `json:"camo"`
	PlayerDown      bool      `json:"player_down"`
	Spawned         int       `json:"spawned_total"`
	Destroyed       int       `json:"destroyed_total"`
	ShotsFired      int       `json:"shots_fired_total"`
	ShotsHit        int       `json:"shots_hit_total"`
	SimTimeMs       int64     `json:"sim_time_ms"`
	Timestamp       time.Time `json:"ts"`
}

// SessionStateTableName is overridable via SESSION_STATE_TABLE.
var SessionStateTableName = envOr("SESSION_STATE_TABLE", "hostile_session_state")

func (SessionStateRow) TableName() string { return SessionStateTableName }
