// Telemetry rows with greptime tags
package telemetry

import (
	"os"
	"strconv"
	"time"

	"hostile-sim/internal/hostile"
)

// DroneStateRow is one drone snapshot per tick.
type DroneStateRow struct {
	SessionID   string    `json:"session_id"`  // TAG
	DroneID     string    `json:"drone_id"`    // TAG
	Personality string    `json:"personality"` // FIELD
	State       string    `json:"state"`       // FIELD
	Role        string    `json:"role"`        // FIELD
	X           float64   `json:"x"`           // FIELD
	Y           float64   `json:"y"`           // FIELD
	Altitude    float64   `json:"altitude_ft"` // FIELD
	Distance    float64   `json:"distance_m"`  // FIELD
	Bearing     float64   `json:"bearing"`     // FIELD
	Health      float64   `json:"health"`      // FIELD
	Weapon      string    `json:"weapon,omitempty"`
	Wounded     bool      `json:"wounded"`
	Suppressed  bool      `json:"suppressed"`
	Distress    bool      `json:"distress"`
	SimTimeMs   int64     `json:"sim_time_ms"`
	Timestamp   time.Time `json:"ts"` // TIME INDEX
}

// DroneStateTableName holds the table name used when writing drone state to
// GreptimeDB. Override with GREPTIMEDB_TABLE.
var DroneStateTableName = envOr("GREPTIMEDB_TABLE", "hostile_drone_state")

func (DroneStateRow) TableName() string {
	return DroneStateTableName
}

// DroneID renders the manager's integer id as a telemetry tag.
func DroneID(id int) string {
	return "hostile-" + strconv.Itoa(id)
}

// NewDroneStateRow converts a drone snapshot.
func NewDroneStateRow(session string, d hostile.Drone, nowMs int64, ts time.Time) DroneStateRow {
	return DroneStateRow{
		SessionID:   session,
		DroneID:     DroneID(d.ID),
		Personality: d.Personality.Name,
		State:       d.State.String(),
		Role:        d.Role.String(),
		X:           d.X,
		Y:           d.Y,
		Altitude:    d.Altitude,
		Distance:    d.Distance,
		Bearing:     d.Bearing,
		Health:      d.Health,
		Weapon:      d.AttackWeapon,
		Wounded:     d.Wounded,
		Suppressed:  d.Suppressed,
		Distress:    d.DistressActive,
		SimTimeMs:   nowMs,
		Timestamp:   ts,
	}
}

func envOr(key, def string) string {
	if env := os.Getenv(key); env != "" {
		return env
	}
	return def
}
