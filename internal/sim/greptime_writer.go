package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"hostile-sim/internal/telemetry"
)

// greptimeClient is the part of the ingester client the writer uses.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes drone state, combat events and session state to
// GreptimeDB via the ingester client. Tables are created on first write.
type GreptimeDBWriter struct {
	client       greptimeClient
	droneTable   string
	eventTable   string
	sessionTable string
	timeout      time.Duration
	log          *slog.Logger
}

// NewGreptimeDBWriter connects to host:port and writes into database.
func NewGreptimeDBWriter(host string, port int, database string, log *slog.Logger) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("greptime client: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &GreptimeDBWriter{
		client:       client,
		droneTable:   telemetry.DroneStateTableName,
		eventTable:   telemetry.CombatEventTableName,
		sessionTable: telemetry.SessionStateTableName,
		timeout:      5 * time.Second,
		log:          log,
	}, nil
}

func (w *GreptimeDBWriter) logger() *slog.Logger {
	if w.log == nil {
		return slog.Default()
	}
	return w.log
}

func (w *GreptimeDBWriter) send(name string, tbl *table.Table, n int) error {
	ctx := context.Background()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	if _, err := w.client.Write(ctx, tbl); err != nil {
		w.logger().Error("greptime write failed", "table", name, "err", err)
		return err
	}
	w.logger().Debug("greptime write", "table", name, "rows", n)
	return nil
}

// Write inserts a single drone state row.
func (w *GreptimeDBWriter) Write(row telemetry.DroneStateRow) error {
	return w.WriteBatch([]telemetry.DroneStateRow{row})
}

// WriteBatch inserts multiple drone state rows.
func (w *GreptimeDBWriter) WriteBatch(rows []telemetry.DroneStateRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.droneTable)
	if err != nil {
		return err
	}
	cols := []struct {
		name string
		tag  bool
		typ  types.ColumnType
	}{
		{"session_id", true, types.STRING},
		{"drone_id", true, types.STRING},
		{"personality", false, types.STRING},
		{"state", false, types.STRING},
		{"role", false, types.STRING},
		{"x", false, types.FLOAT64},
		{"y", false, types.FLOAT64},
		{"altitude_ft", false, types.FLOAT64},
		{"distance_m", false, types.FLOAT64},
		{"bearing", false, types.FLOAT64},
		{"health", false, types.FLOAT64},
		{"weapon", false, types.STRING},
		{"wounded", false, types.BOOLEAN},
		{"suppressed", false, types.BOOLEAN},
		{"distress", false, types.BOOLEAN},
		{"sim_time_ms", false, types.INT64},
	}
	for _, c := range cols {
		if c.tag {
			err = tbl.AddTagColumn(c.name, c.typ)
		} else {
			err = tbl.AddFieldColumn(c.name, c.typ)
		}
		if err != nil {
			return err
		}
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}
	for _, r := range rows {
		if err := tbl.AddRow(r.SessionID, r.DroneID, r.Personality, r.State, r.Role,
			r.X, r.Y, r.Altitude, r.Distance, r.Bearing, r.Health, r.Weapon,
			r.Wounded, r.Suppressed, r.Distress, r.SimTimeMs, r.Timestamp); err != nil {
			return err
		}
	}
	return w.send(w.droneTable, tbl, len(rows))
}

// WriteEvent inserts a single combat event.
func (w *GreptimeDBWriter) WriteEvent(e telemetry.CombatEventRow) error {
	return w.WriteEvents([]telemetry.CombatEventRow{e})
}

// WriteEvents inserts multiple combat events.
func (w *GreptimeDBWriter) WriteEvents(rows []telemetry.CombatEventRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.eventTable)
	if err != nil {
		return err
	}
	steps := []error{
		tbl.AddTagColumn("session_id", types.STRING),
		tbl.AddTagColumn("event_type", types.STRING),
		tbl.AddFieldColumn("drone_id", types.STRING),
		tbl.AddFieldColumn("personality", types.STRING),
		tbl.AddFieldColumn("state", types.STRING),
		tbl.AddFieldColumn("weapon", types.STRING),
		tbl.AddFieldColumn("role", types.STRING),
		tbl.AddFieldColumn("shots", types.INT64),
		tbl.AddFieldColumn("hits", types.INT64),
		tbl.AddFieldColumn("damage", types.FLOAT64),
		tbl.AddFieldColumn("distance_m", types.FLOAT64),
		tbl.AddFieldColumn("hit", types.BOOLEAN),
		tbl.AddFieldColumn("other_id", types.STRING),
		tbl.AddFieldColumn("sim_time_ms", types.INT64),
		tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND),
	}
	for _, err := range steps {
		if err != nil {
			return err
		}
	}
	for _, e := range rows {
		if err := tbl.AddRow(e.SessionID, e.EventType, e.DroneID, e.Personality, e.State,
			e.Weapon, e.Role, int64(e.Shots), int64(e.Hits), e.Damage, e.Distance, e.Hit,
			e.OtherID, e.SimTimeMs, e.Timestamp); err != nil {
			return err
		}
	}
	return w.send(w.eventTable, tbl, len(rows))
}

// WriteState inserts a session state row.
func (w *GreptimeDBWriter) WriteState(r telemetry.SessionStateRow) error {
	tbl, err := table.New(w.sessionTable)
	if err != nil {
		return err
	}
	steps := []error{
		tbl.AddTagColumn("session_id", types.STRING),
		tbl.AddFieldColumn("phase", types.STRING),
		tbl.AddFieldColumn("active_drones", types.INT64),
		tbl.AddFieldColumn("max_drones", types.INT64),
		tbl.AddFieldColumn("closest_distance_m", types.FLOAT64),
		tbl.AddFieldColumn("hull", types.FLOAT64),
		tbl.AddFieldColumn("camo", types.BOOLEAN),
		tbl.AddFieldColumn("player_down", types.BOOLEAN),
		tbl.AddFieldColumn("spawned_total", types.INT64),
		tbl.AddFieldColumn("destroyed_total", types.INT64),
		tbl.AddFieldColumn("shots_fired_total", types.INT64),
		tbl.AddFieldColumn("shots_hit_total", types.INT64),
		tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND),
	}
	for _, err := range steps {
		if err != nil {
			return err
		}
	}
	if err := tbl.AddRow(r.SessionID, r.Phase, int64(r.ActiveDrones), int64(r.MaxDrones),
		r.ClosestDistance, r.Hull, r.Camo, r.PlayerDown, int64(r.Spawned), int64(r.Destroyed),
		int64(r.ShotsFired), int64(r.ShotsHit), r.Timestamp); err != nil {
		return err
	}
	return w.send(w.sessionTable, tbl, 1)
}
