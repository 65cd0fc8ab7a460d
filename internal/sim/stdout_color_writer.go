// ColorStdoutWriter prints human-friendly, colorized AI output to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"

	"hostile-sim/internal/config"
	"hostile-sim/internal/telemetry"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorWhite   = "\x1b[37m"
	colorGray    = "\x1b[90m"
)

var personalityPalette = map[string]string{
	"balanced":   colorBlue,
	"aggressive": colorRed,
	"cautious":   colorGreen,
	"sniper":     colorMagenta,
	"erratic":    colorYellow,
}

func personalityColor(name string) string {
	if c, ok := personalityPalette[name]; ok {
		return c
	}
	return colorWhite
}

func stateColor(state string) string {
	switch state {
	case "attacking", "winding_up":
		return colorRed
	case "engaging", "detecting":
		return colorYellow
	case "searching", "cooldown":
		return colorCyan
	case "destroyed":
		return colorGray
	}
	return colorGreen
}

// ColorStdoutWriter prints combat events and a per-second state line using
// ANSI colors. Drone state rows are summarised, not printed one by one.
type ColorStdoutWriter struct {
	cfg      *config.Config
	out      io.Writer
	once     sync.Once
	lastSec  int64
	printAll bool
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.Config) *ColorStdoutWriter {
	return &ColorStdoutWriter{cfg: cfg, out: os.Stdout, lastSec: -1}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}
	t := w.cfg.Tuning()
	fmt.Fprintln(w.out, "Hostile Drone Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Max Drones:\t%d\n", t.MaxDrones)
	fmt.Fprintf(tw, "Detect / Lose / Reacquire (m):\t%.0f / %.0f / %.0f\n", t.DetectRange, t.LoseTrackRange, t.ReacquireRange)
	fmt.Fprintf(tw, "Attack Range (m):\t%.0f\n", t.AttackRange)
	fmt.Fprintf(tw, "Spawn Interval (ms):\t%d\n", t.SpawnIntervalMs)
	fmt.Fprintf(tw, "Wind-up:\t%t\n", !t.DisableWindUp)
	fmt.Fprintf(tw, "Scenario:\t%s\n", w.cfg.Scenario)
	tw.Flush()
	fmt.Fprintln(w.out)
}

// Write prints a drone row only in verbose mode.
func (w *ColorStdoutWriter) Write(row telemetry.DroneStateRow) error {
	w.once.Do(w.printOverview)
	if !w.printAll {
		return nil
	}
	fmt.Fprintf(w.out, "%s[%6d]%s %s%s%s %s%-10s%s %sstate=%s%s role=%s dist=%.1f brg=%.0f alt=%.0f hp=%.0f\n",
		colorGray, row.SimTimeMs, colorReset,
		colorWhite, row.DroneID, colorReset,
		personalityColor(row.Personality), row.Personality, colorReset,
		stateColor(row.State), row.State, colorReset,
		row.Role, row.Distance, row.Bearing, row.Altitude, row.Health)
	return nil
}

// WriteBatch outputs multiple drone rows.
func (w *ColorStdoutWriter) WriteBatch(rows []telemetry.DroneStateRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteEvent prints a combat event. Individual shots are skipped; bursts
// summarise them.
func (w *ColorStdoutWriter) WriteEvent(e telemetry.CombatEventRow) error {
	w.once.Do(w.printOverview)
	if e.EventType == "shot" {
		return nil
	}
	fmt.Fprintf(w.out, "%s[%6d]%s %s%-20s%s %s%s%s %s%s%s dist=%.1f",
		colorGray, e.SimTimeMs, colorReset,
		eventColor(e.EventType), e.EventType, colorReset,
		colorWhite, e.DroneID, colorReset,
		personalityColor(e.Personality), e.Personality, colorReset,
		e.Distance)
	if e.Weapon != "" {
		fmt.Fprintf(w.out, " weapon=%s", e.Weapon)
	}
	if e.Shots > 0 {
		fmt.Fprintf(w.out, " hits=%d/%d", e.Hits, e.Shots)
	}
	if e.Role != "" {
		fmt.Fprintf(w.out, " role=%s", e.Role)
	}
	if e.OtherID != "" {
		fmt.Fprintf(w.out, " with=%s", e.OtherID)
	}
	fmt.Fprintln(w.out)
	return nil
}

func eventColor(t string) string {
	switch t {
	case "destroyed", "burst_started", "burst_complete", "wind_up":
		return colorRed
	case "wounded", "suppressed", "distress", "alerted":
		return colorMagenta
	case "role_changed", "coordinated_assault":
		return colorCyan
	case "lost", "forced_search", "search_expanded":
		return colorBlue
	}
	return colorYellow
}

// WriteEvents prints multiple combat events.
func (w *ColorStdoutWriter) WriteEvents(rows []telemetry.CombatEventRow) error {
	for _, e := range rows {
		_ = w.WriteEvent(e)
	}
	return nil
}

// WriteState prints the session state at most once per simulated second.
func (w *ColorStdoutWriter) WriteState(row telemetry.SessionStateRow) error {
	w.once.Do(w.printOverview)
	sec := row.SimTimeMs / 1000
	if sec == w.lastSec {
		return nil
	}
	w.lastSec = sec
	hullColor := colorGreen
	switch pct := row.Hull / row.HullMax * 100; {
	case pct <= 25:
		hullColor = colorRed
	case pct <= 50:
		hullColor = colorYellow
	}
	fmt.Fprintf(w.out, "%s[%6d]%s %sSTATE%s phase=%s drones=%d/%d closest=%.1f %shull=%.0f%s camo=%t kills=%d shots=%d hits=%d\n",
		colorGray, row.SimTimeMs, colorReset,
		colorBlue, colorReset, row.Phase, row.ActiveDrones, row.MaxDrones, row.ClosestDistance,
		hullColor, row.Hull, colorReset, row.Camo, row.Destroyed, row.ShotsFired, row.ShotsHit)
	return nil
}
