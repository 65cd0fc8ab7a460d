package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hostile-sim/internal/config"
	"hostile-sim/internal/sim"
	"hostile-sim/internal/telemetry"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestResolveMode(t *testing.T) {
	cases := []struct {
		name                          string
		mode                          string
		printOnly, endpoint, terminal bool
		want                          string
	}{
		{"auto endpoint", modeAuto, false, true, true, modeGreptime},
		{"auto print-only", modeAuto, true, true, true, modeTUI},
		{"auto pipe", modeAuto, false, false, false, modeJSON},
		{"auto terminal", "", false, false, true, modeTUI},
		{"explicit color", modeColor, false, true, true, modeColor},
		{"print-only beats greptime", modeGreptime, true, true, false, modeJSON},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveMode(tc.mode, tc.printOnly, tc.endpoint, tc.terminal); got != tc.want {
				t.Fatalf("resolveMode = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewWritersJSON(t *testing.T) {
	out, err := newWriters(config.Default(), modeJSON, "", quietLogger())
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	out.cleanup()
	if _, ok := out.telemetry.(*sim.JSONStdoutWriter); !ok {
		t.Fatalf("expected *sim.JSONStdoutWriter, got %T", out.telemetry)
	}
	if _, ok := out.events.(*sim.JSONStdoutWriter); !ok {
		t.Fatalf("expected *sim.JSONStdoutWriter, got %T", out.events)
	}
	if out.tui != nil {
		t.Fatalf("no TUI expected")
	}
}

func TestNewWritersGreptimeNeedsEndpoint(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	if _, err := newWriters(config.Default(), modeGreptime, "", quietLogger()); err == nil {
		t.Fatalf("expected error without endpoint")
	}
	if _, err := newWriters(config.Default(), "carrier-pigeon", "", quietLogger()); err == nil {
		t.Fatalf("expected error for unknown output")
	}
}

func TestNewWritersLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drones.jsonl")
	out, err := newWriters(config.Default(), modeColor, path, quietLogger())
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	if _, ok := out.telemetry.(*sim.MultiWriter); !ok {
		t.Fatalf("expected *sim.MultiWriter, got %T", out.telemetry)
	}
	if err := out.telemetry.Write(telemetry.DroneStateRow{SessionID: "s1", DroneID: "hostile-0", Timestamp: time.Now()}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := out.events.WriteEvent(telemetry.CombatEventRow{SessionID: "s1", EventType: "spawned"}); err != nil {
		t.Fatalf("event failed: %v", err)
	}
	sw, ok := out.telemetry.(sim.StateWriter)
	if !ok {
		t.Fatalf("telemetry writer does not implement StateWriter")
	}
	if err := sw.WriteState(telemetry.SessionStateRow{SessionID: "s1", Hull: 100, HullMax: 100}); err != nil {
		t.Fatalf("write state failed: %v", err)
	}
	out.cleanup()

	for _, p := range []string{path, path + ".events", path + ".session"} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if info.Size() == 0 {
			t.Fatalf("expected %s to be non-empty", p)
		}
	}
}

func TestSplitEndpoint(t *testing.T) {
	host, port, err := splitEndpoint("greptime:4101")
	if err != nil || host != "greptime" || port != 4101 {
		t.Fatalf("got %s %d %v", host, port, err)
	}
	host, port, err = splitEndpoint("localhost")
	if err != nil || host != "localhost" || port != defaultGreptimePort {
		t.Fatalf("got %s %d %v", host, port, err)
	}
	if _, _, err := splitEndpoint("db:abc"); err == nil {
		t.Fatalf("expected bad port error")
	}
}
