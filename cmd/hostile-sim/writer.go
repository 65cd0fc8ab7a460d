package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"

	"hostile-sim/internal/config"
	"hostile-sim/internal/sim"
)

const (
	modeAuto     = "auto"
	modeJSON     = "json"
	modeColor    = "color"
	modeTUI      = "tui"
	modeGreptime = "greptime"

	defaultGreptimePort = 4001
)

// sink is a writer that takes both drone rows and combat events.
type sink interface {
	sim.TelemetryWriter
	sim.EventWriter
}

// outputs is what simulate writes through.
type outputs struct {
	telemetry sim.TelemetryWriter
	events    sim.EventWriter
	tui       *sim.TUIWriter
	cleanup   func()
}

// resolveMode picks the output for "auto": GreptimeDB when an endpoint is
// configured, the TUI on an interactive terminal, JSON otherwise.
// --print-only never writes to the database.
func resolveMode(mode string, printOnly, haveEndpoint, interactive bool) string {
	if mode != "" && mode != modeAuto {
		if printOnly && mode == modeGreptime {
			return modeJSON
		}
		return mode
	}
	switch {
	case haveEndpoint && !printOnly:
		return modeGreptime
	case interactive:
		return modeTUI
	}
	return modeJSON
}

// newWriters sets up the writers for mode, teeing everything into JSONL
// files next to logFile when it is set.
func newWriters(cfg *config.Config, mode, logFile string, log *slog.Logger) (outputs, error) {
	base, err := baseWriter(cfg, mode, log)
	if err != nil {
		return outputs{}, err
	}
	out := outputs{telemetry: base, events: base, cleanup: func() { closeWriter(base) }}
	if tw, ok := base.(*sim.TUIWriter); ok {
		out.tui = tw
	}
	if logFile == "" {
		return out, nil
	}

	fw, err := sim.NewFileWriter(logFile, logFile+".events", logFile+".session")
	if err != nil {
		closeWriter(base)
		return outputs{}, err
	}
	mw := sim.NewMultiWriter([]sim.TelemetryWriter{base, fw}, []sim.EventWriter{base, fw})
	out.telemetry = mw
	out.events = mw
	out.cleanup = func() { mw.Close() }
	return out, nil
}

func baseWriter(cfg *config.Config, mode string, log *slog.Logger) (sink, error) {
	switch mode {
	case modeJSON, modeAuto, "":
		return sim.NewJSONStdoutWriter(), nil
	case modeColor:
		return sim.NewColorStdoutWriter(cfg), nil
	case modeTUI:
		return sim.NewTUIWriter(cfg), nil
	case modeGreptime:
		endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
		if endpoint == "" {
			return nil, fmt.Errorf("GREPTIMEDB_ENDPOINT not set")
		}
		host, port, err := splitEndpoint(endpoint)
		if err != nil {
			return nil, err
		}
		db := os.Getenv("GREPTIMEDB_DATABASE")
		if db == "" {
			db = "public"
		}
		return sim.NewGreptimeDBWriter(host, port, db, log.With("component", "greptime"))
	}
	return nil, fmt.Errorf("unknown output %q", mode)
}

// splitEndpoint accepts "host" or "host:port".
func splitEndpoint(endpoint string) (string, int, error) {
	host, p, err := net.SplitHostPort(endpoint)
	if err != nil {
		return endpoint, defaultGreptimePort, nil
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return "", 0, fmt.Errorf("invalid GREPTIMEDB_ENDPOINT port %q: %w", p, err)
	}
	return host, port, nil
}

func closeWriter(w any) {
	if c, ok := w.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}

// newTelemetryWriter creates a drone state writer for replay.
func newTelemetryWriter(printOnly bool, log *slog.Logger) (sim.TelemetryWriter, error) {
	mode := resolveMode(modeAuto, printOnly, os.Getenv("GREPTIMEDB_ENDPOINT") != "", false)
	return baseWriter(nil, mode, log)
}
