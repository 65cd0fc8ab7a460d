package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"hostile-sim/internal/telemetry"
)

// JSONStdoutWriter prints drone state, events and session state as JSON to
// STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

func (w *JSONStdoutWriter) emit(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}

// Write outputs a drone state row in JSON format.
func (w *JSONStdoutWriter) Write(row telemetry.DroneStateRow) error { return w.emit(row) }

// WriteBatch outputs multiple drone state rows in JSON format.
func (w *JSONStdoutWriter) WriteBatch(rows []telemetry.DroneStateRow) error {
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvent outputs a combat event in JSON format.
func (w *JSONStdoutWriter) WriteEvent(e telemetry.CombatEventRow) error { return w.emit(e) }

// WriteEvents outputs multiple combat events in JSON format.
func (w *JSONStdoutWriter) WriteEvents(rows []telemetry.CombatEventRow) error {
	for _, e := range rows {
		if err := w.WriteEvent(e); err != nil {
			return err
		}
	}
	return nil
}

// WriteState outputs the session state in JSON format.
func (w *JSONStdoutWriter) WriteState(row telemetry.SessionStateRow) error { return w.emit(row) }
