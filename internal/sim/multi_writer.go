package sim

import (
	"hostile-sim/internal/telemetry"
)

// MultiWriter fan-outs drone state, combat events and session state to
// multiple writers.
type MultiWriter struct {
	telewriters  []TelemetryWriter
	eventwriters []EventWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(tws []TelemetryWriter, ews []EventWriter) *MultiWriter {
	return &MultiWriter{telewriters: tws, eventwriters: ews}
}

// Write sends a drone state row to all writers.
func (mw *MultiWriter) Write(row telemetry.DroneStateRow) error {
	for _, w := range mw.telewriters {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends multiple rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteBatch(rows []telemetry.DroneStateRow) error {
	for _, w := range mw.telewriters {
		if bw, ok := w.(batchWriter); ok {
			if err := bw.WriteBatch(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.Write(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteEvent sends a combat event to all event writers.
func (mw *MultiWriter) WriteEvent(row telemetry.CombatEventRow) error {
	for _, w := range mw.eventwriters {
		if err := w.WriteEvent(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvents sends multiple events to all event writers, using batch if supported.
func (mw *MultiWriter) WriteEvents(rows []telemetry.CombatEventRow) error {
	for _, w := range mw.eventwriters {
		if bw, ok := w.(batchEventWriter); ok {
			if err := bw.WriteEvents(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteEvent(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteState forwards session state to every telemetry writer that takes it.
func (mw *MultiWriter) WriteState(row telemetry.SessionStateRow) error {
	for _, w := range mw.telewriters {
		if sw, ok := w.(StateWriter); ok {
			if err := sw.WriteState(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every writer that can be closed, once each.
func (mw *MultiWriter) Close() error {
	seen := make(map[any]bool)
	var err error
	closeOne := func(w any) {
		c, ok := w.(interface{ Close() error })
		if !ok || seen[w] {
			return
		}
		seen[w] = true
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	for _, w := range mw.telewriters {
		closeOne(w)
	}
	for _, w := range mw.eventwriters {
		closeOne(w)
	}
	return err
}
