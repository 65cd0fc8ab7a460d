package sim

import (
	"encoding/json"
	"os"

	"hostile-sim/internal/telemetry"
)

// FileWriter writes drone state, combat events and session state to JSONL
// files.
type FileWriter struct {
	droneFile   *os.File
	eventFile   *os.File
	sessionFile *os.File
	droneEnc    *json.Encoder
	eventEnc    *json.Encoder
	sessionEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. eventPath or sessionPath may be empty
// to skip those logs.
func NewFileWriter(dronePath, eventPath, sessionPath string) (*FileWriter, error) {
	df, err := os.Create(dronePath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{droneFile: df, droneEnc: json.NewEncoder(df)}
	if eventPath != "" {
		ef, err := os.Create(eventPath)
		if err != nil {
			fw.Close()
			return nil, err
		}
		fw.eventFile = ef
		fw.eventEnc = json.NewEncoder(ef)
	}
	if sessionPath != "" {
		sf, err := os.Create(sessionPath)
		if err != nil {
			fw.Close()
			return nil, err
		}
		fw.sessionFile = sf
		fw.sessionEnc = json.NewEncoder(sf)
	}
	return fw, nil
}

// Write logs a single drone state row.
func (f *FileWriter) Write(row telemetry.DroneStateRow) error {
	return f.droneEnc.Encode(row)
}

// WriteBatch logs multiple drone state rows.
func (f *FileWriter) WriteBatch(rows []telemetry.DroneStateRow) error {
	for _, r := range rows {
		if err := f.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvent logs a single combat event, if enabled.
func (f *FileWriter) WriteEvent(e telemetry.CombatEventRow) error {
	if f.eventEnc == nil {
		return nil
	}
	return f.eventEnc.Encode(e)
}

// WriteEvents logs multiple combat events.
func (f *FileWriter) WriteEvents(rows []telemetry.CombatEventRow) error {
	for _, e := range rows {
		if err := f.WriteEvent(e); err != nil {
			return err
		}
	}
	return nil
}

// WriteState logs a session state row, if enabled.
func (f *FileWriter) WriteState(row telemetry.SessionStateRow) error {
	if f.sessionEnc == nil {
		return nil
	}
	return f.sessionEnc.Encode(row)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	for _, file := range []*os.File{f.droneFile, f.eventFile, f.sessionFile} {
		if file == nil {
			continue
		}
		if e := file.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
