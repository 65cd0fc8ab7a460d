package sim

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"hostile-sim/internal/telemetry"
)

// ReplayLog replays drone state rows from r to writer. A speed >0 accelerates playback.
// If speed <= 0, no artificial delay is inserted. Cancelling ctx stops the replay.
func ReplayLog(ctx context.Context, r io.Reader, writer TelemetryWriter, speed float64) error {
	dec := json.NewDecoder(r)
	var prev int64 = -1
	for {
		var row telemetry.DroneStateRow
		if err := dec.Decode(&row); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if prev >= 0 && speed > 0 {
			diff := time.Duration(row.SimTimeMs-prev) * time.Millisecond
			if speed != 1 {
				diff = time.Duration(float64(diff) / speed)
			}
			if diff > 0 {
				select {
				case <-time.After(diff):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		if err := writer.Write(row); err != nil {
			return err
		}
		prev = row.SimTimeMs
	}
}

// ReplayLogFile opens a file and replays its drone state rows.
func ReplayLogFile(ctx context.Context, path string, writer TelemetryWriter, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReplayLog(ctx, f, writer, speed)
}
