package hostile

import "math"

func distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}

// normalizeAngle maps degrees onto [-180, 180).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}

// compassAngle is the heading from (fx, fy) to (tx, ty), 0 = +Y, clockwise.
func compassAngle(fx, fy, tx, ty float64) float64 {
	return math.Atan2(tx-fx, ty-fy) * 180 / math.Pi
}

// relativeBearing is the drone's angle off the player's facing.
func relativeBearing(p Player, x, y float64) float64 {
	return normalizeAngle(compassAngle(p.X, p.Y, x, y) - p.Facing)
}

func pointAt(cx, cy, angleDeg, r float64) Point {
	rad := angleDeg * math.Pi / 180
	return Point{X: cx + r*math.Sin(rad), Y: cy + r*math.Cos(rad)}
}

// updateSpatial refreshes the per-tick cache: 2D distance, altitude
// difference, bearing and a velocity derived from the position delta.
func updateSpatial(d *Drone, p Player, dt float64) {
	d.Distance = distance(p.X, p.Y, d.X, d.Y)
	d.AltitudeDiff = d.Altitude - p.Altitude
	d.Bearing = relativeBearing(p, d.X, d.Y)
	if dt > 0.001 {
		d.VX = (d.X - d.prevX) / dt
		d.VY = (d.Y - d.prevY) / dt
		d.VZ = (d.Altitude - d.prevAlt) / dt / feetPerMetre
		d.prevX, d.prevY, d.prevAlt = d.X, d.Y, d.Altitude
	}
}
