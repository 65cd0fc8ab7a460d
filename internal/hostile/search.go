package hostile

import "math"

const waypointReach = 1.5

// SearchWaypoints lays out a search pattern around lastKnown. from is the
// drone's position and orients the zigzag. The last waypoint is always
// lastKnown itself.
func SearchWaypoints(p SearchPattern, lastKnown, from Point, radius float64, r Rand) []Point {
	var pts []Point
	switch p {
	case SearchSpiral:
		const n = 6
		start := uniform(r, 0, 360)
		for i := 0; i < n; i++ {
			rad := radius * float64(i+1) / n
			pts = append(pts, pointAt(lastKnown.X, lastKnown.Y, start+float64(i)*70, rad))
		}
	case SearchZigzag:
		const n = 5
		ax, ay := lastKnown.X-from.X, lastKnown.Y-from.Y
		l := math.Hypot(ax, ay)
		if l < 1e-6 {
			ax, ay, l = 0, 1, 1
		}
		ax, ay = ax/l, ay/l
		px, py := -ay, ax
		for i := 0; i < n; i++ {
			along := -radius + 2*radius*float64(i)/(n-1)
			side := radius * 0.5
			if i%2 == 1 {
				side = -side
			}
			pts = append(pts, Point{
				X: lastKnown.X + ax*along + px*side,
				Y: lastKnown.Y + ay*along + py*side,
			})
		}
	default:
		const n = 4
		for i := 0; i < n; i++ {
			pts = append(pts, pointAt(lastKnown.X, lastKnown.Y, uniform(r, 0, 360), uniform(r, radius*0.3, radius)))
		}
	}
	return append(pts, lastKnown)
}

func (m *Manager) startSearch(d *Drone, now int64) {
	d.SearchPattern = SearchPattern(m.rnd.Intn(3))
	d.searchRadius = m.tuning.SearchRadius
	d.lastExpand = now
	d.Waypoints = SearchWaypoints(d.SearchPattern, d.LastKnown, Point{d.X, d.Y}, d.searchRadius, m.rnd)
	d.waypointIdx = 0
}

// expandSearch widens the search radius up to the cap and regenerates the
// waypoints. It reports whether the radius grew.
func (m *Manager) expandSearch(d *Drone, now int64) bool {
	d.lastExpand = now
	next := math.Min(d.searchRadius*m.tuning.SearchExpandFactor, m.tuning.SearchRadiusMax)
	if next <= d.searchRadius {
		return false
	}
	d.searchRadius = next
	d.Waypoints = SearchWaypoints(d.SearchPattern, d.LastKnown, Point{d.X, d.Y}, d.searchRadius, m.rnd)
	d.waypointIdx = 0
	return true
}

// SearchRadius is the current search radius, zero outside searching.
func (d *Drone) SearchRadius() float64 {
	if d.State != StateSearching {
		return 0
	}
	return d.searchRadius
}
