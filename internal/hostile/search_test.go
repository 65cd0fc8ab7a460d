package hostile

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchWaypointsEndAtLastKnown(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for _, p := range []SearchPattern{SearchSpiral, SearchZigzag, SearchWander} {
		for i := 0; i < 100; i++ {
			last := Point{r.Float64()*200 - 100, r.Float64()*200 - 100}
			from := Point{r.Float64()*200 - 100, r.Float64()*200 - 100}
			radius := 1 + r.Float64()*29
			pts := SearchWaypoints(p, last, from, radius, r)
			require.Greater(t, len(pts), 1, p.String())
			assert.Equal(t, last, pts[len(pts)-1], p.String())
			for _, pt := range pts {
				assert.LessOrEqual(t, distance(last.X, last.Y, pt.X, pt.Y), radius*1.2+1e-9, p.String())
			}
		}
	}
}

func TestZigzagFollowsApproach(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	pts := SearchWaypoints(SearchZigzag, Point{0, 0}, Point{0, -50}, 10, r)
	require.Len(t, pts, 6)
	// advances along +Y and alternates sides
	for i := 1; i < 5; i++ {
		assert.Greater(t, pts[i].Y, pts[i-1].Y)
		assert.Less(t, pts[i].X*pts[i-1].X, 0.0)
	}
}

func TestSearchPatternString(t *testing.T) {
	assert.Equal(t, "spiral", SearchSpiral.String())
	assert.Equal(t, "zigzag", SearchZigzag.String())
	assert.Equal(t, "wander", SearchWander.String())
}
