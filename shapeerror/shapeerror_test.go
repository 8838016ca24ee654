package shapeerror

import (
	"math"
	"testing"

	"github.com/esimov/sketchaire/geom"
	"github.com/stretchr/testify/assert"
)

func circleSamples(center geom.Point, radius float64, n int) []geom.Point {
	out := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		out[i] = geom.Point{X: center.X + radius*math.Cos(theta), Y: center.Y + radius*math.Sin(theta)}
	}
	return out
}

func TestMetric_PerfectMatchIsZero(t *testing.T) {
	pts := circleSamples(geom.Point{0, 0}, 50, 64)
	dist := func(p geom.Point) float64 {
		return math.Abs(geom.Dist(p, geom.Point{0, 0}) - 50)
	}
	assert.InDelta(t, 0, Metric(pts, dist, pts), 1e-6)
}

func TestMetric_PenalizesOversizedEnclosingShape(t *testing.T) {
	pts := circleSamples(geom.Point{0, 0}, 50, 64)
	// A huge circle encloses every input point with ~zero inward error,
	// but the shape-to-stroke direction must catch it.
	hugeDist := func(p geom.Point) float64 {
		return math.Abs(geom.Dist(p, geom.Point{0, 0}) - 1000)
	}
	hugeSamples := circleSamples(geom.Point{0, 0}, 1000, 64)
	err := Metric(pts, hugeDist, hugeSamples)
	assert.Greater(t, err, 1000.0)
}
