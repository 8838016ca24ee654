package shapefit

import (
	"math"
	"testing"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/shape"
	"github.com/stretchr/testify/assert"
)

func ellipsePoints(center geom.Point, rx, ry, rotation float64, n int) []geom.Point {
	out := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		local := geom.Point{X: rx * math.Cos(t), Y: ry * math.Sin(t)}
		out[i] = geom.RotateAbout(local.Add(center), center, rotation)
	}
	return out
}

func TestFitEllipse_TooFewPoints(t *testing.T) {
	_, ok := FitEllipse([]geom.Point{{0, 0}, {1, 1}, {2, 2}}, DefaultConfig())
	assert.False(t, ok)
}

func TestFitEllipse_RotatedEllipse(t *testing.T) {
	center := geom.Point{400, 400}
	rotation := 30 * math.Pi / 180
	pts := ellipsePoints(center, 150, 60, rotation, 64)

	fit, ok := FitEllipse(pts, DefaultConfig())
	assert.True(t, ok)
	assert.Equal(t, shape.KindEllipse, fit.Kind)
	assert.GreaterOrEqual(t, fit.RX, fit.RY)
}

func TestFitEllipse_DegenerateCollinearPoints(t *testing.T) {
	pts := []geom.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}
	_, ok := FitEllipse(pts, DefaultConfig())
	assert.False(t, ok)
}
