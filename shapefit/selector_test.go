package shapefit

import (
	"math"
	"testing"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/shape"
	"github.com/stretchr/testify/assert"
)

func TestSelectShape_NoisyCircle(t *testing.T) {
	pts := noisyCircle(geom.Point{200, 200}, 100, 64, 1, 7)
	s := SelectShape(pts, 3, true, DefaultConfig())
	assert.Equal(t, shape.KindCircle, s.Kind)
	assert.InDelta(t, 200, s.Center.X, 2)
	assert.InDelta(t, 200, s.Center.Y, 2)
	assert.InDelta(t, 100, s.Radius, 2)
}

func TestSelectShape_AxisAlignedSquare(t *testing.T) {
	pts := squarePoints(geom.Point{300, 300}, 100, 64)
	s := SelectShape(pts, 3, true, DefaultConfig())
	assert.Equal(t, shape.KindSquare, s.Kind)
	assert.InDelta(t, 100, s.Side, 3)
}

func TestSelectShape_TwoPointOpenStroke(t *testing.T) {
	pts := []geom.Point{{10, 10}, {200, 150}}
	s := SelectShape(pts, 3, false, DefaultConfig())
	assert.Equal(t, shape.KindPolyline, s.Kind)
	assert.Equal(t, []geom.Point{{10, 10}, {200, 150}}, s.Points)
}

func TestSelectShape_FallsBackToPolylineWhenNothingQualifies(t *testing.T) {
	// A sparse, irregular open zig-zag shouldn't pass any parametric
	// shape's tolerance and should degrade to a Polyline.
	pts := []geom.Point{{0, 0}, {3, 8}, {-4, 2}, {9, -5}, {1, 11}}
	s := SelectShape(pts, 3, false, DefaultConfig())
	assert.Equal(t, shape.KindPolyline, s.Kind)
	assert.False(t, math.IsNaN(s.Error))
}
