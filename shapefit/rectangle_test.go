package shapefit

import (
	"math"
	"testing"

	"github.com/esimov/sketchaire/geom"
	"github.com/stretchr/testify/assert"
)

func squarePoints(center geom.Point, side float64, n int) []geom.Point {
	h := side / 2
	corners := []geom.Point{
		{center.X - h, center.Y - h},
		{center.X + h, center.Y - h},
		{center.X + h, center.Y + h},
		{center.X - h, center.Y + h},
	}
	out := make([]geom.Point, n)
	perim := side * 4
	for i := 0; i < n; i++ {
		target := perim * float64(i) / float64(n)
		edge := int(target / side)
		t := (target - float64(edge)*side) / side
		a := corners[edge%4]
		b := corners[(edge+1)%4]
		out[i] = geom.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
	}
	return out
}

func TestFitRectangle_TooFewPoints(t *testing.T) {
	_, ok := FitRectangle([]geom.Point{{0, 0}, {1, 0}, {1, 1}}, DefaultConfig())
	assert.False(t, ok)
}

func TestFitRectangle_AxisAlignedSquare(t *testing.T) {
	center := geom.Point{300, 300}
	pts := squarePoints(center, 100, 64)

	fit, ok := FitRectangle(pts, DefaultConfig())
	assert.True(t, ok)
	assert.InDelta(t, 100, fit.Square.Side, 3)
	assert.Less(t, fit.Squareness, 0.03)
	assert.True(t, math.Mod(fit.Square.Rotation*180/math.Pi, 90) < 2 || math.Mod(fit.Square.Rotation*180/math.Pi, 90) > 88)
}
