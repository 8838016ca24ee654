package shapefit

import (
	"math"
	"testing"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/shape"
	"github.com/stretchr/testify/assert"
)

// pentagonVertices returns the 5 vertices of a regular pentagon, in order.
func pentagonVertices(center geom.Point, radius, rotation float64) []geom.Point {
	out := make([]geom.Point, 5)
	for i := 0; i < 5; i++ {
		theta := rotation + 2*math.Pi*float64(i)/5
		out[i] = geom.Point{X: center.X + radius*math.Cos(theta), Y: center.Y + radius*math.Sin(theta)}
	}
	return out
}

// closedStrokeFromVertices densifies a closed polygon's edges into a
// freehand-like stroke by linear interpolation, closing back to the start.
func closedStrokeFromVertices(verts []geom.Point, perEdge int) []geom.Point {
	var out []geom.Point
	n := len(verts)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		for j := 0; j < perEdge; j++ {
			t := float64(j) / float64(perEdge)
			out = append(out, geom.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t})
		}
	}
	out = append(out, verts[0])
	return out
}

func TestFitPolygonOrStar_TooFewSegments(t *testing.T) {
	// Two RDP segments: one short of the three the fitter requires.
	pts := []geom.Point{{0, 0}, {10, 0}, {10, 10}}
	_, ok := FitPolygonOrStar(pts, 1, DefaultConfig())
	assert.False(t, ok)
}

func TestFitPolygonOrStar_Pentagram(t *testing.T) {
	// A pentagram is the regular pentagon's vertices visited in step=2 order.
	verts := pentagonVertices(geom.Point{0, 0}, 100, 0)
	star := []geom.Point{verts[0], verts[2], verts[4], verts[1], verts[3]}
	pts := closedStrokeFromVertices(star, 12)

	fit, ok := FitPolygonOrStar(pts, 1, DefaultConfig())
	assert.True(t, ok)
	assert.Equal(t, shape.KindStar, fit.Kind)
	assert.True(t, fit.SelfCrossing)
	assert.Equal(t, 5, fit.StarPoints)
	assert.Equal(t, 2, fit.StepPattern)
}

func TestFitPolygonOrStar_RegularHexagon(t *testing.T) {
	verts := make([]geom.Point, 6)
	for i := range verts {
		theta := 2 * math.Pi * float64(i) / 6
		verts[i] = geom.Point{X: 200 + 80*math.Cos(theta), Y: 200 + 80*math.Sin(theta)}
	}
	pts := closedStrokeFromVertices(verts, 10)

	fit, ok := FitPolygonOrStar(pts, 1, DefaultConfig())
	assert.True(t, ok)
	assert.Equal(t, shape.KindPolygon, fit.Kind)
	assert.Equal(t, 6, fit.Sides)
}
