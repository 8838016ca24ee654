package shapefit

import (
	"testing"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/shape"
	"github.com/stretchr/testify/assert"
)

func TestFitAll_AgreesWithSelectShape(t *testing.T) {
	pts := noisyCircle(geom.Point{200, 200}, 100, 64, 1, 7)
	cfg := DefaultConfig()

	got := FitAll(pts, 3, true, cfg)
	want := SelectShape(pts, 3, true, cfg)

	assert.Equal(t, want, got)
	assert.Equal(t, shape.KindCircle, got.Kind)
}
