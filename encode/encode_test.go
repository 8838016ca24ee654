package encode

import (
	"testing"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/shape"
	"github.com/stretchr/testify/assert"
)

func TestShape_RoundTripsCircle(t *testing.T) {
	s, err := shape.NewCircle(geom.Point{X: 10, Y: 20}, 5, 0.1)
	assert.NoError(t, err)

	b, err := Shape(s)
	assert.NoError(t, err)

	decoded, err := DecodeShape(b)
	assert.NoError(t, err)
	assert.Equal(t, s, decoded)
}

func TestShape_RoundTripsStar(t *testing.T) {
	s, err := shape.NewStar(geom.Point{X: 0, Y: 0}, 100, 40, 0, 5, true, 2, 0.2)
	assert.NoError(t, err)

	b, err := Shape(s)
	assert.NoError(t, err)

	decoded, err := DecodeShape(b)
	assert.NoError(t, err)
	assert.Equal(t, s, decoded)
}

func TestDecodeShape_RejectsUnknownKind(t *testing.T) {
	_, err := DecodeShape([]byte(`{"kind":"not_a_shape"}`))
	assert.Error(t, err)
}

func TestDecodeShape_RejectsInvalidInvariant(t *testing.T) {
	_, err := DecodeShape([]byte(`{"kind":"circle","radius":-5}`))
	assert.Error(t, err)
}

func TestHistory_RoundTrips(t *testing.T) {
	circ, _ := shape.NewCircle(geom.Point{X: 1, Y: 1}, 2, 0)
	poly, _ := shape.NewPolyline([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, 0)
	shapes := []shape.Shape{circ, poly}

	b, err := History(shapes)
	assert.NoError(t, err)

	decoded, err := DecodeHistory(b)
	assert.NoError(t, err)
	assert.Equal(t, shapes, decoded)
}
