package history

import (
	"testing"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/shape"
	"github.com/stretchr/testify/assert"
)

func TestHistory_AppendAndPop(t *testing.T) {
	h := New()
	a := shape.NewRawPoints([]geom.Point{{X: 0, Y: 0}})
	b := shape.NewRawPoints([]geom.Point{{X: 1, Y: 1}})
	h.Append(a)
	h.Append(b)
	assert.Equal(t, 2, h.Len())

	last, ok := h.Pop()
	assert.True(t, ok)
	assert.Equal(t, b, last)
	assert.Equal(t, 1, h.Len())
}

func TestHistory_PopOnEmptyIsNoOp(t *testing.T) {
	h := New()
	_, ok := h.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Len())
}

func TestHistory_Clear(t *testing.T) {
	h := New()
	h.Append(shape.NewRawPoints([]geom.Point{{X: 0, Y: 0}}))
	h.Clear()
	assert.Equal(t, 0, h.Len())
	_, ok := h.Pop()
	assert.False(t, ok)
}

func TestHistory_ShapesReturnsCopyInCommitOrder(t *testing.T) {
	h := New()
	a := shape.NewRawPoints([]geom.Point{{X: 0, Y: 0}})
	b := shape.NewRawPoints([]geom.Point{{X: 1, Y: 1}})
	h.Append(a)
	h.Append(b)

	snapshot := h.Shapes()
	assert.Equal(t, []shape.Shape{a, b}, snapshot)

	h.Append(shape.NewRawPoints([]geom.Point{{X: 2, Y: 2}}))
	assert.Len(t, snapshot, 2)
}
