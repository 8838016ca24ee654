package orchestrator

import (
	"math"
	"testing"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/gesture"
	"github.com/esimov/sketchaire/shape"
	"github.com/esimov/sketchaire/shapefit"
	"github.com/stretchr/testify/assert"
)

func circleStroke(center geom.Point, radius float64, n int) []geom.Point {
	pts := make([]geom.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, geom.Point{
			X: center.X + radius*math.Cos(theta),
			Y: center.Y + radius*math.Sin(theta),
		})
	}
	return pts
}

func driveFullGesture(o *Orchestrator, pts []geom.Point) {
	o.HandleEvent(gesture.F1Down, pts[0])
	o.HandleEvent(gesture.F2Down, pts[0])
	for _, p := range pts[1:] {
		o.ExtendLiveStroke(p)
	}
	o.HandleEvent(gesture.FingerUp, pts[len(pts)-1])
}

func TestOrchestrator_FullGestureCommitsCircle(t *testing.T) {
	o := New(shapefit.DefaultConfig())
	pts := circleStroke(geom.Point{X: 100, Y: 100}, 50, 64)

	driveFullGesture(o, pts)

	assert.Equal(t, gesture.Idle, o.State)
	assert.True(t, o.Fresh)
	assert.Equal(t, 1, o.History.Len())
	assert.Equal(t, shape.KindCircle, o.History.Shapes()[0].Kind)
}

func TestOrchestrator_AbortOnThirdFingerDuringMovingMarkerDiscardsNothing(t *testing.T) {
	o := New(shapefit.DefaultConfig())
	o.HandleEvent(gesture.F1Down, geom.Point{})
	o.HandleEvent(gesture.F3Down, geom.Point{})

	assert.Equal(t, gesture.Idle, o.State)
	assert.Equal(t, 0, o.History.Len())
}

func TestOrchestrator_AbandonStrokeDiscardsLiveStroke(t *testing.T) {
	o := New(shapefit.DefaultConfig())
	pts := circleStroke(geom.Point{X: 0, Y: 0}, 40, 32)
	o.HandleEvent(gesture.F1Down, pts[0])
	o.HandleEvent(gesture.F2Down, pts[0])
	for _, p := range pts[1:] {
		o.ExtendLiveStroke(p)
	}
	o.HandleEvent(gesture.F3Down, pts[len(pts)-1])

	assert.Equal(t, gesture.Transform, o.State)
	assert.Nil(t, o.Live)
	assert.Equal(t, 0, o.History.Len())
}

func TestOrchestrator_ThirdFingerAfterMovedFarSavesInsteadOfAbandoning(t *testing.T) {
	o := New(shapefit.DefaultConfig())
	pts := circleStroke(geom.Point{X: 0, Y: 0}, 40, 32)
	o.HandleEvent(gesture.F1Down, pts[0])
	o.HandleEvent(gesture.F2Down, pts[0])
	for _, p := range pts[1:] {
		o.ExtendLiveStroke(p)
	}
	o.HandleEvent(gesture.FingerMovedFar, pts[len(pts)-1])
	o.HandleEvent(gesture.F3Down, pts[len(pts)-1])

	assert.Equal(t, gesture.Transform, o.State)
	assert.Nil(t, o.Live)
	assert.Equal(t, 1, o.History.Len())
}

func TestOrchestrator_UndoPopsHistory(t *testing.T) {
	o := New(shapefit.DefaultConfig())
	driveFullGesture(o, circleStroke(geom.Point{X: 0, Y: 0}, 30, 32))
	assert.Equal(t, 1, o.History.Len())

	o.HandleEvent(gesture.Undo, geom.Point{})
	assert.Equal(t, 0, o.History.Len())
}

func TestOrchestrator_ClearEmptiesHistoryAndSourcePoints(t *testing.T) {
	o := New(shapefit.DefaultConfig())
	driveFullGesture(o, circleStroke(geom.Point{X: 0, Y: 0}, 30, 32))
	o.HandleEvent(gesture.Clear, geom.Point{})

	assert.Equal(t, 0, o.History.Len())
	o.FitLast()
	assert.Equal(t, 0, o.History.Len())
}

func TestOrchestrator_FitLastRepeatsSameShape(t *testing.T) {
	o := New(shapefit.DefaultConfig())
	driveFullGesture(o, circleStroke(geom.Point{X: 0, Y: 0}, 30, 32))
	before := o.History.Shapes()[0]

	o.FitLast()
	after := o.History.Shapes()[0]

	assert.Equal(t, 1, o.History.Len())
	assert.Equal(t, before.Kind, after.Kind)
}

func TestOrchestrator_MarkerMovesInMovingMarkerState(t *testing.T) {
	o := New(shapefit.DefaultConfig())
	o.HandleEvent(gesture.F1Down, geom.Point{X: 5, Y: 5})
	_, hints := o.HandleEvent(gesture.FingerMovedFar, geom.Point{X: 50, Y: 60})

	assert.Equal(t, geom.Point{X: 50, Y: 60}, o.Marker)
	assert.Equal(t, gesture.MovingMarker, o.State)
	assert.Equal(t, []RenderHint{{Kind: HintMarkerAt, Marker: geom.Point{X: 50, Y: 60}, Color: o.StrokeColor, Size: o.StrokeWidth}}, hints)
}

func TestOrchestrator_SaveStrokeEmitsCommittedShapeHint(t *testing.T) {
	o := New(shapefit.DefaultConfig())
	pts := circleStroke(geom.Point{X: 0, Y: 0}, 30, 32)
	o.HandleEvent(gesture.F1Down, pts[0])
	o.HandleEvent(gesture.F2Down, pts[0])
	for _, p := range pts[1:] {
		o.ExtendLiveStroke(p)
	}
	_, hints := o.HandleEvent(gesture.FingerUp, pts[len(pts)-1])

	assert.Len(t, hints, 1)
	assert.Equal(t, HintCommittedShape, hints[0].Kind)
	assert.Equal(t, o.History.Shapes()[0], hints[0].Shape)
}
