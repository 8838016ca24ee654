package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/gesture"
)

func TestDecodeTrace_ParsesEvents(t *testing.T) {
	raw := `{"events":[
		{"kind":"down","pointer_id":1,"pos":{"X":0,"Y":0},"t_ms":0},
		{"kind":"move","pointer_id":1,"pos":{"X":50,"Y":0},"t_ms":10},
		{"kind":"up","pointer_id":1,"pos":{"X":50,"Y":0},"t_ms":20}
	]}`

	trace, err := DecodeTrace(strings.NewReader(raw))
	assert.NoError(t, err)
	assert.Len(t, trace.Events, 3)
	assert.Equal(t, RecordedDown, trace.Events[0].Kind)
	assert.Equal(t, geom.Point{X: 50, Y: 0}, trace.Events[1].Pos)
}

func TestDecodeTrace_RejectsMalformedJSON(t *testing.T) {
	_, err := DecodeTrace(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestReplay_DrivesTrackerAndCallsOnEventAndOnMove(t *testing.T) {
	tracker := NewTracker(DefaultTimeout, DefaultMovedFarThreshold, func(gesture.Event) {})

	trace := Trace{Events: []RecordedEvent{
		{Kind: RecordedDown, PointerID: 1, Pos: geom.Point{X: 0, Y: 0}},
		{Kind: RecordedMove, PointerID: 1, Pos: geom.Point{X: 100, Y: 0}},
		{Kind: RecordedUp, PointerID: 1, Pos: geom.Point{X: 100, Y: 0}},
	}}

	var events []gesture.Event
	var moves []geom.Point

	Replay(tracker, trace, func(event gesture.Event, pos geom.Point) {
		events = append(events, event)
	}, func(pos geom.Point) {
		moves = append(moves, pos)
	})

	assert.Equal(t, []gesture.Event{gesture.F1Down, gesture.FingerMovedFar, gesture.FingerUp}, events)
	assert.Equal(t, []geom.Point{{X: 100, Y: 0}}, moves)
}

func TestReplay_IgnoresUnknownPointerID(t *testing.T) {
	tracker := NewTracker(DefaultTimeout, DefaultMovedFarThreshold, func(gesture.Event) {})
	trace := Trace{Events: []RecordedEvent{
		{Kind: RecordedUp, PointerID: 99, Pos: geom.Point{}},
	}}

	var calls int
	Replay(tracker, trace, func(gesture.Event, geom.Point) { calls++ }, func(geom.Point) {})
	assert.Equal(t, 0, calls)
}
