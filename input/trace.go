package input

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/gesture"
)

// RecordedKind discriminates the pointer action a RecordedEvent replays.
type RecordedKind string

// The three pointer actions a trace can record, mirroring the Down/Move/Up
// entry points of Tracker.
const (
	RecordedDown RecordedKind = "down"
	RecordedMove RecordedKind = "move"
	RecordedUp   RecordedKind = "up"
)

// RecordedEvent is one entry of a recorded pointer trace: a single
// finger's down, move or up action at a point in time.
type RecordedEvent struct {
	Kind      RecordedKind `json:"kind"`
	PointerID int          `json:"pointer_id"`
	Pos       geom.Point   `json:"pos"`
	TMs       int64        `json:"t_ms"`
}

// Trace is a recorded, timestamped sequence of pointer events, the wire
// format consumed by the batch driver.
type Trace struct {
	Events []RecordedEvent `json:"events"`
}

// DecodeTrace reads a Trace from its JSON form.
func DecodeTrace(r io.Reader) (Trace, error) {
	var t Trace
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return Trace{}, errors.Wrap(err, "decode trace")
	}
	return t, nil
}

// Replay drives a Tracker with a trace's events in order, invoking onEvent
// for every Tracker call that produces a gesture.Event and onMove for every
// recorded move. Replay ignores
// TMs except for relative ordering; traces are replayed as fast as
// possible rather than in real time, since the gesture state machine and
// Tracker's moved-far detection are time-independent except for the
// TIMEOUT path, which a headless replay cannot exercise and does not need
// to: a batch trace is expected to represent one complete, uninterrupted
// gesture.
func Replay(t *Tracker, trace Trace, onEvent func(event gesture.Event, pos geom.Point), onMove func(pos geom.Point)) {
	for _, ev := range trace.Events {
		switch ev.Kind {
		case RecordedDown:
			if event, ok := t.Down(ev.PointerID, ev.Pos); ok {
				onEvent(event, ev.Pos)
			}
		case RecordedMove:
			if event, ok := t.Move(ev.PointerID, ev.Pos); ok {
				onEvent(event, ev.Pos)
			}
			onMove(ev.Pos)
		case RecordedUp:
			if event, ok := t.Up(ev.PointerID); ok {
				onEvent(event, ev.Pos)
			}
		}
	}
}
