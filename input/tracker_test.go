package input

import (
	"testing"
	"time"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/gesture"
	"github.com/stretchr/testify/assert"
)

func noopEmit(gesture.Event) {}

func TestTracker_DownAssignsSlotsInOrder(t *testing.T) {
	tr := NewTracker(DefaultTimeout, DefaultMovedFarThreshold, noopEmit)

	ev, ok := tr.Down(1, geom.Point{X: 0, Y: 0})
	assert.True(t, ok)
	assert.Equal(t, gesture.F1Down, ev)

	ev, ok = tr.Down(2, geom.Point{X: 10, Y: 10})
	assert.True(t, ok)
	assert.Equal(t, gesture.F2Down, ev)

	ev, ok = tr.Down(3, geom.Point{X: 20, Y: 20})
	assert.True(t, ok)
	assert.Equal(t, gesture.F3Down, ev)
}

func TestTracker_FourthFingerIgnored(t *testing.T) {
	tr := NewTracker(DefaultTimeout, DefaultMovedFarThreshold, noopEmit)
	tr.Down(1, geom.Point{})
	tr.Down(2, geom.Point{})
	tr.Down(3, geom.Point{})

	_, ok := tr.Down(4, geom.Point{})
	assert.False(t, ok)
}

func TestTracker_MoveEmitsMovedFarPastThreshold(t *testing.T) {
	tr := NewTracker(DefaultTimeout, DefaultMovedFarThreshold, noopEmit)
	tr.Down(1, geom.Point{X: 0, Y: 0})

	_, ok := tr.Move(1, geom.Point{X: 5, Y: 0})
	assert.False(t, ok)

	ev, ok := tr.Move(1, geom.Point{X: 40, Y: 0})
	assert.True(t, ok)
	assert.Equal(t, gesture.FingerMovedFar, ev)
}

func TestTracker_MoveFiresAtMostOncePerCrossing(t *testing.T) {
	tr := NewTracker(DefaultTimeout, DefaultMovedFarThreshold, noopEmit)
	tr.Down(1, geom.Point{X: 0, Y: 0})

	tr.Move(1, geom.Point{X: 40, Y: 0})
	_, ok := tr.Move(1, geom.Point{X: 45, Y: 0})
	assert.False(t, ok)
}

func TestTracker_TertiaryMoveNeverEmitsMovedFar(t *testing.T) {
	tr := NewTracker(DefaultTimeout, DefaultMovedFarThreshold, noopEmit)
	tr.Down(1, geom.Point{})
	tr.Down(2, geom.Point{})
	tr.Down(3, geom.Point{X: 0, Y: 0})

	_, ok := tr.Move(3, geom.Point{X: 100, Y: 100})
	assert.False(t, ok)
}

func TestTracker_UpReleasesSlotForReuse(t *testing.T) {
	tr := NewTracker(DefaultTimeout, DefaultMovedFarThreshold, noopEmit)
	tr.Down(1, geom.Point{})

	ev, ok := tr.Up(1)
	assert.True(t, ok)
	assert.Equal(t, gesture.FingerUp, ev)

	ev, ok = tr.Down(2, geom.Point{})
	assert.True(t, ok)
	assert.Equal(t, gesture.F1Down, ev)
}

func TestTracker_UpOnUnknownIdIsIgnored(t *testing.T) {
	tr := NewTracker(DefaultTimeout, DefaultMovedFarThreshold, noopEmit)
	_, ok := tr.Up(99)
	assert.False(t, ok)
}

func TestTracker_TimeoutFiresAfterIdlePeriod(t *testing.T) {
	fired := make(chan gesture.Event, 1)
	tr := NewTracker(20*time.Millisecond, DefaultMovedFarThreshold, func(e gesture.Event) {
		fired <- e
	})
	tr.Down(1, geom.Point{})

	select {
	case e := <-fired:
		assert.Equal(t, gesture.Timeout, e)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout event never fired")
	}
}

func TestTracker_UpWithNoRemainingPointersCancelsTimer(t *testing.T) {
	fired := make(chan gesture.Event, 1)
	tr := NewTracker(20*time.Millisecond, DefaultMovedFarThreshold, func(e gesture.Event) {
		fired <- e
	})
	tr.Down(1, geom.Point{})
	tr.Up(1)

	select {
	case <-fired:
		t.Fatal("timeout fired after all pointers released")
	case <-time.After(60 * time.Millisecond):
	}
}
