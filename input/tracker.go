// Package input turns raw platform pointer events into the small event
// vocabulary package gesture consumes, per spec §4.L.
package input

import (
	"sync"
	"time"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/gesture"
)

// DefaultTimeout is the idle-after-finger-down interval triggering TIMEOUT.
const DefaultTimeout = 250 * time.Millisecond

// DefaultMovedFarThreshold is the minimum displacement, in pixels, that
// emits FINGER_MOVED_FAR for the primary or secondary finger.
const DefaultMovedFarThreshold = 30.0

type slotName int

const (
	slotNone slotName = iota
	slotPrimary
	slotSecondary
	slotTertiary
)

type slot struct {
	name   slotName
	id     int
	active bool
	pos    geom.Point
	ref    geom.Point
}

// Tracker holds up to three concurrently active pointers and converts
// down/move/up calls into gesture.Events, including the 250 ms timeout
// modeled as a host-controlled timer (spec §5's only time-dependent
// behavior).
type Tracker struct {
	mu                sync.Mutex
	slots             [3]slot
	timeout           time.Duration
	movedFarThreshold float64
	timer             *time.Timer
	emit              func(gesture.Event)
}

// NewTracker builds a Tracker that calls emit whenever the idle timer of
// length timeout elapses. emit may be called from a timer goroutine; callers that
// are not otherwise serialized must synchronize it themselves.
func NewTracker(timeout time.Duration, movedFarThreshold float64, emit func(gesture.Event)) *Tracker {
	return &Tracker{
		timeout:           timeout,
		movedFarThreshold: movedFarThreshold,
		emit:              emit,
	}
}

func (t *Tracker) freeSlot() slotName {
	taken := map[slotName]bool{}
	for _, s := range t.slots {
		if s.active {
			taken[s.name] = true
		}
	}
	for _, name := range []slotName{slotPrimary, slotSecondary, slotTertiary} {
		if !taken[name] {
			return name
		}
	}
	return slotNone
}

func (t *Tracker) findSlot(id int) int {
	for i, s := range t.slots {
		if s.active && s.id == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) activeCount() int {
	n := 0
	for _, s := range t.slots {
		if s.active {
			n++
		}
	}
	return n
}

// Down assigns id to the next free slot, records its reference position,
// (re)starts the timeout timer, and returns the corresponding F1/F2/F3
// down event. A fourth or later concurrent pointer is ignored (ok=false).
func (t *Tracker) Down(id int, pos geom.Point) (gesture.Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	name := t.freeSlot()
	if name == slotNone {
		return 0, false
	}
	idx := int(name - 1)
	t.slots[idx] = slot{name: name, id: id, active: true, pos: pos, ref: pos}
	t.resetTimerLocked()

	switch name {
	case slotPrimary:
		return gesture.F1Down, true
	case slotSecondary:
		return gesture.F2Down, true
	default:
		return gesture.F3Down, true
	}
}

// Move updates the tracked position for id and, for the primary or
// secondary pointer, emits FINGER_MOVED_FAR when it has traveled more
// than the moved-far threshold since its last reference position. The
// reference then advances to the current position so the event fires at
// most once per threshold crossing.
func (t *Tracker) Move(id int, pos geom.Point) (gesture.Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.findSlot(id)
	if idx < 0 {
		return 0, false
	}
	t.slots[idx].pos = pos

	if t.slots[idx].name == slotTertiary {
		return 0, false
	}
	if geom.Dist(pos, t.slots[idx].ref) <= t.movedFarThreshold {
		return 0, false
	}
	t.slots[idx].ref = pos
	return gesture.FingerMovedFar, true
}

// Up releases id's slot and returns FINGER_UP. When the last pointer
// lifts, the timeout timer is canceled.
func (t *Tracker) Up(id int) (gesture.Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.findSlot(id)
	if idx < 0 {
		return 0, false
	}
	t.slots[idx] = slot{}

	if t.activeCount() == 0 && t.timer != nil {
		t.timer.Stop()
	}
	return gesture.FingerUp, true
}

func (t *Tracker) resetTimerLocked() {
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.timeout, func() {
		t.emit(gesture.Timeout)
	})
}
