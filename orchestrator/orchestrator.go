// Package orchestrator glues the geometry pipeline (packages resample,
// closure, shapefit) to the gesture state machine and stroke history,
// grounded on process.go's Resize top-level dispatcher: one entry point
// coordinating independent sub-pipelines and reporting back to the host.
package orchestrator

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/esimov/sketchaire/closure"
	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/gesture"
	"github.com/esimov/sketchaire/history"
	"github.com/esimov/sketchaire/input"
	"github.com/esimov/sketchaire/resample"
	"github.com/esimov/sketchaire/shape"
	"github.com/esimov/sketchaire/shapefit"
)

// Orchestrator owns every piece of mutable state a sketch session needs:
// the committed-shape history, the live stroke (if any), the gesture
// state machine and the pointer tracker feeding it.
type Orchestrator struct {
	History *history.History
	Tracker *input.Tracker

	State gesture.State
	Fresh bool
	Flags gesture.Flags

	Live   *shape.Stroke
	Marker geom.Point

	Config      shapefit.Config
	StrokeColor shape.Color
	StrokeWidth float64

	// sourcePoints holds each committed shape's original (pre-resample)
	// stroke points, in History order, so FitLast can re-run the pipeline
	// without having stashed raw points on Shape itself.
	sourcePoints [][]geom.Point

	// mu serializes HandleEvent/ExtendLiveStroke/FitLast against the
	// TIMEOUT event, which the Tracker delivers from its own timer
	// goroutine rather than the host's event loop.
	mu sync.Mutex
}

// New returns an Idle Orchestrator with an empty history.
func New(cfg shapefit.Config) *Orchestrator {
	o := &Orchestrator{
		History:     history.New(),
		State:       gesture.Idle,
		Fresh:       true,
		Config:      cfg,
		StrokeColor: shape.Color{R: 0, G: 0, B: 0},
		StrokeWidth: 3,
	}
	o.Tracker = input.NewTracker(input.DefaultTimeout, input.DefaultMovedFarThreshold, func(e gesture.Event) {
		o.HandleEvent(e, o.Marker)
	})
	return o
}

// HandleEvent drives the gesture state machine with event and executes
// the actions it returns against the Orchestrator's owned state. primary
// is the current position of the primary pointer, used by CREATE_STROKE
// and MOVE_MARKER.
func (o *Orchestrator) HandleEvent(event gesture.Event, primary geom.Point) ([]gesture.Action, []RenderHint) {
	o.mu.Lock()
	defer o.mu.Unlock()

	state, fresh, flags, actions := gesture.Transition(o.State, o.Fresh, o.Flags, event)
	o.State, o.Fresh, o.Flags = state, fresh, flags

	var hints []RenderHint
	for _, action := range actions {
		switch action {
		case gesture.CreateStroke:
			o.Live = shape.NewStroke(o.StrokeColor, o.StrokeWidth, primary)
			hints = append(hints, RenderHint{Kind: HintLiveStroke, Color: o.StrokeColor, Size: o.StrokeWidth, Points: o.Live.Points})
		case gesture.MoveMarker:
			o.Marker = primary
			hints = append(hints, RenderHint{Kind: HintMarkerAt, Marker: primary, Color: o.StrokeColor, Size: o.StrokeWidth})
		case gesture.SaveStroke:
			o.commitLiveStroke()
			if n := o.History.Len(); n > 0 {
				hints = append(hints, RenderHint{Kind: HintCommittedShape, Shape: o.History.Shapes()[n-1]})
			}
		case gesture.AbandonStroke:
			o.Live = nil
		case gesture.ProcessUndo:
			o.processUndo()
			hints = append(hints, RenderHint{Kind: HintHistoryReplaced, History: o.History.Shapes()})
		case gesture.ProcessClear:
			o.History.Clear()
			o.sourcePoints = nil
			hints = append(hints, RenderHint{Kind: HintHistoryReplaced})
		case gesture.InitTransform, gesture.AbortTooManyFingers, gesture.EnterFreshStroke, gesture.NoOp:
			// Tracked entirely by GestureState; no orchestrator-owned
			// data changes.
		}
	}
	return actions, hints
}

// ExtendLiveStroke appends pos to the live stroke while Drawing, per spec
// §4.N's "on each primary-pointer move while Drawing: append the
// position". It is a no-op outside the Drawing state or without a live
// stroke.
func (o *Orchestrator) ExtendLiveStroke(pos geom.Point) (RenderHint, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.State != gesture.Drawing || o.Live == nil {
		return RenderHint{}, false
	}
	o.Live.Append(pos)
	return RenderHint{Kind: HintLiveStroke, Color: o.Live.Color, Size: o.Live.Width, Points: o.Live.Points}, true
}

// FitLast re-runs the fitting pipeline on the most recently committed
// shape's source points and replaces it in History. It is a no-op on an
// empty history.
func (o *Orchestrator) FitLast() []RenderHint {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.sourcePoints) == 0 {
		return nil
	}
	pts := o.sourcePoints[len(o.sourcePoints)-1]
	o.History.Pop()
	o.History.Append(o.runPipeline(pts))
	return []RenderHint{{Kind: HintHistoryReplaced, History: o.History.Shapes()}}
}

func (o *Orchestrator) processUndo() {
	if _, ok := o.History.Pop(); ok && len(o.sourcePoints) > 0 {
		o.sourcePoints = o.sourcePoints[:len(o.sourcePoints)-1]
	}
}

func (o *Orchestrator) commitLiveStroke() {
	if o.Live == nil {
		return
	}
	live := o.Live
	o.Live = nil
	o.sourcePoints = append(o.sourcePoints, live.Points)
	o.History.Append(o.runPipeline(live.Points))
}

// runPipeline is the B -> (C, E, F, G, H, I) -> J chain of spec §4.N: it
// resamples, tests closure, fans the independent fitters out concurrently
// with a per-fitter panic recovery so one fitter's invariant violation
// never aborts the commit, then hands the outcomes to the selector.
func (o *Orchestrator) runPipeline(pts []geom.Point) shape.Shape {
	resampled := resample.Resample(pts, o.Config.ResampleCount)
	closed := closure.IsClosed(resampled, o.Config.ClosureThresholdRatio)

	var fits shapefit.FitOutcomes
	g, _ := errgroup.WithContext(context.Background())

	if closed {
		g.Go(func() error {
			defer recoverFit(&fits.CircleOK)
			if s, ok := shapefit.FitCircle(resampled, o.Config); ok {
				fits.Circle, fits.CircleOK = s, true
			}
			return nil
		})
		g.Go(func() error {
			defer recoverFit(&fits.EllipseOK)
			if s, ok := shapefit.FitEllipse(resampled, o.Config); ok {
				fits.Ellipse, fits.EllipseOK = s, true
			}
			return nil
		})
	}
	if len(resampled) >= 4 {
		g.Go(func() error {
			defer recoverFit(&fits.RectangleOK)
			if rf, ok := shapefit.FitRectangle(resampled, o.Config); ok {
				fits.Rectangle, fits.RectangleOK = rf, true
			}
			return nil
		})
	}
	g.Go(func() error {
		defer recoverFit(&fits.PolygonOrStarOK)
		if s, ok := shapefit.FitPolygonOrStar(resampled, o.StrokeWidth, o.Config); ok {
			fits.PolygonOrStar, fits.PolygonOrStarOK = s, true
		}
		return nil
	})

	g.Wait()
	return shapefit.SelectFromOutcomes(resampled, o.StrokeWidth, closed, o.Config, fits)
}

// recoverFit insulates one fitter's panic from crashing the whole commit:
// the guarded OK flag is left at its zero value (false), so the fitter is
// simply treated as not having qualified.
func recoverFit(ok *bool) {
	if r := recover(); r != nil {
		*ok = false
	}
}
