package main

import (
	"image"
	"image/color"
	"os"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/esimov/sketchaire/config"
	"github.com/esimov/sketchaire/encode"
	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/gesture"
	"github.com/esimov/sketchaire/orchestrator"
	"github.com/esimov/sketchaire/shape"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var canvasTag = new(int)

// Gui is the basic struct containing all information needed for the
// sketching window, in the same spirit as the seam-carving Gui: one
// struct owning the window config, the theme and the live render state
// fed by a channel-free, directly-called pipeline.
type Gui struct {
	cfg  config.Config
	orch *orchestrator.Orchestrator

	theme *material.Theme
	ctx   layout.Context

	window struct {
		width, height unit.Dp
		title         string
	}

	// live render state, updated from orchestrator.RenderHint as events
	// are handled.
	marker      geom.Point
	markerColor shape.Color
	markerShown bool
	liveStroke  shape.Stroke
	liveShown   bool
	history     []shape.Shape

	undoBtn     widget.Clickable
	clearBtn    widget.Clickable
	fitLastBtn  widget.Clickable

	// dumpPath, when non-empty, receives the final StrokeHistory as JSON
	// once the window closes.
	dumpPath string
}

// NewGui builds a Gui bound to an Idle Orchestrator configured from cfg.
func NewGui(cfg config.Config) *Gui {
	g := &Gui{
		cfg:   cfg,
		orch:  orchestrator.New(cfg.Fit()),
		theme: material.NewTheme(),
	}
	g.theme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	g.theme.TextSize = unit.Sp(14)
	g.orch.StrokeWidth = cfg.StrokeWidth
	g.window.width, g.window.height = unit.Dp(900), unit.Dp(640)
	g.window.title = "sketchaire"
	return g
}

// Run is the Gio event loop: it drains pointer, key and frame events and
// redraws on every frame, following gui.go's for { switch e := w.Event().(type) }
// shape exactly, generalized to a canvas instead of an image preview.
func (g *Gui) Run() error {
	w := new(app.Window)
	w.Option(
		app.Title(g.window.title),
		app.Size(g.window.width, g.window.height),
	)

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			g.handleKeyEvents(gtx, w)
			g.handlePointerEvents(gtx)
			g.handleToolbar()
			g.layout(gtx)
			e.Frame(gtx.Ops)
		case app.DestroyEvent:
			g.dumpHistory()
			return e.Err
		}
	}
}

// dumpHistory writes the final StrokeHistory to dumpPath as JSON, the
// interactive counterpart to the batch driver's per-trace JSON output.
func (g *Gui) dumpHistory() {
	if g.dumpPath == "" {
		return
	}
	b, err := encode.History(g.orch.History.Shapes())
	if err != nil {
		log.Error().Err(errors.Wrap(err, "encode history")).Msg("sketchaire: dump failed")
		return
	}
	if err := os.WriteFile(g.dumpPath, b, 0644); err != nil {
		log.Error().Err(errors.Wrap(err, "write dump")).Msg("sketchaire: dump failed")
	}
}

func (g *Gui) handleKeyEvents(gtx layout.Context, w *app.Window) {
	for {
		ev, ok := gtx.Event(key.Filter{Name: key.NameEscape})
		if !ok {
			break
		}
		if e, ok := ev.(key.Event); ok && e.Name == key.NameEscape && e.State == key.Press {
			w.Perform(system.ActionClose)
		}
	}
}

// handlePointerEvents turns Gio pointer events into Tracker/gesture calls,
// the event-handler translation layer of spec §4.L that sits between raw
// platform input and the core.
func (g *Gui) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, canvasTag)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: canvasTag,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		id := int(e.PointerID)
		pos := geom.Point{X: float64(e.Position.X), Y: float64(e.Position.Y)}

		switch e.Kind {
		case pointer.Press:
			if event, handled := g.orch.Tracker.Down(id, pos); handled {
				g.dispatch(event, pos)
			}
		case pointer.Drag:
			if event, handled := g.orch.Tracker.Move(id, pos); handled {
				g.dispatch(event, pos)
			}
			if hint, ok := g.orch.ExtendLiveStroke(pos); ok {
				g.applyHint(hint, true)
			}
		case pointer.Release, pointer.Cancel:
			if event, handled := g.orch.Tracker.Up(id); handled {
				g.dispatch(event, pos)
			}
		}
	}
}

func (g *Gui) dispatch(event gesture.Event, pos geom.Point) {
	_, hints := g.orch.HandleEvent(event, pos)
	for _, h := range hints {
		g.applyHint(h, true)
	}
}

func (g *Gui) applyHint(hint orchestrator.RenderHint, ok bool) {
	if !ok {
		return
	}
	switch hint.Kind {
	case orchestrator.HintMarkerAt:
		g.marker = hint.Marker
		g.markerColor = hint.Color
		g.markerShown = true
	case orchestrator.HintLiveStroke:
		g.liveStroke = shape.Stroke{Color: hint.Color, Width: hint.Size, Points: hint.Points}
		g.liveShown = true
	case orchestrator.HintCommittedShape:
		g.liveShown = false
		g.markerShown = false
		g.history = g.orch.History.Shapes()
	case orchestrator.HintHistoryReplaced:
		g.history = hint.History
	}
}

func (g *Gui) handleToolbar() {
	if g.undoBtn.Clicked(g.ctx) {
		g.dispatch(gesture.Undo, geom.Point{})
	}
	if g.clearBtn.Clicked(g.ctx) {
		g.dispatch(gesture.Clear, geom.Point{})
	}
	if g.fitLastBtn.Clicked(g.ctx) {
		for _, h := range g.orch.FitLast() {
			g.applyHint(h, true)
		}
	}
}

func (g *Gui) layout(gtx layout.Context) {
	g.ctx = gtx
	paintBackground(gtx, color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff})

	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(g.layoutToolbar),
		layout.Flexed(1, g.layoutCanvas),
	)
}

func (g *Gui) layoutToolbar(gtx C) D {
	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(material.Button(g.theme, &g.undoBtn, "Undo").Layout),
			layout.Rigid(material.Button(g.theme, &g.clearBtn, "Clear").Layout),
			layout.Rigid(material.Button(g.theme, &g.fitLastBtn, "Fit last").Layout),
		)
	})
}

func (g *Gui) layoutCanvas(gtx C) D {
	area := image.Pt(gtx.Constraints.Max.X, gtx.Constraints.Max.Y)
	gtx.Constraints = layout.Exact(area)

	if g.markerShown {
		drawMarker(gtx, g.marker, g.markerColor)
	}
	if g.liveShown {
		drawStroke(gtx, g.liveStroke)
	}
	for _, s := range g.history {
		drawShape(gtx, s, color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff})
	}
	return D{Size: area}
}
