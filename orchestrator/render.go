package orchestrator

import (
	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/shape"
)

// RenderHintKind discriminates the RenderHint variants of spec §6.
type RenderHintKind int

const (
	HintMarkerAt RenderHintKind = iota
	HintLiveStroke
	HintCommittedShape
	HintHistoryReplaced
)

// RenderHint is the only channel the core speaks to the outside world
// through. The renderer is free to draw each kind however it pleases;
// only the fields relevant to Kind are populated.
type RenderHint struct {
	Kind RenderHintKind

	Marker geom.Point
	Color  shape.Color
	Size   float64
	Points []geom.Point

	Shape   shape.Shape
	History []shape.Shape
}
