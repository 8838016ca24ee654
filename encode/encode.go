// Package encode serializes and deserializes the shape.Shape tagged
// union, grounded on process.go's encodeImg multi-format dispatch
// (switch over a discriminant to pick the codec) applied here to the
// "kind" JSON tag instead of a file extension.
package encode

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/esimov/sketchaire/shape"
)

// Shape marshals s to its JSON wire form. Shape's own json tags already
// describe the tagged union; this wrapper is the one seam callers go
// through so the wire format can evolve without touching package shape.
func Shape(s shape.Shape) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "encode shape")
	}
	return b, nil
}

// DecodeShape unmarshals a single Shape and validates it against the
// tagged union's invariants by round-tripping it through the matching
// shape constructor.
func DecodeShape(data []byte) (shape.Shape, error) {
	var raw shape.Shape
	if err := json.Unmarshal(data, &raw); err != nil {
		return shape.Shape{}, errors.Wrap(err, "decode shape")
	}
	return reconstruct(raw)
}

// History marshals an ordered slice of shapes, as emitted by
// orchestrator's HistoryReplaced render hint.
func History(shapes []shape.Shape) ([]byte, error) {
	b, err := json.Marshal(shapes)
	if err != nil {
		return nil, errors.Wrap(err, "encode history")
	}
	return b, nil
}

// DecodeHistory unmarshals and validates a slice of shapes.
func DecodeHistory(data []byte) ([]shape.Shape, error) {
	var raw []shape.Shape
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decode history")
	}
	out := make([]shape.Shape, len(raw))
	for i, r := range raw {
		s, err := reconstruct(r)
		if err != nil {
			return nil, errors.Wrapf(err, "history entry %d", i)
		}
		out[i] = s
	}
	return out, nil
}

// reconstruct re-validates a JSON-decoded Shape by dispatching to its
// kind's constructor, so a malformed or hand-edited payload can never
// produce a Shape violating the invariants of spec §3.
func reconstruct(raw shape.Shape) (shape.Shape, error) {
	switch raw.Kind {
	case shape.KindRawPoints:
		return shape.NewRawPoints(raw.Points), nil
	case shape.KindPolyline:
		return shape.NewPolyline(raw.Points, raw.Error)
	case shape.KindCircle:
		return shape.NewCircle(raw.Center, raw.Radius, raw.Error)
	case shape.KindEllipse:
		return shape.NewEllipse(raw.Center, raw.RX, raw.RY, raw.Rotation, raw.Error)
	case shape.KindRectangle:
		return shape.NewRectangle(raw.Center, raw.Width, raw.Height, raw.Rotation, raw.Error)
	case shape.KindSquare:
		return shape.NewSquare(raw.Center, raw.Side, raw.Rotation, raw.Error)
	case shape.KindPolygon:
		return shape.NewEquilateralPolygon(raw.Center, raw.Radius, raw.Rotation, raw.Sides, raw.Error)
	case shape.KindStar:
		return shape.NewStar(raw.Center, raw.OuterRadius, raw.InnerRadius, raw.Rotation, raw.StarPoints, raw.SelfCrossing, raw.StepPattern, raw.Error)
	default:
		return shape.Shape{}, errors.Errorf("unknown shape kind %q", raw.Kind)
	}
}
