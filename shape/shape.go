// Package shape defines the tagged-union Shape value produced by the
// fitting pipeline (package shapefit) and consumed by package history,
// package encode and the front-ends.
package shape

import (
	"github.com/esimov/sketchaire/geom"
	"github.com/pkg/errors"
)

// Kind discriminates the cases of Shape.
type Kind string

// The enumerated shape kinds of the data model.
const (
	KindRawPoints Kind = "raw_points"
	KindCircle    Kind = "circle"
	KindEllipse   Kind = "ellipse"
	KindRectangle Kind = "rectangle"
	KindSquare    Kind = "square"
	KindPolygon   Kind = "polygon"
	KindStar      Kind = "star"
	KindPolyline  Kind = "polyline"
)

// Shape is the tagged union described by spec §3. Only the fields
// relevant to Kind are populated; the rest are zero.
type Shape struct {
	Kind  Kind    `json:"kind"`
	Error float64 `json:"error"`

	// RawPoints.points, Polyline.vertices
	Points []geom.Point `json:"points,omitempty"`

	// Circle, Ellipse, Rectangle, Square, EquilateralPolygon, Star
	Center   geom.Point `json:"center"`
	Rotation float64    `json:"rotation,omitempty"`

	Radius float64 `json:"radius,omitempty"` // Circle

	RX float64 `json:"rx,omitempty"` // Ellipse
	RY float64 `json:"ry,omitempty"` // Ellipse

	Width  float64 `json:"width,omitempty"`  // Rectangle
	Height float64 `json:"height,omitempty"` // Rectangle
	Side   float64 `json:"side,omitempty"`   // Square

	Sides int `json:"sides,omitempty"` // EquilateralPolygon

	OuterRadius  float64 `json:"outer_radius,omitempty"` // Star
	InnerRadius  float64 `json:"inner_radius,omitempty"` // Star
	StarPoints   int     `json:"star_points,omitempty"`  // Star
	SelfCrossing bool    `json:"self_crossing,omitempty"`
	StepPattern  int     `json:"step_pattern,omitempty"`
}

// NewRawPoints wraps an un-fitted stroke's points, error always 0.
func NewRawPoints(pts []geom.Point) Shape {
	return Shape{Kind: KindRawPoints, Points: pts}
}

// NewPolyline builds a Polyline shape, requiring at least two vertices.
func NewPolyline(vertices []geom.Point, fitErr float64) (Shape, error) {
	if len(vertices) < 2 {
		return Shape{}, errors.Errorf("polyline requires at least 2 vertices, got %d", len(vertices))
	}
	return Shape{Kind: KindPolyline, Points: vertices, Error: fitErr}, nil
}

// NewCircle builds a Circle shape.
func NewCircle(center geom.Point, radius, fitErr float64) (Shape, error) {
	if radius <= 0 {
		return Shape{}, errors.Errorf("circle radius must be positive, got %f", radius)
	}
	return Shape{Kind: KindCircle, Center: center, Radius: radius, Error: fitErr}, nil
}

// NewEllipse builds an Ellipse shape. Requires rx >= ry > 0.
func NewEllipse(center geom.Point, rx, ry, rotation, fitErr float64) (Shape, error) {
	if ry <= 0 || rx < ry {
		return Shape{}, errors.Errorf("ellipse requires rx >= ry > 0, got rx=%f ry=%f", rx, ry)
	}
	return Shape{Kind: KindEllipse, Center: center, RX: rx, RY: ry, Rotation: rotation, Error: fitErr}, nil
}

// NewRectangle builds a Rectangle shape. Requires width, height > 0.
func NewRectangle(center geom.Point, width, height, rotation, fitErr float64) (Shape, error) {
	if width <= 0 || height <= 0 {
		return Shape{}, errors.Errorf("rectangle requires positive width/height, got %f x %f", width, height)
	}
	return Shape{Kind: KindRectangle, Center: center, Width: width, Height: height, Rotation: rotation, Error: fitErr}, nil
}

// NewSquare builds a Square shape. Requires side > 0.
func NewSquare(center geom.Point, side, rotation, fitErr float64) (Shape, error) {
	if side <= 0 {
		return Shape{}, errors.Errorf("square requires positive side, got %f", side)
	}
	return Shape{Kind: KindSquare, Center: center, Side: side, Rotation: rotation, Error: fitErr}, nil
}

// NewEquilateralPolygon builds an EquilateralPolygon shape. Requires sides >= 3.
func NewEquilateralPolygon(center geom.Point, radius, rotation float64, sides int, fitErr float64) (Shape, error) {
	if sides < 3 {
		return Shape{}, errors.Errorf("equilateral polygon requires sides >= 3, got %d", sides)
	}
	return Shape{Kind: KindPolygon, Center: center, Radius: radius, Rotation: rotation, Sides: sides, Error: fitErr}, nil
}

// NewStar builds a Star shape. stepPattern must be coprime to points and in
// [2, points-1] iff selfCrossing.
func NewStar(center geom.Point, outerRadius, innerRadius, rotation float64, points int, selfCrossing bool, stepPattern int, fitErr float64) (Shape, error) {
	if points < 3 {
		return Shape{}, errors.Errorf("star requires points >= 3, got %d", points)
	}
	if outerRadius <= 0 || innerRadius <= 0 {
		return Shape{}, errors.Errorf("star requires positive radii, got outer=%f inner=%f", outerRadius, innerRadius)
	}
	if selfCrossing {
		if stepPattern < 2 || stepPattern > points-1 || gcd(stepPattern, points) != 1 {
			return Shape{}, errors.Errorf("self-crossing star requires a step pattern coprime to points in [2, points-1], got %d for %d points", stepPattern, points)
		}
	}
	return Shape{
		Kind:         KindStar,
		Center:       center,
		OuterRadius:  outerRadius,
		InnerRadius:  innerRadius,
		Rotation:     rotation,
		StarPoints:   points,
		SelfCrossing: selfCrossing,
		StepPattern:  stepPattern,
		Error:        fitErr,
	}, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
