package main

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/shape"
)

const markerRadius = 4

// paintBackground fills the whole canvas with c, in the same spirit as
// caire's gui.go background fill before drawing the preview on top.
func paintBackground(gtx layout.Context, c color.NRGBA) {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	paint.ColorOp{Color: c}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

// drawMarker renders a small filled circle at pos, the MarkerAt render
// hint's on-screen form while a finger is moving the marker in spec §4.K's
// MovingMarker state.
func drawMarker(gtx layout.Context, pos geom.Point, col shape.Color) {
	fillCircle(gtx, pos, markerRadius, toNRGBA(col))
}

// drawStroke renders a live, uncommitted stroke as a polyline through its
// points, following the teacher's drawLine stroking pattern.
func drawStroke(gtx layout.Context, s shape.Stroke) {
	strokePolyline(gtx, s.Points, float32(s.Width), toNRGBA(s.Color))
}

// drawShape dispatches a committed Shape to its on-screen rendering by
// kind, grounded on process.go's switch-on-discriminant dispatch.
func drawShape(gtx layout.Context, s shape.Shape, col color.NRGBA) {
	const strokeWidth = 2

	switch s.Kind {
	case shape.KindCircle:
		strokeCircle(gtx, s.Center, s.Radius, strokeWidth, col)
	case shape.KindEllipse:
		strokePolyline(gtx, closeLoop(sampleEllipse(s.Center, s.RX, s.RY, s.Rotation, 64)), strokeWidth, col)
	case shape.KindRectangle:
		strokePolyline(gtx, closeLoop(rectangleVertices(s.Center, s.Width, s.Height, s.Rotation)), strokeWidth, col)
	case shape.KindSquare:
		strokePolyline(gtx, closeLoop(rectangleVertices(s.Center, s.Side, s.Side, s.Rotation)), strokeWidth, col)
	case shape.KindPolygon:
		strokePolyline(gtx, closeLoop(regularPolygonVertices(s.Center, s.Radius, s.Rotation, s.Sides)), strokeWidth, col)
	case shape.KindStar:
		strokePolyline(gtx, closeLoop(starVertices(s.Center, s.OuterRadius, s.InnerRadius, s.Rotation, s.StarPoints)), strokeWidth, col)
	case shape.KindPolyline, shape.KindRawPoints:
		strokePolyline(gtx, s.Points, strokeWidth, col)
	}
}

func toNRGBA(c shape.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func pt(p geom.Point) f32.Point {
	return f32.Point{X: float32(p.X), Y: float32(p.Y)}
}

// fillCircle draws a filled disc, following drawCircle's Arc-based path
// construction.
func fillCircle(gtx layout.Context, center geom.Point, radius float64, col color.NRGBA) {
	orig := pt(geom.Point{X: center.X - radius, Y: center.Y})
	p1 := pt(geom.Point{X: center.X + radius, Y: center.Y}).Sub(orig)
	p2 := pt(geom.Point{X: center.X - radius, Y: center.Y}).Sub(orig)

	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(orig)
	path.Arc(p1, p2, 2*math.Pi)
	path.Close()

	defer clip.Outline{Path: path.End()}.Op().Push(gtx.Ops).Pop()
	paint.ColorOp{Color: col}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

// strokeCircle draws a circle outline of the given stroke width.
func strokeCircle(gtx layout.Context, center geom.Point, radius, width float64, col color.NRGBA) {
	orig := pt(geom.Point{X: center.X - radius, Y: center.Y})
	p1 := pt(geom.Point{X: center.X + radius, Y: center.Y}).Sub(orig)
	p2 := pt(geom.Point{X: center.X - radius, Y: center.Y}).Sub(orig)

	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(orig)
	path.Arc(p1, p2, 2*math.Pi)
	path.Close()

	defer clip.Stroke{Path: path.End(), Width: float32(width)}.Op().Push(gtx.Ops).Pop()
	paint.ColorOp{Color: col}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

// strokePolyline draws straight segments through pts, following drawLine's
// Move/Line/Close path construction generalized past a single segment.
func strokePolyline(gtx layout.Context, pts []geom.Point, width float32, col color.NRGBA) {
	if len(pts) < 2 {
		return
	}

	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(pt(pts[0]))
	for _, p := range pts[1:] {
		next := pt(p)
		path.Line(next.Sub(path.Pos()))
	}

	defer clip.Stroke{Path: path.End(), Width: width}.Op().Push(gtx.Ops).Pop()
	paint.ColorOp{Color: col}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

func closeLoop(pts []geom.Point) []geom.Point {
	if len(pts) == 0 {
		return pts
	}
	return append(append([]geom.Point{}, pts...), pts[0])
}

func sampleEllipse(center geom.Point, rx, ry, rotation float64, n int) []geom.Point {
	pts := make([]geom.Point, n)
	cos, sin := math.Cos(rotation), math.Sin(rotation)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		x, y := rx*math.Cos(t), ry*math.Sin(t)
		pts[i] = geom.Point{
			X: center.X + x*cos - y*sin,
			Y: center.Y + x*sin + y*cos,
		}
	}
	return pts
}

func rectangleVertices(center geom.Point, width, height, rotation float64) []geom.Point {
	hw, hh := width/2, height/2
	corners := []geom.Point{
		{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh},
	}
	return rotateAndOffset(corners, center, rotation)
}

func regularPolygonVertices(center geom.Point, radius, rotation float64, sides int) []geom.Point {
	pts := make([]geom.Point, sides)
	for i := 0; i < sides; i++ {
		a := rotation + 2*math.Pi*float64(i)/float64(sides)
		pts[i] = geom.Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	return pts
}

func starVertices(center geom.Point, outer, inner, rotation float64, points int) []geom.Point {
	pts := make([]geom.Point, 2*points)
	for i := 0; i < 2*points; i++ {
		a := rotation + math.Pi*float64(i)/float64(points)
		r := outer
		if i%2 == 1 {
			r = inner
		}
		pts[i] = geom.Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
	}
	return pts
}

func rotateAndOffset(pts []geom.Point, center geom.Point, rotation float64) []geom.Point {
	cos, sin := math.Cos(rotation), math.Sin(rotation)
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = geom.Point{
			X: center.X + p.X*cos - p.Y*sin,
			Y: center.Y + p.X*sin + p.Y*cos,
		}
	}
	return out
}
