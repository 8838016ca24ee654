// Package geom provides the Euclidean primitives shared by every shape
// fitter: points, distances, rotation and bounding boxes.
package geom

import (
	"math"

	"github.com/esimov/sketchaire/utils"
)

// Point is an immutable 2D coordinate pair in canvas pixel space.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar) of p and q.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// DistSq returns the squared Euclidean distance between p and q.
func DistSq(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Dist returns the Euclidean distance between p and q.
func Dist(p, q Point) float64 {
	return math.Sqrt(DistSq(p, q))
}

// Norm returns the Euclidean length of p treated as a vector from the origin.
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Angle returns the unsigned angle, in radians, between vectors p and q.
func Angle(p, q Point) float64 {
	denom := p.Norm() * q.Norm()
	if denom == 0 {
		return 0
	}
	cos := p.Dot(q) / denom
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// SignedAngle returns the signed angle, in radians, from p to q (positive
// counter-clockwise).
func SignedAngle(p, q Point) float64 {
	return math.Atan2(p.Cross(q), p.Dot(q))
}

// RotateAbout rotates p by angle radians (counter-clockwise) around center.
func RotateAbout(p, center Point, angle float64) Point {
	s, c := math.Sincos(angle)
	d := p.Sub(center)
	return Point{
		X: center.X + d.X*c - d.Y*s,
		Y: center.Y + d.X*s + d.Y*c,
	}
}

// BoundingBox is an axis-aligned rectangle.
type BoundingBox struct {
	Min, Max Point
}

// Width returns the bounding box's extent along X.
func (b BoundingBox) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the bounding box's extent along Y.
func (b BoundingBox) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the bounding box's midpoint.
func (b BoundingBox) Center() Point {
	return Point{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// Bounds returns the axis-aligned bounding box of pts.
// Bounds panics if pts is empty; callers are expected to have already
// checked for a non-empty stroke before reaching geometry code.
func Bounds(pts []Point) BoundingBox {
	b := BoundingBox{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = utils.Min(b.Min.X, p.X)
		b.Min.Y = utils.Min(b.Min.Y, p.Y)
		b.Max.X = utils.Max(b.Max.X, p.X)
		b.Max.Y = utils.Max(b.Max.Y, p.Y)
	}
	return b
}

// Centroid returns the arithmetic mean of pts.
func Centroid(pts []Point) Point {
	var sum Point
	for _, p := range pts {
		sum = sum.Add(p)
	}
	n := float64(len(pts))
	return Point{sum.X / n, sum.Y / n}
}

// PointSegmentDistance returns the perpendicular distance from p to the
// segment a-b. A degenerate (zero-length) segment falls back to
// point-to-point distance.
func PointSegmentDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return Dist(p, a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := a.Add(ab.Scale(t))
	return Dist(p, proj)
}
