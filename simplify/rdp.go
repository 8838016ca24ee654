// Package simplify implements Ramer-Douglas-Peucker polyline
// simplification, used both as a standalone fallback shape (Polyline) and
// as the first stage of the polygon/star fitter in package shapefit.
package simplify

import "github.com/esimov/sketchaire/geom"

// DefaultEpsilonMultiplier is the rdpEpsilonMultiplier default of spec §6.
const DefaultEpsilonMultiplier = 2.0

// Result is the outcome of an RDP pass: the simplified vertex list and the
// maximum perpendicular distance of any original point to that polyline.
type Result struct {
	Vertices []geom.Point
	MaxError float64
}

// Simplify runs Ramer-Douglas-Peucker on pts with tolerance epsilon.
func Simplify(pts []geom.Point, epsilon float64) Result {
	if len(pts) < 3 {
		return Result{Vertices: append([]geom.Point(nil), pts...), MaxError: 0}
	}

	vertices := rdp(pts, epsilon)

	maxErr := 0.0
	for _, p := range pts {
		d := minDistToPolyline(p, vertices)
		if d > maxErr {
			maxErr = d
		}
	}
	return Result{Vertices: vertices, MaxError: maxErr}
}

func rdp(pts []geom.Point, epsilon float64) []geom.Point {
	if len(pts) < 3 {
		return append([]geom.Point(nil), pts...)
	}

	first, last := pts[0], pts[len(pts)-1]
	maxDist := -1.0
	maxIdx := 0
	for i := 1; i < len(pts)-1; i++ {
		d := geom.PointSegmentDistance(pts[i], first, last)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist > epsilon {
		left := rdp(pts[:maxIdx+1], epsilon)
		right := rdp(pts[maxIdx:], epsilon)
		// left already ends with pts[maxIdx]; drop right's duplicate head.
		return append(left, right[1:]...)
	}
	return []geom.Point{first, last}
}

func minDistToPolyline(p geom.Point, vertices []geom.Point) float64 {
	if len(vertices) == 1 {
		return geom.Dist(p, vertices[0])
	}
	min := geom.PointSegmentDistance(p, vertices[0], vertices[1])
	for i := 1; i < len(vertices)-1; i++ {
		d := geom.PointSegmentDistance(p, vertices[i], vertices[i+1])
		if d < min {
			min = d
		}
	}
	return min
}
