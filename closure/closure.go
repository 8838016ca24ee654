// Package closure decides whether a stroke is "mostly closed" — its first
// and last samples fall close together relative to the stroke's extent.
package closure

import "github.com/esimov/sketchaire/geom"

// DefaultThresholdRatio is the default closureThresholdRatio of spec §6.
const DefaultThresholdRatio = 0.15

// IsClosed reports whether the distance between the first and last point
// of pts is small relative to the stroke's bounding-box extent. pts must
// have at least 3 points; shorter strokes are never considered closed.
func IsClosed(pts []geom.Point, ratio float64) bool {
	if len(pts) < 3 {
		return false
	}
	b := geom.Bounds(pts)
	d := b.Width()
	if b.Height() > d {
		d = b.Height()
	}
	if d == 0 {
		return true
	}
	return geom.Dist(pts[0], pts[len(pts)-1]) < ratio*d
}
