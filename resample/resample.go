// Package resample redistributes a stroke's points at uniform arc-length
// spacing, the way caire's carver walks pixel rows accumulating energy —
// here the accumulation runs over path length instead of intensity.
package resample

import "github.com/esimov/sketchaire/geom"

// DefaultCount is the resampled point count used when the orchestrator
// does not override it (also used as the shape-sampling resolution by the
// fitters in package shapefit).
const DefaultCount = 64

// Resample redistributes pts into exactly n points spaced uniformly by arc
// length along the original polyline. Inputs shorter than two points are
// returned verbatim, since there is no path to walk.
func Resample(pts []geom.Point, n int) []geom.Point {
	if len(pts) < 2 || n < 2 {
		return pts
	}

	total := pathLength(pts)
	if total == 0 {
		out := make([]geom.Point, n)
		for i := range out {
			out[i] = pts[0]
		}
		return out
	}

	interval := total / float64(n-1)
	out := make([]geom.Point, 0, n)
	out = append(out, pts[0])

	accumulated := 0.0
	prev := pts[0]
	for i := 1; i < len(pts) && len(out) < n; i++ {
		next := pts[i]
		segment := geom.Dist(prev, next)

		for accumulated+segment >= interval && len(out) < n {
			remaining := interval - accumulated
			t := 0.0
			if segment > 0 {
				t = remaining / segment
			}
			newPoint := geom.Point{
				X: prev.X + (next.X-prev.X)*t,
				Y: prev.Y + (next.Y-prev.Y)*t,
			}
			out = append(out, newPoint)

			// Shrink the remaining segment toward next instead of
			// restarting from the original prev, or a long straight
			// segment would satisfy the emit condition forever.
			segment -= remaining
			prev = newPoint
			accumulated = 0
		}

		accumulated += segment
		prev = next
	}

	if len(out) < n {
		out = append(out, pts[len(pts)-1])
	}
	for len(out) < n {
		out = append(out, pts[len(pts)-1])
	}
	return out
}

func pathLength(pts []geom.Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += geom.Dist(pts[i-1], pts[i])
	}
	return total
}
