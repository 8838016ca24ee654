// Package shapeerror implements the bidirectional Hausdorff-squared
// distance that every fitter in package shapefit uses both to score a
// finished fit and as the objective of its own gradient refinement.
package shapeerror

import "github.com/esimov/sketchaire/geom"

// DistToShape computes the distance from a point to the parametric shape
// boundary being fitted.
type DistToShape func(p geom.Point) float64

// Metric returns the squared bidirectional Hausdorff distance between pts
// and a parametric shape, where distToShape gives the distance from an
// arbitrary point to the shape boundary and shapeSamples is a dense
// sampling of that boundary.
//
// The metric is intentionally squared and bidirectional: squaring makes it
// a usable gradient-descent objective, and bidirectionality prevents
// degenerate fits such as an oversized circle that encloses every input
// point with zero inward error.
func Metric(pts []geom.Point, distToShape DistToShape, shapeSamples []geom.Point) float64 {
	maxStrokeToShape := 0.0
	for _, p := range pts {
		d := distToShape(p)
		if sq := d * d; sq > maxStrokeToShape {
			maxStrokeToShape = sq
		}
	}

	maxShapeToStroke := 0.0
	for _, s := range shapeSamples {
		minSq := geom.DistSq(s, pts[0])
		for _, p := range pts[1:] {
			if d := geom.DistSq(s, p); d < minSq {
				minSq = d
			}
		}
		if minSq > maxShapeToStroke {
			maxShapeToStroke = minSq
		}
	}

	if maxStrokeToShape > maxShapeToStroke {
		return maxStrokeToShape
	}
	return maxShapeToStroke
}

// MeanSq returns the mean squared distToShape value over pts, used by
// fitters (e.g. the circle fitter) whose reported error is a mean rather
// than the full bidirectional metric prior to selector normalization.
func MeanSq(pts []geom.Point, distToShape DistToShape) float64 {
	sum := 0.0
	for _, p := range pts {
		d := distToShape(p)
		sum += d * d
	}
	return sum / float64(len(pts))
}
