package shapefit

import (
	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/shape"
)

// FitAll runs every eligible fitter serially and returns the shape chosen
// by the selector (component J), or a Polyline fallback. Package
// orchestrator fits concurrently instead (see FitOutcomes/
// SelectFromOutcomes) to keep one slow or panicking fitter from blocking
// a stroke commit; FitAll is the single-goroutine reference path used to
// cross-check that result, e.g. by cmd/sketchaire-bench's -serial flag.
func FitAll(pts []geom.Point, strokeWidth float64, closed bool, cfg Config) shape.Shape {
	return SelectShape(pts, strokeWidth, closed, cfg)
}
