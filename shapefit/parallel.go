package shapefit

import (
	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/shape"
	"github.com/esimov/sketchaire/simplify"
)

// FitOutcomes holds the independent result of each parallel fitter
// (components F, G, H, I). The orchestrator runs the fitters concurrently
// via errgroup and passes the outcomes here rather than have SelectShape
// recompute them serially.
type FitOutcomes struct {
	Circle   shape.Shape
	CircleOK bool

	Ellipse   shape.Shape
	EllipseOK bool

	Rectangle   RectangleFit
	RectangleOK bool

	PolygonOrStar   shape.Shape
	PolygonOrStarOK bool
}

// SelectFromOutcomes applies the selector's ranking and tolerance rules
// (component J) to fits computed ahead of time. It is eligibility-neutral:
// the caller decides which fitters were worth running (closure-gated
// circle/ellipse, point-count-gated rectangle, RDP-segment-gated
// polygon/star) and simply leaves the corresponding OK flag false when a
// fitter was skipped or failed.
func SelectFromOutcomes(pts []geom.Point, strokeWidth float64, closed bool, cfg Config, fits FitOutcomes) shape.Shape {
	var candidates []candidate

	if closed && fits.CircleOK {
		norm := fits.Circle.Error / (fits.Circle.Radius * fits.Circle.Radius)
		if norm < cfg.CircleTolerance {
			candidates = append(candidates, candidate{fits.Circle, norm, rankCircle})
		}
	}
	if closed && fits.EllipseOK {
		norm := fits.Ellipse.Error / (fits.Ellipse.RX * fits.Ellipse.RX)
		if norm < cfg.EllipseTolerance {
			candidates = append(candidates, candidate{fits.Ellipse, norm, rankEllipse})
		}
	}
	if fits.RectangleOK {
		halfDiag := diagonal(fits.Rectangle.Rectangle.Width, fits.Rectangle.Rectangle.Height) / 2
		rectNorm := fits.Rectangle.Rectangle.Error / (halfDiag * halfDiag)
		if rectNorm < cfg.RectTolerance {
			candidates = append(candidates, candidate{fits.Rectangle.Rectangle, rectNorm, rankRectangle})
		}

		squareHalfDiag := fits.Rectangle.Square.Side * 1.4142135623730951 / 2
		sqNorm := fits.Rectangle.Square.Error / (squareHalfDiag * squareHalfDiag)
		if sqNorm < cfg.SquareTolerance {
			candidates = append(candidates, candidate{fits.Rectangle.Square, sqNorm, rankSquare})
		}
	}
	if fits.PolygonOrStarOK {
		ps := fits.PolygonOrStar
		switch ps.Kind {
		case shape.KindPolygon:
			norm := ps.Error / (ps.Radius * ps.Radius)
			if norm < cfg.PolygonTolerance {
				candidates = append(candidates, candidate{ps, norm, rankPolygon})
			}
		case shape.KindStar:
			norm := ps.Error / (ps.OuterRadius * ps.OuterRadius)
			if norm < cfg.StarTolerance {
				candidates = append(candidates, candidate{ps, norm, rankStar})
			}
		}
	}

	if len(candidates) == 0 {
		epsilon := cfg.RDPEpsilonMultiplier * strokeWidth
		rdp := simplify.Simplify(pts, epsilon)
		return fallbackPolyline(pts, rdp)
	}

	minNorm := candidates[0].normalized
	for _, c := range candidates[1:] {
		if c.normalized < minNorm {
			minNorm = c.normalized
		}
	}

	var best *candidate
	for i := range candidates {
		c := candidates[i]
		if c.normalized > minNorm*(1+cfg.TieBreakMargin) {
			continue
		}
		if best == nil || c.rank < best.rank || (c.rank == best.rank && c.normalized < best.normalized) {
			best = &candidates[i]
		}
	}
	return best.shape
}
