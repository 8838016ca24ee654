package shapefit

import (
	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/shape"
	"github.com/esimov/sketchaire/simplify"
)

// candidate pairs a normalized error (error divided by a shape-appropriate
// size measure) with its Shape and a tie-break rank used when two
// candidates are within Config.TieBreakMargin of each other.
type candidate struct {
	shape      shape.Shape
	normalized float64
	rank       int
}

// Tie-break order of spec §4.J, lowest rank wins ties.
const (
	rankCircle = iota
	rankSquare
	rankPolygon
	rankEllipse
	rankRectangle
	rankStar
)

// SelectShape runs every fitter eligible for the stroke (closure-gated
// circle/ellipse, point-count-gated rectangle/square, RDP-segment-gated
// polygon/star), normalizes each candidate's error by its size, and
// returns the lowest-normalized-error shape below its per-type tolerance.
// If none qualifies, it falls back to a Polyline simplification.
func SelectShape(pts []geom.Point, strokeWidth float64, closed bool, cfg Config) shape.Shape {
	var candidates []candidate

	if closed {
		if circ, ok := FitCircle(pts, cfg); ok {
			norm := circ.Error / (circ.Radius * circ.Radius)
			if norm < cfg.CircleTolerance {
				candidates = append(candidates, candidate{circ, norm, rankCircle})
			}
		}
		if ell, ok := FitEllipse(pts, cfg); ok {
			norm := ell.Error / (ell.RX * ell.RX)
			if norm < cfg.EllipseTolerance {
				candidates = append(candidates, candidate{ell, norm, rankEllipse})
			}
		}
	}

	if len(pts) >= 4 {
		if rf, ok := FitRectangle(pts, cfg); ok {
			halfDiag := diagonal(rf.Rectangle.Width, rf.Rectangle.Height) / 2
			rectNorm := rf.Rectangle.Error / (halfDiag * halfDiag)
			if rectNorm < cfg.RectTolerance {
				candidates = append(candidates, candidate{rf.Rectangle, rectNorm, rankRectangle})
			}

			squareHalfDiag := rf.Square.Side * 1.4142135623730951 / 2
			sqNorm := rf.Square.Error / (squareHalfDiag * squareHalfDiag)
			if sqNorm < cfg.SquareTolerance {
				candidates = append(candidates, candidate{rf.Square, sqNorm, rankSquare})
			}
		}
	}

	epsilon := cfg.RDPEpsilonMultiplier * strokeWidth
	rdp := simplify.Simplify(pts, epsilon)
	if len(rdp.Vertices) >= 4 {
		if ps, ok := FitPolygonOrStar(pts, strokeWidth, cfg); ok {
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
	}

	if len(candidates) == 0 {
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

func fallbackPolyline(pts []geom.Point, rdp simplify.Result) shape.Shape {
	vertices := rdp.Vertices
	if len(vertices) < 2 {
		vertices = []geom.Point{pts[0], pts[len(pts)-1]}
	}
	s, err := shape.NewPolyline(vertices, rdp.MaxError)
	if err != nil {
		// Only reachable for a single-point stroke, which the event
		// handler never commits (spec §4.N requires the live stroke to
		// carry at least its seed point plus one appended sample).
		return shape.NewRawPoints(pts)
	}
	return s
}

func diagonal(w, h float64) float64 {
	return geom.Dist(geom.Point{}, geom.Point{X: w, Y: h})
}
