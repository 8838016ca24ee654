package shapefit

import (
	"math"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/shape"
	"github.com/esimov/sketchaire/shapeerror"
	"github.com/esimov/sketchaire/simplify"
)

const (
	polyOuterLoops  = 3
	polyInnerSteps  = 5
	polyLR          = 0.1
	polyFiniteDelta = 0.5
)

// FitPolygonOrStar implements spec §4.I: RDP-simplify the stroke, close
// and deduplicate its vertex ring, classify it by vertex radius, then
// either search step patterns (single-radius branch) or refine a
// two-radius star (alternating/self-crossing branch). Requires at least 3
// RDP segments.
func FitPolygonOrStar(pts []geom.Point, strokeWidth float64, cfg Config) (shape.Shape, bool) {
	epsilon := cfg.RDPEpsilonMultiplier * strokeWidth
	rdp := simplify.Simplify(pts, epsilon)
	unique, ok := closeRing(rdp.Vertices)
	if !ok || len(unique) < 3 {
		return shape.Shape{}, false
	}

	center := geom.Centroid(unique)
	n := len(unique)
	radii := make([]float64, n)
	for i, v := range unique {
		radii[i] = geom.Dist(v, center)
	}

	switch classify(unique, center, radii) {
	case classSingleRadius:
		return fitSingleRadiusBranch(pts, unique, center, radii, cfg)
	case classAlternatingStarfish:
		return fitTwoRadiusBranch(pts, unique, center, radii, false, cfg)
	default:
		return fitTwoRadiusBranch(pts, unique, center, radii, true, cfg)
	}
}

// closeRing averages the RDP output's first and last vertex (its closing
// vertex, per spec §9's duplicate-first/last convention) into a single
// vertex and returns the n = len(vertices)-1 unique vertices.
func closeRing(vertices []geom.Point) ([]geom.Point, bool) {
	if len(vertices) < 4 {
		return nil, false
	}
	n := len(vertices) - 1
	merged := geom.Point{
		X: (vertices[0].X + vertices[n].X) / 2,
		Y: (vertices[0].Y + vertices[n].Y) / 2,
	}
	unique := make([]geom.Point, n)
	unique[0] = merged
	copy(unique[1:], vertices[1:n])
	return unique, true
}

func fitSingleRadiusBranch(pts, unique []geom.Point, center geom.Point, radii []float64, cfg Config) (shape.Shape, bool) {
	n := len(unique)
	meanR := meanOf(radii)
	rotation := math.Atan2(unique[0].Y-center.Y, unique[0].X-center.X)

	bestStep := 1
	bestErr := math.Inf(1)
	for step := 1; step < n; step++ {
		if gcd(step, n) != 1 {
			continue
		}
		err := 0.0
		for i := 0; i < n; i++ {
			theta := rotation + 2*math.Pi*float64(i*step)/float64(n)
			model := geom.Point{X: center.X + meanR*math.Cos(theta), Y: center.Y + meanR*math.Sin(theta)}
			err += geom.DistSq(unique[i], model)
		}
		if err < bestErr {
			bestErr = err
			bestStep = step
		}
	}

	outerR, _, rot := refineRadiusRotation(unique, pts, center, meanR, 0, rotation, n, bestStep, bestStep > 1, false, cfg)
	finalOuterR, _, finalRot := refineRadiusRotation(pts, pts, center, outerR, 0, rot, n, bestStep, bestStep > 1, false, cfg)

	if bestStep == 1 {
		samples := polygonSamples(center, finalOuterR, finalRot, n, cfg.ResampleCount)
		dist := func(p geom.Point) float64 { return distToPolyline(p, samples) }
		fitErr := shapeerror.Metric(pts, dist, samples)
		s, err := shape.NewEquilateralPolygon(center, finalOuterR, finalRot, n, fitErr)
		if err != nil {
			return shape.Shape{}, false
		}
		return s, true
	}

	samples := selfCrossingStarSamples(center, finalOuterR, finalRot, n, bestStep, cfg.ResampleCount)
	dist := func(p geom.Point) float64 { return distToPolyline(p, samples) }
	fitErr := shapeerror.Metric(pts, dist, samples)
	s, err := shape.NewStar(center, finalOuterR, finalOuterR, finalRot, n, true, bestStep, fitErr)
	if err != nil {
		return shape.Shape{}, false
	}
	return s, true
}

func fitTwoRadiusBranch(pts, unique []geom.Point, center geom.Point, radii []float64, selfCrossing bool, cfg Config) (shape.Shape, bool) {
	n := len(unique)
	mid := (minOf(radii) + maxOf(radii)) / 2
	var outerSum, innerSum float64
	var outerN, innerN int
	for _, r := range radii {
		if r >= mid {
			outerSum += r
			outerN++
		} else {
			innerSum += r
			innerN++
		}
	}
	if outerN == 0 || innerN == 0 {
		return shape.Shape{}, false
	}
	outerR := outerSum / float64(outerN)
	innerR := innerSum / float64(innerN)
	rotation := math.Atan2(unique[0].Y-center.Y, unique[0].X-center.X)

	outerR, innerR, rotation = refineRadiusRotation(unique, pts, center, outerR, innerR, rotation, n, 2, selfCrossing, true, cfg)
	finalOuter, finalInner, finalRot := refineRadiusRotation(pts, pts, center, outerR, innerR, rotation, n, 2, selfCrossing, true, cfg)

	var samples []geom.Point
	if selfCrossing {
		samples = selfCrossingStarSamples(center, finalOuter, finalRot, n, 2, cfg.ResampleCount)
	} else {
		samples = starSamples(center, finalOuter, finalInner, finalRot, n, cfg.ResampleCount)
	}
	dist := func(p geom.Point) float64 { return distToPolyline(p, samples) }
	fitErr := shapeerror.Metric(pts, dist, samples)

	step := 1
	if selfCrossing {
		step = 2
	}
	s, err := shape.NewStar(center, finalOuter, finalInner, finalRot, n, selfCrossing, step, fitErr)
	if err != nil {
		return shape.Shape{}, false
	}
	return s, true
}

// refineRadiusRotation runs the alternating-refinement loops of spec
// §4.I step 6: 3 outer loops, each with up to 5 coordinate-descent steps
// on outer radius, inner radius (star branch only) and rotation, scored
// against scorePts (the callers pass the RDP vertices for the first pass
// and the original points for the second). evalPts is not read.
func refineRadiusRotation(scorePts, evalPts []geom.Point, center geom.Point, outerR, innerR, rotation float64, sides, step int, selfCrossing, isStar bool, cfg Config) (float64, float64, float64) {
	loss := func(outer, inner, rot float64) float64 {
		var samples []geom.Point
		switch {
		case selfCrossing:
			samples = selfCrossingStarSamples(center, outer, rot, sides, step, cfg.ResampleCount)
		case isStar:
			samples = starSamples(center, outer, inner, rot, sides, cfg.ResampleCount)
		default:
			samples = polygonSamples(center, outer, rot, sides, cfg.ResampleCount)
		}
		dist := func(p geom.Point) float64 { return distToPolyline(p, samples) }
		return shapeerror.Metric(scorePts, dist, samples)
	}

	for o := 0; o < polyOuterLoops; o++ {
		outerR = descend1D(func(v float64) float64 { return loss(v, innerR, rotation) }, outerR, polyFiniteDelta)
		if isStar {
			innerR = descend1D(func(v float64) float64 { return loss(outerR, v, rotation) }, innerR, polyFiniteDelta)
		}
		rotation = descend1D(func(v float64) float64 { return loss(outerR, innerR, v) }, rotation, 0.01)
	}
	return outerR, innerR, rotation
}

// polygonSamples returns n points sampled uniformly along the perimeter of
// a regular polygon.
func polygonSamples(center geom.Point, radius, rotation float64, sides, n int) []geom.Point {
	verts := make([]geom.Point, sides)
	for i := 0; i < sides; i++ {
		theta := rotation + 2*math.Pi*float64(i)/float64(sides)
		verts[i] = geom.Point{X: center.X + radius*math.Cos(theta), Y: center.Y + radius*math.Sin(theta)}
	}
	return sampleClosedPolyline(verts, n)
}

// starSamples returns n points along the perimeter of a non-self-crossing
// two-radius star (a starfish), alternating outer and inner vertices.
func starSamples(center geom.Point, outerR, innerR, rotation float64, points, n int) []geom.Point {
	verts := make([]geom.Point, points*2)
	for i := 0; i < points; i++ {
		outerTheta := rotation + 2*math.Pi*float64(i)/float64(points)
		innerTheta := outerTheta + math.Pi/float64(points)
		verts[2*i] = geom.Point{X: center.X + outerR*math.Cos(outerTheta), Y: center.Y + outerR*math.Sin(outerTheta)}
		verts[2*i+1] = geom.Point{X: center.X + innerR*math.Cos(innerTheta), Y: center.Y + innerR*math.Sin(innerTheta)}
	}
	return sampleClosedPolyline(verts, n)
}

// selfCrossingStarSamples returns n points along a self-crossing {sides/step}
// star polygon, sharing a single radius for every vertex (spec §4.I step 5).
// The two-radius branch passes its outer radius here, so its inner radius
// does not shape these samples.
func selfCrossingStarSamples(center geom.Point, radius, rotation float64, sides, step, n int) []geom.Point {
	verts := make([]geom.Point, sides)
	for i := 0; i < sides; i++ {
		idx := (i * step) % sides
		theta := rotation + 2*math.Pi*float64(idx)/float64(sides)
		verts[i] = geom.Point{X: center.X + radius*math.Cos(theta), Y: center.Y + radius*math.Sin(theta)}
	}
	return sampleClosedPolyline(verts, n)
}

// sampleClosedPolyline walks the closed polyline verts and returns n
// points spaced uniformly by arc length, the same algorithm as package
// resample but closing the ring back to verts[0].
func sampleClosedPolyline(verts []geom.Point, n int) []geom.Point {
	closed := append(append([]geom.Point(nil), verts...), verts[0])
	total := 0.0
	for i := 1; i < len(closed); i++ {
		total += geom.Dist(closed[i-1], closed[i])
	}
	if total == 0 {
		out := make([]geom.Point, n)
		for i := range out {
			out[i] = verts[0]
		}
		return out
	}

	out := make([]geom.Point, n)
	interval := total / float64(n)
	acc := 0.0
	segIdx := 1
	segStart := closed[0]
	segEnd := closed[1]
	segRemaining := geom.Dist(segStart, segEnd)
	for idx := 0; idx < n; idx++ {
		target := interval * float64(idx)
		for acc+segRemaining < target && segIdx < len(closed)-1 {
			acc += segRemaining
			segIdx++
			segStart = segEnd
			segEnd = closed[segIdx]
			segRemaining = geom.Dist(segStart, segEnd)
		}
		segLen := geom.Dist(segStart, segEnd)
		t := 0.0
		if segLen > 0 {
			t = (target - acc) / segLen
		}
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		out[idx] = geom.Point{X: segStart.X + (segEnd.X-segStart.X)*t, Y: segStart.Y + (segEnd.Y-segStart.Y)*t}
	}
	return out
}

// distToPolyline returns the minimum distance from p to any segment of the
// closed polyline formed by samples, used as the distToShape function for
// polygon and star metrics.
func distToPolyline(p geom.Point, samples []geom.Point) float64 {
	min := math.Inf(1)
	for i := 0; i < len(samples); i++ {
		a := samples[i]
		b := samples[(i+1)%len(samples)]
		d := geom.PointSegmentDistance(p, a, b)
		if d < min {
			min = d
		}
	}
	return min
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}
