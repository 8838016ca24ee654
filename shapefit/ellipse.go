package shapefit

import (
	"math"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/shape"
	"github.com/esimov/sketchaire/shapeerror"
)

const (
	ellipseNewtonIters  = 20
	ellipseNewtonTol    = 1e-12
	ellipse1DIters      = 20
	ellipse1DLR         = 0.1
	ellipse5DIters      = 10
	ellipse5DDelta      = 0.1
	ellipse5DTol        = 1e-3
	backtrackMaxHalving = 5
)

// FitEllipse estimates an ellipse in three phases: a PCA seed, a 1-D
// gradient refinement of the major radius, and a 5-D gradient refinement
// on the focus representation (F1, F2, L). Requires at least 5 points.
func FitEllipse(pts []geom.Point, cfg Config) (shape.Shape, bool) {
	if len(pts) < 5 {
		return shape.Shape{}, false
	}

	center, rx, ry, rotation, ok := ellipsePCASeed(pts)
	if !ok {
		return shape.Shape{}, false
	}

	rx = refineMajorRadius(pts, center, rx, ry, rotation, cfg)

	center, rx, ry, rotation = refineFociRepresentation(pts, center, rx, ry, rotation, cfg)

	if ry <= 0 || rx < ry {
		return shape.Shape{}, false
	}

	samples := EllipseSamples(center, rx, ry, rotation, cfg.ResampleCount)
	dist := func(p geom.Point) float64 { return distToEllipse(p, center, rx, ry, rotation) }
	fitErr := shapeerror.Metric(pts, dist, samples)

	s, err := shape.NewEllipse(center, rx, ry, rotation, fitErr)
	if err != nil {
		return shape.Shape{}, false
	}
	return s, true
}

// ellipsePCASeed computes the centroid, the 2x2 covariance matrix and its
// eigen-decomposition, yielding an initial rotation and radii rx >= ry.
func ellipsePCASeed(pts []geom.Point) (center geom.Point, rx, ry, rotation float64, ok bool) {
	center = geom.Centroid(pts)

	var cxx, cyy, cxy float64
	n := float64(len(pts))
	for _, p := range pts {
		dx := p.X - center.X
		dy := p.Y - center.Y
		cxx += dx * dx
		cyy += dy * dy
		cxy += dx * dy
	}
	cxx /= n
	cyy /= n
	cxy /= n

	trace := cxx + cyy
	diff := (cxx - cyy) / 2
	disc := math.Sqrt(diff*diff + cxy*cxy)
	lambda1 := trace/2 + disc
	lambda2 := trace/2 - disc
	if lambda1 <= 0 {
		return center, 0, 0, 0, false
	}
	if lambda2 < 0 {
		lambda2 = 0
	}

	angle := 0.5 * math.Atan2(2*cxy, cxx-cyy)

	rx = math.Sqrt(2 * lambda1)
	ry = math.Sqrt(2 * lambda2)
	rotation = angle

	if ry > rx {
		rx, ry = ry, rx
		rotation += math.Pi / 2
	}
	if ry <= 0 {
		// Degenerate (collinear) point set: no well-defined minor axis.
		return center, 0, 0, 0, false
	}
	return center, rx, ry, rotation, true
}

// refineMajorRadius performs gradient descent on the bidirectional
// Hausdorff-squared metric with respect to rx alone.
func refineMajorRadius(pts []geom.Point, center geom.Point, rx, ry, rotation float64, cfg Config) float64 {
	loss := func(r float64) float64 {
		if r < ry {
			r = ry
		}
		dist := func(p geom.Point) float64 { return distToEllipse(p, center, r, ry, rotation) }
		samples := EllipseSamples(center, r, ry, rotation, cfg.ResampleCount)
		return shapeerror.Metric(pts, dist, samples)
	}

	const delta = 0.5
	for i := 0; i < ellipse1DIters; i++ {
		grad := (loss(rx+delta) - loss(rx-delta)) / (2 * delta)
		step := ellipse1DLR * grad
		current := loss(rx)

		candidate := rx
		accepted := false
		for h := 0; h < backtrackMaxHalving; h++ {
			try := rx - step
			if try < ry {
				try = ry
			}
			if loss(try) < current {
				candidate = try
				accepted = true
				break
			}
			step /= 2
		}
		if !accepted {
			break
		}
		rx = candidate
	}
	return rx
}

type foci struct {
	F1, F2 geom.Point
	L      float64
}

func toFoci(center geom.Point, rx, ry, rotation float64) foci {
	c := math.Sqrt(math.Max(rx*rx-ry*ry, 0))
	dir := geom.Point{X: math.Cos(rotation), Y: math.Sin(rotation)}
	return foci{
		F1: center.Sub(dir.Scale(c)),
		F2: center.Add(dir.Scale(c)),
		L:  2 * rx,
	}
}

func fromFoci(f foci) (center geom.Point, rx, ry, rotation float64) {
	center = geom.Point{X: (f.F1.X + f.F2.X) / 2, Y: (f.F1.Y + f.F2.Y) / 2}
	c := geom.Dist(f.F1, f.F2) / 2
	rotation = math.Atan2(f.F2.Y-f.F1.Y, f.F2.X-f.F1.X)
	rx = f.L / 2
	ry = math.Sqrt(math.Max(rx*rx-c*c, 1e-9))
	return
}

// refineFociRepresentation runs the 5-D gradient descent of spec §4.G
// phase 3 on (F1, F2, L), converting back to center/rx/ry/rotation at
// the end.
func refineFociRepresentation(pts []geom.Point, center geom.Point, rx, ry, rotation float64, cfg Config) (geom.Point, float64, float64, float64) {
	f := toFoci(center, rx, ry, rotation)

	loss := func(f foci) float64 {
		c, rx, ry, rot := fromFoci(f)
		dist := func(p geom.Point) float64 { return distToEllipse(p, c, rx, ry, rot) }
		samples := EllipseSamples(c, rx, ry, rot, cfg.ResampleCount)
		return shapeerror.Metric(pts, dist, samples)
	}

	params := []float64{f.F1.X, f.F1.Y, f.F2.X, f.F2.Y, f.L}
	toFociStruct := func(p []float64) foci {
		return foci{F1: geom.Point{X: p[0], Y: p[1]}, F2: geom.Point{X: p[2], Y: p[3]}, L: p[4]}
	}

	prevLoss := loss(toFociStruct(params))
	for iter := 0; iter < ellipse5DIters; iter++ {
		grad := make([]float64, 5)
		for i := range params {
			plus := append([]float64(nil), params...)
			minus := append([]float64(nil), params...)
			plus[i] += ellipse5DDelta
			minus[i] -= ellipse5DDelta
			grad[i] = (loss(toFociStruct(plus)) - loss(toFociStruct(minus))) / (2 * ellipse5DDelta)
		}

		step := 1.0
		improved := false
		var next []float64
		for h := 0; h < backtrackMaxHalving; h++ {
			candidate := make([]float64, 5)
			for i := range params {
				candidate[i] = params[i] - step*grad[i]
			}
			candLoss := loss(toFociStruct(candidate))
			if candLoss < prevLoss {
				next = candidate
				improved = true
				break
			}
			step /= 2
		}
		if !improved {
			break
		}
		converged := prevLoss-loss(toFociStruct(next)) < ellipse5DTol
		prevLoss = loss(toFociStruct(next))
		params = next
		if converged {
			break
		}
	}

	c, rxOut, ryOut, rotOut := fromFoci(toFociStruct(params))
	return c, rxOut, ryOut, rotOut
}

// EllipseSamples returns n points uniformly sampled by parametric angle on
// the ellipse boundary.
func EllipseSamples(center geom.Point, rx, ry, rotation float64, n int) []geom.Point {
	out := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		local := geom.Point{X: rx * math.Cos(t), Y: ry * math.Sin(t)}
		out[i] = geom.RotateAbout(local.Add(center), center, rotation)
	}
	return out
}

// distToEllipse computes the distance from p to the ellipse boundary by
// Newton iteration on the parametric angle t, in the ellipse's local
// (unrotated, centered) frame. The Newton step is safeguarded against a
// near-zero second derivative, falling back to a small normalized
// gradient step so highly eccentric ellipses do not diverge.
func distToEllipse(p geom.Point, center geom.Point, rx, ry, rotation float64) float64 {
	local := geom.RotateAbout(p, center, -rotation).Sub(center)
	px, py := local.X, local.Y

	t := math.Atan2(py*rx, px*ry)
	for i := 0; i < ellipseNewtonIters; i++ {
		sin, cos := math.Sin(t), math.Cos(t)
		dPrime := 2 * (rx*px*sin - ry*py*cos + (ry*ry-rx*rx)*sin*cos)
		dDoublePrime := 2 * (rx*px*cos + ry*py*sin + (ry*ry-rx*rx)*math.Cos(2*t))

		var step float64
		if math.Abs(dDoublePrime) < 1e-9 {
			if dPrime > 0 {
				step = 1e-3
			} else {
				step = -1e-3
			}
		} else {
			step = dPrime / dDoublePrime
		}
		t -= step
		if math.Abs(step) < ellipseNewtonTol {
			break
		}
	}

	ex := rx * math.Cos(t)
	ey := ry * math.Sin(t)
	return math.Hypot(px-ex, py-ey)
}
