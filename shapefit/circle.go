package shapefit

import (
	"math"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/shape"
	"github.com/esimov/sketchaire/shapeerror"
)

// FitCircle performs a Pratt algebraic least-squares circle fit: subtract
// the centroid to improve conditioning, accumulate the second and third
// moments, solve the resulting characteristic cubic in the Pratt
// parameter by Newton's method, then recover the center and radius.
//
// FitCircle reports ok=false for fewer than three points or a numerically
// degenerate configuration (collinear points, singular moment matrix).
func FitCircle(pts []geom.Point, cfg Config) (shape.Shape, bool) {
	if len(pts) < 3 {
		return shape.Shape{}, false
	}

	centroid := geom.Centroid(pts)

	var mxx, myy, mxy, mxz, myz, mzz float64
	n := float64(len(pts))
	for _, p := range pts {
		xi := p.X - centroid.X
		yi := p.Y - centroid.Y
		zi := xi*xi + yi*yi
		mxx += xi * xi
		myy += yi * yi
		mxy += xi * yi
		mxz += xi * zi
		myz += yi * zi
		mzz += zi * zi
	}
	mxx /= n
	myy /= n
	mxy /= n
	mxz /= n
	myz /= n
	mzz /= n

	mz := mxx + myy
	covXY := mxx*myy - mxy*mxy
	varZ := mzz - mz*mz

	a3 := 4 * mz
	a2 := -3*mz*mz - mzz
	a1 := varZ*mz + 4*covXY*mz - mxz*mxz - myz*myz
	a0 := mxz*mxz*myy + myz*myz*mxx - varZ*covXY - 2*mxz*myz*mxy

	f := func(x float64) float64 { return a0 + x*(a1+x*(a2+x*a3)) }
	fPrime := func(x float64) float64 { return a1 + x*(2*a2+x*3*a3) }

	x := 0.0
	for i := 0; i < 20; i++ {
		d := fPrime(x)
		if math.Abs(d) < 1e-300 {
			return shape.Shape{}, false
		}
		step := f(x) / d
		x -= step
		if math.Abs(step) < 1e-12 {
			break
		}
	}

	det := x*x - x*mz + covXY
	if det == 0 {
		return shape.Shape{}, false
	}
	cx := (mxz*(myy-x) - myz*mxy) / det / 2
	cy := (myz*(mxx-x) - mxz*mxy) / det / 2

	radiusSq := cx*cx + cy*cy + mz + 2*x
	if radiusSq <= 0 {
		return shape.Shape{}, false
	}
	radius := math.Sqrt(radiusSq)
	center := geom.Point{X: cx + centroid.X, Y: cy + centroid.Y}

	distToCircle := func(p geom.Point) float64 {
		return math.Abs(geom.Dist(p, center) - radius)
	}
	fitErr := shapeerror.MeanSq(pts, distToCircle)

	s, err := shape.NewCircle(center, radius, fitErr)
	if err != nil {
		return shape.Shape{}, false
	}
	return s, true
}

// CircleSamples returns n evenly spaced points on the boundary of a
// circle, used both by the shape-error metric and by the renderer.
func CircleSamples(center geom.Point, radius float64, n int) []geom.Point {
	out := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		out[i] = geom.Point{
			X: center.X + radius*math.Cos(theta),
			Y: center.Y + radius*math.Sin(theta),
		}
	}
	return out
}
