package shapefit

import (
	"math"

	"github.com/esimov/sketchaire/geom"
	"github.com/esimov/sketchaire/shape"
	"github.com/esimov/sketchaire/shapeerror"
)

const (
	rectCoarseAngleSteps = 90
	rectOuterLoops       = 3
	rectInnerSteps       = 5
	rectLR               = 0.1
	rectFiniteDelta      = 0.5
)

// RectangleFit is the joint result of the square/rectangle fitter: the
// independently-fitted rectangle and square, plus the squareness of the
// rectangle fit.
type RectangleFit struct {
	Rectangle  shape.Shape
	Square     shape.Shape
	Squareness float64
}

// FitRectangle searches a coarse 90-angle rotation grid for the
// minimum-area oriented bounding box, then refines width, height and
// rotation (rectangle branch) and side and rotation (square branch)
// independently by coordinate gradient descent against the bidirectional
// Hausdorff-squared metric. Requires at least 4 points.
func FitRectangle(pts []geom.Point, cfg Config) (RectangleFit, bool) {
	if len(pts) < 4 {
		return RectangleFit{}, false
	}

	center := geom.Centroid(pts)
	bestAngle, bestW, bestH := coarseMinAreaBox(pts, center)

	rw, rh, rrot := refineRectangle(pts, center, bestW, bestH, bestAngle, cfg)
	rectErr := rectMetric(pts, center, rw, rh, rrot, cfg)
	rectShape, err := shape.NewRectangle(center, rw, rh, rrot, rectErr)
	if err != nil {
		return RectangleFit{}, false
	}

	side := (bestW + bestH) / 2
	side, srot := refineSquare(pts, center, side, bestAngle, cfg)
	squareErr := rectMetric(pts, center, side, side, srot, cfg)
	squareShape, err := shape.NewSquare(center, side, srot, squareErr)
	if err != nil {
		return RectangleFit{}, false
	}

	minSide, maxSide := rw, rh
	if minSide > maxSide {
		minSide, maxSide = maxSide, minSide
	}
	squareness := 1 - minSide/maxSide

	return RectangleFit{Rectangle: rectShape, Square: squareShape, Squareness: squareness}, true
}

// coarseMinAreaBox searches 90 integer-degree angles for the minimum-area
// oriented bounding box around pts, returning the winning angle and the
// box's width and height along that orientation.
func coarseMinAreaBox(pts []geom.Point, center geom.Point) (angle, width, height float64) {
	bestArea := math.Inf(1)
	for deg := 0; deg < rectCoarseAngleSteps; deg++ {
		theta := float64(deg) * math.Pi / 180
		w, h := obbExtent(pts, center, theta)
		area := w * h
		if area < bestArea {
			bestArea = area
			angle, width, height = theta, w, h
		}
	}
	return
}

// obbExtent returns the width and height of pts' bounding box when rotated
// by -theta into an axis-aligned frame.
func obbExtent(pts []geom.Point, center geom.Point, theta float64) (width, height float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		local := geom.RotateAbout(p, center, -theta)
		if local.X < minX {
			minX = local.X
		}
		if local.X > maxX {
			maxX = local.X
		}
		if local.Y < minY {
			minY = local.Y
		}
		if local.Y > maxY {
			maxY = local.Y
		}
	}
	return maxX - minX, maxY - minY
}

func distToRectangle(p geom.Point, center geom.Point, w, h, rotation float64) float64 {
	local := geom.RotateAbout(p, center, -rotation).Sub(center)
	hx, hy := w/2, h/2

	dx := math.Abs(local.X) - hx
	dy := math.Abs(local.Y) - hy

	if dx <= 0 && dy <= 0 {
		// Interior: distance to nearest edge.
		return math.Min(-dx, -dy)
	}
	if dx > 0 && dy > 0 {
		return math.Hypot(dx, dy)
	}
	if dx > 0 {
		return dx
	}
	return dy
}

func rectangleSamples(center geom.Point, w, h, rotation float64, n int) []geom.Point {
	perimeter := 2 * (w + h)
	out := make([]geom.Point, n)
	hx, hy := w/2, h/2
	corners := []geom.Point{{-hx, -hy}, {hx, -hy}, {hx, hy}, {-hx, hy}}
	edgeLens := []float64{w, h, w, h}

	for i := 0; i < n; i++ {
		target := perimeter * float64(i) / float64(n)
		acc := 0.0
		for e := 0; e < 4; e++ {
			a := corners[e]
			b := corners[(e+1)%4]
			if target <= acc+edgeLens[e] || e == 3 {
				t := 0.0
				if edgeLens[e] > 0 {
					t = (target - acc) / edgeLens[e]
				}
				local := geom.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
				out[i] = geom.RotateAbout(local.Add(center), center, rotation)
				break
			}
			acc += edgeLens[e]
		}
	}
	return out
}

func rectMetric(pts []geom.Point, center geom.Point, w, h, rotation float64, cfg Config) float64 {
	dist := func(p geom.Point) float64 { return distToRectangle(p, center, w, h, rotation) }
	samples := rectangleSamples(center, w, h, rotation, cfg.ResampleCount)
	return shapeerror.Metric(pts, dist, samples)
}

// refineRectangle runs three outer loops, each containing inner
// coordinate-descent blocks over width, height and rotation.
func refineRectangle(pts []geom.Point, center geom.Point, w, h, rotation float64, cfg Config) (float64, float64, float64) {
	positive := func(loss func(float64) float64) func(float64) float64 {
		return func(v float64) float64 {
			if v <= 1e-6 {
				v = 1e-6
			}
			return loss(v)
		}
	}
	for outer := 0; outer < rectOuterLoops; outer++ {
		w = descend1D(positive(func(v float64) float64 { return rectMetric(pts, center, v, h, rotation, cfg) }), w, rectFiniteDelta)
		h = descend1D(positive(func(v float64) float64 { return rectMetric(pts, center, w, v, rotation, cfg) }), h, rectFiniteDelta)
		rotation = descend1D(func(v float64) float64 { return rectMetric(pts, center, w, h, v, cfg) }, rotation, 0.01)
	}
	return w, h, rotation
}

func refineSquare(pts []geom.Point, center geom.Point, side, rotation float64, cfg Config) (float64, float64) {
	positive := func(loss func(float64) float64) func(float64) float64 {
		return func(v float64) float64 {
			if v <= 1e-6 {
				v = 1e-6
			}
			return loss(v)
		}
	}
	for outer := 0; outer < rectOuterLoops; outer++ {
		side = descend1D(positive(func(v float64) float64 { return rectMetric(pts, center, v, v, rotation, cfg) }), side, rectFiniteDelta)
		rotation = descend1D(func(v float64) float64 { return rectMetric(pts, center, side, side, v, cfg) }, rotation, 0.01)
	}
	return side, rotation
}

// descend1D runs up to rectInnerSteps central-finite-difference gradient
// steps on loss, stopping early once a step fails to improve it.
func descend1D(loss func(float64) float64, v, delta float64) float64 {
	current := loss(v)
	for i := 0; i < rectInnerSteps; i++ {
		grad := (loss(v+delta) - loss(v-delta)) / (2 * delta)
		step := rectLR * grad

		improved := false
		for h := 0; h < backtrackMaxHalving; h++ {
			try := v - step
			tryLoss := loss(try)
			if tryLoss < current {
				v = try
				current = tryLoss
				improved = true
				break
			}
			step /= 2
		}
		if !improved {
			break
		}
	}
	return v
}
