// Package shapefit implements components F-J of the fitting pipeline: the
// circle, ellipse, square/rectangle and polygon/star fitters, and the
// shape selector that ranks their results. Each fitter is a pure function
// (points, Config) -> (Shape, bool), following the "comma ok" idiom caire
// itself uses for SeamCarver-style optional results. FitAll runs them
// serially as a reference path; package orchestrator runs them
// concurrently in production.
package shapefit

// Config collects every tunable constant named in spec §6 plus the
// per-type selector tolerances documented in SPEC_FULL.md §9.
type Config struct {
	ResampleCount int

	// ClosureThresholdRatio is consumed by package closure; kept here too
	// so a single Config value can be threaded through the whole pipeline.
	ClosureThresholdRatio float64

	RDPEpsilonMultiplier float64

	CircleTolerance  float64
	SquareTolerance  float64
	PolygonTolerance float64
	EllipseTolerance float64
	RectTolerance    float64
	StarTolerance    float64

	// TieBreakMargin is the relative-error window (spec §4.J: "within 5%")
	// inside which the tie-break order decides between otherwise
	// comparable fits.
	TieBreakMargin float64
}

// DefaultConfig returns the tolerances documented in SPEC_FULL.md §9.
func DefaultConfig() Config {
	return Config{
		ResampleCount:         64,
		ClosureThresholdRatio: 0.15,
		RDPEpsilonMultiplier:  2,

		CircleTolerance:  0.02,
		SquareTolerance:  0.02,
		PolygonTolerance: 0.03,
		EllipseTolerance: 0.035,
		RectTolerance:    0.04,
		StarTolerance:    0.05,

		TieBreakMargin: 0.05,
	}
}
