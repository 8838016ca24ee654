// Package config loads sketchaire's tunable options from a TOML file and
// lets command-line flags override them, grounded on noisetorch's
// toml.DecodeFile-into-a-flat-struct config loading and
// cmd/caire/main.go's flag.String/flag.Int block for the CLI overlay.
package config

import (
	"flag"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/esimov/sketchaire/shapefit"
)

// Config mirrors spec §6's recognized configuration options plus the
// fitting tolerances of shapefit.Config, in one flat struct so a single
// TOML file configures the whole pipeline.
//
// TimeoutMs and MovedFarThresholdPx are loaded and overlaid like every
// other field, but orchestrator.New builds its Tracker with
// input.DefaultTimeout and input.DefaultMovedFarThreshold, so these two
// values do not change the running tracker.
type Config struct {
	TimeoutMs            int64   `toml:"timeout_ms"`
	MovedFarThresholdPx  float64 `toml:"moved_far_threshold_px"`
	ClosureThresholdRatio float64 `toml:"closure_threshold_ratio"`
	RDPEpsilonMultiplier float64 `toml:"rdp_epsilon_multiplier"`
	ResampleCount        int     `toml:"resample_count"`

	CircleTolerance  float64 `toml:"circle_tolerance"`
	SquareTolerance  float64 `toml:"square_tolerance"`
	PolygonTolerance float64 `toml:"polygon_tolerance"`
	EllipseTolerance float64 `toml:"ellipse_tolerance"`
	RectTolerance    float64 `toml:"rect_tolerance"`
	StarTolerance    float64 `toml:"star_tolerance"`
	TieBreakMargin   float64 `toml:"tie_break_margin"`

	StrokeWidth float64 `toml:"stroke_width"`
}

// Default returns the configuration described by SPEC_FULL §6 and §9:
// the same defaults as shapefit.DefaultConfig plus the event-handler and
// rendering options outside the fitting pipeline.
func Default() Config {
	fit := shapefit.DefaultConfig()
	return Config{
		TimeoutMs:             250,
		MovedFarThresholdPx:   30,
		ClosureThresholdRatio: fit.ClosureThresholdRatio,
		RDPEpsilonMultiplier:  fit.RDPEpsilonMultiplier,
		ResampleCount:         fit.ResampleCount,
		CircleTolerance:       fit.CircleTolerance,
		SquareTolerance:       fit.SquareTolerance,
		PolygonTolerance:      fit.PolygonTolerance,
		EllipseTolerance:      fit.EllipseTolerance,
		RectTolerance:         fit.RectTolerance,
		StarTolerance:         fit.StarTolerance,
		TieBreakMargin:        fit.TieBreakMargin,
		StrokeWidth:           3,
	}
}

// Timeout returns the configured idle-after-finger-down interval as a
// time.Duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Fit projects Config down to the shapefit.Config the fitting pipeline
// consumes.
func (c Config) Fit() shapefit.Config {
	return shapefit.Config{
		ResampleCount:         c.ResampleCount,
		ClosureThresholdRatio: c.ClosureThresholdRatio,
		RDPEpsilonMultiplier:  c.RDPEpsilonMultiplier,
		CircleTolerance:       c.CircleTolerance,
		SquareTolerance:       c.SquareTolerance,
		PolygonTolerance:      c.PolygonTolerance,
		EllipseTolerance:      c.EllipseTolerance,
		RectTolerance:         c.RectTolerance,
		StarTolerance:         c.StarTolerance,
		TieBreakMargin:        c.TieBreakMargin,
	}
}

// Load reads path as TOML into Default()'s base configuration. A missing
// path is not an error; Load simply returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}

// RegisterFlags binds fs's flags to cfg's fields so command-line
// arguments overlay whatever a TOML file already set, matching
// cmd/caire/main.go's flag block style.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Int64Var(&cfg.TimeoutMs, "timeout-ms", cfg.TimeoutMs, "idle-after-finger-down interval, in ms, triggering TIMEOUT")
	fs.Float64Var(&cfg.MovedFarThresholdPx, "moved-far-px", cfg.MovedFarThresholdPx, "minimum displacement, in px, to emit FINGER_MOVED_FAR")
	fs.Float64Var(&cfg.ClosureThresholdRatio, "closure-ratio", cfg.ClosureThresholdRatio, "closed-stroke distance ratio threshold")
	fs.Float64Var(&cfg.RDPEpsilonMultiplier, "rdp-epsilon-mult", cfg.RDPEpsilonMultiplier, "RDP epsilon, in units of stroke width")
	fs.IntVar(&cfg.ResampleCount, "resample-count", cfg.ResampleCount, "resampled point count")
	fs.Float64Var(&cfg.StrokeWidth, "stroke-width", cfg.StrokeWidth, "default stroke width in px")
}
