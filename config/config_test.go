package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefault_MatchesSpecDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, int64(250), cfg.TimeoutMs)
	assert.Equal(t, 30.0, cfg.MovedFarThresholdPx)
	assert.Equal(t, 0.15, cfg.ClosureThresholdRatio)
	assert.Equal(t, 2.0, cfg.RDPEpsilonMultiplier)
	assert.Equal(t, 64, cfg.ResampleCount)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout())
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/sketchaire.toml")
	assert.Error(t, err)
}

func TestRegisterFlags_OverlaysDefaults(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs, &cfg)

	err := fs.Parse([]string{"-timeout-ms=500", "-resample-count=32"})
	assert.NoError(t, err)
	assert.Equal(t, int64(500), cfg.TimeoutMs)
	assert.Equal(t, 32, cfg.ResampleCount)
	assert.Equal(t, 30.0, cfg.MovedFarThresholdPx)
}

func TestFit_ProjectsToShapefitConfig(t *testing.T) {
	cfg := Default()
	fit := cfg.Fit()
	assert.Equal(t, cfg.ResampleCount, fit.ResampleCount)
	assert.Equal(t, cfg.CircleTolerance, fit.CircleTolerance)
}
