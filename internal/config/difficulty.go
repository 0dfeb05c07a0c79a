package config

import (
	"math"
	"time"
)

// DifficultyManager computes the difficulty multiplier ramp and the
// parameters derived from it.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Increment > 0
}

// Baseline returns the multiplier a fresh run starts with.
func (d *DifficultyManager) Baseline() float64 {
	return d.cfg.Base + d.initialLevel*(d.cfg.Max-d.cfg.Base)
}

// Max returns the multiplier cap.
func (d *DifficultyManager) Max() float64 {
	return d.cfg.Max
}

// Step returns the multiplier after one more tick, clamped to the cap.
func (d *DifficultyManager) Step(current float64) float64 {
	if !d.IsEnabled() {
		return current
	}
	return math.Min(d.cfg.Max, current+d.cfg.Increment)
}

// Level returns how far the multiplier is along the ramp (0.0 to 1.0).
func (d *DifficultyManager) Level(current float64) float64 {
	span := d.cfg.Max - d.cfg.Base
	if span <= 0 {
		return 0
	}
	return clampF((current-d.cfg.Base)/span, 0.0, 1.0)
}

// SpawnInterval shortens a base spawn period in proportion to the multiplier.
// The result never drops below a quarter of the base period.
func (d *DifficultyManager) SpawnInterval(base time.Duration, current float64) time.Duration {
	if current <= 1 {
		return base
	}
	scaled := time.Duration(float64(base) / current)
	if floor := base / 4; scaled < floor {
		return floor
	}
	return scaled
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
