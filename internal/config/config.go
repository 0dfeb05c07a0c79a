// Package config provides YAML-based game configuration loading, validation
// and difficulty management for Asteroid Dodger.
package config

import "time"

// DodgerConfig contains all configuration for the Asteroid Dodger simulation.
// Distances are in field units, speeds in field units per tick, and timers in
// milliseconds of simulation time.
type DodgerConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Clock      ClockConfig      `yaml:"clock"`
	Player     PlayerConfig     `yaml:"player"`
	Hazards    HazardConfig     `yaml:"hazards"`
	Pickups    PickupConfig     `yaml:"pickups"`
	Effects    EffectConfig     `yaml:"effects"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the play field.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// ExitMargin is how far past the bottom edge an entity travels before it
	// is retired. The retirement boundary is Height + ExitMargin.
	ExitMargin float64 `yaml:"exit_margin"`
}

// BottomBoundary returns the y coordinate at which entities are retired.
func (f FieldConfig) BottomBoundary() float64 {
	return f.Height + f.ExitMargin
}

// ClockConfig defines the fixed simulation tick.
type ClockConfig struct {
	TickMS int `yaml:"tick_ms"`
}

// TickInterval returns the simulation tick period.
func (c ClockConfig) TickInterval() time.Duration {
	return ms(c.TickMS)
}

// PlayerConfig defines the player ship.
type PlayerConfig struct {
	Radius       float64 `yaml:"radius"`
	Lives        int     `yaml:"lives"`
	MarginX      float64 `yaml:"margin_x"`       // Closest the ship center may get to the side edges
	MarginY      float64 `yaml:"margin_y"`       // Closest the ship center may get to the top/bottom edges
	StartOffsetY float64 `yaml:"start_offset_y"` // Start position measured up from the bottom edge
	KeyStep      float64 `yaml:"key_step"`       // Distance moved per keyboard nudge
	PointerLift  float64 `yaml:"pointer_lift"`   // Ship is placed this far above the pointer
}

// HazardConfig defines asteroid spawning.
type HazardConfig struct {
	SpawnIntervalMS int     `yaml:"spawn_interval_ms"`
	SpawnY          float64 `yaml:"spawn_y"`
	SpawnMargin     float64 `yaml:"spawn_margin"` // x is drawn from [0, width - spawn_margin)
	MinSpeed        float64 `yaml:"min_speed"`
	MaxSpeed        float64 `yaml:"max_speed"`
	MinSize         float64 `yaml:"min_size"`
	MaxSize         float64 `yaml:"max_size"`
	// ScaleSpawnRate shortens the spawn interval as difficulty rises.
	ScaleSpawnRate bool `yaml:"scale_spawn_rate"`
}

// SpawnInterval returns the base hazard spawn period.
func (h HazardConfig) SpawnInterval() time.Duration {
	return ms(h.SpawnIntervalMS)
}

// PickupConfig defines power-up spawning.
type PickupConfig struct {
	SpawnIntervalMS int            `yaml:"spawn_interval_ms"`
	SpawnChance     float64        `yaml:"spawn_chance"` // Probability in [0, 1] per spawn attempt
	SpawnY          float64        `yaml:"spawn_y"`
	SpawnMargin     float64        `yaml:"spawn_margin"`
	Speed           float64        `yaml:"speed"`
	Radius          float64        `yaml:"radius"`
	Weights         map[string]int `yaml:"weights"` // Relative weight per kind; a YAML table replaces the defaults
}

// SpawnInterval returns the pickup spawn attempt period.
func (p PickupConfig) SpawnInterval() time.Duration {
	return ms(p.SpawnIntervalMS)
}

// EffectConfig defines hit and pickup outcomes.
type EffectConfig struct {
	InvulnerabilityMS  int     `yaml:"invulnerability_ms"`
	ShieldMS           int     `yaml:"shield_ms"`
	SlowMS             int     `yaml:"slow_ms"`
	SlowFactor         float64 `yaml:"slow_factor"`          // Hazard speed multiplier while slowed
	MinSpeedMultiplier float64 `yaml:"min_speed_multiplier"` // Floor for the slowed multiplier
	ScoreBonus         int     `yaml:"score_bonus"`
}

// Invulnerability returns the post-hit invulnerability window.
func (e EffectConfig) Invulnerability() time.Duration {
	return ms(e.InvulnerabilityMS)
}

// Shield returns the shield timeout.
func (e EffectConfig) Shield() time.Duration {
	return ms(e.ShieldMS)
}

// Slow returns the slow effect duration.
func (e EffectConfig) Slow() time.Duration {
	return ms(e.SlowMS)
}

// ScoringConfig defines the score rules.
type ScoringConfig struct {
	PerTick        int `yaml:"per_tick"`
	MilestoneEvery int `yaml:"milestone_every"` // 0 disables milestone notifications
}

// DifficultyConfig defines the difficulty ramp. The multiplier starts at a
// baseline derived from InitialLevel and grows by Increment every tick until
// it reaches Max.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = start at Base, 1.0 = start at Max
	Base         float64 `yaml:"base"`
	Increment    float64 `yaml:"increment"`
	Max          float64 `yaml:"max"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown or empty strings
// return "" which leaves the loaded config untouched.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.1
	case DifficultyHard:
		return 0.3
	default:
		return 0.0
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
