package config

import (
	_ "embed"
)

//go:embed defaults/dodger.yaml
var defaultDodgerYAML []byte

// DefaultDodgerConfig returns the built-in Asteroid Dodger configuration.
// It mirrors defaults/dodger.yaml and is used when the embedded file
// cannot be parsed.
func DefaultDodgerConfig() DodgerConfig {
	return DodgerConfig{
		Field: FieldConfig{
			Width:      400,
			Height:     800,
			ExitMargin: 50,
		},
		Clock: ClockConfig{
			TickMS: 16, // ~60Hz
		},
		Player: PlayerConfig{
			Radius:       25,
			Lives:        3,
			MarginX:      25,
			MarginY:      50,
			StartOffsetY: 100,
			KeyStep:      20,
			PointerLift:  0,
		},
		Hazards: HazardConfig{
			SpawnIntervalMS: 1500,
			SpawnY:          -50,
			SpawnMargin:     40,
			MinSpeed:        2,
			MaxSpeed:        5,
			MinSize:         20,
			MaxSize:         40,
		},
		Pickups: PickupConfig{
			SpawnIntervalMS: 8000,
			SpawnChance:     0.3,
			SpawnY:          -30,
			SpawnMargin:     30,
			Speed:           3,
			Radius:          15,
			Weights: map[string]int{
				"shield": 1,
				"slow":   1,
				"score":  1,
			},
		},
		Effects: EffectConfig{
			InvulnerabilityMS:  2000,
			ShieldMS:           5000,
			SlowMS:             3000,
			SlowFactor:         0.5,
			MinSpeedMultiplier: 0.5,
			ScoreBonus:         100,
		},
		Scoring: ScoringConfig{
			PerTick:        1,
			MilestoneEvery: 500,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Base:         1.0,
			Increment:    0.0005,
			Max:          2.5,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultDodgerYAML
}
