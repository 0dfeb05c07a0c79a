package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// KnownPickupKinds lists the pickup weight keys the engine understands.
var KnownPickupKinds = []string{"shield", "slow", "score"}

// Validate checks every range and period so that misconfiguration fails at
// load time rather than on the first spawn. All problems are reported at once.
func (c DodgerConfig) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		bad("field size must be positive, got %vx%v", c.Field.Width, c.Field.Height)
	}
	if c.Field.ExitMargin < 0 {
		bad("field.exit_margin must not be negative, got %v", c.Field.ExitMargin)
	}
	if c.Clock.TickMS <= 0 {
		bad("clock.tick_ms must be positive, got %d", c.Clock.TickMS)
	}

	if c.Player.Radius <= 0 {
		bad("player.radius must be positive, got %v", c.Player.Radius)
	}
	if c.Player.Lives <= 0 {
		bad("player.lives must be at least 1, got %d", c.Player.Lives)
	}
	if c.Player.MarginX < 0 || c.Player.MarginY < 0 {
		bad("player margins must not be negative")
	}
	if 2*c.Player.MarginX > c.Field.Width || 2*c.Player.MarginY > c.Field.Height {
		bad("player margins leave no room inside the field")
	}

	if c.Hazards.SpawnIntervalMS <= 0 {
		bad("hazards.spawn_interval_ms must be positive, got %d", c.Hazards.SpawnIntervalMS)
	}
	if c.Hazards.MinSpeed <= 0 || c.Hazards.MinSpeed > c.Hazards.MaxSpeed {
		bad("hazards speed range [%v, %v) is invalid", c.Hazards.MinSpeed, c.Hazards.MaxSpeed)
	}
	if c.Hazards.MinSize <= 0 || c.Hazards.MinSize > c.Hazards.MaxSize {
		bad("hazards size range [%v, %v) is invalid", c.Hazards.MinSize, c.Hazards.MaxSize)
	}
	if c.Hazards.SpawnY > 0 {
		bad("hazards.spawn_y must be at or above the top edge (<= 0), got %v", c.Hazards.SpawnY)
	}
	if c.Hazards.SpawnMargin < 0 || c.Hazards.SpawnMargin >= c.Field.Width {
		bad("hazards.spawn_margin must be in [0, field width), got %v", c.Hazards.SpawnMargin)
	}

	if c.Pickups.SpawnIntervalMS <= 0 {
		bad("pickups.spawn_interval_ms must be positive, got %d", c.Pickups.SpawnIntervalMS)
	}
	if c.Pickups.SpawnChance < 0 || c.Pickups.SpawnChance > 1 {
		bad("pickups.spawn_chance must be in [0, 1], got %v", c.Pickups.SpawnChance)
	}
	if c.Pickups.Speed <= 0 {
		bad("pickups.speed must be positive, got %v", c.Pickups.Speed)
	}
	if c.Pickups.Radius <= 0 {
		bad("pickups.radius must be positive, got %v", c.Pickups.Radius)
	}
	if c.Pickups.SpawnY > 0 {
		bad("pickups.spawn_y must be at or above the top edge (<= 0), got %v", c.Pickups.SpawnY)
	}
	if c.Pickups.SpawnMargin < 0 || c.Pickups.SpawnMargin >= c.Field.Width {
		bad("pickups.spawn_margin must be in [0, field width), got %v", c.Pickups.SpawnMargin)
	}
	total := 0
	for kind, w := range c.Pickups.Weights {
		if !isKnownPickup(kind) {
			bad("pickups.weights has unknown kind %q", kind)
		}
		if w < 0 {
			bad("pickups.weights[%s] must not be negative, got %d", kind, w)
		}
		total += w
	}
	if len(c.Pickups.Weights) > 0 && total == 0 {
		bad("pickups.weights must not all be zero")
	}

	if c.Effects.InvulnerabilityMS <= 0 || c.Effects.ShieldMS <= 0 || c.Effects.SlowMS <= 0 {
		bad("effect durations must be positive")
	}
	if c.Effects.SlowFactor <= 0 || c.Effects.SlowFactor > 1 {
		bad("effects.slow_factor must be in (0, 1], got %v", c.Effects.SlowFactor)
	}
	if c.Effects.MinSpeedMultiplier < 0 {
		bad("effects.min_speed_multiplier must not be negative")
	}
	if c.Effects.ScoreBonus < 0 {
		bad("effects.score_bonus must not be negative, got %d", c.Effects.ScoreBonus)
	}

	if c.Scoring.PerTick < 0 || c.Scoring.MilestoneEvery < 0 {
		bad("scoring values must not be negative")
	}

	d := c.Difficulty
	if d.Base <= 0 {
		bad("difficulty.base must be positive, got %v", d.Base)
	}
	if d.Max < d.Base {
		bad("difficulty.max (%v) must not be below difficulty.base (%v)", d.Max, d.Base)
	}
	if d.Increment < 0 {
		bad("difficulty.increment must not be negative, got %v", d.Increment)
	}
	if d.InitialLevel < 0 || d.InitialLevel > 1 {
		bad("difficulty.initial_level must be in [0, 1], got %v", d.InitialLevel)
	}

	return errors.Join(errs...)
}

func isKnownPickup(kind string) bool {
	for _, k := range KnownPickupKinds {
		if k == kind {
			return true
		}
	}
	return false
}
