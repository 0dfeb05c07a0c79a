package sim

import (
	"github.com/vovakirdan/asteroid-dodger/internal/config"
)

// Clock advances a run by one fixed tick. It is the only code that moves
// entities.
type Clock struct {
	boundary   float64
	perTick    int
	difficulty *config.DifficultyManager
}

// NewClock creates a clock for the given config.
func NewClock(cfg config.DodgerConfig, dm *config.DifficultyManager) *Clock {
	return &Clock{
		boundary:   cfg.Field.BottomBoundary(),
		perTick:    cfg.Scoring.PerTick,
		difficulty: dm,
	}
}

// TickResult reports what a tick retired.
type TickResult struct {
	HazardsRetired int
	PickupsRetired int
}

// Advance moves every entity, retires those past the bottom boundary, adds the
// per-tick score and steps the difficulty ramp. hazardScale multiplies hazard
// speed; pickups always fall at their own speed.
func (c *Clock) Advance(rs *RunState, hazardScale float64) TickResult {
	var res TickResult

	hazards := rs.Hazards[:0]
	for _, h := range rs.Hazards {
		h.Pos.Y += h.Speed * hazardScale
		if h.Pos.Y >= c.boundary {
			res.HazardsRetired++
			continue
		}
		hazards = append(hazards, h)
	}
	rs.Hazards = hazards

	pickups := rs.Pickups[:0]
	for _, p := range rs.Pickups {
		p.Pos.Y += p.Speed
		if p.Pos.Y >= c.boundary {
			res.PickupsRetired++
			continue
		}
		pickups = append(pickups, p)
	}
	rs.Pickups = pickups

	rs.Score += c.perTick
	rs.Difficulty = c.difficulty.Step(rs.Difficulty)
	rs.Ticks++

	return res
}
