// Package autopilot steers the ship for headless runs. It looks at a
// snapshot, finds the hazards about to reach the ship and nudges sideways
// away from the closest one, drifting toward pickups when nothing threatens.
package autopilot

import (
	"math"

	"github.com/vovakirdan/asteroid-dodger/internal/core"
	"github.com/vovakirdan/asteroid-dodger/internal/sim"
)

// Pilot holds the tuning of the dodging heuristic.
type Pilot struct {
	Lookahead float64 // How far above the ship hazards are considered
	Clearance float64 // Extra gap kept between ship and hazard edges
}

// New returns a pilot with defaults suited to the standard field.
func New() Pilot {
	return Pilot{Lookahead: 260, Clearance: 12}
}

// Decide returns the nudge to apply for the given snapshot, or ActionNone.
func (p Pilot) Decide(s sim.Snapshot) core.Action {
	if s.Phase != sim.PhasePlaying || s.Paused {
		return core.ActionNone
	}
	ship := s.Player

	var threat *sim.Hazard
	best := math.Inf(1)
	for i := range s.Hazards {
		h := &s.Hazards[i]
		dy := ship.Pos.Y - h.Pos.Y
		if dy < -(ship.Radius+h.Radius()) || dy > p.Lookahead {
			continue
		}
		gap := math.Abs(h.Pos.X-ship.Pos.X) - ship.Radius - h.Radius() - p.Clearance
		if gap >= 0 {
			continue
		}
		if dy < best {
			best = dy
			threat = h
		}
	}

	if threat != nil {
		return p.evade(s, *threat)
	}
	return p.seekPickup(s)
}

// evade moves away from the hazard, toward the side with more room when the
// hazard is straight above.
func (p Pilot) evade(s sim.Snapshot, h sim.Hazard) core.Action {
	x := s.Player.Pos.X
	room := s.Player.Radius * 2
	switch {
	case h.Pos.X > x && x > room:
		return core.ActionLeft
	case h.Pos.X < x && x < s.FieldW-room:
		return core.ActionRight
	case x < s.FieldW/2:
		return core.ActionRight
	default:
		return core.ActionLeft
	}
}

// seekPickup drifts toward the nearest pickup below the lookahead window.
func (p Pilot) seekPickup(s sim.Snapshot) core.Action {
	ship := s.Player
	nearest := math.Inf(1)
	target := ship.Pos.X
	for _, pk := range s.Pickups {
		if pk.Pos.Y > ship.Pos.Y {
			continue
		}
		if d := core.DistanceSquared(ship.Pos, pk.Pos); d < nearest {
			nearest = d
			target = pk.Pos.X
		}
	}

	switch {
	case target < ship.Pos.X-ship.Radius:
		return core.ActionLeft
	case target > ship.Pos.X+ship.Radius:
		return core.ActionRight
	default:
		return core.ActionNone
	}
}
