package sim

import (
	"fmt"
	"time"

	"github.com/vovakirdan/asteroid-dodger/internal/core"
)

// Phase is the coarse state of a run.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// ParsePhase maps a phase name back to its Phase.
func ParsePhase(s string) (Phase, error) {
	for p := PhaseMenu; p <= PhaseGameOver; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("sim: unknown phase %q", s)
}

// PlayerState is the ship. Its position is written by input only.
type PlayerState struct {
	Pos          core.Vec
	Radius       float64
	Invulnerable bool
	Shielded     bool
}

// Circle returns the collision shape of the ship.
func (p PlayerState) Circle() core.Circle {
	return core.Circle{Center: p.Pos, Radius: p.Radius}
}

// RunState holds everything that belongs to one run. The Engine is its only
// owner; the clock and resolver mutate it in place.
type RunState struct {
	Phase      Phase
	Score      int
	Lives      int
	Difficulty float64 // Ramp multiplier, capped by config
	Slowed     bool    // Slow pickup is active
	Ticks      int     // Simulation ticks since the run started
	Player     PlayerState
	Hazards    []Hazard
	Pickups    []Pickup
}

// removeHazard drops the hazard with the given id. Returns false if it is
// already gone.
func (rs *RunState) removeHazard(id EntityID) bool {
	for i := range rs.Hazards {
		if rs.Hazards[i].ID == id {
			rs.Hazards = append(rs.Hazards[:i], rs.Hazards[i+1:]...)
			return true
		}
	}
	return false
}

// removeHazards drops every hazard whose id is in ids in a single pass.
func (rs *RunState) removeHazards(ids []EntityID) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[EntityID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := rs.Hazards[:0]
	for _, h := range rs.Hazards {
		if _, ok := drop[h.ID]; !ok {
			kept = append(kept, h)
		}
	}
	removed := len(rs.Hazards) - len(kept)
	rs.Hazards = kept
	return removed
}

// takePickup removes and returns the pickup with the given id.
func (rs *RunState) takePickup(id EntityID) (Pickup, bool) {
	for i, p := range rs.Pickups {
		if p.ID == id {
			rs.Pickups = append(rs.Pickups[:i], rs.Pickups[i+1:]...)
			return p, true
		}
	}
	return Pickup{}, false
}

// Snapshot is a read-only copy of the run for rendering and recording.
// Mutating it has no effect on the engine.
type Snapshot struct {
	Generation uint64
	Phase      Phase
	Paused     bool
	Score      int
	BestScore  int
	NewBest    bool // Set on game-over when the run beat the recorded best
	Lives      int
	Difficulty float64
	SpeedMult  float64 // Effective hazard speed multiplier
	Ramp       float64 // Progress along the difficulty ramp, 0 to 1
	Ticks      int
	Elapsed    time.Duration // Simulation time spent playing

	Player  PlayerState
	Hazards []Hazard
	Pickups []Pickup

	// Time left on each active effect; zero when inactive.
	InvulnerableLeft time.Duration
	ShieldLeft       time.Duration
	SlowLeft         time.Duration

	FieldW, FieldH float64
}
