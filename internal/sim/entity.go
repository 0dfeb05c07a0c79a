// Package sim implements the Asteroid Dodger simulation engine: falling
// hazards and pickups, a fixed-tick clock, circle collision, timed effects and
// the menu/playing/game-over state machine. It has no UI dependencies.
package sim

import (
	"fmt"

	"github.com/vovakirdan/asteroid-dodger/internal/core"
)

// EntityID identifies a hazard or pickup. IDs are never reused by an engine,
// so removal by id cannot hit an entity spawned later.
type EntityID uint64

// PickupKind represents the power-up granted by a pickup.
type PickupKind int

const (
	PickupShield    PickupKind = iota // Absorbs the next hazard hit
	PickupSlow                        // Slows hazards for a while
	PickupScore                       // Instant score bonus
	PickupKindCount                   // Sentinel for counting kinds
)

// String returns the config name of the pickup kind.
func (k PickupKind) String() string {
	switch k {
	case PickupShield:
		return "shield"
	case PickupSlow:
		return "slow"
	case PickupScore:
		return "score"
	default:
		return "unknown"
	}
}

// Glyph returns the display character for a pickup kind.
func (k PickupKind) Glyph() rune {
	switch k {
	case PickupShield:
		return 'S'
	case PickupSlow:
		return '~'
	case PickupScore:
		return '$'
	default:
		return '?'
	}
}

// ParsePickupKind maps a config name to a pickup kind.
func ParsePickupKind(s string) (PickupKind, error) {
	for k := PickupKind(0); k < PickupKindCount; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("sim: unknown pickup kind %q", s)
}

// Hazard is a falling asteroid.
type Hazard struct {
	ID    EntityID
	Pos   core.Vec // Center position
	Speed float64  // Base descent per tick, before the speed multiplier
	Size  float64  // Diameter
}

// Radius returns the collision radius.
func (h Hazard) Radius() float64 {
	return h.Size / 2
}

// Pickup is a falling power-up.
type Pickup struct {
	ID     EntityID
	Pos    core.Vec
	Speed  float64 // Fixed descent per tick
	Radius float64
	Kind   PickupKind
}
