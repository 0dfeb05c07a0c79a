package sim

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/asteroid-dodger/internal/config"
	"github.com/vovakirdan/asteroid-dodger/internal/core"
)

// Spawner creates hazards and pickups. All randomness comes from the
// supplied source, so a seeded source yields a reproducible sequence.
type Spawner struct {
	rng     *rand.Rand
	width   float64
	hazards config.HazardConfig
	pickups config.PickupConfig

	kinds       []PickupKind
	weights     []int
	totalWeight int

	nextID EntityID
}

// NewSpawner creates a spawner for the given field and spawn settings.
// An empty weight table means every pickup kind is equally likely.
func NewSpawner(cfg config.DodgerConfig, rng *rand.Rand) (*Spawner, error) {
	if rng == nil {
		return nil, fmt.Errorf("sim: spawner needs a random source")
	}
	s := &Spawner{
		rng:     rng,
		width:   cfg.Field.Width,
		hazards: cfg.Hazards,
		pickups: cfg.Pickups,
	}

	for k := PickupKind(0); k < PickupKindCount; k++ {
		w := 1
		if len(cfg.Pickups.Weights) > 0 {
			w = cfg.Pickups.Weights[k.String()]
		}
		if w < 0 {
			return nil, fmt.Errorf("sim: negative weight for pickup %s", k)
		}
		if w == 0 {
			continue
		}
		s.kinds = append(s.kinds, k)
		s.weights = append(s.weights, w)
		s.totalWeight += w
	}
	if s.totalWeight == 0 {
		return nil, fmt.Errorf("sim: no pickup kind has a positive weight")
	}

	return s, nil
}

// SpawnHazard produces one hazard just above the visible top with a
// uniformly random x, speed and size.
func (s *Spawner) SpawnHazard() Hazard {
	h := s.hazards
	return Hazard{
		ID: s.newID(),
		Pos: core.Vec{
			X: s.rng.Float64() * (s.width - h.SpawnMargin),
			Y: h.SpawnY,
		},
		Speed: h.MinSpeed + s.rng.Float64()*(h.MaxSpeed-h.MinSpeed),
		Size:  h.MinSize + s.rng.Float64()*(h.MaxSize-h.MinSize),
	}
}

// MaybeSpawnPickup rolls the spawn chance and returns a pickup on success.
func (s *Spawner) MaybeSpawnPickup() (Pickup, bool) {
	if s.rng.Float64() >= s.pickups.SpawnChance {
		return Pickup{}, false
	}
	p := s.pickups
	return Pickup{
		ID: s.newID(),
		Pos: core.Vec{
			X: s.rng.Float64() * (s.width - p.SpawnMargin),
			Y: p.SpawnY,
		},
		Speed:  p.Speed,
		Radius: p.Radius,
		Kind:   s.rollKind(),
	}, true
}

// rollKind selects a pickup kind based on the weight table.
func (s *Spawner) rollKind() PickupKind {
	roll := s.rng.Intn(s.totalWeight)
	cumulative := 0
	for i, w := range s.weights {
		cumulative += w
		if roll < cumulative {
			return s.kinds[i]
		}
	}
	return s.kinds[len(s.kinds)-1]
}

func (s *Spawner) newID() EntityID {
	s.nextID++
	return s.nextID
}
