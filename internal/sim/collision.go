package sim

import "github.com/vovakirdan/asteroid-dodger/internal/core"

// Collisions lists the entities overlapping the player, in entity order.
type Collisions struct {
	HazardHits []EntityID
	PickupHits []EntityID
}

// Empty reports whether nothing was hit.
func (c Collisions) Empty() bool {
	return len(c.HazardHits) == 0 && len(c.PickupHits) == 0
}

// FindCollisions tests the player circle against every hazard and pickup.
// It only reads its arguments.
func FindCollisions(player core.Circle, hazards []Hazard, pickups []Pickup) Collisions {
	var c Collisions
	for _, h := range hazards {
		if core.CirclesOverlap(player.Center, player.Radius, h.Pos, h.Radius()) {
			c.HazardHits = append(c.HazardHits, h.ID)
		}
	}
	for _, p := range pickups {
		if core.CirclesOverlap(player.Center, player.Radius, p.Pos, p.Radius) {
			c.PickupHits = append(c.PickupHits, p.ID)
		}
	}
	return c
}
