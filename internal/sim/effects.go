package sim

import "math"

// HitOutcome describes how a hazard impact was resolved.
type HitOutcome int

const (
	HitIgnored  HitOutcome = iota // No effect on lives or shield
	HitAbsorbed                   // Shield consumed
	HitDamaged                    // Life lost, invulnerability granted
	HitFatal                      // Last life lost
)

// speedMultiplier returns the factor applied to hazard speed this tick.
func (e *Engine) speedMultiplier() float64 {
	m := e.state.Difficulty
	if e.state.Slowed {
		m = math.Max(e.cfg.Effects.MinSpeedMultiplier, m*e.cfg.Effects.SlowFactor)
	}
	return m
}

// applyCollisions resolves one tick's hits. Hazards pass through an
// invulnerable ship. Otherwise only the first hazard hit can cost a life or
// the shield; every other overlapping hazard is removed without effect.
func (e *Engine) applyCollisions(c Collisions) {
	if c.Empty() {
		return
	}
	for _, id := range c.PickupHits {
		e.ResolvePickup(id)
	}

	if len(c.HazardHits) == 0 || e.state.Player.Invulnerable {
		return
	}
	e.state.removeHazards(c.HazardHits[1:])
	e.ResolveHazardHit(c.HazardHits[0])
}

// ResolveHazardHit applies an impact from the hazard with the given id and
// removes it. Resolving an id that is already gone is a no-op, and at most one
// impact per tick changes lives or the shield.
func (e *Engine) ResolveHazardHit(id EntityID) HitOutcome {
	if e.state.Phase != PhasePlaying || e.state.Player.Invulnerable {
		return HitIgnored
	}
	if !e.state.removeHazard(id) {
		return HitIgnored
	}
	if e.damageTick == e.state.Ticks {
		return HitIgnored
	}
	e.damageTick = e.state.Ticks

	p := &e.state.Player
	if p.Shielded {
		p.Shielded = false
		e.sched.Cancel(timerShield)
		e.notifyHit(HitEvent{HazardID: id, Absorbed: true, LivesLeft: e.state.Lives})
		return HitAbsorbed
	}

	e.state.Lives--
	e.notifyHit(HitEvent{HazardID: id, LivesLeft: e.state.Lives})
	if e.state.Lives <= 0 {
		e.state.Lives = 0
		e.gameOver(false)
		return HitFatal
	}

	p.Invulnerable = true
	e.sched.After(timerInvulnerability, e.cfg.Effects.Invulnerability(), e.guard(func() {
		e.state.Player.Invulnerable = false
	}))
	return HitDamaged
}

// ResolvePickup collects the pickup with the given id and applies its effect.
// Returns false if the pickup is already gone.
func (e *Engine) ResolvePickup(id EntityID) bool {
	if e.state.Phase != PhasePlaying {
		return false
	}
	p, ok := e.state.takePickup(id)
	if !ok {
		return false
	}
	e.applyPickup(p.Kind)
	safeCall(e.logger, "pickup", func() error { return e.feedback.OnPickupCollected(p.Kind) })
	return true
}

// applyPickup grants a pickup effect. Timed effects re-arm their single
// reversion timer, so a second pickup of the same kind restarts the window
// instead of stacking.
func (e *Engine) applyPickup(kind PickupKind) {
	fx := e.cfg.Effects
	switch kind {
	case PickupShield:
		e.state.Player.Shielded = true
		e.sched.After(timerShield, fx.Shield(), e.guard(func() {
			e.state.Player.Shielded = false
		}))
	case PickupSlow:
		e.state.Slowed = true
		e.sched.After(timerSlow, fx.Slow(), e.guard(func() {
			e.state.Slowed = false
		}))
	case PickupScore:
		e.state.Score += fx.ScoreBonus
		e.checkMilestones()
	}
}

func (e *Engine) notifyHit(ev HitEvent) {
	safeCall(e.logger, "hazard-hit", func() error { return e.feedback.OnHazardHit(ev) })
}
