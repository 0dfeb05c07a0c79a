package sim

import (
	"errors"
	"testing"

	"github.com/vovakirdan/asteroid-dodger/internal/config"
	"github.com/vovakirdan/asteroid-dodger/internal/core"
)

// quietConfig returns the default config with spawn timers pushed out of
// reach, so tests control every entity.
func quietConfig() config.DodgerConfig {
	cfg := config.DefaultDodgerConfig()
	cfg.Hazards.SpawnIntervalMS = 3_600_000
	cfg.Pickups.SpawnIntervalMS = 3_600_000
	return cfg
}

func newTestEngine(t *testing.T, cfg config.DodgerConfig, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithSeed(1)}, opts...)
	e, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

func startedEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e := newTestEngine(t, quietConfig(), opts...)
	if err := e.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return e
}

// placeHazard adds a motionless hazard at pos.
func placeHazard(e *Engine, pos core.Vec, size float64) EntityID {
	h := Hazard{ID: e.spawner.newID(), Pos: pos, Size: size}
	e.state.Hazards = append(e.state.Hazards, h)
	return h.ID
}

// placePickup adds a motionless pickup at pos.
func placePickup(e *Engine, pos core.Vec, kind PickupKind) EntityID {
	p := Pickup{ID: e.spawner.newID(), Pos: pos, Radius: e.cfg.Pickups.Radius, Kind: kind}
	e.state.Pickups = append(e.state.Pickups, p)
	return p.ID
}

// recordingFeedback records every notification.
type recordingFeedback struct {
	hits       []HitEvent
	pickups    []PickupKind
	milestones []int
	gameOvers  []GameOverEvent
}

func (r *recordingFeedback) OnHazardHit(ev HitEvent) error {
	r.hits = append(r.hits, ev)
	return nil
}

func (r *recordingFeedback) OnPickupCollected(kind PickupKind) error {
	r.pickups = append(r.pickups, kind)
	return nil
}

func (r *recordingFeedback) OnScoreMilestone(score int) error {
	r.milestones = append(r.milestones, score)
	return nil
}

func (r *recordingFeedback) OnGameOver(ev GameOverEvent) error {
	r.gameOvers = append(r.gameOvers, ev)
	return nil
}

// brokenFeedback fails or panics on every notification.
type brokenFeedback struct{}

func (brokenFeedback) OnHazardHit(HitEvent) error { panic("speaker on fire") }
func (brokenFeedback) OnPickupCollected(PickupKind) error { return errors.New("no audio device") }
func (brokenFeedback) OnScoreMilestone(int) error { panic("boom") }
func (brokenFeedback) OnGameOver(GameOverEvent) error { return errors.New("no audio device") }

// brokenKeeper fails every persistence call.
type brokenKeeper struct{}

func (brokenKeeper) BestScore() (int, error) { return 0, errors.New("disk gone") }
func (brokenKeeper) SetBestScoreIfHigher(int) (bool, error) {
	return false, errors.New("disk gone")
}
