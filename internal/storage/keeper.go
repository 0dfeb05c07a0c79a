package storage

import (
	"github.com/vovakirdan/asteroid-dodger/internal/sim"
)

// PilotKeeper adapts the store to the engine's best-score collaborator for a
// single pilot.
type PilotKeeper struct {
	store *Store
	pilot string
}

// NewPilotKeeper creates a keeper that reads and writes pilot's best score.
func NewPilotKeeper(store *Store, pilot string) *PilotKeeper {
	return &PilotKeeper{store: store, pilot: pilot}
}

// BestScore implements sim.ScoreKeeper.
func (k *PilotKeeper) BestScore() (int, error) {
	return k.store.BestScore(k.pilot)
}

// SetBestScoreIfHigher implements sim.ScoreKeeper.
func (k *PilotKeeper) SetBestScoreIfHigher(score int) (bool, error) {
	return k.store.SetBestScoreIfHigher(k.pilot, score)
}

// RunHistory records every finished run. It only listens for game over.
type RunHistory struct {
	sim.NopFeedback
	store *Store
	pilot string
	seed  int64
}

// NewRunHistory creates a feedback receiver that saves runs for pilot.
func NewRunHistory(store *Store, pilot string, seed int64) *RunHistory {
	return &RunHistory{store: store, pilot: pilot, seed: seed}
}

// OnGameOver implements sim.Feedback.
func (h *RunHistory) OnGameOver(ev sim.GameOverEvent) error {
	_, err := h.store.SaveRun(Run{
		Pilot:  h.pilot,
		Score:  ev.Score,
		Ticks:  ev.Ticks,
		Forced: ev.Forced,
		Seed:   h.seed,
	})
	return err
}

// Ensure the adapters satisfy the engine's collaborator interfaces
var (
	_ sim.ScoreKeeper = (*PilotKeeper)(nil)
	_ sim.Feedback    = (*RunHistory)(nil)
)
