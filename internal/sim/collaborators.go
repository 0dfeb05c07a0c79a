package sim

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// ScoreKeeper persists the best score. Implementations may block briefly;
// failures are logged and never affect the run.
type ScoreKeeper interface {
	BestScore() (int, error)
	// SetBestScoreIfHigher stores score when it beats the recorded best and
	// reports whether it did.
	SetBestScoreIfHigher(score int) (bool, error)
}

// HitEvent describes a resolved hazard impact.
type HitEvent struct {
	HazardID  EntityID
	Absorbed  bool // The shield took the hit
	LivesLeft int
}

// GameOverEvent describes the end of a run.
type GameOverEvent struct {
	Score     int
	BestScore int
	NewBest   bool
	Forced    bool // Ended by Finish rather than by losing every life
	Ticks     int
}

// Feedback receives fire-and-forget notifications, typically to play sounds.
// Returned errors are logged and otherwise ignored.
type Feedback interface {
	OnHazardHit(ev HitEvent) error
	OnPickupCollected(kind PickupKind) error
	OnScoreMilestone(score int) error
	OnGameOver(ev GameOverEvent) error
}

// NopFeedback ignores every notification.
type NopFeedback struct{}

func (NopFeedback) OnHazardHit(HitEvent) error { return nil }
func (NopFeedback) OnPickupCollected(PickupKind) error { return nil }
func (NopFeedback) OnScoreMilestone(int) error { return nil }
func (NopFeedback) OnGameOver(GameOverEvent) error { return nil }

// MultiFeedback fans notifications out to several receivers. Every receiver
// is called even if an earlier one fails; the first error is returned.
type MultiFeedback []Feedback

func (m MultiFeedback) each(fn func(Feedback) error) error {
	var first error
	for _, f := range m {
		if err := fn(f); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m MultiFeedback) OnHazardHit(ev HitEvent) error {
	return m.each(func(f Feedback) error { return f.OnHazardHit(ev) })
}

func (m MultiFeedback) OnPickupCollected(kind PickupKind) error {
	return m.each(func(f Feedback) error { return f.OnPickupCollected(kind) })
}

func (m MultiFeedback) OnScoreMilestone(score int) error {
	return m.each(func(f Feedback) error { return f.OnScoreMilestone(score) })
}

func (m MultiFeedback) OnGameOver(ev GameOverEvent) error {
	return m.each(func(f Feedback) error { return f.OnGameOver(ev) })
}

// MemoryScoreKeeper keeps the best score in memory.
type MemoryScoreKeeper struct {
	mu   sync.Mutex
	best int
}

// NewMemoryScoreKeeper creates a keeper starting at best.
func NewMemoryScoreKeeper(best int) *MemoryScoreKeeper {
	return &MemoryScoreKeeper{best: best}
}

func (m *MemoryScoreKeeper) BestScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

func (m *MemoryScoreKeeper) SetBestScoreIfHigher(score int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score <= m.best {
		return false, nil
	}
	m.best = score
	return true, nil
}

// safeCall runs a collaborator call, turning panics into errors and logging
// any failure.
func safeCall(logger *log.Logger, event string, fn func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("collaborator panicked", "event", event, "error", fmt.Sprint(r))
			ok = false
		}
	}()
	if err := fn(); err != nil {
		logger.Warn("collaborator failed", "event", event, "error", err)
		return false
	}
	return true
}
