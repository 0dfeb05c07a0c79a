package sim

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/asteroid-dodger/internal/config"
	"github.com/vovakirdan/asteroid-dodger/internal/core"
)

// MaxCatchUp bounds how much simulation time one Advance call may run, so a
// stalled host does not replay a burst of ticks.
const MaxCatchUp = 250 * time.Millisecond

// ErrInvalidTransition is returned when a command is not allowed in the
// current phase.
var ErrInvalidTransition = errors.New("invalid phase transition")

// Engine is the game state machine. It owns the RunState and every timer that
// mutates it. It is not safe for concurrent use; the host drives it from one
// goroutine.
type Engine struct {
	cfg        config.DodgerConfig
	rng        *rand.Rand
	spawner    *Spawner
	clock      *Clock
	difficulty *config.DifficultyManager
	sched      *Scheduler

	state      RunState
	generation uint64
	paused     bool
	elapsed    time.Duration
	damageTick int // Tick of the last life-affecting hit, -1 if none
	milestone  int // Last score milestone announced

	best    int
	newBest bool

	keeper   ScoreKeeper
	feedback Feedback
	logger   *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for spawning.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithSeed seeds the random source used for spawning.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithScoreKeeper sets the best-score collaborator.
func WithScoreKeeper(k ScoreKeeper) Option {
	return func(e *Engine) { e.keeper = k }
}

// WithFeedback sets the notification collaborator.
func WithFeedback(f Feedback) Option {
	return func(e *Engine) { e.feedback = f }
}

// WithLogger sets the logger used for collaborator failures and transitions.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New validates cfg and creates an engine in the menu phase.
func New(cfg config.DodgerConfig, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	e := &Engine{
		cfg:        cfg,
		sched:      NewScheduler(),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		damageTick: -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.keeper == nil {
		e.keeper = NewMemoryScoreKeeper(0)
	}
	if e.feedback == nil {
		e.feedback = NopFeedback{}
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}

	spawner, err := NewSpawner(cfg, e.rng)
	if err != nil {
		return nil, err
	}
	e.spawner = spawner
	e.clock = NewClock(cfg, e.difficulty)

	e.state = e.freshState(PhaseMenu)
	e.loadBest()
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() config.DodgerConfig {
	return e.cfg
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.state.Phase
}

// Generation returns the current run generation. It changes every time a run
// starts or stops; callbacks carrying an older value are stale.
func (e *Engine) Generation() uint64 {
	return e.generation
}

// Paused reports whether the clock is frozen.
func (e *Engine) Paused() bool {
	return e.paused
}

// BestScore returns the best score known to the engine.
func (e *Engine) BestScore() int {
	return e.best
}

// Start begins a run from the menu.
func (e *Engine) Start() error {
	if e.state.Phase != PhaseMenu {
		return fmt.Errorf("sim: cannot start from %s: %w", e.state.Phase, ErrInvalidTransition)
	}
	e.beginRun()
	return nil
}

// Retry begins a new run straight from game-over.
func (e *Engine) Retry() error {
	if e.state.Phase != PhaseGameOver {
		return fmt.Errorf("sim: cannot retry from %s: %w", e.state.Phase, ErrInvalidTransition)
	}
	e.beginRun()
	return nil
}

// Restart returns to the menu, discarding the current run. From playing this
// is navigation away: the run is abandoned without recording a score.
func (e *Engine) Restart() error {
	switch e.state.Phase {
	case PhaseMenu:
		return nil
	case PhasePlaying:
		e.stopRun()
		e.logger.Debug("run abandoned", "score", e.state.Score)
	}
	e.state = e.freshState(PhaseMenu)
	e.newBest = false
	return nil
}

// Finish force-ends the current run as if the last life was lost.
func (e *Engine) Finish() error {
	if e.state.Phase != PhasePlaying {
		return fmt.Errorf("sim: cannot finish from %s: %w", e.state.Phase, ErrInvalidTransition)
	}
	e.gameOver(true)
	return nil
}

// TogglePause freezes or resumes the clock. Only meaningful while playing.
func (e *Engine) TogglePause() bool {
	if e.state.Phase != PhasePlaying {
		return false
	}
	e.paused = !e.paused
	return e.paused
}

// MovePlayer places the ship at a pointer position. The ship is lifted above
// the pointer by the configured amount and clamped into the field.
func (e *Engine) MovePlayer(x, y float64) {
	if e.state.Phase != PhasePlaying || e.paused {
		return
	}
	target := core.Vec{X: x, Y: y - e.cfg.Player.PointerLift}
	e.state.Player.Pos = e.playerBounds().Clamp(target)
}

// NudgePlayer moves the ship by whole keyboard steps.
func (e *Engine) NudgePlayer(dx, dy float64) {
	if e.state.Phase != PhasePlaying || e.paused {
		return
	}
	step := e.cfg.Player.KeyStep
	target := e.state.Player.Pos.Add(core.Vec{X: dx * step, Y: dy * step})
	e.state.Player.Pos = e.playerBounds().Clamp(target)
}

// Advance runs dt of simulation time, firing the tick, spawn and effect
// timers that come due. It does nothing outside playing or while paused.
// Returns the number of callbacks fired.
func (e *Engine) Advance(dt time.Duration) int {
	if e.state.Phase != PhasePlaying || e.paused || dt <= 0 {
		return 0
	}
	if dt > MaxCatchUp {
		dt = MaxCatchUp
	}
	start := e.sched.Now()
	fired := e.sched.Advance(dt)
	if e.state.Phase == PhasePlaying {
		e.elapsed += e.sched.Now() - start
	}
	return fired
}

// Tick runs one simulation step: advance and retire entities, score, ramp
// difficulty, then detect and resolve collisions. A no-op outside playing.
func (e *Engine) Tick() {
	if e.state.Phase != PhasePlaying || e.paused {
		return
	}
	e.clock.Advance(&e.state, e.speedMultiplier())

	hits := FindCollisions(e.state.Player.Circle(), e.state.Hazards, e.state.Pickups)
	e.applyCollisions(hits)

	if e.state.Phase == PhasePlaying {
		e.checkMilestones()
	}
}

// SpawnHazard injects a freshly spawned hazard. Used by the spawn timer.
func (e *Engine) SpawnHazard() (Hazard, bool) {
	if e.state.Phase != PhasePlaying {
		return Hazard{}, false
	}
	h := e.spawner.SpawnHazard()
	e.state.Hazards = append(e.state.Hazards, h)
	return h, true
}

// SpawnPickup rolls for a pickup and injects it on success.
func (e *Engine) SpawnPickup() (Pickup, bool) {
	if e.state.Phase != PhasePlaying {
		return Pickup{}, false
	}
	p, ok := e.spawner.MaybeSpawnPickup()
	if ok {
		e.state.Pickups = append(e.state.Pickups, p)
	}
	return p, ok
}

// Snapshot returns a copy of the run state for rendering.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Generation: e.generation,
		Phase:      e.state.Phase,
		Paused:     e.paused,
		Score:      e.state.Score,
		BestScore:  e.best,
		NewBest:    e.newBest,
		Lives:      e.state.Lives,
		Difficulty: e.state.Difficulty,
		SpeedMult:  e.speedMultiplier(),
		Ramp:       e.difficulty.Level(e.state.Difficulty),
		Ticks:      e.state.Ticks,
		Elapsed:    e.elapsed,
		Player:     e.state.Player,
		Hazards:    append([]Hazard(nil), e.state.Hazards...),
		Pickups:    append([]Pickup(nil), e.state.Pickups...),
		FieldW:     e.cfg.Field.Width,
		FieldH:     e.cfg.Field.Height,
	}
	if e.state.Phase == PhasePlaying {
		s.InvulnerableLeft, _ = e.sched.Pending(timerInvulnerability)
		s.ShieldLeft, _ = e.sched.Pending(timerShield)
		s.SlowLeft, _ = e.sched.Pending(timerSlow)
	}
	return s
}

// beginRun resets the run state and arms the clock and spawn timers.
func (e *Engine) beginRun() {
	e.stopRun()
	e.generation++
	e.state = e.freshState(PhasePlaying)
	e.elapsed = 0
	e.damageTick = -1
	e.milestone = 0
	e.newBest = false
	e.loadBest()

	e.sched.Every(timerTick, e.cfg.Clock.TickInterval(), e.guard(e.Tick))
	e.armHazardSpawn()
	e.sched.Every(timerPickupSpawn, e.cfg.Pickups.SpawnInterval(), e.guard(func() {
		e.SpawnPickup()
	}))

	e.logger.Debug("run started", "generation", e.generation, "lives", e.state.Lives)
}

// armHazardSpawn schedules the next hazard. The period is re-read each time
// so it can shrink with difficulty.
func (e *Engine) armHazardSpawn() {
	interval := e.cfg.Hazards.SpawnInterval()
	if e.cfg.Hazards.ScaleSpawnRate {
		interval = e.difficulty.SpawnInterval(interval, e.state.Difficulty)
	}
	e.sched.After(timerHazardSpawn, interval, e.guard(func() {
		e.SpawnHazard()
		e.armHazardSpawn()
	}))
}

// stopRun cancels every timer and invalidates callbacks captured for the
// current generation. It must run before any other mutation on the way out of
// playing.
func (e *Engine) stopRun() {
	e.sched.CancelAll()
	e.generation++
	e.paused = false
}

// guard wraps a timer callback so it only runs for the generation that
// scheduled it.
func (e *Engine) guard(fn func()) func() {
	gen := e.generation
	return func() {
		if gen != e.generation || e.state.Phase != PhasePlaying {
			return
		}
		fn()
	}
}

// gameOver moves playing to game-over exactly once and records the score.
func (e *Engine) gameOver(forced bool) {
	if e.state.Phase != PhasePlaying {
		return
	}
	e.stopRun()
	e.state.Phase = PhaseGameOver
	e.state.Player.Invulnerable = false
	e.state.Player.Shielded = false
	e.state.Slowed = false

	score := e.state.Score
	safeCall(e.logger, "set-best-score", func() error {
		improved, err := e.keeper.SetBestScoreIfHigher(score)
		if err != nil {
			return err
		}
		e.newBest = improved
		return nil
	})
	if score > e.best {
		e.best = score
	}

	ev := GameOverEvent{
		Score:     score,
		BestScore: e.best,
		NewBest:   e.newBest,
		Forced:    forced,
		Ticks:     e.state.Ticks,
	}
	safeCall(e.logger, "game-over", func() error { return e.feedback.OnGameOver(ev) })
	e.logger.Debug("run ended", "score", score, "best", e.best, "new_best", e.newBest, "forced", forced)
}

func (e *Engine) loadBest() {
	safeCall(e.logger, "best-score", func() error {
		best, err := e.keeper.BestScore()
		if err != nil {
			return err
		}
		e.best = best
		return nil
	})
}

// checkMilestones notifies every milestone the score has passed since the
// last check, whether reached by ticks or by a bonus.
func (e *Engine) checkMilestones() {
	every := e.cfg.Scoring.MilestoneEvery
	if every <= 0 {
		return
	}
	for m := e.milestone + every; m <= e.state.Score; m += every {
		e.milestone = m
		safeCall(e.logger, "score-milestone", func() error { return e.feedback.OnScoreMilestone(m) })
	}
}

func (e *Engine) freshState(phase Phase) RunState {
	f := e.cfg.Field
	return RunState{
		Phase:      phase,
		Lives:      e.cfg.Player.Lives,
		Difficulty: e.difficulty.Baseline(),
		Player: PlayerState{
			Pos:    core.Vec{X: f.Width / 2, Y: f.Height - e.cfg.Player.StartOffsetY},
			Radius: e.cfg.Player.Radius,
		},
	}
}

func (e *Engine) playerBounds() core.Bounds {
	p := e.cfg.Player
	return core.Bounds{
		MinX: p.MarginX,
		MinY: p.MarginY,
		MaxX: e.cfg.Field.Width - p.MarginX,
		MaxY: e.cfg.Field.Height - p.MarginY,
	}
}
