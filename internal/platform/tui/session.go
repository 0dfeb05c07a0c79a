package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/asteroid-dodger/internal/config"
	"github.com/vovakirdan/asteroid-dodger/internal/sim"
	"github.com/vovakirdan/asteroid-dodger/internal/storage"
)

// SessionOptions describes the collaborators of one pilot's engine.
type SessionOptions struct {
	Game   config.DodgerConfig
	Store  *storage.Store // nil keeps best scores in memory only
	Pilot  string
	Seed   int64
	Logger *log.Logger
	Extra  []sim.Feedback // Additional receivers such as the sound manager
}

// NewEngine builds an engine wired to the store for best scores and run
// history. Without a store the best score lives only as long as the engine.
func NewEngine(opts SessionOptions) (*sim.Engine, error) {
	var keeper sim.ScoreKeeper = sim.NewMemoryScoreKeeper(0)
	feedback := sim.MultiFeedback{}
	if opts.Store != nil {
		keeper = storage.NewPilotKeeper(opts.Store, opts.Pilot)
		feedback = append(feedback, storage.NewRunHistory(opts.Store, opts.Pilot, opts.Seed))
	}
	feedback = append(feedback, opts.Extra...)

	engineOpts := []sim.Option{
		sim.WithSeed(opts.Seed),
		sim.WithScoreKeeper(keeper),
		sim.WithFeedback(feedback),
	}
	if opts.Logger != nil {
		engineOpts = append(engineOpts, sim.WithLogger(opts.Logger))
	}
	return sim.New(opts.Game, engineOpts...)
}
