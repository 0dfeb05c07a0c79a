package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/asteroid-dodger/internal/core"
	"github.com/vovakirdan/asteroid-dodger/internal/sim"
	"github.com/vovakirdan/asteroid-dodger/internal/storage"
)

// Soundtrack follows the game phase with background music and owns the
// mute toggle.
type Soundtrack interface {
	SetPhase(p sim.Phase)
	ToggleMute() bool
}

// GameModel is the Bubble Tea model for one pilot's session. It owns the
// engine, feeds it wall-clock time on every tick and translates keyboard and
// mouse input into engine commands.
type GameModel struct {
	engine    *sim.Engine
	screen    *core.Screen
	viewport  Viewport
	store     *storage.Store
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	logger    *log.Logger
	board     *ScoreboardModel // Non-nil while the leaderboard is open
	sound     Soundtrack       // nil without audio
	lastTick  time.Time
	gen       uint64
	quitting  bool
}

// NewGameModel creates a model around an engine. store may be nil, in which
// case the leaderboard stays empty.
func NewGameModel(engine *sim.Engine, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if logger == nil {
		logger = log.Default()
	}
	m := GameModel{
		engine:    engine,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		logger:    logger,
		gen:       uint64(time.Now().UnixNano()),
	}
	m.layout()
	return m
}

// WithSoundtrack returns the model with music that follows the engine phase.
func (m GameModel) WithSoundtrack(st Soundtrack) GameModel {
	m.sound = st
	m.syncSound()
	return m
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.FrameInterval(), m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m.handleTick(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.layout()
		if m.board != nil {
			return m.updateBoard(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.board != nil {
			return m.updateBoard(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.board == nil {
			m.handleMouse(msg)
		}
		return m, nil
	}

	return m, nil
}

// handleTick advances the engine by the wall-clock time since the last frame.
// The engine caps long gaps itself.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}
	if !m.lastTick.IsZero() {
		m.engine.Advance(msg.At.Sub(m.lastTick))
	}
	m.lastTick = msg.At
	m.syncSound()
	return m, tickCmd(m.config.FrameInterval(), m.gen)
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keyMapper.MapKey(msg)
	phase := m.engine.Phase()

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		d := action.Nudge()
		m.engine.NudgePlayer(d.X, d.Y)

	case core.ActionConfirm:
		if phase == sim.PhaseMenu {
			m.command("start", m.engine.Start)
		} else if phase == sim.PhaseGameOver {
			m.command("retry", m.engine.Retry)
		}

	case core.ActionRestart:
		if phase == sim.PhaseGameOver {
			m.command("retry", m.engine.Retry)
		}

	case core.ActionMenu:
		// The first press while playing pauses; the second abandons the run
		if phase == sim.PhasePlaying && !m.engine.Paused() {
			m.engine.TogglePause()
			break
		}
		m.command("menu", m.engine.Restart)

	case core.ActionFinish:
		if phase == sim.PhasePlaying {
			m.command("finish", m.engine.Finish)
		}

	case core.ActionPause:
		m.engine.TogglePause()

	case core.ActionScores:
		if phase != sim.PhasePlaying {
			board := NewScoreboardModel(m.store, m.config.Pilot, m.config.ScreenW, m.config.ScreenH)
			m.board = &board
		}

	case core.ActionMute:
		if m.sound != nil {
			m.logger.Debug("sound toggled", "muted", m.sound.ToggleMute())
		}
	}

	m.syncSound()
	return m, nil
}

// syncSound keeps the background track in step with the phase; game over
// can happen on any tick.
func (m GameModel) syncSound() {
	if m.sound != nil {
		m.sound.SetPhase(m.engine.Phase())
	}
}

// handleMouse moves the ship to the pointer while the left button is held.
func (m GameModel) handleMouse(msg tea.MouseMsg) {
	if msg.Button != tea.MouseButtonLeft {
		return
	}
	if msg.Action != tea.MouseActionPress && msg.Action != tea.MouseActionMotion {
		return
	}
	p := m.viewport.ToField(msg.X, msg.Y)
	m.engine.MovePlayer(p.X, p.Y)
}

func (m GameModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	board := next.(ScoreboardModel)
	switch {
	case board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case board.IsGoingBack():
		m.board = nil
		return m, nil
	}
	m.board = &board
	return m, cmd
}

// command runs an engine transition. Rejected transitions are expected from
// stray keys and only logged at debug level.
func (m GameModel) command(name string, fn func() error) {
	if err := fn(); err != nil {
		m.logger.Debug("command rejected", "command", name, "error", err)
	}
}

func (m *GameModel) layout() {
	cfg := m.engine.Config()
	m.viewport = FitViewport(m.config.ScreenW, m.config.ScreenH, hudRows, cfg.Field.Width, cfg.Field.Height)
}

// saveScreenshot saves the current frame as plain text.
func (m GameModel) saveScreenshot() {
	DrawSnapshot(m.screen, m.engine.Snapshot(), m.config.Pilot)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".dodger", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	name := fmt.Sprintf("dodger_%s.txt", time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
	}
}

// Engine returns the engine driven by the model.
func (m GameModel) Engine() *sim.Engine {
	return m.engine
}

// IsQuitting returns true if user requested to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// View renders the current frame.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}
	DrawSnapshot(m.screen, m.engine.Snapshot(), m.config.Pilot)
	return RenderScreen(m.screen)
}

// Run starts a local Bubble Tea program for the engine. sound may be nil.
func Run(engine *sim.Engine, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger, sound Soundtrack) error {
	m := NewGameModel(engine, store, cfg, logger)
	if sound != nil {
		m = m.WithSoundtrack(sound)
	}
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
