package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/asteroid-dodger/internal/audio"
	"github.com/vovakirdan/asteroid-dodger/internal/core"
	"github.com/vovakirdan/asteroid-dodger/internal/platform/tui"
	"github.com/vovakirdan/asteroid-dodger/internal/sim"
	"github.com/vovakirdan/asteroid-dodger/internal/storage"
)

var (
	flagMute    bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Mouse drag     - Move the ship to the pointer
  Arrows/WASD    - Nudge the ship
  Enter/Space    - Launch from the menu
  P              - Pause
  F              - Finish the run now
  R              - Retry after game over
  M/Esc          - Back to menu (Esc pauses first while playing)
  Tab            - Leaderboard
  V              - Toggle sound
  Ctrl+S         - Screenshot to ~/.dodger/screenshots
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Five lives, longer invulnerability, ramp from the base speed
  normal - Ramp starts slightly above the base speed
  hard   - Two lives, faster start, spawn rate grows with difficulty
  fixed  - No ramp, speed stays at the baseline

Examples:
  dodger play
  dodger play --difficulty easy --mute
  dodger play --config ./my-dodger.yaml --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects and music")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the screen is taken by the game)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	// Logs go to stderr until the game takes the screen
	bootLog := newLogger(os.Stderr, "dodger")

	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Pilot:    flagPilot,
	}
	rc.Seed = rc.ResolveSeed()

	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		if mkErr := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); mkErr != nil {
			return mkErr
		}
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return openErr
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, "dodger")

	// Scores are best-effort, the game works without them
	store, err := storage.Open(flagDBPath)
	if err != nil {
		bootLog.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var (
		extra      []sim.Feedback
		soundtrack tui.Soundtrack
	)
	if !flagMute {
		sound := audio.NewSoundManager(audio.DefaultConfig())
		if initErr := sound.Initialize(); initErr != nil {
			bootLog.Warn("audio unavailable, playing silently", "error", initErr)
		} else {
			defer sound.Cleanup()
			extra = append(extra, sound)
			soundtrack = sound
		}
	}

	engine, err := tui.NewEngine(tui.SessionOptions{
		Game:   gameCfg,
		Store:  store,
		Pilot:  rc.Pilot,
		Seed:   rc.Seed,
		Logger: logger,
		Extra:  extra,
	})
	if err != nil {
		return err
	}

	logger.Info("session started", "pilot", rc.Pilot, "seed", rc.Seed)
	return tui.Run(engine, store, rc, logger, soundtrack)
}
