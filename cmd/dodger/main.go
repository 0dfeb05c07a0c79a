// dodger is a terminal Asteroid Dodger: steer a ship through falling rocks,
// grab power-ups and chase your best score.
//
// Usage:
//
//	dodger play              - Play in this terminal
//	dodger serve             - Start SSH server for remote play
//	dodger scores            - Show the leaderboard
//	dodger simulate          - Run the engine headless
//	dodger replay <file>     - Summarise or play back a recorded run
//	dodger config            - Print the effective game config
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible spawns
//	--db <path>           - Set database path (default: ~/.dodger/scores.db)
//	--pilot <name>        - Name to record scores under (default: $USER)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/asteroid-dodger/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagPilot      string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dodger",
	Short: "Asteroid Dodger - dodge falling rocks in your terminal",
	Long: `Asteroid Dodger is a terminal arcade game. Rocks fall from the top of the
field; steer your ship with the mouse or the arrow keys and survive as long as
you can. Shields absorb one hit, the hourglass slows the rocks and the coin is
worth bonus points.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  scores    - View the leaderboard
  simulate  - Run the engine headless with an autopilot
  replay    - Summarise or play back a recorded run
  config    - Print the effective game config

Examples:
  dodger play
  dodger play --difficulty hard
  dodger serve --ssh :2222
  dodger scores --runs
  dodger simulate --ticks 5000 --seed 42 --autopilot
  dodger replay run.dreplay --play`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dodger/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagPilot, "pilot", defaultPilot(), "Pilot name for best scores")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

func defaultPilot() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "guest"
}

// newLogger builds the command logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// loadGameConfig loads the game config from the --config search path and
// applies the --difficulty preset.
func loadGameConfig() (config.DodgerConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}
