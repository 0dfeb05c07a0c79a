package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/asteroid-dodger/internal/platform/tui"
	"github.com/vovakirdan/asteroid-dodger/internal/storage"
)

var (
	flagScoresRuns        bool
	flagScoresLimit       int
	flagScoresInteractive bool
	flagScoresReset       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best pilots, or the best individual runs with --runs.

Runs ended early with F are marked with *.

Examples:
  dodger scores
  dodger scores --runs --limit 20
  dodger scores --pilot ana          # Stats for one pilot
  dodger scores -i                   # Interactive leaderboard
  dodger scores --pilot ana --reset  # Forget a pilot's runs and best`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresRuns, "runs", false, "List individual runs instead of pilot bests")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Open the interactive leaderboard")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Delete the runs and best score of --pilot")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	pilotSet := cmd.Flags().Changed("pilot")

	switch {
	case flagScoresReset:
		if !pilotSet {
			return fmt.Errorf("--reset needs an explicit --pilot")
		}
		if err := store.ClearPilot(flagPilot); err != nil {
			return err
		}
		fmt.Printf("Cleared runs and best score of %s\n", flagPilot)
		return nil

	case flagScoresInteractive:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, flagPilot, width, height)

	case flagScoresRuns:
		var runs []storage.Run
		if pilotSet {
			runs, err = store.PilotRuns(flagPilot, flagScoresLimit)
		} else {
			runs, err = store.TopRuns(flagScoresLimit)
		}
		if err != nil {
			return err
		}
		printRuns(runs)

	default:
		pilots, err := store.TopPilots(flagScoresLimit)
		if err != nil {
			return err
		}
		printPilots(pilots)
	}

	if pilotSet {
		stats, err := store.Stats(flagPilot)
		if err != nil {
			return err
		}
		printStats(stats)
	}
	return nil
}

func printPilots(pilots []storage.PilotBest) {
	fmt.Println("High Scores - Pilots")
	fmt.Println()

	if len(pilots) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dodger play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "Rank", "Pilot", "Best", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "----", "-----", "----", "----")
	for i, p := range pilots {
		fmt.Printf("  %-4d  %-16s  %-8d  %s\n", i+1, p.Pilot, p.Score, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func printRuns(runs []storage.Run) {
	fmt.Println("High Scores - Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %-7s  %s\n", "Rank", "Pilot", "Score", "Ticks", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-7s  %s\n", "----", "-----", "-----", "-----", "----")
	for i, r := range runs {
		score := fmt.Sprintf("%d", r.Score)
		if r.Forced {
			score += "*"
		}
		fmt.Printf("  %-4d  %-16s  %-8s  %-7d  %s\n", i+1, r.Pilot, score, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printStats(s *storage.Stats) {
	fmt.Println()
	if s.RunsCount == 0 {
		fmt.Printf("%s has no runs yet.\n", s.Pilot)
		return
	}
	fmt.Printf("%s: %d runs, best %d, average %.0f, %d ticks flown, last played %s\n",
		s.Pilot, s.RunsCount, s.HighScore, s.AvgScore, s.TotalTicks, s.LastPlayed.Format("2006-01-02 15:04"))
}
