package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/asteroid-dodger/internal/platform/tui"
	"github.com/vovakirdan/asteroid-dodger/internal/replay"
)

var flagReplayPlay bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Summarise or play back a recorded run",
	Long: `Read a replay written by 'dodger simulate --record'. By default the file is
streamed and summarised; with --play it is drawn in this terminal frame by
frame, the same way a live game is.

Playback controls:
  Space/P     - Pause
  Left/Right  - Step one frame
  +/-         - Change speed
  G           - Rewind
  Q/Esc       - Quit

Examples:
  dodger replay run.dreplay
  dodger replay run.dreplay --play`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayPlay, "play", false, "Play the replay in the terminal")
}

// ReplaySummary describes a recorded run.
type ReplaySummary struct {
	Header      replay.Header
	Frames      int
	Last        replay.Frame
	Hits        int // Frames on which a life was lost
	PeakHazards int
}

func runReplay(_ *cobra.Command, args []string) error {
	path := args[0]

	if flagReplayPlay {
		h, frames, err := replay.ReadFile(path)
		if err != nil {
			return err
		}
		width, height := 80, 24
		if w, ht, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, ht
		}
		return tui.RunReplay(h, frames, width, height)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sum, err := summarizeReplay(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	printReplaySummary(os.Stdout, sum)
	return nil
}

// summarizeReplay streams a replay without holding every frame in memory.
func summarizeReplay(r io.Reader) (ReplaySummary, error) {
	rd, err := replay.NewReader(r)
	if err != nil {
		return ReplaySummary{}, err
	}
	sum := ReplaySummary{Header: rd.Header()}
	for {
		f, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return sum, nil
		}
		if err != nil {
			return sum, err
		}
		if sum.Frames > 0 && f.Lives < sum.Last.Lives {
			sum.Hits++
		}
		sum.PeakHazards = max(sum.PeakHazards, len(f.Hazards))
		sum.Last = f
		sum.Frames++
	}
}

func printReplaySummary(w io.Writer, s ReplaySummary) {
	h := s.Header
	fmt.Fprintf(w, "pilot:      %s\n", h.Pilot)
	fmt.Fprintf(w, "seed:       %d\n", h.Seed)
	fmt.Fprintf(w, "recorded:   %s\n", h.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "field:      %.0fx%.0f, %dms ticks\n", h.FieldW, h.FieldH, h.TickMS)
	fmt.Fprintf(w, "frames:     %d\n", s.Frames)
	if s.Frames == 0 {
		return
	}
	f := s.Last
	fmt.Fprintf(w, "phase:      %s\n", f.Phase)
	fmt.Fprintf(w, "ticks:      %d (%s simulated)\n", f.Tick, time.Duration(f.Tick*h.TickMS)*time.Millisecond)
	fmt.Fprintf(w, "score:      %d\n", f.Score)
	fmt.Fprintf(w, "lives:      %d (%d hits)\n", f.Lives, s.Hits)
	fmt.Fprintf(w, "difficulty: %.3f\n", f.Difficulty)
	fmt.Fprintf(w, "peak field: %d hazards\n", s.PeakHazards)
}
