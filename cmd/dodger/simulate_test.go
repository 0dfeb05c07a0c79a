package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/asteroid-dodger/internal/config"
	"github.com/vovakirdan/asteroid-dodger/internal/replay"
	"github.com/vovakirdan/asteroid-dodger/internal/sim"
)

func TestSimulateIsDeterministic(t *testing.T) {
	cfg := config.DefaultDodgerConfig()

	a, err := simulate(cfg, 7, 2000, true, nil)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	b, err := simulate(cfg, 7, 2000, true, nil)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	if a.Final.Score != b.Final.Score || a.Final.Ticks != b.Final.Ticks || a.Final.Lives != b.Final.Lives {
		t.Errorf("same seed diverged: %+v vs %+v", a.Final, b.Final)
	}
	if len(a.Final.Hazards) != len(b.Final.Hazards) {
		t.Errorf("hazard counts differ: %d vs %d", len(a.Final.Hazards), len(b.Final.Hazards))
	}
	if a.Final.Ticks > 2000 {
		t.Errorf("ran %d ticks, limit was 2000", a.Final.Ticks)
	}
}

func TestSimulateStopsAtTickLimit(t *testing.T) {
	cfg := config.DefaultDodgerConfig()
	cfg.Player.Lives = 1000

	res, err := simulate(cfg, 3, 500, false, nil)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if res.Final.Phase != sim.PhasePlaying || res.Final.Ticks != 500 {
		t.Errorf("final = %s at %d ticks, want playing at 500", res.Final.Phase, res.Final.Ticks)
	}
	if res.Frames != 500 {
		t.Errorf("frames = %d, want 500", res.Frames)
	}
}

func TestSimulateRecordsReplay(t *testing.T) {
	cfg := config.DefaultDodgerConfig()
	path := filepath.Join(t.TempDir(), "run.dreplay")

	rec, err := replay.Create(path, replay.Header{Seed: 11, TickMS: cfg.Clock.TickMS})
	if err != nil {
		t.Fatalf("replay.Create() failed: %v", err)
	}
	res, err := simulate(cfg, 11, 300, true, rec)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	h, frames, err := replay.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if h.Seed != 11 {
		t.Errorf("header seed = %d, want 11", h.Seed)
	}
	if len(frames) != res.Frames {
		t.Fatalf("replay has %d frames, simulation ran %d", len(frames), res.Frames)
	}
	if last := frames[len(frames)-1]; last.Score != res.Final.Score || last.Tick != res.Final.Ticks {
		t.Errorf("last frame = %+v, want score %d tick %d", last, res.Final.Score, res.Final.Ticks)
	}
}

func TestLoadGameConfigDifficulty(t *testing.T) {
	oldConfig, oldDifficulty := flagConfig, flagDifficulty
	t.Cleanup(func() { flagConfig, flagDifficulty = oldConfig, oldDifficulty })

	flagConfig = filepath.Join(t.TempDir(), "dodger.yaml")
	if _, err := loadGameConfig(); err == nil {
		t.Error("missing --config file should fail")
	}

	flagConfig = ""
	flagDifficulty = "hard"
	cfg, err := loadGameConfig()
	if err != nil {
		t.Fatalf("loadGameConfig() failed: %v", err)
	}
	if cfg.Player.Lives != 2 || !cfg.Hazards.ScaleSpawnRate {
		t.Errorf("hard preset not applied: lives %d, scale %v", cfg.Player.Lives, cfg.Hazards.ScaleSpawnRate)
	}

	flagDifficulty = "impossible"
	if _, err := loadGameConfig(); err == nil {
		t.Error("unknown difficulty should fail")
	}
}

func TestSummarizeRecordedRun(t *testing.T) {
	cfg := config.DefaultDodgerConfig()

	var buf bytes.Buffer
	rec, err := replay.NewRecorder(&buf, replay.Header{Seed: 4, Pilot: "ana", TickMS: cfg.Clock.TickMS})
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}
	res, err := simulate(cfg, 4, 4000, false, rec)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	rec.Close()
	data := buf.Bytes()

	sum, err := summarizeReplay(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("summarizeReplay() failed: %v", err)
	}
	if sum.Frames != res.Frames || sum.Last.Tick != res.Final.Ticks || sum.Last.Score != res.Final.Score {
		t.Errorf("summary = %d frames, tick %d, score %d; want %d, %d, %d",
			sum.Frames, sum.Last.Tick, sum.Last.Score, res.Frames, res.Final.Ticks, res.Final.Score)
	}
	if want := cfg.Player.Lives - res.Final.Lives; sum.Hits != want {
		t.Errorf("hits = %d, want %d", sum.Hits, want)
	}
	if sum.Header.Pilot != "ana" || sum.PeakHazards == 0 {
		t.Errorf("header %+v, peak hazards %d", sum.Header, sum.PeakHazards)
	}

	var out strings.Builder
	printReplaySummary(&out, sum)
	for _, want := range []string{"pilot:      ana", fmt.Sprintf("score:      %d", res.Final.Score), "peak field:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("summary output missing %q:\n%s", want, out.String())
		}
	}

	if _, err := summarizeReplay(bytes.NewReader(data[:len(data)-2])); err == nil {
		t.Error("summarizeReplay() of a cut file should fail")
	}
}
