package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/asteroid-dodger/internal/config"
	"github.com/vovakirdan/asteroid-dodger/internal/sim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndTopRuns(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Run{
		{Pilot: "ana", Score: 100, Ticks: 100},
		{Pilot: "ana", Score: 50, Ticks: 50, Forced: true},
		{Pilot: "bo", Score: 200, Ticks: 180, Seed: 42},
		{Pilot: "bo", Score: 75, Ticks: 75},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 200 || runs[1].Score != 100 || runs[2].Score != 75 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
	if runs[0].Pilot != "bo" || runs[0].Seed != 42 || runs[0].Ticks != 180 {
		t.Errorf("Run fields not round-tripped: %+v", runs[0])
	}

	anaRuns, err := store.PilotRuns("ana", 10)
	if err != nil {
		t.Fatalf("PilotRuns() failed: %v", err)
	}
	if len(anaRuns) != 2 {
		t.Fatalf("Expected 2 runs for ana, got %d", len(anaRuns))
	}
	// Most recent first
	if anaRuns[0].Score != 50 || !anaRuns[0].Forced {
		t.Errorf("Expected latest forced run first, got %+v", anaRuns[0])
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("ana")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for unknown pilot, got %d", best)
	}

	tests := []struct {
		score    int
		improved bool
		best     int
	}{
		{0, false, 0},
		{100, true, 100},
		{50, false, 100},
		{100, false, 100},
		{300, true, 300},
	}
	for _, tt := range tests {
		improved, err := store.SetBestScoreIfHigher("ana", tt.score)
		if err != nil {
			t.Fatalf("SetBestScoreIfHigher(%d) failed: %v", tt.score, err)
		}
		if improved != tt.improved {
			t.Errorf("SetBestScoreIfHigher(%d) = %v, want %v", tt.score, improved, tt.improved)
		}
		if best, _ := store.BestScore("ana"); best != tt.best {
			t.Errorf("after %d best = %d, want %d", tt.score, best, tt.best)
		}
	}

	// Other pilots are unaffected
	if best, _ := store.BestScore("bo"); best != 0 {
		t.Errorf("Expected bo best 0, got %d", best)
	}
}

func TestStoreTopPilots(t *testing.T) {
	store := openTestStore(t)
	store.SetBestScoreIfHigher("ana", 100)
	store.SetBestScoreIfHigher("bo", 300)
	store.SetBestScoreIfHigher("cy", 200)

	pilots, err := store.TopPilots(2)
	if err != nil {
		t.Fatalf("TopPilots() failed: %v", err)
	}
	if len(pilots) != 2 || pilots[0].Pilot != "bo" || pilots[1].Pilot != "cy" {
		t.Errorf("Unexpected leaderboard: %+v", pilots)
	}
}

func TestStoreStatsAndClear(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(Run{Pilot: "ana", Score: 100, Ticks: 100})
	store.SaveRun(Run{Pilot: "ana", Score: 300, Ticks: 250})
	store.SaveRun(Run{Pilot: "bo", Score: 20, Ticks: 20})
	store.SetBestScoreIfHigher("ana", 300)

	stats, err := store.Stats("ana")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.RunsCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 || stats.TotalTicks != 350 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	all, err := store.Stats("")
	if err != nil {
		t.Fatalf("Stats(all) failed: %v", err)
	}
	if all.RunsCount != 3 {
		t.Errorf("Expected 3 runs overall, got %d", all.RunsCount)
	}

	if err := store.ClearPilot("ana"); err != nil {
		t.Fatalf("ClearPilot() failed: %v", err)
	}
	if best, _ := store.BestScore("ana"); best != 0 {
		t.Errorf("Expected cleared best, got %d", best)
	}
	stats, _ = store.Stats("ana")
	if stats.RunsCount != 0 || stats.HighScore != 0 {
		t.Errorf("Expected empty stats after clear, got %+v", stats)
	}
	if all, _ := store.Stats(""); all.RunsCount != 1 {
		t.Error("Clearing ana should not affect bo")
	}
}

func TestEngineWithStoreCollaborators(t *testing.T) {
	store := openTestStore(t)
	store.SetBestScoreIfHigher("ana", 40)

	cfg := config.DefaultDodgerConfig()
	cfg.Hazards.SpawnIntervalMS = 3_600_000
	cfg.Pickups.SpawnIntervalMS = 3_600_000

	e, err := sim.New(cfg,
		sim.WithSeed(9),
		sim.WithScoreKeeper(NewPilotKeeper(store, "ana")),
		sim.WithFeedback(NewRunHistory(store, "ana", 9)),
	)
	if err != nil {
		t.Fatalf("sim.New() failed: %v", err)
	}
	if e.BestScore() != 40 {
		t.Errorf("engine best = %d, want 40 from store", e.BestScore())
	}

	e.Start()
	for i := 0; i < 60; i++ {
		e.Tick()
	}
	e.Finish()

	if best, _ := store.BestScore("ana"); best != 60 {
		t.Errorf("stored best = %d, want 60", best)
	}
	runs, _ := store.PilotRuns("ana", 10)
	if len(runs) != 1 || runs[0].Score != 60 || !runs[0].Forced || runs[0].Seed != 9 {
		t.Errorf("run history = %+v", runs)
	}
	if !e.Snapshot().NewBest {
		t.Error("NewBest not reported")
	}
}
