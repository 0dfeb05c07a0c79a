package sim

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/asteroid-dodger/internal/config"
)

func newTestSpawner(t *testing.T, cfg config.DodgerConfig, seed int64) *Spawner {
	t.Helper()
	s, err := NewSpawner(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewSpawner() failed: %v", err)
	}
	return s
}

func TestSpawnHazardRanges(t *testing.T) {
	cfg := config.DefaultDodgerConfig()
	s := newTestSpawner(t, cfg, 3)

	var lastID EntityID
	for i := 0; i < 1000; i++ {
		h := s.SpawnHazard()
		if h.ID <= lastID {
			t.Fatalf("id %d not increasing after %d", h.ID, lastID)
		}
		lastID = h.ID
		if h.Pos.X < 0 || h.Pos.X >= 360 {
			t.Errorf("x = %v, want [0, 360)", h.Pos.X)
		}
		if h.Pos.Y != -50 {
			t.Errorf("y = %v, want -50", h.Pos.Y)
		}
		if h.Speed < 2 || h.Speed >= 5 {
			t.Errorf("speed = %v, want [2, 5)", h.Speed)
		}
		if h.Size < 20 || h.Size >= 40 {
			t.Errorf("size = %v, want [20, 40)", h.Size)
		}
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	cfg := config.DefaultDodgerConfig()
	cfg.Pickups.SpawnChance = 0.5
	a := newTestSpawner(t, cfg, 99)
	b := newTestSpawner(t, cfg, 99)

	for i := 0; i < 200; i++ {
		if ha, hb := a.SpawnHazard(), b.SpawnHazard(); ha != hb {
			t.Fatalf("hazard %d differs: %+v vs %+v", i, ha, hb)
		}
		pa, oka := a.MaybeSpawnPickup()
		pb, okb := b.MaybeSpawnPickup()
		if oka != okb || pa != pb {
			t.Fatalf("pickup %d differs: %+v/%v vs %+v/%v", i, pa, oka, pb, okb)
		}
	}
}

func TestMaybeSpawnPickupChance(t *testing.T) {
	tests := []struct {
		name   string
		chance float64
		min    int
		max    int
	}{
		{"never", 0, 0, 0},
		{"always", 1, 1000, 1000},
		{"thirty percent", 0.3, 200, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultDodgerConfig()
			cfg.Pickups.SpawnChance = tt.chance
			s := newTestSpawner(t, cfg, 5)

			n := 0
			for i := 0; i < 1000; i++ {
				p, ok := s.MaybeSpawnPickup()
				if !ok {
					continue
				}
				n++
				if p.Pos.Y != -30 || p.Pos.X < 0 || p.Pos.X >= 370 {
					t.Errorf("pickup spawned at %+v", p.Pos)
				}
				if p.Speed != 3 || p.Radius != 15 {
					t.Errorf("pickup speed/radius = %v/%v, want 3/15", p.Speed, p.Radius)
				}
			}
			if n < tt.min || n > tt.max {
				t.Errorf("spawned %d pickups, want [%d, %d]", n, tt.min, tt.max)
			}
		})
	}
}

func TestPickupKindWeights(t *testing.T) {
	cfg := config.DefaultDodgerConfig()
	cfg.Pickups.SpawnChance = 1
	s := newTestSpawner(t, cfg, 11)

	counts := make(map[PickupKind]int)
	for i := 0; i < 3000; i++ {
		p, _ := s.MaybeSpawnPickup()
		counts[p.Kind]++
	}
	for k := PickupKind(0); k < PickupKindCount; k++ {
		if counts[k] < 800 || counts[k] > 1200 {
			t.Errorf("kind %s rolled %d times, want roughly 1000", k, counts[k])
		}
	}

	cfg.Pickups.Weights = map[string]int{"shield": 0, "slow": 1, "score": 0}
	s = newTestSpawner(t, cfg, 11)
	for i := 0; i < 100; i++ {
		if p, _ := s.MaybeSpawnPickup(); p.Kind != PickupSlow {
			t.Fatalf("kind = %s, want slow only", p.Kind)
		}
	}
}

func TestNewSpawnerErrors(t *testing.T) {
	cfg := config.DefaultDodgerConfig()
	if _, err := NewSpawner(cfg, nil); err == nil {
		t.Error("NewSpawner(nil rng) should fail")
	}

	cfg.Pickups.Weights = map[string]int{"shield": 0, "slow": 0, "score": 0}
	if _, err := NewSpawner(cfg, rand.New(rand.NewSource(1))); err == nil {
		t.Error("NewSpawner(all zero weights) should fail")
	}
}

func TestParsePickupKind(t *testing.T) {
	for k := PickupKind(0); k < PickupKindCount; k++ {
		got, err := ParsePickupKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParsePickupKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParsePickupKind("laser"); err == nil {
		t.Error("ParsePickupKind(laser) should fail")
	}
}

func TestParsePhase(t *testing.T) {
	for _, p := range []Phase{PhaseMenu, PhasePlaying, PhaseGameOver} {
		got, err := ParsePhase(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePhase(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParsePhase("paused"); err == nil {
		t.Error("ParsePhase(paused) should fail")
	}
}
