package replay

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/asteroid-dodger/internal/config"
	"github.com/vovakirdan/asteroid-dodger/internal/core"
	"github.com/vovakirdan/asteroid-dodger/internal/sim"
)

func TestRecordAndReadEngineRun(t *testing.T) {
	e, err := sim.New(config.DefaultDodgerConfig(), sim.WithSeed(5))
	if err != nil {
		t.Fatalf("sim.New() failed: %v", err)
	}
	e.Start()

	path := filepath.Join(t.TempDir(), "run.dreplay")
	rec, err := Create(path, Header{Seed: 5, Pilot: "ana", TickMS: 16, FieldW: 400, FieldH: 800})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	var want []sim.Snapshot
	for i := 0; i < 20; i++ {
		e.Advance(250 * time.Millisecond)
		s := e.Snapshot()
		want = append(want, s)
		if err := rec.Record(s); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}
	if rec.Frames() != 20 {
		t.Errorf("Frames() = %d, want 20", rec.Frames())
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	h, frames, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if h.Version != Version || h.Seed != 5 || h.Pilot != "ana" || h.CreatedAt.IsZero() {
		t.Errorf("header = %+v", h)
	}
	if len(frames) != len(want) {
		t.Fatalf("read %d frames, want %d", len(frames), len(want))
	}

	last, lastWant := frames[len(frames)-1], want[len(want)-1]
	if last.Tick != lastWant.Ticks || last.Score != lastWant.Score || last.Lives != lastWant.Lives {
		t.Errorf("last frame = %+v, want tick %d score %d", last, lastWant.Ticks, lastWant.Score)
	}
	if len(last.Hazards) != len(lastWant.Hazards) {
		t.Fatalf("hazards = %d, want %d", len(last.Hazards), len(lastWant.Hazards))
	}
	for i, hz := range last.Hazards {
		w := lastWant.Hazards[i]
		if hz.ID != uint64(w.ID) || hz.Y != w.Pos.Y || hz.R != w.Radius() {
			t.Errorf("hazard %d = %+v, want %+v", i, hz, w)
		}
	}
}

func TestFrameSnapshotRoundTrip(t *testing.T) {
	e, err := sim.New(config.DefaultDodgerConfig(), sim.WithSeed(9))
	if err != nil {
		t.Fatalf("sim.New() failed: %v", err)
	}
	e.Start()
	for i := 0; i < 12; i++ {
		e.Advance(250 * time.Millisecond)
	}
	want := e.Snapshot()
	want.Pickups = append(want.Pickups, sim.Pickup{ID: 77, Pos: core.Vec{X: 10, Y: 20}, Radius: 15, Kind: sim.PickupSlow})
	want.SlowLeft = 1500*time.Millisecond + 300*time.Microsecond

	h := Header{TickMS: 16, FieldW: want.FieldW, FieldH: want.FieldH}
	got := FrameFromSnapshot(want).Snapshot(h)

	if got.Phase != want.Phase || got.Score != want.Score || got.Lives != want.Lives || got.Ticks != want.Ticks {
		t.Errorf("run state = %+v, want %+v", got, want)
	}
	if got.Player != want.Player {
		t.Errorf("player = %+v, want %+v", got.Player, want.Player)
	}
	if got.FieldW != want.FieldW || got.SpeedMult != want.SpeedMult || got.SlowLeft != want.SlowLeft.Truncate(time.Millisecond) {
		t.Errorf("field %v mult %v slow %v", got.FieldW, got.SpeedMult, got.SlowLeft)
	}
	if len(got.Hazards) != len(want.Hazards) || len(got.Pickups) != len(want.Pickups) {
		t.Fatalf("entities = %d/%d, want %d/%d", len(got.Hazards), len(got.Pickups), len(want.Hazards), len(want.Pickups))
	}
	for i := range want.Hazards {
		if g, w := got.Hazards[i], want.Hazards[i]; g.ID != w.ID || g.Pos != w.Pos || g.Radius() != w.Radius() {
			t.Errorf("hazard %d = %+v, want %+v", i, g, w)
		}
	}
	for i := range want.Pickups {
		if g, w := got.Pickups[i], want.Pickups[i]; g.ID != w.ID || g.Kind != w.Kind || g.Radius != w.Radius {
			t.Errorf("pickup %d = %+v, want %+v", i, g, w)
		}
	}

	f := FrameFromSnapshot(want)
	f.Phase = "warp"
	f.Pickups = append(f.Pickups, Body{ID: 999, Kind: "laser"})
	odd := f.Snapshot(h)
	if odd.Phase != sim.PhasePlaying || len(odd.Pickups) != len(want.Pickups) {
		t.Errorf("unknown phase/kind: phase %v, %d pickups", odd.Phase, len(odd.Pickups))
	}
}

func TestReadRejectsBadInput(t *testing.T) {
	if _, _, err := Read(bytes.NewReader(nil)); err == nil {
		t.Error("Read(empty) should fail")
	}

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var headerOnly bytes.Buffer
	rec, err := NewRecorder(&headerOnly, Header{CreatedAt: at})
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}
	rec.Close()
	if _, frames, err := Read(bytes.NewReader(headerOnly.Bytes())); err != nil || len(frames) != 0 {
		t.Errorf("Read(header only) = %d frames, %v", len(frames), err)
	}

	var future bytes.Buffer
	if err := msgpack.NewEncoder(&future).Encode(Header{Version: Version + 1}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Read(&future); !errors.Is(err, ErrBadVersion) {
		t.Errorf("Read(future version) = %v, want ErrBadVersion", err)
	}

	var full bytes.Buffer
	rec, _ = NewRecorder(&full, Header{CreatedAt: at})
	rec.Record(sim.Snapshot{Ticks: 1, Phase: sim.PhasePlaying, Hazards: []sim.Hazard{{ID: 4, Size: 30}}})
	rec.Close()

	// Every cut inside the frame is an error; a cut on the boundary is a
	// shorter but valid replay.
	frameLen := full.Len() - headerOnly.Len()
	if frameLen <= 0 {
		t.Fatalf("frame took %d bytes", frameLen)
	}
	for cut := 1; cut < frameLen; cut++ {
		data := full.Bytes()[:full.Len()-cut]
		if _, _, err := Read(bytes.NewReader(data)); err == nil {
			t.Fatalf("Read() with %d bytes cut from the frame should fail", cut)
		}
	}
	if _, frames, err := Read(bytes.NewReader(full.Bytes())); err != nil || len(frames) != 1 {
		t.Errorf("Read(full) = %d frames, %v", len(frames), err)
	}
}
