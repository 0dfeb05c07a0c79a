package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/asteroid-dodger/internal/sim"
)

// drain streams s to the end and returns the sample count.
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		total += n
		for j := 0; j < n; j++ {
			if buf[j][0] < -1.0001 || buf[j][0] > 1.0001 {
				t.Fatalf("sample %f out of range", buf[j][0])
			}
		}
		if !ok {
			return total
		}
	}
	t.Fatal("streamer never ended")
	return total
}

func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	tests := []struct {
		name string
		wave WaveType
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
		{"noise", WaveNoise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			osc := NewOscillator(440, 100*time.Millisecond, tt.wave, rate)
			if n := drain(t, osc); n != rate.N(100*time.Millisecond) {
				t.Errorf("streamed %d samples, want %d", n, rate.N(100*time.Millisecond))
			}
			if osc.Err() != nil {
				t.Errorf("Err() = %v", osc.Err())
			}
		})
	}
}

func TestSquareWaveValues(t *testing.T) {
	osc := NewOscillator(220, 50*time.Millisecond, WaveSquare, beep.SampleRate(44100))
	samples := make([][2]float64, 50)
	n, ok := osc.Stream(samples)
	if !ok || n != 50 {
		t.Fatalf("Stream() = %d, %v", n, ok)
	}
	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != -1.0 && v != 1.0 {
			t.Errorf("square sample %d = %f", i, v)
		}
	}
}

func TestEnvelopeCutsAndShapes(t *testing.T) {
	rate := beep.SampleRate(1000)
	// Source longer than the envelope
	src := NewOscillator(0, time.Second, WaveSquare, rate)
	env := NewEnvelope(src, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate)

	buf := make([][2]float64, 200)
	n, _ := env.Stream(buf)
	if n != 100 {
		t.Fatalf("envelope streamed %d samples, want 100", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("attack should start silent, got %f", buf[0][0])
	}
	if buf[50][0] != 1 {
		t.Errorf("sustain sample = %f, want 1", buf[50][0])
	}
	if buf[99][0] >= buf[85][0] {
		t.Errorf("release not fading: %f then %f", buf[85][0], buf[99][0])
	}
	if n, ok := env.Stream(buf); n != 0 || ok {
		t.Errorf("finished envelope streamed %d, %v", n, ok)
	}
}

func TestBuildEverySoundIsFinite(t *testing.T) {
	cfg := DefaultConfig()
	for s := Sound(0); s < soundCount; s++ {
		t.Run(s.String(), func(t *testing.T) {
			n := drain(t, Build(s, cfg))
			if n == 0 {
				t.Error("sound produced no samples")
			}
			if n > cfg.SampleRate {
				t.Errorf("sound lasts %d samples, longer than a second", n)
			}
		})
	}
}

func TestSoundManagerWithoutSpeaker(t *testing.T) {
	sm := NewSoundManager(DefaultConfig())

	var fb sim.Feedback = sm
	if err := fb.OnHazardHit(sim.HitEvent{Absorbed: true}); err != nil {
		t.Errorf("OnHazardHit() = %v", err)
	}
	fb.OnHazardHit(sim.HitEvent{LivesLeft: 2})
	fb.OnPickupCollected(sim.PickupSlow)
	fb.OnScoreMilestone(500)
	fb.OnGameOver(sim.GameOverEvent{Score: 10})

	for _, s := range []Sound{SoundShieldAbsorb, SoundCollision, SoundPowerUp, SoundScoreUp, SoundGameOver} {
		if got := sm.Played(s); got != 1 {
			t.Errorf("Played(%s) = %d, want 1", s, got)
		}
	}

	sm.Play(Sound(-1))
	sm.Play(soundCount)
	sm.Cleanup()
}

func TestTracksLoop(t *testing.T) {
	cfg := DefaultConfig()
	buf := make([][2]float64, 4096)
	for _, tr := range []Track{TrackAmbient, TrackGame} {
		t.Run(tr.String(), func(t *testing.T) {
			s := BuildTrack(tr, cfg)
			// Stream well past one bar of either track
			for i := 0; i < 100; i++ {
				if n, ok := s.Stream(buf); !ok || n != len(buf) {
					t.Fatalf("chunk %d: Stream() = %d, %v", i, n, ok)
				}
			}
		})
	}
	if BuildTrack(TrackNone, cfg) != nil {
		t.Error("TrackNone should build no streamer")
	}
}

func TestSoundManagerTrackAndMute(t *testing.T) {
	sm := NewSoundManager(DefaultConfig())
	if sm.track != TrackNone {
		t.Fatalf("initial track = %v", sm.track)
	}

	tests := []struct {
		phase sim.Phase
		want  Track
	}{
		{sim.PhaseMenu, TrackAmbient},
		{sim.PhasePlaying, TrackGame},
		{sim.PhasePlaying, TrackGame},
		{sim.PhaseGameOver, TrackAmbient},
	}
	for _, tt := range tests {
		sm.SetPhase(tt.phase)
		if got := sm.track; got != tt.want {
			t.Errorf("SetPhase(%v) track = %v, want %v", tt.phase, got, tt.want)
		}
	}

	if !sm.ToggleMute() || !sm.Muted() {
		t.Error("first toggle should mute")
	}
	sm.SetPhase(sim.PhasePlaying)
	if sm.track != TrackGame {
		t.Error("muted manager should still follow the phase")
	}
	if sm.ToggleMute() || sm.Muted() {
		t.Error("second toggle should unmute")
	}

	sm.Play(SoundPowerUp)
	if sm.Played(SoundPowerUp) != 1 {
		t.Errorf("Played(power-up) = %d", sm.Played(SoundPowerUp))
	}
}
