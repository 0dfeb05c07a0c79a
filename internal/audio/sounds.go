package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Sound identifies one synthesised effect.
type Sound int

const (
	SoundCollision    Sound = iota // Hull hit, life lost
	SoundShieldAbsorb              // Shield took the hit
	SoundPowerUp                   // Pickup collected
	SoundScoreUp                   // Score milestone
	SoundGameOver                  // Run ended
	soundCount
)

// String returns the sound name.
func (s Sound) String() string {
	switch s {
	case SoundCollision:
		return "collision"
	case SoundShieldAbsorb:
		return "shield-absorb"
	case SoundPowerUp:
		return "power-up"
	case SoundScoreUp:
		return "score-up"
	case SoundGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Config holds mixer settings.
type Config struct {
	SampleRate   int
	MasterVolume float64
	Volumes      map[Sound]float64
}

// DefaultConfig returns the default audio settings. Relative volumes follow
// how loud each cue should sit against the others.
func DefaultConfig() Config {
	return Config{
		SampleRate:   44100,
		MasterVolume: 0.6,
		Volumes: map[Sound]float64{
			SoundCollision:    0.8,
			SoundShieldAbsorb: 0.6,
			SoundPowerUp:      0.6,
			SoundScoreUp:      0.6,
			SoundGameOver:     0.7,
		},
	}
}

func (c Config) volume(s Sound) float64 {
	v, ok := c.Volumes[s]
	if !ok {
		v = 1
	}
	return v * c.MasterVolume
}

// Build returns a fresh finite streamer for the sound.
func Build(s Sound, cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	ms := time.Millisecond

	var out beep.Streamer
	switch s {
	case SoundCollision:
		// Noise burst over a falling saw rumble
		noise := NewEnvelope(NewOscillator(0, 250*ms, WaveNoise, rate), 250*ms, 2*ms, 200*ms, rate)
		rumble := NewEnvelope(NewSweep(180, 60, 300*ms, WaveSaw, rate), 300*ms, 5*ms, 250*ms, rate)
		out = beep.Mix(newVolume(noise, 0.5), newVolume(rumble, 0.5))
	case SoundShieldAbsorb:
		out = NewEnvelope(NewSweep(1200, 500, 180*ms, WaveSine, rate), 180*ms, 5*ms, 120*ms, rate)
	case SoundPowerUp:
		out = NewEnvelope(NewSweep(440, 1320, 200*ms, WaveSquare, rate), 200*ms, 5*ms, 80*ms, rate)
	case SoundScoreUp:
		n1 := NewEnvelope(NewOscillator(987.77, 80*ms, WaveSquare, rate), 80*ms, 2*ms, 20*ms, rate)
		n2 := NewEnvelope(NewOscillator(1318.51, 160*ms, WaveSquare, rate), 160*ms, 2*ms, 120*ms, rate)
		out = beep.Seq(n1, n2)
	case SoundGameOver:
		var notes []beep.Streamer
		for _, f := range []float64{392, 330, 262} {
			notes = append(notes, NewEnvelope(NewOscillator(f, 220*ms, WaveSaw, rate), 220*ms, 5*ms, 150*ms, rate))
		}
		out = beep.Seq(notes...)
	default:
		return beep.Silence(0)
	}

	return newVolume(out, cfg.volume(s))
}
