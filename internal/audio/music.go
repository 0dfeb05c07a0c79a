package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/asteroid-dodger/internal/sim"
)

// Track identifies a looping background tune.
type Track int

const (
	TrackNone    Track = iota // Silence
	TrackAmbient              // Space drone behind the menu and game-over screens
	TrackGame                 // Bass pulse under a run
)

// String returns the track name.
func (t Track) String() string {
	switch t {
	case TrackAmbient:
		return "ambient"
	case TrackGame:
		return "game"
	default:
		return "none"
	}
}

// TrackFor returns the tune that belongs to a phase.
func TrackFor(p sim.Phase) Track {
	if p == sim.PhasePlaying {
		return TrackGame
	}
	return TrackAmbient
}

var trackVolumes = map[Track]float64{
	TrackAmbient: 0.2,
	TrackGame:    0.3,
}

// gameBass is one bar of the run pulse, in Hz.
var gameBass = []float64{110, 110, 130.81, 110, 146.83, 110, 130.81, 98}

// BuildTrack renders one bar of the track and returns it looped forever.
// TrackNone yields nil.
func BuildTrack(t Track, cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	ms := time.Millisecond

	var bar beep.Streamer
	switch t {
	case TrackAmbient:
		// Two detuned drones swelling in and out over four seconds
		d := 4 * time.Second
		low := NewEnvelope(NewOscillator(55, d, WaveSine, rate), d, 1500*ms, 1500*ms, rate)
		fifth := NewEnvelope(NewOscillator(82.41, d, WaveSine, rate), d, 2000*ms, 1500*ms, rate)
		bar = beep.Take(rate.N(d), beep.Mix(newVolume(low, 0.6), newVolume(fifth, 0.4)))
	case TrackGame:
		notes := make([]beep.Streamer, 0, len(gameBass))
		for _, f := range gameBass {
			notes = append(notes, NewEnvelope(NewOscillator(f, 150*ms, WaveSquare, rate), 150*ms, 2*ms, 100*ms, rate))
		}
		bar = beep.Seq(notes...)
	default:
		return nil
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(newVolume(bar, trackVolumes[t]*cfg.MasterVolume))
	return beep.Loop(-1, buf.Streamer(0, buf.Len()))
}
