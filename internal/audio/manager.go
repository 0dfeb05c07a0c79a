package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/asteroid-dodger/internal/sim"
)

// SoundManager plays effects through the system speaker. Until Initialize
// succeeds every call is a silent no-op, so a machine without audio still
// runs the game.
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	played      [soundCount]int
	track       Track
	music       *beep.Ctrl // Looping track in the mixer, nil when silent
}

// NewSoundManager creates a sound manager.
func NewSoundManager(cfg Config) *SoundManager {
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.startMusic()
	return nil
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.music = nil

	// beep has no speaker Close; clearing the mixer leaves it silent
	sm.initialized = false
}

// SetMuted toggles output without releasing the speaker. Muting also stops
// the background track; unmuting resumes it from the top.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.muted == muted {
		return
	}
	sm.muted = muted
	if muted {
		sm.stopMusic()
	} else {
		sm.startMusic()
	}
}

// ToggleMute flips the mute state and returns the new one.
func (sm *SoundManager) ToggleMute() bool {
	muted := !sm.Muted()
	sm.SetMuted(muted)
	return muted
}

// Muted reports whether output is muted.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// SetTrack switches the background loop. Asking for the current track keeps
// it playing without a restart.
func (sm *SoundManager) SetTrack(t Track) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if t == sm.track {
		return
	}
	sm.stopMusic()
	sm.track = t
	sm.startMusic()
}

// SetPhase picks the background loop for an engine phase.
func (sm *SoundManager) SetPhase(p sim.Phase) {
	sm.SetTrack(TrackFor(p))
}

// startMusic adds the selected track to the mixer. Caller holds sm.mu.
func (sm *SoundManager) startMusic() {
	if !sm.initialized || sm.muted || sm.music != nil {
		return
	}
	loop := BuildTrack(sm.track, sm.cfg)
	if loop == nil {
		return
	}
	sm.music = &beep.Ctrl{Streamer: loop}
	speaker.Lock()
	sm.mixer.Add(sm.music)
	speaker.Unlock()
}

// stopMusic detaches the running track; the mixer drops a Ctrl with no
// streamer. Caller holds sm.mu.
func (sm *SoundManager) stopMusic() {
	if sm.music == nil {
		return
	}
	speaker.Lock()
	sm.music.Streamer = nil
	speaker.Unlock()
	sm.music = nil
}

// Play starts a sound on top of whatever is playing.
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if s < 0 || s >= soundCount {
		return
	}
	sm.played[s]++
	if !sm.initialized || sm.muted {
		return
	}

	streamer := Build(s, sm.cfg)
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// Played returns how many times a sound was requested.
func (sm *SoundManager) Played(s Sound) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if s < 0 || s >= soundCount {
		return 0
	}
	return sm.played[s]
}

// OnHazardHit implements sim.Feedback.
func (sm *SoundManager) OnHazardHit(ev sim.HitEvent) error {
	if ev.Absorbed {
		sm.Play(SoundShieldAbsorb)
	} else {
		sm.Play(SoundCollision)
	}
	return nil
}

// OnPickupCollected implements sim.Feedback.
func (sm *SoundManager) OnPickupCollected(sim.PickupKind) error {
	sm.Play(SoundPowerUp)
	return nil
}

// OnScoreMilestone implements sim.Feedback.
func (sm *SoundManager) OnScoreMilestone(int) error {
	sm.Play(SoundScoreUp)
	return nil
}

// OnGameOver implements sim.Feedback.
func (sm *SoundManager) OnGameOver(sim.GameOverEvent) error {
	sm.Play(SoundGameOver)
	return nil
}

var _ sim.Feedback = (*SoundManager)(nil)
