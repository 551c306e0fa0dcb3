// Package audio plays the catcher's sound effects. Audio is optional:
// every Play method is a no-op until Initialize succeeds.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/pose-catcher/internal/games/catcher"
)

const (
	sampleRate              = beep.SampleRate(48000)
	speakerBufferDurationMs = 100
	masterGain              = 0.3
)

// Collect: bright sine chirp C6 -> E6.
const (
	collectStartHz   = 523.25
	collectEndHz     = 659.25
	collectSweep     = 100 * time.Millisecond
	collectDuration  = 300 * time.Millisecond
	collectAmplitude = 1.0
)

// Hazard: falling sawtooth rumble.
const (
	hazardStartHz   = 150.0
	hazardEndHz     = 40.0
	hazardSweep     = 500 * time.Millisecond
	hazardDuration  = 800 * time.Millisecond
	hazardAmplitude = 1.0
)

// SoundManager plays effects for session events.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *beep.Ctrl
	initialized bool
	muted       bool
}

var _ catcher.Subscriber = (*SoundManager)(nil)

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker. Fails on machines without an audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*speakerBufferDurationMs))
	if err != nil {
		return err
	}

	sm.volume = &beep.Ctrl{Streamer: newVolume(sm.mixer, masterGain)}
	speaker.Play(sm.volume)
	sm.initialized = true
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
	sm.volume.Paused = true
	sm.initialized = false
}

// Toggle mutes or unmutes effects and returns true when sound is on.
func (sm *SoundManager) Toggle() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return !sm.muted
}

// Enabled reports whether effects are audible.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized && !sm.muted
}

// HandleEvent plays the effect for collect and hazard events.
func (sm *SoundManager) HandleEvent(e catcher.Event) error {
	switch e.Kind {
	case catcher.EventCollect:
		sm.PlayCollect()
	case catcher.EventHazard:
		sm.PlayHazard()
	}
	return nil
}

// PlayCollect plays the catch chirp.
func (sm *SoundManager) PlayCollect() {
	sm.play(NewSweepGenerator(sampleRate, Sine, collectStartHz, collectEndHz, collectSweep, collectDuration, collectAmplitude))
}

// PlayHazard plays the explosion rumble.
func (sm *SoundManager) PlayHazard() {
	sm.play(NewSweepGenerator(sampleRate, Sawtooth, hazardStartHz, hazardEndHz, hazardSweep, hazardDuration, hazardAmplitude))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// newVolume scales s by the linear factor vol. effects.Volume works in
// powers of Base, so vol is converted with Log2; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
