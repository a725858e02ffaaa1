// Package audio plays short cues for scene events; it degrades to silence without a device
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// SoundManager owns the speaker and a mixer that one-shot cues are added to
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSoundManager creates an uninitialised manager; every Play is a no-op until Initialize succeeds
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// SetMuted silences future cues without closing the device
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// PlaySpawn plays a short rising pop when a ball appears
func (sm *SoundManager) PlaySpawn() {
	sm.play(NewDecay(NewSweep(420, 880, 60*time.Millisecond, sampleRate), 0.15, 20*time.Millisecond, sampleRate))
}

// PlayCapture plays a shutter click when the surface is saved
func (sm *SoundManager) PlayCapture() {
	sm.play(NewDecay(NewNoise(40*time.Millisecond, sampleRate), 0.3, 8*time.Millisecond, sampleRate))
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

// Cleanup drops pending cues and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}
