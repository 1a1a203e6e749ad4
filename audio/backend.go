package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/markov-invaders/constant"
)

// Backend is an output sink that mixes any number of streamers
type Backend interface {
	SampleRate() beep.SampleRate
	Play(s ...beep.Streamer) error
	SetVolume(vol float64)
	Close() error
}

// BackendFactory opens a backend for a config, called lazily on first use
type BackendFactory func(cfg *AudioConfig) (Backend, error)

// SpeakerBackend plays through the system audio device via beep/speaker
type SpeakerBackend struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	mixer  *beep.Mixer
	master *effects.Volume
	closed bool
}

// NewSpeakerBackend initializes the speaker and starts a persistent mixer
func NewSpeakerBackend(cfg *AudioConfig) (Backend, error) {
	rate := beep.SampleRate(cfg.SampleRate)

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(rate, rate.N(constant.AudioBufferDuration)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoAudioBackend, err)
	}

	mixer := &beep.Mixer{}
	master := newVolume(mixer, cfg.MasterVolume)
	speaker.Play(master)

	return &SpeakerBackend{
		rate:   rate,
		mixer:  mixer,
		master: master,
	}, nil
}

func (b *SpeakerBackend) SampleRate() beep.SampleRate {
	return b.rate
}

// Play adds streamers to the live mix in one step so they start on the same frame
func (b *SpeakerBackend) Play(s ...beep.Streamer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBackendClosed
	}

	speaker.Lock()
	b.mixer.Add(s...)
	speaker.Unlock()
	return nil
}

// SetVolume updates master volume (0.0-1.0)
func (b *SpeakerBackend) SetVolume(vol float64) {
	speaker.Lock()
	setVolume(b.master, clampUnit(vol))
	speaker.Unlock()
}

// Close clears the mix and releases the device
func (b *SpeakerBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	return nil
}
