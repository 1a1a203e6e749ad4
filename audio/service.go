package audio

import (
	"sync/atomic"

	"github.com/lixenwraith/markov-invaders/threat"
)

// AudioService wraps AudioEngine as a service.Service
// Backend failures degrade to silence, never to a lifecycle error
type AudioService struct {
	field       threat.Field
	opts        []Option
	deps        []string
	audioEngine *AudioEngine
	stopped     atomic.Bool
}

// NewService creates an audio service polling field for threat
func NewService(field threat.Field, opts ...Option) *AudioService {
	return &AudioService{field: field, opts: opts}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return s.deps
}

// After declares services that own the field, such as the screen sizing it
func (s *AudioService) After(names ...string) *AudioService {
	s.deps = append(s.deps, names...)
	return s
}

// Init implements Service
// args[0]: bool - initial mute state, overrides the environment when present
func (s *AudioService) Init(args ...any) error {
	config := LoadAudioConfig()

	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok {
			config.Enabled = !muted
		}
	}

	s.audioEngine = NewAudioEngine(s.field, config, s.opts...)
	return nil
}

// Start implements Service
// The output device opens lazily on the first session or effect
func (s *AudioService) Start() error {
	s.stopped.Store(false)
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.audioEngine == nil || !s.stopped.CompareAndSwap(false, true) {
		return nil
	}
	return s.audioEngine.Close()
}

// Engine returns the underlying AudioEngine (nil before Init)
func (s *AudioService) Engine() *AudioEngine {
	return s.audioEngine
}

// Player returns the narrow interface game code drives
func (s *AudioService) Player() AudioPlayer {
	if s.audioEngine == nil {
		return nil
	}
	return s.audioEngine
}

// AudioPlayer defines the minimal audio interface used by the game loop
type AudioPlayer interface {
	Start(level int)
	Stop()
	Mute()
	Unmute()
	ToggleMute() bool
	IsMuted() bool
	PlaySound(SoundType) bool
}
