package audio

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/markov-invaders/clock"
	"github.com/lixenwraith/markov-invaders/constant"
	"github.com/lixenwraith/markov-invaders/status"
	"github.com/lixenwraith/markov-invaders/threat"
)

// Published metric names
const (
	MetricSessions = "audio.sessions"
	MetricNotes    = "audio.notes"
	MetricThreat   = "audio.threat"
	MetricTempo    = "audio.tempo_ms"
	MetricMuted    = "audio.muted"
	MetricSilent   = "audio.silent"
	MetricScale    = "audio.scale"
)

// AudioEngine drives threat-reactive background music and one-shot effects
// Holds at most one playback session; every deferred continuation re-checks session liveness under mu
type AudioEngine struct {
	mu sync.Mutex // Protects everything below except atomics

	config  *AudioConfig
	clock   clock.Clock
	field   threat.Field
	factory BackendFactory
	seq     *Sequencer

	backend     Backend
	backendInit bool
	cache       *soundCache
	silentMode  atomic.Bool
	muted       atomic.Bool

	level   int
	session *session
	quietAt time.Time // When the last stop fade completes

	registry *status.Registry
	stat     engineStatus
}

// engineStatus caches registry metrics so updates never touch the registry lock
type engineStatus struct {
	sessions *atomic.Uint64
	notes    *atomic.Uint64
	threat   *status.Gauge
	tempo    *status.Gauge
	muted    *atomic.Bool
	silent   *atomic.Bool
	scale    *status.Label
}

func newEngineStatus(reg *status.Registry) engineStatus {
	return engineStatus{
		sessions: reg.Counters.Get(MetricSessions),
		notes:    reg.Counters.Get(MetricNotes),
		threat:   reg.Gauges.Get(MetricThreat),
		tempo:    reg.Gauges.Get(MetricTempo),
		muted:    reg.Flags.Get(MetricMuted),
		silent:   reg.Flags.Get(MetricSilent),
		scale:    reg.Labels.Get(MetricScale),
	}
}

// session is one continuous run from Start to Stop
type session struct {
	id     uint64
	level  int
	live   bool
	task   *clock.Task
	voices map[*Voice]clock.Timer // Pending release timer per voice
}

// Option customizes engine collaborators
type Option func(*AudioEngine)

// WithClock replaces the wall clock, used with clock.Mock for deterministic scheduling
func WithClock(c clock.Clock) Option {
	return func(ae *AudioEngine) { ae.clock = c }
}

// WithRand seeds the melody chain
func WithRand(r RandSource) Option {
	return func(ae *AudioEngine) { ae.seq = NewSequencer(r) }
}

// WithBackend replaces the speaker with another output
func WithBackend(f BackendFactory) Option {
	return func(ae *AudioEngine) { ae.factory = f }
}

// WithStatus publishes engine telemetry into reg
func WithStatus(reg *status.Registry) Option {
	return func(ae *AudioEngine) { ae.registry = reg }
}

// NewAudioEngine creates an engine polling field for threat; the backend opens on first use
func NewAudioEngine(field threat.Field, cfg *AudioConfig, opts ...Option) *AudioEngine {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}

	ae := &AudioEngine{
		config:  cfg,
		clock:   clock.NewReal(),
		field:   field,
		factory: NewSpeakerBackend,
	}
	for _, opt := range opts {
		opt(ae)
	}
	if ae.seq == nil {
		ae.seq = NewSequencer(nil)
	}
	if ae.registry == nil {
		ae.registry = status.NewRegistry()
	}
	ae.stat = newEngineStatus(ae.registry)
	ae.muted.Store(!cfg.Enabled)
	ae.stat.muted.Store(!cfg.Enabled)

	return ae
}

// Start begins background music for a level, replacing any running session
// While muted only the level is recorded, Unmute picks it up
func (ae *AudioEngine) Start(level int) {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	ae.level = level
	if ae.muted.Load() {
		return
	}
	ae.startLocked(level)
}

// Stop fades out and releases the running session, no-op when idle
func (ae *AudioEngine) Stop() {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	ae.stopLocked()
}

// Mute silences music and effects
func (ae *AudioEngine) Mute() {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	if ae.muted.CompareAndSwap(false, true) {
		ae.stat.muted.Store(true)
		ae.stopLocked()
	}
}

// Unmute restarts a fresh session at the current level
func (ae *AudioEngine) Unmute() {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	if ae.muted.CompareAndSwap(true, false) {
		ae.stat.muted.Store(false)
		ae.startLocked(ae.currentLevelLocked())
	}
}

// ToggleMute toggles mute state, returns true if now enabled
func (ae *AudioEngine) ToggleMute() bool {
	if ae.muted.Load() {
		ae.Unmute()
	} else {
		ae.Mute()
	}
	return !ae.muted.Load()
}

// PlaySound fires a one-shot effect, returns false when nothing was queued
func (ae *AudioEngine) PlaySound(st SoundType) bool {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	if ae.muted.Load() {
		return false
	}
	if !ae.ensureBackendLocked() {
		return false
	}

	buf, err := ae.cache.get(st)
	if err != nil {
		return false
	}
	s := newVolume(buf.Streamer(0, buf.Len()), ae.config.SfxVolume)
	if err := ae.backend.Play(s); err != nil {
		ae.degradeLocked(err)
		return false
	}
	return true
}

// Close stops music and releases the output device
func (ae *AudioEngine) Close() error {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	ae.stopLocked()
	if ae.backend == nil {
		return nil
	}
	err := ae.backend.Close()
	ae.backend = nil
	return err
}

// SetVolume updates master volume (0.0-1.0)
func (ae *AudioEngine) SetVolume(vol float64) {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	ae.config.MasterVolume = clampUnit(vol)
	if ae.backend != nil {
		ae.backend.SetVolume(ae.config.MasterVolume)
	}
}

// SetMusicVolume scales voices of notes scheduled from now on (0.0-1.0)
func (ae *AudioEngine) SetMusicVolume(vol float64) {
	ae.mu.Lock()
	ae.config.MusicVolume = clampUnit(vol)
	ae.mu.Unlock()
}

// IsMuted returns current mute state
func (ae *AudioEngine) IsMuted() bool {
	return ae.muted.Load()
}

// IsSilent returns true when no backend could be opened
func (ae *AudioEngine) IsSilent() bool {
	return ae.silentMode.Load()
}

// IsPlaying returns true while a session is live
func (ae *AudioEngine) IsPlaying() bool {
	ae.mu.Lock()
	defer ae.mu.Unlock()
	return ae.session != nil
}

// Level returns the level of the most recent Start
func (ae *AudioEngine) Level() int {
	ae.mu.Lock()
	defer ae.mu.Unlock()
	return ae.level
}

// ActiveVoices returns voices owned by the running session
func (ae *AudioEngine) ActiveVoices() []*Voice {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	if ae.session == nil {
		return nil
	}
	voices := make([]*Voice, 0, len(ae.session.voices))
	for v := range ae.session.voices {
		voices = append(voices, v)
	}
	return voices
}

// GetStats returns sessions started and notes generated
func (ae *AudioEngine) GetStats() (sessions, notes uint64) {
	return ae.stat.sessions.Load(), ae.stat.notes.Load()
}

// Status returns the registry the engine publishes into
func (ae *AudioEngine) Status() *status.Registry {
	return ae.registry
}

func (ae *AudioEngine) currentLevelLocked() int {
	if ae.level > 0 {
		return ae.level
	}
	if ae.field != nil && ae.field.Level() > 0 {
		return ae.field.Level()
	}
	return 1
}

func (ae *AudioEngine) startLocked(level int) {
	ae.stopLocked()
	ae.ensureBackendLocked()

	ae.seq.Reset(ScaleForLevel(level))
	s := &session{
		id:     ae.stat.sessions.Add(1),
		level:  level,
		live:   true,
		voices: make(map[*Voice]clock.Timer),
	}
	ae.session = s
	ae.stat.scale.Set(ScaleName(level))

	// The previous session must be silent before the first new note sounds
	first := ae.quietAt.Sub(ae.clock.Now())
	if first < 0 {
		first = 0
	}
	s.task = clock.Repeat(ae.clock, first, func() (time.Duration, bool) {
		return ae.playNote(s)
	})

	log.Printf("audio: session %d started at level %d", s.id, level)
}

// stopLocked ends the session and fades whatever it still has sounding
func (ae *AudioEngine) stopLocked() {
	s := ae.session
	if s == nil {
		return
	}
	ae.session = nil
	s.live = false
	s.task.Cancel()

	audible := false
	faded := make([]*Voice, 0, len(s.voices))
	for v, timer := range s.voices {
		timer.Stop()
		if !v.Finished() {
			audible = true
		}
		v.FadeAndRelease(constant.StopFadeDuration)
		faded = append(faded, v)
	}
	clear(s.voices)
	if audible {
		ae.quietAt = ae.clock.Now().Add(constant.StopFadeDuration)
	}

	// Output that stops pulling samples never drains the fade
	if len(faded) > 0 {
		ae.clock.AfterFunc(constant.VoiceReleaseGrace, func() {
			ae.releaseFaded(faded)
		})
	}

	log.Printf("audio: session %d stopped", s.id)
}

// playNote is one unit of the session task, returns the delay to the next note
func (ae *AudioEngine) playNote(s *session) (time.Duration, bool) {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	if !s.live || ae.session != s || ae.muted.Load() {
		return 0, false
	}

	danger := threat.FromField(ae.field)
	freq := ae.seq.NextNote()
	ae.stat.notes.Add(1)

	if ae.backend != nil && !ae.silentMode.Load() {
		ae.voiceNoteLocked(s, freq, danger)
	}

	next := NoteInterval(s.level, danger)
	ae.stat.threat.Set(danger)
	ae.stat.tempo.Set(float64(next) / float64(time.Millisecond))
	return next, true
}

// voiceNoteLocked issues the three harmony voices of one note
func (ae *AudioEngine) voiceNoteLocked(s *session, freq, danger float64) {
	dur := NoteDuration(danger)
	rate := ae.backend.SampleRate()

	voices := make([]*Voice, 0, voiceSlotCount)
	streams := make([]beep.Streamer, 0, voiceSlotCount)
	for slot := SlotLead; slot < voiceSlotCount; slot++ {
		v := NewVoice(slot, freq, danger, ae.config.MusicVolume, dur, rate)
		voices = append(voices, v)
		streams = append(streams, v)
	}

	if err := ae.backend.Play(streams...); err != nil {
		ae.degradeLocked(err)
		return
	}

	for _, v := range voices {
		s.voices[v] = ae.clock.AfterFunc(dur+constant.VoiceReleaseGrace, func() {
			ae.releaseVoice(s, v)
		})
	}
}

// releaseVoice frees a voice after its grace period
func (ae *AudioEngine) releaseVoice(s *session, v *Voice) {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	delete(s.voices, v)
	freeVoice(v)
}

// releaseFaded frees voices a stop faded out, drained or not
func (ae *AudioEngine) releaseFaded(voices []*Voice) {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	for _, v := range voices {
		freeVoice(v)
	}
}

func freeVoice(v *Voice) {
	// ErrVoiceReleased means the output or an earlier stop got there first
	if err := v.Release(); err != nil && !errors.Is(err, ErrVoiceReleased) {
		log.Printf("audio: release voice: %v", err)
	}
}

// ensureBackendLocked opens the backend once, falling back to silent mode
func (ae *AudioEngine) ensureBackendLocked() bool {
	if !ae.backendInit {
		ae.backendInit = true
		b, err := ae.factory(ae.config)
		if err != nil {
			ae.degradeLocked(err)
			return false
		}
		ae.backend = b
		ae.cache = newSoundCache(b.SampleRate())
		ae.cache.preload()
	}
	return ae.backend != nil && !ae.silentMode.Load()
}

func (ae *AudioEngine) degradeLocked(err error) {
	if ae.silentMode.CompareAndSwap(false, true) {
		ae.stat.silent.Store(true)
		log.Printf("audio: %v (continuing without sound)", err)
	}
}
