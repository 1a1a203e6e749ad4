package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	AudioChannels   = 2
	AudioBitDepth   = 16

	// AudioBufferDuration is the speaker buffer, trades latency for underrun safety
	AudioBufferDuration = 100 * time.Millisecond
)

// Mix Levels
const (
	DefaultMasterVolume = 0.6
	DefaultMusicVolume  = 0.3
	DefaultSfxVolume    = 0.5
)

// Music Tempo (milliseconds between notes)
const (
	NoteIntervalBaseMs     = 500.0
	NoteIntervalPerLevelMs = 20.0
	NoteIntervalMinMs      = 100.0
	NoteIntervalMaxMs      = 500.0

	// ThreatTempoScale is the largest fractional shortening of the interval at full threat
	ThreatTempoScale = 0.7
)

// Note Shape
const (
	NoteDurationBase = 300 * time.Millisecond

	// NoteDurationThreatCut is subtracted per unit of threat
	NoteDurationThreatCut = 150 * time.Millisecond

	// NoteDurationMin guards envelopes when threat exceeds 1
	NoteDurationMin = 20 * time.Millisecond

	// SilenceGain is the exponential ramp target, ramps cannot reach zero
	SilenceGain = 0.001
)

// Voice Balance
const (
	LeadGain = 0.2
	MidGain  = 0.1
	HighGain = 0.05

	MidHarshThreshold  = 0.7
	HighHarshThreshold = 0.5

	MidFreqRatio       = 0.5
	HighFreqRatioBase  = 1.5
	HighFreqRatioRange = 0.5
)

// Session Control
const (
	// StopFadeDuration ramps active voices to silence on stop
	StopFadeDuration = 100 * time.Millisecond

	// VoiceReleaseGrace is the delay after a scheduled stop before resources are freed
	VoiceReleaseGrace = 200 * time.Millisecond

	// SequencerStartIndex is the scale degree every session begins from
	SequencerStartIndex = 4
)

// Shoot Sound
const (
	ShootSoundDuration = 100 * time.Millisecond
	ShootStartFreq     = 880.0
	ShootEndFreq       = 440.0
	ShootGain          = 0.3
)

// Explosion Sound
const (
	ExplosionSoundDuration = 200 * time.Millisecond
	ExplosionStartFreq     = 100.0
	ExplosionGain          = 0.5
)

// Player Explosion Sound
const (
	PlayerExplosionSoundDuration = time.Second
	PlayerExplosionStartFreq     = 50.0
	PlayerExplosionGain          = 0.8
)

// Sweep Targets
const (
	SweepEndFreq = 0.01
	SfxEndGain   = 0.01
)
