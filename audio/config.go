package audio

import (
	"os"
	"strconv"

	"github.com/lixenwraith/markov-invaders/constant"
)

// Environment keys
const (
	envEnabled      = "MARKOV_INVADERS_AUDIO_ENABLED"
	envMasterVolume = "MARKOV_INVADERS_MASTER_VOLUME"
	envMusicVolume  = "MARKOV_INVADERS_MUSIC_VOLUME"
	envSfxVolume    = "MARKOV_INVADERS_SFX_VOLUME"
	envSampleRate   = "MARKOV_INVADERS_SAMPLE_RATE"
)

// AudioConfig holds mix levels and output format
type AudioConfig struct {
	Enabled      bool    // false starts the engine muted
	MasterVolume float64 // 0.0-1.0, applied on the output mixer
	MusicVolume  float64 // 0.0-1.0, scales every music voice
	SfxVolume    float64 // 0.0-1.0, scales sound effects
	SampleRate   int
}

// DefaultAudioConfig returns the stock mix
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: constant.DefaultMasterVolume,
		MusicVolume:  constant.DefaultMusicVolume,
		SfxVolume:    constant.DefaultSfxVolume,
		SampleRate:   constant.AudioSampleRate,
	}
}

// LoadAudioConfig loads audio configuration from environment variables
// Unparseable values keep their defaults
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv(envEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Volumes are 0-100 converted to 0.0-1.0
	loadPercent(envMasterVolume, &cfg.MasterVolume)
	loadPercent(envMusicVolume, &cfg.MusicVolume)
	loadPercent(envSfxVolume, &cfg.SfxVolume)

	if sampleRate := os.Getenv(envSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func loadPercent(key string, dst *float64) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return
	}
	*dst = clampUnit(float64(val) / 100.0)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
