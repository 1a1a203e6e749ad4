package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/markov-invaders/constant"
)

// sweepSound glides pitch and gain down together, the shape shared by every effect
func sweepSound(wave Waveform, startFreq, endFreq, gain float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(startFreq, endFreq, d, wave, rate)
	return NewGainRamp(osc, gain, constant.SfxEndGain, d, rate)
}

// CreateShootSound generates a falling square chirp
func CreateShootSound(cfg *AudioConfig, rate beep.SampleRate) beep.Streamer {
	return sweepSound(WaveSquare, constant.ShootStartFreq, constant.ShootEndFreq,
		constant.ShootGain*cfg.SfxVolume, constant.ShootSoundDuration, rate)
}

// CreateExplosionSound generates a short sawtooth growl for an enemy hit
func CreateExplosionSound(cfg *AudioConfig, rate beep.SampleRate) beep.Streamer {
	return sweepSound(WaveSawtooth, constant.ExplosionStartFreq, constant.SweepEndFreq,
		constant.ExplosionGain*cfg.SfxVolume, constant.ExplosionSoundDuration, rate)
}

// CreatePlayerExplosionSound generates a long low rumble for losing the ship
func CreatePlayerExplosionSound(cfg *AudioConfig, rate beep.SampleRate) beep.Streamer {
	return sweepSound(WaveSawtooth, constant.PlayerExplosionStartFreq, constant.SweepEndFreq,
		constant.PlayerExplosionGain*cfg.SfxVolume, constant.PlayerExplosionSoundDuration, rate)
}

// newSoundEffect returns the streamer for a sound type
func newSoundEffect(st SoundType, cfg *AudioConfig, rate beep.SampleRate) (beep.Streamer, error) {
	switch st {
	case SoundShoot:
		return CreateShootSound(cfg, rate), nil
	case SoundExplosion:
		return CreateExplosionSound(cfg, rate), nil
	case SoundPlayerExplosion:
		return CreatePlayerExplosionSound(cfg, rate), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownSound, int(st))
	}
}
