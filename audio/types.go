package audio

import (
	"errors"
)

// SoundType represents the one-shot sound effects
type SoundType int

const (
	SoundShoot           SoundType = iota // Player fires
	SoundExplosion                        // Enemy destroyed
	SoundPlayerExplosion                  // Player ship lost
	soundTypeCount
)

// String returns the config key for the sound
func (st SoundType) String() string {
	switch st {
	case SoundShoot:
		return "shoot"
	case SoundExplosion:
		return "explosion"
	case SoundPlayerExplosion:
		return "player_explosion"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrNoAudioBackend  = errors.New("no compatible audio backend found")
	ErrVoiceReleased   = errors.New("voice already released")
	ErrBackendClosed   = errors.New("audio backend closed")
	ErrUnknownSound    = errors.New("unknown sound type")
	ErrInvalidDuration = errors.New("render duration must be positive")
)
