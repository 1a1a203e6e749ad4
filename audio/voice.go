package audio

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/markov-invaders/constant"
)

// VoiceSlot identifies one part of the three-voice harmony
type VoiceSlot int

const (
	SlotLead VoiceSlot = iota // Melody at the drawn pitch
	SlotMid                   // Sub-octave, harsher above 0.7 threat
	SlotHigh                  // Rising fifth-and-up, harsher above 0.5 threat
	voiceSlotCount
)

func (s VoiceSlot) String() string {
	switch s {
	case SlotLead:
		return "lead"
	case SlotMid:
		return "mid"
	case SlotHigh:
		return "high"
	default:
		return "unknown"
	}
}

// VoiceParams is the threat-dependent shape of one slot
type VoiceParams struct {
	Waveform  Waveform
	Gain      float64 // Multiplied by music volume
	FreqRatio float64 // Multiplied by the note frequency
}

// VoiceParamsFor maps threat to waveform, gain and pitch for a slot
func VoiceParamsFor(slot VoiceSlot, threat float64) VoiceParams {
	switch slot {
	case SlotMid:
		wave := WaveTriangle
		if threat > constant.MidHarshThreshold {
			wave = WaveSquare
		}
		return VoiceParams{
			Waveform:  wave,
			Gain:      constant.MidGain * (1 + threat),
			FreqRatio: constant.MidFreqRatio,
		}
	case SlotHigh:
		wave := WaveSquare
		if threat > constant.HighHarshThreshold {
			wave = WaveSawtooth
		}
		return VoiceParams{
			Waveform:  wave,
			Gain:      constant.HighGain * (1 + threat*2),
			FreqRatio: constant.HighFreqRatioBase + threat*constant.HighFreqRatioRange,
		}
	default:
		return VoiceParams{
			Waveform:  WaveSine,
			Gain:      constant.LeadGain,
			FreqRatio: 1,
		}
	}
}

// Voice is one oscillator with a decaying gain envelope
// The engine goroutine owns lifecycle calls; Stream runs on the output goroutine and shares only atomics
type Voice struct {
	slot      VoiceSlot
	wave      Waveform
	freq      float64
	startGain float64
	duration  time.Duration
	rate      beep.SampleRate

	// Output goroutine state
	phase    float64
	gain     float64
	decay    float64
	position int
	total    int
	fading   bool
	fadeLeft int
	fadeStep float64

	// Cross-goroutine state
	fadeSamples   atomic.Int64 // >0 requests a fade of that many samples
	released      atomic.Bool
	finished      atomic.Bool
	releaseOnFade atomic.Bool
	level         atomic.Uint64 // Last gain as float64 bits
}

// NewVoice builds the voice for a slot of a note
// Gain starts at params.Gain*musicVolume and decays to silence over duration
func NewVoice(slot VoiceSlot, noteFreq, threat, musicVolume float64, duration time.Duration, rate beep.SampleRate) *Voice {
	p := VoiceParamsFor(slot, threat)
	total := rate.N(duration)
	start := p.Gain * musicVolume

	v := &Voice{
		slot:      slot,
		wave:      p.Waveform,
		freq:      noteFreq * p.FreqRatio,
		startGain: start,
		duration:  duration,
		rate:      rate,
		gain:      start,
		decay:     rampFactor(start, constant.SilenceGain, total),
		total:     total,
	}
	v.level.Store(math.Float64bits(start))
	return v
}

func (v *Voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.released.Load() || v.finished.Load() {
		return 0, false
	}

	if req := v.fadeSamples.Load(); req > 0 && !v.fading {
		v.beginFade(int(req))
	}

	for i := range samples {
		if v.position >= v.total || (v.fading && v.fadeLeft <= 0) {
			v.finish()
			return i, false
		}

		val := waveSample(v.wave, v.phase) * v.gain
		samples[i][0] = val
		samples[i][1] = val

		v.phase += v.freq / float64(v.rate)
		v.phase -= math.Floor(v.phase)
		v.position++

		if v.fading {
			v.gain *= v.fadeStep
			v.fadeLeft--
		} else {
			v.gain *= v.decay
		}
	}

	v.level.Store(math.Float64bits(v.gain))
	return len(samples), true
}

func (v *Voice) Err() error { return nil }

// beginFade ramps from the current gain to silence, replacing the note decay
func (v *Voice) beginFade(samples int) {
	v.fading = true
	v.fadeLeft = samples
	v.fadeStep = rampFactor(v.gain, constant.SilenceGain, samples)
}

// finish marks the stream drained, releasing it too when a stop asked for that
func (v *Voice) finish() {
	v.level.Store(math.Float64bits(v.gain))
	v.finished.Store(true)
	if v.releaseOnFade.Load() {
		v.released.Store(true)
	}
}

// Fade requests a ramp to silence over d; the stream ends when the ramp completes
func (v *Voice) Fade(d time.Duration) {
	n := v.rate.N(d)
	if n < 1 {
		n = 1
	}
	v.fadeSamples.CompareAndSwap(0, int64(n))
}

// FadeAndRelease fades over d and frees the voice once the fade completes
func (v *Voice) FadeAndRelease(d time.Duration) {
	v.releaseOnFade.Store(true)
	v.Fade(d)
	if v.finished.Load() {
		v.released.Store(true)
	}
}

// Release frees the voice immediately, returns ErrVoiceReleased on repeat calls
func (v *Voice) Release() error {
	if !v.released.CompareAndSwap(false, true) {
		return ErrVoiceReleased
	}
	return nil
}

// Released returns true once the voice can no longer produce samples
func (v *Voice) Released() bool { return v.released.Load() }

// Finished returns true once the envelope or a fade has run out
func (v *Voice) Finished() bool { return v.finished.Load() }

// Fading returns true once a fade has been requested
func (v *Voice) Fading() bool { return v.fadeSamples.Load() > 0 }

// Gain returns the envelope level at the end of the last rendered block
func (v *Voice) Gain() float64 { return math.Float64frombits(v.level.Load()) }

func (v *Voice) Slot() VoiceSlot { return v.slot }
func (v *Voice) Waveform() Waveform { return v.wave }
func (v *Voice) Frequency() float64 { return v.freq }
func (v *Voice) StartGain() float64 { return v.startGain }
func (v *Voice) Duration() time.Duration { return v.duration }
