package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Waveform defines oscillator wave shapes
type Waveform int

const (
	WaveSine Waveform = iota
	WaveTriangle
	WaveSquare
	WaveSawtooth
	WaveNoise
)

func (w Waveform) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveTriangle:
		return "triangle"
	case WaveSquare:
		return "square"
	case WaveSawtooth:
		return "sawtooth"
	case WaveNoise:
		return "noise"
	default:
		return "unknown"
	}
}

// waveSample evaluates a unit-amplitude waveform at phase in [0, 1)
func waveSample(w Waveform, phase float64) float64 {
	switch w {
	case WaveSine:
		return math.Sin(2 * math.Pi * phase)
	case WaveTriangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	case WaveSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case WaveSawtooth:
		return 2.0 * (phase - 0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return 0
	}
}

// rampFactor is the per-sample multiplier of an exponential ramp from 'from' to 'to' over n samples
// Exponential ramps need strictly positive endpoints, anything else holds steady
func rampFactor(from, to float64, n int) float64 {
	if n <= 0 || from <= 0 || to <= 0 {
		return 1
	}
	return math.Pow(to/from, 1/float64(n))
}

// oscillator generates a raw wave, optionally sweeping frequency exponentially
type oscillator struct {
	freq     float64
	sweep    float64 // Per-sample frequency multiplier
	phase    float64
	duration int
	position int
	wave     Waveform
	rate     beep.SampleRate
}

// NewSweep creates an oscillator gliding exponentially from startFreq to endFreq
func NewSweep(startFreq, endFreq float64, duration time.Duration, wave Waveform, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	return &oscillator{
		freq:     startFreq,
		sweep:    rampFactor(startFreq, endFreq, samples),
		duration: samples,
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		val := waveSample(o.wave, o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.freq *= o.sweep
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// gainRamp scales a stream by a gain gliding exponentially between two levels
type gainRamp struct {
	streamer beep.Streamer
	gain     float64
	factor   float64
	position int
	total    int
}

// NewGainRamp applies an exponential gain ramp from 'from' to 'to' over duration
// Once the ramp completes the gain holds at 'to'
func NewGainRamp(s beep.Streamer, from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	return &gainRamp{
		streamer: s,
		gain:     from,
		factor:   rampFactor(from, to, total),
		total:    total,
	}
}

func (g *gainRamp) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		samples[i][0] *= g.gain
		samples[i][1] *= g.gain
		if g.position < g.total {
			g.gain *= g.factor
			g.position++
		}
	}
	return n, ok
}

func (g *gainRamp) Err() error { return g.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// setVolume retargets an existing volume effect, caller holds the output lock
func setVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(vol)
	v.Silent = false
}
