package audio

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/markov-invaders/constant"
)

// wavFormatPCM is the RIFF format tag for integer PCM
const wavFormatPCM = 1

// Recorder is an offline Backend; samples are produced only when Render pulls them
// Rendered audio is buffered in memory in its entirety, suitable for tests and short captures
type Recorder struct {
	mu       sync.Mutex
	rate     beep.SampleRate
	mixer    *beep.Mixer
	master   *effects.Volume
	captured [][2]float64
	capture  bool
	closed   bool
}

// NewRecorder creates an offline mixer; capture keeps every rendered frame for WriteWAV
func NewRecorder(cfg *AudioConfig, capture bool) *Recorder {
	mixer := &beep.Mixer{}
	return &Recorder{
		rate:    beep.SampleRate(cfg.SampleRate),
		mixer:   mixer,
		master:  newVolume(mixer, cfg.MasterVolume),
		capture: capture,
	}
}

// RecorderFactory adapts an existing recorder to BackendFactory
func RecorderFactory(r *Recorder) BackendFactory {
	return func(*AudioConfig) (Backend, error) {
		return r, nil
	}
}

func (r *Recorder) SampleRate() beep.SampleRate {
	return r.rate
}

func (r *Recorder) Play(s ...beep.Streamer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrBackendClosed
	}
	r.mixer.Add(s...)
	return nil
}

func (r *Recorder) SetVolume(vol float64) {
	r.mu.Lock()
	setVolume(r.master, clampUnit(vol))
	r.mu.Unlock()
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.mixer.Clear()
	return nil
}

// Render pulls d worth of mixed frames and returns them
func (r *Recorder) Render(d time.Duration) ([][2]float64, error) {
	if d <= 0 {
		return nil, ErrInvalidDuration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	buf := make([][2]float64, r.rate.N(d))
	n, _ := r.master.Stream(buf)
	// An empty mixer may report fewer frames, the remainder stays silent
	for i := n; i < len(buf); i++ {
		buf[i] = [2]float64{}
	}

	if r.capture {
		r.captured = append(r.captured, buf...)
	}
	return buf, nil
}

// Streamers returns the number of streamers still mixing
func (r *Recorder) Streamers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mixer.Len()
}

// Captured returns the number of frames kept for WriteWAV
func (r *Recorder) Captured() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.captured)
}

// WriteWAV encodes captured frames as 16-bit stereo PCM
func (r *Recorder) WriteWAV(w io.WriteSeeker) error {
	r.mu.Lock()
	frames := r.captured
	r.mu.Unlock()

	enc := wav.NewEncoder(w, int(r.rate), constant.AudioBitDepth, constant.AudioChannels, wavFormatPCM)

	data := make([]int, 0, len(frames)*constant.AudioChannels)
	for _, f := range frames {
		data = append(data, toPCM16(f[0]), toPCM16(f[1]))
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: constant.AudioChannels,
			SampleRate:  int(r.rate),
		},
		Data:           data,
		SourceBitDepth: constant.AudioBitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("recorder: wav write: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("recorder: wav close: %w", err)
	}
	return nil
}

// toPCM16 converts with hard clipping to the signed 16-bit range
func toPCM16(s float64) int {
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return int(math.Round(s * math.MaxInt16))
}

// Peak returns the largest absolute sample in a rendered block
func Peak(frames [][2]float64) float64 {
	peak := 0.0
	for _, f := range frames {
		peak = math.Max(peak, math.Max(math.Abs(f[0]), math.Abs(f[1])))
	}
	return peak
}
