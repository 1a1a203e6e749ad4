package audio

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/markov-invaders/constant"
)

// TestSoundCacheRendersOnce verifies buffers are reused
func TestSoundCacheRendersOnce(t *testing.T) {
	c := newSoundCache(beep.SampleRate(44100))

	a, err := c.get(SoundExplosion)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, _ := c.get(SoundExplosion)
	if a != b {
		t.Error("Expected cached buffer to be reused")
	}
	if a.Len() != beep.SampleRate(44100).N(constant.ExplosionSoundDuration) {
		t.Errorf("Expected %d frames, got %d", beep.SampleRate(44100).N(constant.ExplosionSoundDuration), a.Len())
	}
}

// TestSoundCacheUnityGain verifies buffers are stored before sfx scaling
func TestSoundCacheUnityGain(t *testing.T) {
	rate := beep.SampleRate(44100)
	c := newSoundCache(rate)

	buf, _ := c.get(SoundShoot)
	samples := make([][2]float64, buf.Len())
	buf.Streamer(0, buf.Len()).Stream(samples)

	// Buffer precision quantizes samples
	if math.Abs(Peak(samples)-0.3) > 0.001 {
		t.Errorf("Expected unity peak 0.3, got %f", Peak(samples))
	}
}

// TestSoundCacheInvalid verifies unknown sounds are rejected
func TestSoundCacheInvalid(t *testing.T) {
	c := newSoundCache(beep.SampleRate(44100))

	for _, st := range []SoundType{-1, soundTypeCount, 99} {
		if _, err := c.get(st); !errors.Is(err, ErrUnknownSound) {
			t.Errorf("Expected ErrUnknownSound for %d, got %v", st, err)
		}
	}
}

// TestSoundCacheConcurrent verifies concurrent readers see one buffer
func TestSoundCacheConcurrent(t *testing.T) {
	c := newSoundCache(beep.SampleRate(22050))

	var wg sync.WaitGroup
	results := make([]*beep.Buffer, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.get(SoundPlayerExplosion)
		}(i)
	}
	wg.Wait()

	for i, buf := range results {
		if buf != results[0] {
			t.Errorf("Result %d differs from first buffer", i)
		}
	}
}
