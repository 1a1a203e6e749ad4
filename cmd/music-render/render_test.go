package main

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/wav"

	"github.com/lixenwraith/markov-invaders/audio"
	"github.com/lixenwraith/markov-invaders/threat"
)

// TestFieldForThreat verifies the synthetic field reproduces the requested threat
func TestFieldForThreat(t *testing.T) {
	for _, want := range []float64{0, 0.25, 0.5, 0.9, 1} {
		got := threat.FromField(fieldForThreat(1, want))
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Expected threat %f, got %f", want, got)
		}
	}

	// Out-of-range requests clamp
	if got := threat.FromField(fieldForThreat(1, 3)); math.Abs(got-1) > 1e-9 {
		t.Errorf("Expected clamped threat 1, got %f", got)
	}
}

// TestRenderMusicDeterministic verifies equal seeds render equal audio
func TestRenderMusicDeterministic(t *testing.T) {
	opts := renderOptions{level: 2, threat: 0.4, duration: time.Second, seed: 7, sampleRate: 8000}

	a, err := renderMusic(opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	b, err := renderMusic(opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if a.notes != b.notes || a.frames != b.frames || a.peak != b.peak {
		t.Errorf("Expected identical renders, got %+v and %+v", *a, *b)
	}
	if a.peak == 0 {
		t.Error("Expected audible music")
	}

	// Level 2 at threat 0.4: 460ms * 0.72 = 331.2ms per note
	if a.notes != 4 {
		t.Errorf("Expected 4 notes in one second, got %d", a.notes)
	}
	if want := 8000 * 12 / 10; a.frames != want {
		t.Errorf("Expected %d frames including tail, got %d", want, a.frames)
	}

	readings := make(map[string]string)
	for _, r := range a.status {
		readings[r.Name] = r.Value
	}
	if readings[audio.MetricNotes] != "4" || readings[audio.MetricScale] != "minor" {
		t.Errorf("Expected telemetry for 4 minor-scale notes, got %v", a.status)
	}
}

// TestRenderMusicInvalidDuration verifies empty renders are rejected
func TestRenderMusicInvalidDuration(t *testing.T) {
	if _, err := renderMusic(renderOptions{level: 1}); !errors.Is(err, audio.ErrInvalidDuration) {
		t.Errorf("Expected ErrInvalidDuration, got %v", err)
	}
}

// TestRunWritesWAV verifies the command writes a playable file
func TestRunWritesWAV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.wav")
	opts := renderOptions{
		level:      1,
		duration:   500 * time.Millisecond,
		seed:       1,
		sampleRate: 8000,
		sounds:     []audio.SoundType{audio.SoundShoot},
	}

	if err := run(opts, out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("Expected a valid wav file")
	}
	if dec.SampleRate != 8000 {
		t.Errorf("Expected 8000Hz, got %d", dec.SampleRate)
	}
}

// TestParseSounds verifies effect name parsing
func TestParseSounds(t *testing.T) {
	sounds, err := parseSounds("shoot, player_explosion")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(sounds) != 2 || sounds[0] != audio.SoundShoot || sounds[1] != audio.SoundPlayerExplosion {
		t.Errorf("Unexpected sounds %v", sounds)
	}

	if sounds, err := parseSounds(""); err != nil || sounds != nil {
		t.Errorf("Expected empty list, got %v %v", sounds, err)
	}

	if _, err := parseSounds("laser"); !errors.Is(err, audio.ErrUnknownSound) {
		t.Errorf("Expected ErrUnknownSound, got %v", err)
	}
}
