package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lixenwraith/markov-invaders/audio"
	"github.com/lixenwraith/markov-invaders/clock"
	"github.com/lixenwraith/markov-invaders/status"
	"github.com/lixenwraith/markov-invaders/threat"
)

const (
	renderStep   = 10 * time.Millisecond
	renderTail   = 200 * time.Millisecond
	renderHeight = 600.0
)

// renderOptions selects what to render
type renderOptions struct {
	level      int
	threat     float64
	duration   time.Duration
	seed       int64
	sampleRate int
	sounds     []audio.SoundType // Fired once each at the start
}

// renderResult summarizes a finished render
type renderResult struct {
	recorder *audio.Recorder
	notes    uint64
	frames   int
	peak     float64
	status   []status.Reading // Engine telemetry at the end of the render
}

// fieldForThreat places one enemy so Estimate yields the requested threat
func fieldForThreat(level int, t float64) threat.Snapshot {
	t = min(max(t, 0), 1)
	gap := (1 - t) * renderHeight * threat.ReferenceFraction
	return threat.Snapshot{
		PlayerPos:  threat.Point{X: renderHeight / 2, Y: renderHeight},
		EnemyPos:   []threat.Point{{X: renderHeight / 2, Y: renderHeight - gap}},
		Height:     renderHeight,
		LevelIndex: level,
	}
}

// renderMusic drives the engine on a mock clock and captures everything it plays
// The same options and seed always yield the same samples
func renderMusic(opts renderOptions) (*renderResult, error) {
	if opts.duration <= 0 {
		return nil, fmt.Errorf("%w: %v", audio.ErrInvalidDuration, opts.duration)
	}

	cfg := audio.DefaultAudioConfig()
	cfg.Enabled = true
	if opts.sampleRate > 0 {
		cfg.SampleRate = opts.sampleRate
	}

	rec := audio.NewRecorder(cfg, true)
	mock := clock.NewMock(time.Unix(0, 0))
	engine := audio.NewAudioEngine(fieldForThreat(opts.level, opts.threat), cfg,
		audio.WithClock(mock),
		audio.WithRand(rand.New(rand.NewSource(opts.seed))),
		audio.WithBackend(audio.RecorderFactory(rec)),
	)

	engine.Start(opts.level)
	for _, st := range opts.sounds {
		engine.PlaySound(st)
	}

	res := &renderResult{recorder: rec}
	pull := func(d time.Duration) error {
		frames, err := rec.Render(d)
		if err != nil {
			return err
		}
		res.peak = max(res.peak, audio.Peak(frames))
		return nil
	}

	for elapsed := time.Duration(0); elapsed < opts.duration; elapsed += renderStep {
		step := min(renderStep, opts.duration-elapsed)
		mock.Advance(step)
		if err := pull(step); err != nil {
			return nil, err
		}
	}

	// Let the stop fade and any release grace play out
	engine.Stop()
	if err := pull(renderTail); err != nil {
		return nil, err
	}
	mock.Advance(renderTail)

	_, res.notes = engine.GetStats()
	res.frames = rec.Captured()
	res.status = engine.Status().Snapshot()
	return res, engine.Close()
}
