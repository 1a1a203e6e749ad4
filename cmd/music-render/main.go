package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/lixenwraith/markov-invaders/audio"
)

func main() {
	var (
		opts    renderOptions
		seconds float64
		sfx     string
		out     string
		verbose bool
	)
	flag.IntVar(&opts.level, "level", 1, "Level whose scale and tempo to render")
	flag.Float64Var(&opts.threat, "threat", 0, "Fixed threat level 0.0-1.0")
	flag.Float64Var(&seconds, "seconds", 10, "Length of music to render")
	flag.Int64Var(&opts.seed, "seed", 1, "Melody seed, equal seeds render equal audio")
	flag.IntVar(&opts.sampleRate, "rate", 0, "Sample rate (0 = environment or 44100)")
	flag.StringVar(&sfx, "sfx", "", "Comma-separated effects to fire at the start: shoot, explosion, player_explosion")
	flag.StringVar(&out, "o", "music.wav", "Output wav file")
	flag.BoolVar(&verbose, "v", false, "Log engine activity to stderr")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("music-render: ")
	if !verbose {
		log.SetOutput(io.Discard)
	}

	opts.duration = time.Duration(seconds * float64(time.Second))
	sounds, err := parseSounds(sfx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "music-render: %v\n", err)
		os.Exit(2)
	}
	opts.sounds = sounds

	if err := run(opts, out); err != nil {
		fmt.Fprintf(os.Stderr, "music-render: %v\n", err)
		os.Exit(1)
	}
}

func run(opts renderOptions, out string) error {
	res, err := renderMusic(opts)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := res.recorder.WriteWAV(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	for _, r := range res.status {
		log.Printf("render: %s=%s", r.Name, r.Value)
	}

	rate := res.recorder.SampleRate()
	fmt.Printf("%s: %d notes, %v at %dHz, peak %.3f\n",
		out, res.notes, rate.D(res.frames).Round(time.Millisecond), int(rate), res.peak)
	return nil
}

// parseSounds maps effect names to sound types
func parseSounds(list string) ([]audio.SoundType, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}

	var sounds []audio.SoundType
	for _, name := range strings.Split(list, ",") {
		st, ok := soundByName(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("%w: %q", audio.ErrUnknownSound, name)
		}
		sounds = append(sounds, st)
	}
	return sounds, nil
}

func soundByName(name string) (audio.SoundType, bool) {
	for _, st := range []audio.SoundType{audio.SoundShoot, audio.SoundExplosion, audio.SoundPlayerExplosion} {
		if st.String() == name {
			return st, true
		}
	}
	return 0, false
}
