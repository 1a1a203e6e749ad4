package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/markov-invaders/audio"
	"github.com/lixenwraith/markov-invaders/service"
	"github.com/lixenwraith/markov-invaders/threat"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	shotInterval  = 32 * time.Millisecond
)

// styleEnemy colours formation rows top to bottom
var styleEnemy = []tcell.Style{
	tcell.StyleDefault.Foreground(tcell.ColorRed),
	tcell.StyleDefault.Foreground(tcell.ColorOrange),
	tcell.StyleDefault.Foreground(tcell.ColorYellow),
	tcell.StyleDefault.Foreground(tcell.ColorGreen),
}

var (
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleShot   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

func main() {
	level := flag.Int("level", 1, "Starting level")
	mute := flag.Bool("mute", false, "Start with audio muted")
	debug := flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
	flag.Parse()

	os.Exit(execute(*level, *mute, *debug, tcell.NewScreen))
}

// execute runs the sandbox and returns the exit code once deferred cleanup has run
func execute(level int, mute, debug bool, newScreen func() (tcell.Screen, error)) int {
	if logFile := setupLogging(debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(level, mute, newScreen); err != nil {
		log.Printf("sandbox: %v", err)
		fmt.Fprintf(os.Stderr, "threat-sandbox: %v\n", err)
		return 1
	}
	return 0
}

// sandbox binds the terminal, the game state and the audio player
type sandbox struct {
	screen tcell.Screen
	world  *world
	player audio.AudioPlayer
	engine *audio.AudioEngine
}

// run brings up the screen then audio, plays until quit and tears down in reverse
func run(level int, mute bool, newScreen func() (tcell.Screen, error)) error {
	// Sized by the screen service on Init
	w := newWorld(0, 0, level)
	screenSvc := newScreenService(w, newScreen)

	hub := service.NewHub()
	if err := hub.Register(screenSvc); err != nil {
		return err
	}
	if err := hub.Register(audio.NewService(w).After(screenSvc.Name())); err != nil {
		return err
	}
	if err := hub.InitAll(map[string][]any{"audio": {mute}}); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer hub.StopAll()

	svc := service.MustGet[*audio.AudioService](hub, "audio")
	sb := &sandbox{
		screen: screenSvc.Screen(),
		world:  w,
		player: svc.Player(),
		engine: svc.Engine(),
	}

	sb.player.Start(w.Level())
	sb.loop()
	sb.player.Stop()

	for _, r := range sb.engine.Status().Snapshot() {
		log.Printf("sandbox: final %s=%s", r.Name, r.Value)
	}
	return nil
}

func (sb *sandbox) loop() {
	frames := time.NewTicker(frameInterval)
	defer frames.Stop()
	shots := time.NewTicker(shotInterval)
	defer shots.Stop()
	march := time.NewTimer(sb.world.marchInterval())
	defer march.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := sb.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !sb.handleEvent(ev) {
				return
			}

		case <-shots.C:
			res := sb.world.advanceShots()
			for i := 0; i < res.hits; i++ {
				sb.player.PlaySound(audio.SoundExplosion)
			}
			if res.cleared {
				sb.nextLevel()
			}

		case <-march.C:
			if sb.world.march().overrun {
				sb.player.PlaySound(audio.SoundPlayerExplosion)
				log.Printf("sandbox: overrun at level %d", sb.world.Level())
				sb.world.reset(sb.world.Level())
			}
			march.Reset(sb.world.marchInterval())

		case <-frames.C:
			sb.draw()
		}
	}
}

// handleEvent applies one input event, returns false to quit
func (sb *sandbox) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			sb.world.movePlayer(-1)
		case tcell.KeyRight:
			sb.world.movePlayer(1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				sb.world.movePlayer(-1)
			case 'l':
				sb.world.movePlayer(1)
			case ' ':
				if sb.world.fire() {
					sb.player.PlaySound(audio.SoundShoot)
				}
			case 'm':
				enabled := sb.player.ToggleMute()
				log.Printf("sandbox: audio enabled=%v", enabled)
			case 'n':
				sb.nextLevel()
			}
		}

	case *tcell.EventResize:
		width, height := sb.screen.Size()
		sb.world.resize(width, height)
		sb.screen.Sync()
	}
	return true
}

// nextLevel lays out a new formation and restarts music in the next scale
func (sb *sandbox) nextLevel() {
	next := sb.world.Level() + 1
	sb.world.reset(next)
	sb.player.Start(next)
}

func (sb *sandbox) draw() {
	sb.screen.Clear()

	for _, e := range sb.world.Enemies() {
		row := max(0, (int(e.Y)-formationTop)/enemySpacingY)
		sb.screen.SetContent(int(e.X), int(e.Y), 'W', nil, styleEnemy[row%len(styleEnemy)])
	}
	for _, s := range sb.world.Shots() {
		sb.screen.SetContent(int(s.X), int(s.Y), '|', nil, styleShot)
	}
	p := sb.world.Player()
	sb.screen.SetContent(int(p.X), int(p.Y), 'A', nil, stylePlayer)

	sb.drawStatus()
	sb.screen.Show()
}

// drawStatus renders live threat and the engine's published telemetry on the top row
func (sb *sandbox) drawStatus() {
	reg := sb.engine.Status()

	state := "on"
	switch {
	case reg.Flags.Get(audio.MetricSilent).Load():
		state = "no device"
	case reg.Flags.Get(audio.MetricMuted).Load():
		state = "muted"
	}

	// One consistent view of the field for the whole line
	snap := threat.Capture(sb.world)
	line := fmt.Sprintf(" level %d %s  threat %.2f  tempo %.0fms  notes %d  audio %s  [h/l move, space fire, m mute, n next, q quit]",
		snap.Level(),
		reg.Labels.Get(audio.MetricScale).Get(),
		threat.FromField(snap),
		reg.Gauges.Get(audio.MetricTempo).Get(),
		reg.Counters.Get(audio.MetricNotes).Load(),
		state)

	width, _ := sb.screen.Size()
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		sb.screen.SetContent(x, 0, r, nil, styleStatus)
	}
}
