package main

import (
	"sync"
	"time"

	"github.com/lixenwraith/markov-invaders/threat"
)

// Formation layout in cells
const (
	enemyRows     = 4
	enemyCols     = 8
	enemySpacingX = 4
	enemySpacingY = 2
	formationTop  = 2
	maxShots      = 3
)

// March pacing
const (
	marchIntervalBase     = 600 * time.Millisecond
	marchIntervalPerLevel = 50 * time.Millisecond
	marchIntervalMin      = 80 * time.Millisecond
)

// tickResult reports what a simulation step changed
type tickResult struct {
	hits    int
	cleared bool
	overrun bool
}

// world is the sandbox game state; cells stand in for pixels
// The audio engine polls it from timer goroutines, the game loop mutates it
type world struct {
	mu      sync.RWMutex
	width   int
	height  int
	level   int
	player  threat.Point
	enemies []threat.Point
	shots   []threat.Point
	dir     float64
}

func newWorld(width, height, level int) *world {
	if level < 1 {
		level = 1
	}
	w := &world{width: width, height: height}
	w.reset(level)
	return w
}

// reset lays out a fresh formation and recentres the ship
func (w *world) reset(level int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.level = level
	w.dir = 1
	w.shots = w.shots[:0]
	w.player = threat.Point{X: float64(w.width / 2), Y: float64(w.height - 2)}

	w.enemies = w.enemies[:0]
	left := (w.width - (enemyCols-1)*enemySpacingX) / 2
	if left < 0 {
		left = 0
	}
	for r := 0; r < enemyRows; r++ {
		for c := 0; c < enemyCols; c++ {
			w.enemies = append(w.enemies, threat.Point{
				X: float64(left + c*enemySpacingX),
				Y: float64(formationTop + r*enemySpacingY),
			})
		}
	}
}

func (w *world) Player() threat.Point {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.player
}

// Enemies returns a copy, callers may hold it past the next step
func (w *world) Enemies() []threat.Point {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]threat.Point, len(w.enemies))
	copy(out, w.enemies)
	return out
}

func (w *world) ScreenHeight() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return float64(w.height)
}

func (w *world) Level() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.level
}

// Shots returns a copy of live projectiles
func (w *world) Shots() []threat.Point {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]threat.Point, len(w.shots))
	copy(out, w.shots)
	return out
}

// resize keeps the ship on the bottom row and inside the screen
func (w *world) resize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.width, w.height = width, height
	w.player.Y = float64(height - 2)
	w.player.X = clamp(w.player.X, 0, float64(width-1))
}

func (w *world) movePlayer(dx int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.player.X = clamp(w.player.X+float64(dx), 0, float64(w.width-1))
}

// fire launches a shot above the ship, false when too many are in flight
func (w *world) fire() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.shots) >= maxShots {
		return false
	}
	w.shots = append(w.shots, threat.Point{X: w.player.X, Y: w.player.Y - 1})
	return true
}

// advanceShots moves projectiles one row and resolves hits
func (w *world) advanceShots() tickResult {
	w.mu.Lock()
	defer w.mu.Unlock()

	var res tickResult
	live := w.shots[:0]
	for _, s := range w.shots {
		s.Y--
		if s.Y < 0 {
			continue
		}
		if idx := w.enemyAt(s); idx >= 0 {
			w.enemies = append(w.enemies[:idx], w.enemies[idx+1:]...)
			res.hits++
			continue
		}
		live = append(live, s)
	}
	w.shots = live
	res.cleared = len(w.enemies) == 0
	return res
}

// march shifts the formation sideways, dropping a row and reversing at an edge
func (w *world) march() tickResult {
	w.mu.Lock()
	defer w.mu.Unlock()

	var res tickResult
	if len(w.enemies) == 0 {
		res.cleared = true
		return res
	}

	minX, maxX := w.enemies[0].X, w.enemies[0].X
	for _, e := range w.enemies {
		minX = min(minX, e.X)
		maxX = max(maxX, e.X)
	}

	drop := (w.dir > 0 && maxX+w.dir >= float64(w.width)) || (w.dir < 0 && minX+w.dir < 0)
	for i := range w.enemies {
		if drop {
			w.enemies[i].Y++
		} else {
			w.enemies[i].X += w.dir
		}
		if w.enemies[i].Y >= w.player.Y {
			res.overrun = true
		}
	}
	if drop {
		w.dir = -w.dir
	}
	return res
}

// marchInterval is the formation step period for the current level
func (w *world) marchInterval() time.Duration {
	d := marchIntervalBase - time.Duration(w.Level()-1)*marchIntervalPerLevel
	return max(d, marchIntervalMin)
}

// enemyAt returns the index of an enemy occupying p, caller holds mu
func (w *world) enemyAt(p threat.Point) int {
	for i, e := range w.enemies {
		if e.X == p.X && e.Y == p.Y {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
