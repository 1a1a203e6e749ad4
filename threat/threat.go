// Package threat derives a normalized danger level from enemy proximity
package threat

// ReferenceFraction is the share of screen height at which threat reaches zero
const ReferenceFraction = 0.8

// Point is a screen position in pixels, y grows downward
type Point struct {
	X, Y float64
}

// Field is the read-only view of live game state polled by the audio engine
type Field interface {
	Player() Point
	Enemies() []Point
	ScreenHeight() float64
	Level() int
}

// Estimate returns 1 - closest/(0.8*screenHeight), floored at 0
// closest is the smallest playerY-enemyY, seeded with screenHeight
// An enemy below the player yields a negative distance and a threat above 1; not clamped
func Estimate(player Point, enemies []Point, screenHeight float64) float64 {
	if len(enemies) == 0 {
		return 0
	}

	closest := screenHeight
	for _, e := range enemies {
		if d := player.Y - e.Y; d < closest {
			closest = d
		}
	}

	reference := screenHeight * ReferenceFraction
	if reference <= 0 {
		return 0
	}

	level := 1 - closest/reference
	if level < 0 {
		return 0
	}
	return level
}

// FromField evaluates Estimate against a live field, nil yields 0
func FromField(f Field) float64 {
	if f == nil {
		return 0
	}
	return Estimate(f.Player(), f.Enemies(), f.ScreenHeight())
}
