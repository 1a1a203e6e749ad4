package threat

// Snapshot is a value Field, used to freeze game state for a single poll
type Snapshot struct {
	PlayerPos  Point
	EnemyPos   []Point
	Height     float64
	LevelIndex int
}

func (s Snapshot) Player() Point { return s.PlayerPos }
func (s Snapshot) Enemies() []Point { return s.EnemyPos }
func (s Snapshot) ScreenHeight() float64 { return s.Height }
func (s Snapshot) Level() int { return s.LevelIndex }

// Capture copies a live field so later mutation does not affect the snapshot
func Capture(f Field) Snapshot {
	enemies := f.Enemies()
	cp := make([]Point, len(enemies))
	copy(cp, enemies)
	return Snapshot{
		PlayerPos:  f.Player(),
		EnemyPos:   cp,
		Height:     f.ScreenHeight(),
		LevelIndex: f.Level(),
	}
}
