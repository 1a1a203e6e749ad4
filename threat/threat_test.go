package threat

import (
	"math"
	"testing"
)

const epsilon = 1e-9

// TestEstimateNoEnemies verifies zero threat with an empty grid for any player position
func TestEstimateNoEnemies(t *testing.T) {
	players := []Point{{0, 0}, {250, 640}, {-10, 9999}}
	for _, p := range players {
		if got := Estimate(p, nil, 700); got != 0 {
			t.Errorf("Expected 0 threat for player %v with no enemies, got %f", p, got)
		}
		if got := Estimate(p, []Point{}, 700); got != 0 {
			t.Errorf("Expected 0 threat for player %v with empty enemies, got %f", p, got)
		}
	}
}

// TestEstimateKnownValues verifies the formula against hand-computed cases
func TestEstimateKnownValues(t *testing.T) {
	const height = 700.0
	player := Point{250, 640}

	tests := []struct {
		name    string
		enemies []Point
		want    float64
	}{
		{"far grid", []Point{{30, 30}, {75, 75}}, 0},
		{"closest at reference", []Point{{0, 640 - 560}}, 0},
		{"half reference", []Point{{0, 640 - 280}, {0, 10}}, 0.5},
		{"touching", []Point{{0, 640}}, 1},
		{"closest wins", []Point{{0, 100}, {0, 640 - 140}, {0, 300}}, 0.75},
	}

	for _, tt := range tests {
		got := Estimate(player, tt.enemies, height)
		if math.Abs(got-tt.want) > epsilon {
			t.Errorf("%s: expected %f, got %f", tt.name, tt.want, got)
		}
	}
}

// TestEstimateMonotonic verifies threat never decreases as the closest enemy approaches
func TestEstimateMonotonic(t *testing.T) {
	const height = 700.0
	player := Point{250, 640}

	prev := -1.0
	for y := 0.0; y <= 640; y += 5 {
		got := Estimate(player, []Point{{100, y}}, height)
		if got < prev-epsilon {
			t.Fatalf("Threat decreased from %f to %f as enemy moved to y=%f", prev, got, y)
		}
		if got < 0 || got > 1 {
			t.Fatalf("Threat %f out of [0,1] for enemy above player", got)
		}
		prev = got
	}
}

// TestEstimateEnemyBelowPlayer documents the unclamped upper bound
func TestEstimateEnemyBelowPlayer(t *testing.T) {
	got := Estimate(Point{0, 500}, []Point{{0, 640}}, 700)
	want := 1 + 140.0/560.0
	if math.Abs(got-want) > epsilon {
		t.Errorf("Expected unclamped threat %f, got %f", want, got)
	}
}

// TestEstimateZeroHeight verifies a degenerate screen yields no threat instead of NaN
func TestEstimateZeroHeight(t *testing.T) {
	if got := Estimate(Point{}, []Point{{0, 0}}, 0); got != 0 {
		t.Errorf("Expected 0 for zero screen height, got %f", got)
	}
}

// TestFromField verifies live field evaluation and snapshot isolation
func TestFromField(t *testing.T) {
	if FromField(nil) != 0 {
		t.Error("Expected nil field to yield 0")
	}

	live := &Snapshot{
		PlayerPos:  Point{250, 640},
		EnemyPos:   []Point{{0, 360}},
		Height:     700,
		LevelIndex: 3,
	}

	snap := Capture(live)
	live.EnemyPos[0].Y = 640

	if got := FromField(snap); math.Abs(got-0.5) > epsilon {
		t.Errorf("Expected captured snapshot threat 0.5, got %f", got)
	}
	if got := FromField(live); math.Abs(got-1) > epsilon {
		t.Errorf("Expected live threat 1, got %f", got)
	}
	if snap.Level() != 3 {
		t.Errorf("Expected captured level 3, got %d", snap.Level())
	}
}
