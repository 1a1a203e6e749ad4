package audio

import (
	"math"
	"math/rand"
	"testing"
)

// scriptedRand replays fixed draws
type scriptedRand struct {
	draws []float64
	pos   int
}

func (s *scriptedRand) Float64() float64 {
	v := s.draws[s.pos%len(s.draws)]
	s.pos++
	return v
}

// TestTransitionRowsSum verifies the table is row-stochastic
func TestTransitionRowsSum(t *testing.T) {
	for i, row := range Transitions {
		sum := 0.0
		for _, p := range row {
			if p < 0 {
				t.Errorf("Row %d has negative probability", i)
			}
			sum += p
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("Row %d sums to %f, expected 1", i, sum)
		}
	}
}

// TestSequencerStartsAtDegreeFour verifies fresh and reset state
func TestSequencerStartsAtDegreeFour(t *testing.T) {
	seq := NewSequencer(&scriptedRand{draws: []float64{0.5}})

	if seq.Current() != 4 {
		t.Errorf("Expected start index 4, got %d", seq.Current())
	}

	seq.Step()
	seq.Reset(ScaleForLevel(3))

	if seq.Current() != 4 {
		t.Errorf("Expected reset to index 4, got %d", seq.Current())
	}
	if seq.Scale() != ScaleForLevel(3) {
		t.Error("Expected reset to load the level 3 scale")
	}
}

// TestSequencerScriptedWalk verifies cumulative selection
func TestSequencerScriptedWalk(t *testing.T) {
	// Row 4 cumulative: 2@0.1 3@0.2 4@0.4 5@0.7
	// Row 2 cumulative: 0@0.1 1@0.2 2@0.3 3@0.6 4@0.9 5@1.0
	// Row 5 cumulative: 0@0 so a zero draw lands on degree 0
	// Row 0 cumulative: 0@0.1 1@0.4 2@0.7
	seq := NewSequencer(&scriptedRand{draws: []float64{0.05, 0.95, 0.0, 0.35}})
	seq.Reset(ScaleForLevel(1))

	expected := []int{2, 5, 0, 1}
	for i, want := range expected {
		if got := seq.Step(); got != want {
			t.Errorf("Step %d: expected degree %d, got %d", i, want, got)
		}
	}
}

// TestSequencerNextNote verifies notes come from the loaded scale
func TestSequencerNextNote(t *testing.T) {
	seq := NewSequencer(&scriptedRand{draws: []float64{0.05}})
	seq.Reset(ScaleForLevel(2))

	freq := seq.NextNote()
	if freq != ScaleForLevel(2)[2] {
		t.Errorf("Expected %f, got %f", ScaleForLevel(2)[2], freq)
	}
}

// TestSequencerFallback verifies an unreachable draw falls back to degree 0
func TestSequencerFallback(t *testing.T) {
	var table TransitionTable
	seq := NewSequencer(&scriptedRand{draws: []float64{0.5}})
	seq.table = &table

	if got := seq.Step(); got != 0 {
		t.Errorf("Expected fallback degree 0, got %d", got)
	}
}

// TestSequencerZeroDrawPicksFirstDegree verifies a draw of exactly 0 lands on degree 0 from every row
func TestSequencerZeroDrawPicksFirstDegree(t *testing.T) {
	seq := NewSequencer(&scriptedRand{draws: []float64{0.0}})

	for from := 0; from < ScaleDegrees; from++ {
		seq.current = from
		if got := seq.Step(); got != 0 {
			t.Errorf("Row %d: expected degree 0 for a zero draw, got %d", from, got)
		}
	}
}

// TestSequencerNeverPicksZeroProbability verifies impossible transitions stay impossible for nonzero draws
func TestSequencerNeverPicksZeroProbability(t *testing.T) {
	seq := NewSequencer(rand.New(rand.NewSource(7)))

	for i := 0; i < 10000; i++ {
		from := seq.Current()
		to := seq.Step()
		// A zero draw selects degree 0 from any row
		if to == 0 {
			continue
		}
		if Transitions[from][to] == 0 {
			t.Fatalf("Transition %d -> %d has zero probability", from, to)
		}
	}
}

// TestSequencerEmpiricalDistribution verifies sampled frequencies approach the table
func TestSequencerEmpiricalDistribution(t *testing.T) {
	seq := NewSequencer(rand.New(rand.NewSource(42)))
	const trials = 20000

	var counts [ScaleDegrees]int
	for i := 0; i < trials; i++ {
		seq.Reset(ScaleForLevel(1))
		counts[seq.Step()]++
	}

	for d, c := range counts {
		got := float64(c) / trials
		if math.Abs(got-Transitions[4][d]) > 0.02 {
			t.Errorf("Degree %d: expected frequency %.2f, got %.3f", d, Transitions[4][d], got)
		}
	}
}
