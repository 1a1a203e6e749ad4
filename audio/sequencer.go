package audio

import (
	"math/rand"

	"github.com/lixenwraith/markov-invaders/constant"
)

// TransitionTable is a row-stochastic matrix over scale-degree indices
type TransitionTable [ScaleDegrees][ScaleDegrees]float64

// Transitions favour stepwise motion upward with wrap-around leaps from the top of the scale
// Shared by every level, only the scale changes
var Transitions = TransitionTable{
	{0.1, 0.3, 0.3, 0.1, 0.1, 0.1, 0, 0, 0, 0},
	{0.1, 0.1, 0.3, 0.3, 0.1, 0.1, 0, 0, 0, 0},
	{0.1, 0.1, 0.1, 0.3, 0.3, 0.1, 0, 0, 0, 0},
	{0, 0.1, 0.1, 0.1, 0.3, 0.3, 0.1, 0, 0, 0},
	{0, 0, 0.1, 0.1, 0.2, 0.3, 0.2, 0.1, 0, 0},
	{0, 0, 0, 0.1, 0.2, 0.2, 0.3, 0.2, 0, 0},
	{0, 0, 0, 0, 0.1, 0.2, 0.2, 0.3, 0.2, 0},
	{0.2, 0, 0, 0, 0, 0.1, 0.2, 0.2, 0.2, 0.1},
	{0.3, 0.2, 0, 0, 0, 0, 0.1, 0.2, 0.1, 0.1},
	{0.3, 0.3, 0.2, 0, 0, 0, 0, 0.1, 0.1, 0},
}

// RandSource yields uniform samples in [0,1), satisfied by *rand.Rand
type RandSource interface {
	Float64() float64
}

// Sequencer walks the transition table to produce melody notes
// Not safe for concurrent use, the engine serializes access
type Sequencer struct {
	table   *TransitionTable
	scale   Scale
	current int
	rng     RandSource
}

// NewSequencer creates a sequencer over the shared table, nil rng uses a time-seeded source
func NewSequencer(rng RandSource) *Sequencer {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Sequencer{
		table:   &Transitions,
		scale:   ScaleForLevel(1),
		current: constant.SequencerStartIndex,
		rng:     rng,
	}
}

// Reset loads a scale and returns the chain to its start degree
func (s *Sequencer) Reset(scale Scale) {
	s.scale = scale
	s.current = constant.SequencerStartIndex
}

// Step draws the next scale-degree index and makes it current
// The first index whose cumulative probability reaches the draw wins, index 0 if rounding leaves none
func (s *Sequencer) Step() int {
	r := s.rng.Float64()
	row := s.table[s.current]

	next := 0
	sum := 0.0
	for i, p := range row {
		sum += p
		if r <= sum {
			next = i
			break
		}
	}

	s.current = next
	return next
}

// NextNote advances the chain and returns the frequency of the new degree
func (s *Sequencer) NextNote() float64 {
	return s.scale[s.Step()]
}

// Current returns the current scale-degree index
func (s *Sequencer) Current() int {
	return s.current
}

// Scale returns the loaded scale
func (s *Sequencer) Scale() Scale {
	return s.scale
}
