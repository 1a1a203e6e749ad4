package audio

import (
	"time"

	"github.com/lixenwraith/markov-invaders/constant"
)

// NoteInterval returns the delay before the next note
// Later levels start faster, threat shortens the gap by up to 70%, result clamped to [100ms, 500ms]
func NoteInterval(level int, threat float64) time.Duration {
	base := constant.NoteIntervalBaseMs - float64(level)*constant.NoteIntervalPerLevelMs
	ms := base * (1 - threat*constant.ThreatTempoScale)

	if ms < constant.NoteIntervalMinMs {
		ms = constant.NoteIntervalMinMs
	} else if ms > constant.NoteIntervalMaxMs {
		ms = constant.NoteIntervalMaxMs
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// NoteDuration returns how long every voice of a note sounds
// Shrinks with threat; floored so an unclamped threat above 1 cannot collapse the envelope
func NoteDuration(threat float64) time.Duration {
	d := constant.NoteDurationBase - time.Duration(threat*float64(constant.NoteDurationThreatCut))
	if d < constant.NoteDurationMin {
		d = constant.NoteDurationMin
	}
	return d
}
