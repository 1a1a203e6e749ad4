package status

import (
	"math"
	"sync/atomic"
	"unicode/utf8"
)

// Gauge is an atomically updated float64
// Zero value is ready to use (represents 0.0)
type Gauge struct {
	bits atomic.Uint64
}

// Set stores a float64 value atomically
func (g *Gauge) Set(val float64) {
	g.bits.Store(math.Float64bits(val))
}

// Get loads the float64 value atomically
func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// MaxLabelLen bounds label text in bytes so status lines stay short
const MaxLabelLen = 24

// Label is an atomically swapped short string
type Label struct {
	ptr atomic.Pointer[string]
}

// Set stores the text, truncated to MaxLabelLen on a rune boundary
func (l *Label) Set(val string) {
	if len(val) > MaxLabelLen {
		cut := MaxLabelLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	l.ptr.Store(&val)
}

// Get returns the current text
func (l *Label) Get() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
