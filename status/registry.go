// Package status publishes live engine telemetry for status lines and tests
package status

import (
	"fmt"
	"sort"
	"strconv"
	"sync/atomic"
)

// Registry groups metrics by kind
// Producers resolve pointers once at construction, readers poll at frame rate
type Registry struct {
	Counters *Set[atomic.Uint64]
	Gauges   *Set[Gauge]
	Flags    *Set[atomic.Bool]
	Labels   *Set[Label]
}

func NewRegistry() *Registry {
	return &Registry{
		Counters: NewSet[atomic.Uint64](),
		Gauges:   NewSet[Gauge](),
		Flags:    NewSet[atomic.Bool](),
		Labels:   NewSet[Label](),
	}
}

// Reading is one formatted metric
type Reading struct {
	Name  string
	Value string
}

// Snapshot formats every metric, sorted by name
func (r *Registry) Snapshot() []Reading {
	out := make([]Reading, 0, r.Len())

	r.Counters.Range(func(name string, c *atomic.Uint64) {
		out = append(out, Reading{name, strconv.FormatUint(c.Load(), 10)})
	})
	r.Gauges.Range(func(name string, g *Gauge) {
		out = append(out, Reading{name, fmt.Sprintf("%.2f", g.Get())})
	})
	r.Flags.Range(func(name string, f *atomic.Bool) {
		out = append(out, Reading{name, strconv.FormatBool(f.Load())})
	})
	r.Labels.Range(func(name string, l *Label) {
		out = append(out, Reading{name, l.Get()})
	})

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns total metrics across all kinds
func (r *Registry) Len() int {
	return r.Counters.Len() + r.Gauges.Len() + r.Flags.Len() + r.Labels.Len()
}
