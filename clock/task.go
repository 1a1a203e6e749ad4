package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// WorkFunc performs one unit of repeating work
// Returns the delay until the next unit and whether the task should continue
type WorkFunc func() (next time.Duration, ok bool)

// Task is a handle to repeating work scheduled on a Clock
// Each unit re-arms the task only after it completes, so units never overlap
type Task struct {
	clock Clock
	work  WorkFunc

	mu    sync.Mutex // Protects timer
	timer Timer

	cancelled atomic.Bool
	finished  atomic.Bool
}

// Repeat schedules work to run after first, then after each delay it returns
func Repeat(c Clock, first time.Duration, work WorkFunc) *Task {
	t := &Task{
		clock: c,
		work:  work,
	}

	t.mu.Lock()
	t.timer = c.AfterFunc(first, t.fire)
	t.mu.Unlock()

	return t
}

func (t *Task) fire() {
	if t.cancelled.Load() {
		return
	}

	next, ok := t.work()
	if !ok {
		t.finished.Store(true)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Cancel may have landed while work ran
	if t.cancelled.Load() {
		return
	}
	t.timer = t.clock.AfterFunc(next, t.fire)
}

// Cancel stops the pending unit and prevents any further ones
// Idempotent; a unit already executing completes but is not re-armed
func (t *Task) Cancel() {
	if !t.cancelled.CompareAndSwap(false, true) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Active returns true while the task will run further units
func (t *Task) Active() bool {
	return !t.cancelled.Load() && !t.finished.Load()
}
