package status

import (
	"sort"
	"sync"
)

// Set is a named collection of metrics of type T
// Lookup creates on first use; writers cache the pointer and update it lock-free
type Set[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func NewSet[T any]() *Set[T] {
	return &Set[T]{items: make(map[string]*T)}
}

// Get returns the metric for name, creating it if absent
func (s *Set[T]) Get(name string) *T {
	s.mu.RLock()
	if ptr, ok := s.items[name]; ok {
		s.mu.RUnlock()
		return ptr
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if ptr, ok := s.items[name]; ok {
		return ptr
	}
	ptr := new(T)
	s.items[name] = ptr
	return ptr
}

// Range visits metrics in name order
func (s *Set[T]) Range(fn func(name string, ptr *T)) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.items))
	for name := range s.items {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fn(name, s.items[name])
	}
}

// Len returns the number of registered metrics
func (s *Set[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
