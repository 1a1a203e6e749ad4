package service

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

var (
	ErrDuplicateService  = errors.New("service already registered")
	ErrMissingDependency = errors.New("dependency not registered")
)

// Hub runs services in registration order and stops them in reverse
// A service registers after everything it depends on, so the order never needs sorting
type Hub struct {
	mu      sync.Mutex
	byName  map[string]Service
	order   []Service
	running []Service // Initialized or started, stopped on rollback and StopAll
}

// NewHub creates an empty service hub
func NewHub() *Hub {
	return &Hub{byName: make(map[string]Service)}
}

// Register appends svc; its dependencies must already be registered
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.byName[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateService, name)
	}
	for _, dep := range svc.Dependencies() {
		if _, ok := h.byName[dep]; !ok {
			return fmt.Errorf("%w: %s needs %s", ErrMissingDependency, name, dep)
		}
	}

	h.byName[name] = svc
	h.order = append(h.order, svc)
	return nil
}

// MustGet retrieves a service and casts to type T
// Panics if service not found or type mismatch
func MustGet[T any](h *Hub, name string) T {
	h.mu.Lock()
	svc, ok := h.byName[name]
	h.mu.Unlock()

	if !ok {
		panic(fmt.Sprintf("service not found: %s", name))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("service %s: type mismatch, got %T", name, svc))
	}
	return typed
}

// InitAll calls Init on every service with its args from the map
// A failure stops the services already initialized
func (h *Hub) InitAll(args map[string][]any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.running = h.running[:0]
	for _, svc := range h.order {
		if err := svc.Init(args[svc.Name()]...); err != nil {
			h.unwindLocked()
			return fmt.Errorf("service %s init: %w", svc.Name(), err)
		}
		h.running = append(h.running, svc)
	}
	return nil
}

// StartAll calls Start on every service
// A failure stops every initialized service, started or not
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, svc := range h.order {
		if err := svc.Start(); err != nil {
			h.unwindLocked()
			return fmt.Errorf("service %s start: %w", svc.Name(), err)
		}
	}
	return nil
}

// StopAll stops services in reverse registration order
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unwindLocked()
}

// unwindLocked stops running services last first, logging failures so every one is reached
func (h *Hub) unwindLocked() {
	for i := len(h.running) - 1; i >= 0; i-- {
		svc := h.running[i]
		if err := svc.Stop(); err != nil {
			log.Printf("service %s stop: %v", svc.Name(), err)
		}
	}
	h.running = h.running[:0]
}
