package main

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// screenService owns the terminal; the world is laid out for its size before audio polls it
type screenService struct {
	newScreen func() (tcell.Screen, error)
	world     *world

	mu     sync.Mutex
	screen tcell.Screen
}

func newScreenService(w *world, newScreen func() (tcell.Screen, error)) *screenService {
	return &screenService{newScreen: newScreen, world: w}
}

func (s *screenService) Name() string { return "screen" }

func (s *screenService) Dependencies() []string { return nil }

// Init opens the terminal and lays out the formation to fit it
func (s *screenService) Init(args ...any) error {
	screen, err := s.newScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	screen.HideCursor()

	width, height := screen.Size()
	s.world.resize(width, height)
	s.world.reset(s.world.Level())

	s.mu.Lock()
	s.screen = screen
	s.mu.Unlock()
	return nil
}

func (s *screenService) Start() error { return nil }

// Stop restores the terminal
func (s *screenService) Stop() error {
	s.mu.Lock()
	screen := s.screen
	s.screen = nil
	s.mu.Unlock()

	if screen != nil {
		screen.Fini()
	}
	return nil
}

// Screen returns the open terminal, nil before Init or after Stop
func (s *screenService) Screen() tcell.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}
