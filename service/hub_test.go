package service

import (
	"errors"
	"testing"
)

type fakeService struct {
	name    string
	deps    []string
	initErr error
	startOK bool
	log     *[]string
	args    []any
}

func (f *fakeService) Name() string { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }

func (f *fakeService) Init(args ...any) error {
	f.args = args
	*f.log = append(*f.log, "init:"+f.name)
	return f.initErr
}

func (f *fakeService) Start() error {
	*f.log = append(*f.log, "start:"+f.name)
	if !f.startOK {
		return errors.New("start failed")
	}
	return nil
}

func (f *fakeService) Stop() error {
	*f.log = append(*f.log, "stop:"+f.name)
	return nil
}

// TestHubRegistrationOrder verifies services init and start in registration order and stop in reverse
func TestHubRegistrationOrder(t *testing.T) {
	var calls []string
	h := NewHub()
	if err := h.Register(&fakeService{name: "screen", startOK: true, log: &calls}); err != nil {
		t.Fatalf("Register screen failed: %v", err)
	}
	if err := h.Register(&fakeService{name: "audio", deps: []string{"screen"}, startOK: true, log: &calls}); err != nil {
		t.Fatalf("Register audio failed: %v", err)
	}

	if err := h.InitAll(map[string][]any{"audio": {true}}); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	h.StopAll()

	expected := []string{
		"init:screen", "init:audio",
		"start:screen", "start:audio",
		"stop:audio", "stop:screen",
	}
	if len(calls) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, calls)
	}
	for i := range expected {
		if calls[i] != expected[i] {
			t.Errorf("Call %d: expected %s, got %s", i, expected[i], calls[i])
		}
	}

	audio := MustGet[*fakeService](h, "audio")
	if len(audio.args) != 1 || audio.args[0] != true {
		t.Errorf("Expected audio to receive its args, got %v", audio.args)
	}
	screen := MustGet[*fakeService](h, "screen")
	if len(screen.args) != 0 {
		t.Errorf("Expected screen to receive no args, got %v", screen.args)
	}

	// Stopped services are not stopped again
	h.StopAll()
	if len(calls) != len(expected) {
		t.Errorf("Expected second StopAll() to do nothing, got %v", calls[len(expected):])
	}
}

// TestHubDuplicateRegister verifies names are unique
func TestHubDuplicateRegister(t *testing.T) {
	var calls []string
	h := NewHub()
	if err := h.Register(&fakeService{name: "audio", log: &calls}); err != nil {
		t.Fatalf("First register failed: %v", err)
	}
	if err := h.Register(&fakeService{name: "audio", log: &calls}); !errors.Is(err, ErrDuplicateService) {
		t.Errorf("Expected ErrDuplicateService, got %v", err)
	}
}

// TestHubMissingDependency verifies a service cannot register before its dependencies
func TestHubMissingDependency(t *testing.T) {
	var calls []string
	h := NewHub()

	err := h.Register(&fakeService{name: "audio", deps: []string{"screen"}, log: &calls})
	if !errors.Is(err, ErrMissingDependency) {
		t.Fatalf("Expected ErrMissingDependency, got %v", err)
	}

	// Rejected services are not run
	if err := h.InitAll(nil); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("Expected no calls, got %v", calls)
	}
}

// TestHubSelfDependency verifies a service cannot depend on itself
func TestHubSelfDependency(t *testing.T) {
	var calls []string
	h := NewHub()

	if err := h.Register(&fakeService{name: "audio", deps: []string{"audio"}, log: &calls}); !errors.Is(err, ErrMissingDependency) {
		t.Errorf("Expected ErrMissingDependency, got %v", err)
	}
}

// TestHubStartRollback verifies a failed start stops every initialized service
func TestHubStartRollback(t *testing.T) {
	var calls []string
	h := NewHub()
	h.Register(&fakeService{name: "screen", startOK: true, log: &calls})
	h.Register(&fakeService{name: "audio", deps: []string{"screen"}, startOK: false, log: &calls})

	if err := h.InitAll(nil); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if err := h.StartAll(); err == nil {
		t.Fatal("Expected StartAll to fail")
	}

	tail := calls[len(calls)-2:]
	if tail[0] != "stop:audio" || tail[1] != "stop:screen" {
		t.Errorf("Expected rollback to stop audio then screen, got %v", calls)
	}

	// Rollback already stopped everything
	n := len(calls)
	h.StopAll()
	if len(calls) != n {
		t.Errorf("Expected StopAll() after rollback to do nothing, got %v", calls[n:])
	}
}

// TestHubInitRollback verifies a failed init stops services already initialized
func TestHubInitRollback(t *testing.T) {
	var calls []string
	h := NewHub()
	h.Register(&fakeService{name: "screen", log: &calls})
	h.Register(&fakeService{name: "audio", deps: []string{"screen"}, initErr: errors.New("boom"), log: &calls})

	if err := h.InitAll(nil); err == nil {
		t.Fatal("Expected InitAll to fail")
	}
	if calls[len(calls)-1] != "stop:screen" {
		t.Errorf("Expected rollback to stop screen, got %v", calls)
	}
}

// TestHubMustGetPanics verifies missing services panic
func TestHubMustGetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected MustGet to panic for unknown service")
		}
	}()
	MustGet[*fakeService](NewHub(), "missing")
}
