// Package service runs long-lived infrastructure (audio output, terminal screen) through a common lifecycle
package service

// Service defines the lifecycle interface for infrastructure subsystems
//
// Lifecycle:
//  1. Construction, then Hub.Register after its dependencies
//  2. Init(args...) - configuration from parsed flags/env
//  3. Start() - acquire devices, launch goroutines
//  4. [runtime operation]
//  5. Stop() - release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services registered, and so initialized, before this one
	Dependencies() []string

	// Init configures the service from optional service-specific args
	Init(args ...any) error

	// Start begins service operation, called after all services have initialized
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}
