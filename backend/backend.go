// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

// Package backend manages renderer backends.
//
// Backends create render.Renderer instances. They are registered with a
// priority so the display layer can select the best available one
// without knowing the concrete implementations. The software backend is
// always registered; the GPU backend registers itself when its package
// is imported:
//
//	import _ "github.com/novage/novage/backend/wgpu"
package backend

import (
	"errors"

	"github.com/novage/novage/render"
)

// Common backend errors.
var (
	// ErrNotRegistered is returned when a requested backend name is unknown.
	ErrNotRegistered = errors.New("backend: not registered")

	// ErrNoneAvailable is returned when no registered backend is available.
	ErrNoneAvailable = errors.New("backend: none available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Standard priorities. Higher is preferred.
const (
	// PriorityGPU is used by hardware-accelerated backends.
	PriorityGPU = 100

	// PrioritySoftware is used by pure CPU backends.
	PrioritySoftware = 10
)

// RenderBackend creates renderers for a particular rendering
// implementation.
type RenderBackend interface {
	// Name returns the backend identifier (e.g., "software", "wgpu").
	Name() string

	// Init initializes the backend. It must be called before NewRenderer.
	// Initialization failure is propagated; callers must not retry (a
	// failed GPU context creation is not safe to automate).
	Init() error

	// Close releases all backend resources. The backend must not be
	// used after Close.
	Close()

	// NewRenderer creates a renderer with a target of the given pixel
	// dimensions.
	NewRenderer(width, height int) (render.Renderer, error)
}
