package render

import "errors"

// Package errors for the GPU renderer.
var (
	// ErrNoBackend is returned when no GPU backend is compiled in or
	// available on this platform.
	ErrNoBackend = errors.New("render: no GPU backend available")

	// ErrNoAdapter is returned when the backend exposes no usable GPU.
	ErrNoAdapter = errors.New("render: no GPU adapters found")

	// ErrInit is returned when device, shader, or pipeline creation fails.
	// Initialization failures are fatal: the caller should abort startup.
	ErrInit = errors.New("render: GPU initialization failed")

	// ErrSurfaceLost is returned when a frame could not be submitted to the
	// presentation surface. The window recreates the surface once before
	// treating the error as fatal.
	ErrSurfaceLost = errors.New("render: surface lost")

	// ErrInvalidTarget is returned when the render target is nil or not a
	// hal texture view.
	ErrInvalidTarget = errors.New("render: invalid render target")
)
