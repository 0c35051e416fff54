package export

import "errors"

// Package errors for snapshot export. Both are non-fatal to the render
// loop: the window reports them and keeps running.
var (
	// ErrIO wraps filesystem failures (unwritable path, disk full).
	ErrIO = errors.New("export: write failed")

	// ErrEncode wraps document or image generation failures.
	ErrEncode = errors.New("export: encoding failed")
)
