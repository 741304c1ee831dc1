// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"

	"github.com/novage/novage"
)

// Common renderer errors.
var (
	// ErrBatchNotOpen is returned when appending or ending a batch that
	// has not been begun.
	ErrBatchNotOpen = errors.New("render: batch not open")

	// ErrBatchAlreadyOpen is returned when beginning a batch twice.
	ErrBatchAlreadyOpen = errors.New("render: batch already open")

	// ErrFrameNotOpen is returned when a frame operation arrives outside
	// a begin/end frame pair.
	ErrFrameNotOpen = errors.New("render: frame not open")

	// ErrFrameAlreadyOpen is returned when beginning a frame twice.
	ErrFrameAlreadyOpen = errors.New("render: frame already open")

	// ErrRendererClosed is returned when operating on a closed renderer.
	ErrRendererClosed = errors.New("render: renderer closed")
)

// Batch accumulates drawing commands for submission in a single pass.
//
// A batch must be begun before commands are appended and ended before it
// is flushed. Append operations take render-space coordinates (see the
// package documentation) and a color normalized to [0, 1] per channel.
//
// Batches are not safe for concurrent use. The draw/flip cycle is
// single-threaded by design; a second producer thread would need to
// guard the batch with a mutex or funnel its commands through a
// single-consumer channel drained once per frame.
type Batch interface {
	// Begin opens the batch for command accumulation.
	// Returns ErrBatchAlreadyOpen if the batch is already open.
	Begin() error

	// AppendFilledRect appends a filled axis-aligned rectangle.
	// (x, y) is the bottom-left corner in render space.
	AppendFilledRect(x, y, w, h float32, c novage.RGBA) error

	// AppendFilledCircle appends a filled circle approximated by the
	// given number of segments. Segments below 3 fall back to the
	// implementation default.
	AppendFilledCircle(cx, cy, r float32, segments int, c novage.RGBA) error

	// AppendLine appends a line segment of the given thickness.
	// A thickness of 0 or less draws a hairline (one pixel wide).
	AppendLine(x0, y0, x1, y1, thickness float32, c novage.RGBA) error

	// End closes the batch. No further appends are accepted until the
	// next Begin. Returns ErrBatchNotOpen if the batch is not open.
	End() error

	// Flush submits all accumulated commands to the render target in
	// append order and resets the batch. The batch must be ended first.
	// A flush is not interruptible once started.
	Flush() error

	// Len returns the number of commands currently accumulated.
	Len() int
}

// Renderer executes batched drawing commands against a render target.
//
// The frame protocol is: BeginFrame, accumulate via Batch, EndFrame.
// Clear may be called at any point while a frame is open and takes
// effect immediately on the target.
//
// Renderers are not safe for concurrent use; see Batch.
type Renderer interface {
	// BeginFrame opens a frame.
	BeginFrame() error

	// EndFrame closes the current frame.
	EndFrame() error

	// Clear fills the entire target with the given color.
	Clear(c novage.RGBA) error

	// Batch returns the renderer's command batch. The same batch is
	// reused across frames; at most one batch exists per renderer.
	Batch() Batch

	// Target returns the render target the renderer draws into.
	Target() RenderTarget

	// Close releases the renderer's resources. The renderer must not be
	// used afterward.
	Close() error
}

// StatsReporter is an optional interface for renderers that track
// batching statistics.
type StatsReporter interface {
	// Stats returns a snapshot of accumulated batch statistics.
	Stats() BatchStats
}
