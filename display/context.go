// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

// Package display owns the frame/batch lifecycle: it opens a window,
// selects a renderer backend, and keeps exactly one command batch open
// between Flip calls. It is the Go rendering of pygame's display module,
// with the process-global state replaced by an explicit Context owned by
// the main loop.
//
// The lifecycle is a small state machine. After New succeeds the context
// is in its single steady state: frame open, batch open. Flip closes and
// flushes the batch, ends the frame, swaps buffers, and immediately
// reopens both, so the steady state also holds after every Flip. Quit
// moves the context to its terminal shutdown state; every operation
// afterward reports ErrShutdown rather than touching released resources.
//
// The whole draw/flip cycle is single-threaded and synchronous: every
// operation blocks until complete, and frame N's flush never overlaps
// frame N+1's accumulation. Introducing a second producer thread would
// require guarding the batch with a mutex or funneling draws through a
// single-consumer channel drained once per frame.
package display

import (
	"errors"
	"fmt"

	"github.com/novage/novage"
	"github.com/novage/novage/backend"
	"github.com/novage/novage/render"
	"github.com/novage/novage/window"
)

// Sequencing and target errors.
var (
	// ErrShutdown is returned for any operation on a context after Quit.
	ErrShutdown = errors.New("display: context is shut down")

	// ErrNoContext is returned when a draw operation arrives with no
	// context, e.g. on a nil surface.
	ErrNoContext = errors.New("display: no context (call display.New first)")

	// ErrNotActiveTarget is returned when drawing targets a surface that
	// is not the context's screen. Offscreen surface drawing is
	// unsupported; the call is rejected rather than corrupting the
	// active batch, and the frame continues.
	ErrNotActiveTarget = errors.New("display: surface is not the active render target")

	// ErrInvalidSize is returned when a context is created with
	// non-positive dimensions.
	ErrInvalidSize = errors.New("display: width and height must be positive")
)

// Viewport holds the pixel dimensions of the active render target. It
// is recorded when the context is created and consulted on every
// translated draw call.
type Viewport struct {
	Width, Height int
}

// Config holds context creation parameters.
type Config struct {
	// Width and Height are the window dimensions in pixels.
	Width, Height int

	// Title is the window title.
	Title string

	// Backend selects a renderer backend by name. Empty selects the
	// highest-priority available backend.
	Backend string

	// Window substitutes a window implementation. Nil creates a native
	// GLFW window; pass window.NewHeadless for offscreen rendering and
	// tests. The context destroys only windows it created itself.
	Window window.Window

	// Renderer substitutes a renderer directly, bypassing backend
	// selection. Nil selects via the backend registry.
	Renderer render.Renderer

	// VSync synchronizes buffer swaps with the display refresh.
	// Only meaningful for windows the context creates itself.
	VSync bool
}

type contextState uint8

const (
	stateReady contextState = iota
	stateShutdown
)

// Context is the render context: the window, the renderer, the viewport,
// and the one open batch. It is created by New, driven by Fill/Flip, and
// released by Quit.
type Context struct {
	win       window.Window
	ownWindow bool

	back     backend.RenderBackend // nil when Config.Renderer was injected
	renderer render.Renderer
	batch    render.Batch

	viewport Viewport
	screen   *Surface

	state     contextState
	frameOpen bool
	batchOpen bool
	flips     uint64
}

// New creates a window and renderer and enters the steady rendering
// state (frame open, batch open). It is the equivalent of pygame's
// display.set_mode and is expected to run once per window lifetime.
//
// Collaborator failures (window creation, backend initialization) are
// returned immediately and are not retried.
func New(cfg Config) (*Context, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrInvalidSize
	}

	c := &Context{}

	if cfg.Window != nil {
		c.win = cfg.Window
	} else {
		win, err := window.NewGLFW(window.Config{
			Width:     cfg.Width,
			Height:    cfg.Height,
			Title:     cfg.Title,
			Resizable: false,
			VSync:     cfg.VSync,
		})
		if err != nil {
			return nil, err
		}
		c.win = win
		c.ownWindow = true
	}

	fbw, fbh := c.win.FramebufferSize()
	c.viewport = Viewport{Width: fbw, Height: fbh}

	if cfg.Renderer != nil {
		c.renderer = cfg.Renderer
	} else {
		var (
			b   backend.RenderBackend
			err error
		)
		if cfg.Backend != "" {
			b, err = backend.Get(cfg.Backend)
		} else {
			b, err = backend.Default()
		}
		if err != nil {
			c.releaseWindow()
			return nil, err
		}
		if err := b.Init(); err != nil {
			c.releaseWindow()
			return nil, fmt.Errorf("display: init backend %q: %w", b.Name(), err)
		}
		r, err := b.NewRenderer(fbw, fbh)
		if err != nil {
			b.Close()
			c.releaseWindow()
			return nil, fmt.Errorf("display: create renderer: %w", err)
		}
		c.back = b
		c.renderer = r
		novage.Logger().Info("display: backend selected", "backend", b.Name(),
			"width", fbw, "height", fbh)
	}
	c.batch = c.renderer.Batch()

	if err := c.renderer.BeginFrame(); err != nil {
		c.release()
		return nil, fmt.Errorf("display: begin frame: %w", err)
	}
	c.frameOpen = true
	if err := c.batch.Begin(); err != nil {
		c.release()
		return nil, fmt.Errorf("display: begin batch: %w", err)
	}
	c.batchOpen = true

	c.screen = &Surface{ctx: c, width: cfg.Width, height: cfg.Height}
	return c, nil
}

// Surface returns the screen surface, the only valid draw target.
func (c *Context) Surface() *Surface { return c.screen }

// Window returns the window collaborator, for event polling.
func (c *Context) Window() window.Window { return c.win }

// Viewport returns the pixel dimensions of the render target.
func (c *Context) Viewport() Viewport { return c.viewport }

// Renderer returns the renderer collaborator.
func (c *Context) Renderer() render.Renderer { return c.renderer }

// FrameOpen reports whether a frame is open. True in the steady state.
func (c *Context) FrameOpen() bool { return c.frameOpen }

// BatchOpen reports whether the batch is open. True in the steady state.
func (c *Context) BatchOpen() bool { return c.batchOpen }

// Flips returns the number of completed buffer swaps.
func (c *Context) Flips() uint64 { return c.flips }

// Stats returns batching statistics if the renderer tracks them.
func (c *Context) Stats() render.BatchStats {
	if sr, ok := c.renderer.(render.StatsReporter); ok {
		return sr.Stats()
	}
	return render.BatchStats{}
}

// Fill clears the entire screen to the given color, like pygame's
// surface.fill on the display surface. The clear takes effect
// immediately; primitives drawn afterward composite over it.
func (c *Context) Fill(col novage.RGBA) error {
	if c.state == stateShutdown {
		return ErrShutdown
	}
	return c.renderer.Clear(col)
}

// Flip submits the frame: it ends and flushes the batch (commands are
// submitted in draw-call order; 2D primitives are painter's-algorithm
// composited), ends the frame, presents the render target's pixels to
// the window, swaps the presentation buffer, and immediately opens the
// next frame and batch. The context state is unchanged by a successful
// Flip.
//
// Flip with no preceding draw calls is legal: it flushes an empty batch
// and presents whatever Fill established.
//
// If the flush fails mid-submission the batch is lost; the context shuts
// down rather than resuming into a possibly destroyed render target.
func (c *Context) Flip() error {
	if c.state == stateShutdown {
		return ErrShutdown
	}

	if c.batchOpen {
		if err := c.batch.End(); err != nil {
			return c.fail(fmt.Errorf("display: end batch: %w", err))
		}
		c.batchOpen = false
	}
	if err := c.batch.Flush(); err != nil {
		return c.fail(fmt.Errorf("display: flush batch: %w", err))
	}
	if err := c.renderer.EndFrame(); err != nil {
		return c.fail(fmt.Errorf("display: end frame: %w", err))
	}
	c.frameOpen = false

	c.present()
	c.win.SwapBuffers()
	c.flips++

	if err := c.renderer.BeginFrame(); err != nil {
		return c.fail(fmt.Errorf("display: begin frame: %w", err))
	}
	c.frameOpen = true
	if err := c.batch.Begin(); err != nil {
		return c.fail(fmt.Errorf("display: begin batch: %w", err))
	}
	c.batchOpen = true

	return nil
}

// Quit releases the batch, renderer, backend, and window and moves the
// context to its terminal state. Quit is idempotent; all other
// operations report ErrShutdown afterward.
func (c *Context) Quit() error {
	if c.state == stateShutdown {
		return nil
	}
	c.release()
	return nil
}

// present moves the flushed frame from the render target to the window.
// Targets without CPU-accessible pixels have nothing to upload.
func (c *Context) present() {
	tgt := c.renderer.Target()
	if tgt == nil {
		return
	}
	pix := tgt.Pixels()
	if pix == nil {
		return
	}
	c.win.Present(pix, tgt.Width(), tgt.Height(), tgt.Stride())
}

// ensureBatch opens the batch if it is closed: the explicit
// BatchClosed -> BatchOpen transition. In the steady state this is a
// no-op; it exists so a draw call arriving with the batch closed opens
// one instead of failing.
func (c *Context) ensureBatch() error {
	if c.batchOpen {
		return nil
	}
	if err := c.batch.Begin(); err != nil && !errors.Is(err, render.ErrBatchAlreadyOpen) {
		return fmt.Errorf("display: reopen batch: %w", err)
	}
	c.batchOpen = true
	return nil
}

// fail releases everything and reports err. Used when a flush or frame
// transition fails: there is no partial-batch recovery.
func (c *Context) fail(err error) error {
	novage.Logger().Warn("display: shutting down after render failure", "err", err)
	c.release()
	return err
}

func (c *Context) release() {
	if c.state == stateShutdown {
		return
	}
	c.state = stateShutdown
	c.frameOpen = false
	c.batchOpen = false
	if c.renderer != nil {
		if err := c.renderer.Close(); err != nil {
			novage.Logger().Warn("display: close renderer", "err", err)
		}
	}
	if c.back != nil {
		c.back.Close()
	}
	c.releaseWindow()
}

func (c *Context) releaseWindow() {
	if c.ownWindow && c.win != nil {
		c.win.Destroy()
		c.win = nil
	}
}
