// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package display

import "github.com/novage/novage/render"

// Surface is a draw target. The only surface that can be drawn to is
// the screen surface returned by Context.Surface; whether a surface is
// the active render target is an identity comparison against the
// context's screen, not a structural check.
//
// Offscreen surfaces (created with NewSurface) exist so sprite-style
// code can carry sizes around, but drawing to them is unsupported and
// reported as ErrNotActiveTarget rather than silently dropped.
type Surface struct {
	ctx           *Context // nil for offscreen surfaces
	width, height int
}

// NewSurface creates a detached, offscreen surface. Drawing to it is
// unsupported; see Surface.
func NewSurface(width, height int) *Surface {
	return &Surface{width: width, height: height}
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Context returns the owning context, or nil for offscreen surfaces.
func (s *Surface) Context() *Context { return s.ctx }

// DrawTarget validates that the surface can accept draw commands and
// returns the open batch and current viewport. It is the entry point
// the draw package uses for every primitive.
//
// If the context's batch happens to be closed, DrawTarget opens it (the
// lazy BatchClosed -> BatchOpen transition) instead of failing.
func (s *Surface) DrawTarget() (render.Batch, Viewport, error) {
	if s == nil {
		return nil, Viewport{}, ErrNoContext
	}
	if s.ctx == nil {
		return nil, Viewport{}, ErrNotActiveTarget
	}
	c := s.ctx
	if c.state == stateShutdown {
		return nil, Viewport{}, ErrShutdown
	}
	if c.screen != s {
		return nil, Viewport{}, ErrNotActiveTarget
	}
	if err := c.ensureBatch(); err != nil {
		return nil, Viewport{}, err
	}
	return c.batch, c.viewport, nil
}
