// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/draw"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"

	"github.com/novage/novage"
)

// defaultCircleSegments is the polygon resolution used when a caller
// passes fewer than 3 segments.
const defaultCircleSegments = 32

type cmdKind uint8

const (
	cmdFilledRect cmdKind = iota
	cmdFilledCircle
	cmdLine
)

// command is one accumulated primitive. Coordinates are render space,
// exactly as appended; the conversion to image rows happens at
// rasterization time so that a viewport change between append and flush
// cannot double-apply any mapping.
type command struct {
	kind     cmdKind
	v        [5]float32
	segments int
	color    novage.RGBA
}

// SoftwareRenderer is a CPU implementation of Renderer. Commands are
// accumulated into a batch and rasterized into a PixmapTarget in append
// order when the batch is flushed.
type SoftwareRenderer struct {
	target    *PixmapTarget
	batch     *softwareBatch
	ras       *vector.Rasterizer
	frameOpen bool
	closed    bool
	stats     BatchStats
}

// NewSoftwareRenderer creates a software renderer with a CPU pixel
// target of the given dimensions.
func NewSoftwareRenderer(width, height int) *SoftwareRenderer {
	r := &SoftwareRenderer{
		target: NewPixmapTarget(width, height),
		ras:    vector.NewRasterizer(width, height),
	}
	r.batch = &softwareBatch{r: r}
	return r
}

// BeginFrame opens a frame.
func (r *SoftwareRenderer) BeginFrame() error {
	if r.closed {
		return ErrRendererClosed
	}
	if r.frameOpen {
		return ErrFrameAlreadyOpen
	}
	r.frameOpen = true
	return nil
}

// EndFrame closes the current frame.
func (r *SoftwareRenderer) EndFrame() error {
	if r.closed {
		return ErrRendererClosed
	}
	if !r.frameOpen {
		return ErrFrameNotOpen
	}
	r.frameOpen = false
	return nil
}

// Clear fills the target with the given color immediately.
func (r *SoftwareRenderer) Clear(c novage.RGBA) error {
	if r.closed {
		return ErrRendererClosed
	}
	r.target.FillUniform(c.Color())
	return nil
}

// Batch returns the renderer's command batch.
func (r *SoftwareRenderer) Batch() Batch { return r.batch }

// Target returns the pixel target the renderer draws into.
func (r *SoftwareRenderer) Target() RenderTarget { return r.target }

// Pixmap returns the concrete target for pixel inspection.
func (r *SoftwareRenderer) Pixmap() *PixmapTarget { return r.target }

// Stats returns a snapshot of accumulated batch statistics.
func (r *SoftwareRenderer) Stats() BatchStats { return r.stats }

// Close releases the renderer. Further calls return ErrRendererClosed.
func (r *SoftwareRenderer) Close() error {
	if r.closed {
		return ErrRendererClosed
	}
	r.closed = true
	r.batch.cmds = nil
	return nil
}

// softwareBatch accumulates commands for SoftwareRenderer.
type softwareBatch struct {
	r    *SoftwareRenderer
	cmds []command
	open bool
}

func (b *softwareBatch) Begin() error {
	if b.r.closed {
		return ErrRendererClosed
	}
	if b.open {
		return ErrBatchAlreadyOpen
	}
	b.open = true
	return nil
}

func (b *softwareBatch) append(cmd command) error {
	if b.r.closed {
		return ErrRendererClosed
	}
	if !b.open {
		return ErrBatchNotOpen
	}
	b.cmds = append(b.cmds, cmd)
	b.r.stats.PrimitivesBatched++
	return nil
}

func (b *softwareBatch) AppendFilledRect(x, y, w, h float32, c novage.RGBA) error {
	return b.append(command{kind: cmdFilledRect, v: [5]float32{x, y, w, h}, color: c})
}

func (b *softwareBatch) AppendFilledCircle(cx, cy, r float32, segments int, c novage.RGBA) error {
	if segments < 3 {
		segments = defaultCircleSegments
	}
	return b.append(command{kind: cmdFilledCircle, v: [5]float32{cx, cy, r}, segments: segments, color: c})
}

func (b *softwareBatch) AppendLine(x0, y0, x1, y1, thickness float32, c novage.RGBA) error {
	return b.append(command{kind: cmdLine, v: [5]float32{x0, y0, x1, y1, thickness}, color: c})
}

func (b *softwareBatch) End() error {
	if b.r.closed {
		return ErrRendererClosed
	}
	if !b.open {
		return ErrBatchNotOpen
	}
	b.open = false
	return nil
}

// Flush rasterizes all accumulated commands into the target in append
// order, then resets the batch. Empty batches count as a flush but issue
// no draw call.
func (b *softwareBatch) Flush() error {
	if b.r.closed {
		return ErrRendererClosed
	}
	if b.open {
		return ErrBatchAlreadyOpen
	}
	for i := range b.cmds {
		b.r.rasterize(&b.cmds[i])
	}
	b.r.stats.BatchesFlushed++
	if len(b.cmds) > 0 {
		b.r.stats.DrawCalls++
	}
	b.cmds = b.cmds[:0]
	return nil
}

func (b *softwareBatch) Len() int { return len(b.cmds) }

// rasterize draws a single command into the target.
func (r *SoftwareRenderer) rasterize(cmd *command) {
	switch cmd.kind {
	case cmdFilledRect:
		x, y, w, h := cmd.v[0], cmd.v[1], cmd.v[2], cmd.v[3]
		r.fillPolygon([][2]float32{
			{x, y},
			{x + w, y},
			{x + w, y + h},
			{x, y + h},
		}, cmd.color)

	case cmdFilledCircle:
		cx, cy, radius := cmd.v[0], cmd.v[1], cmd.v[2]
		pts := make([][2]float32, cmd.segments)
		step := 2 * math32.Pi / float32(cmd.segments)
		for i := range pts {
			a := float32(i) * step
			pts[i] = [2]float32{cx + radius*math32.Cos(a), cy + radius*math32.Sin(a)}
		}
		r.fillPolygon(pts, cmd.color)

	case cmdLine:
		x0, y0, x1, y1, t := cmd.v[0], cmd.v[1], cmd.v[2], cmd.v[3], cmd.v[4]
		if t <= 0 {
			t = 1
		}
		dx, dy := x1-x0, y1-y0
		length := math32.Hypot(dx, dy)
		if length == 0 {
			// Degenerate line: draw a square of side t centered on the point.
			half := t / 2
			r.fillPolygon([][2]float32{
				{x0 - half, y0 - half},
				{x0 + half, y0 - half},
				{x0 + half, y0 + half},
				{x0 - half, y0 + half},
			}, cmd.color)
			return
		}
		// Perpendicular offset of half the thickness on each side.
		nx, ny := -dy/length*t/2, dx/length*t/2
		r.fillPolygon([][2]float32{
			{x0 + nx, y0 + ny},
			{x1 + nx, y1 + ny},
			{x1 - nx, y1 - ny},
			{x0 - nx, y0 - ny},
		}, cmd.color)
	}
}

// fillPolygon rasterizes a convex polygon given in render space.
// Render-space Y is converted to image rows here (row 0 at the top);
// this is raster addressing, not a second coordinate mapping.
func (r *SoftwareRenderer) fillPolygon(pts [][2]float32, c novage.RGBA) {
	if len(pts) < 3 {
		return
	}
	w, h := r.target.Width(), r.target.Height()
	fh := float32(h)

	r.ras.Reset(w, h)
	r.ras.DrawOp = draw.Over
	r.ras.MoveTo(pts[0][0], fh-pts[0][1])
	for _, p := range pts[1:] {
		r.ras.LineTo(p[0], fh-p[1])
	}
	r.ras.ClosePath()
	r.ras.Draw(r.target.Image(), r.target.Image().Bounds(), image.NewUniform(c.Color()), image.Point{})
}

var (
	_ Renderer      = (*SoftwareRenderer)(nil)
	_ StatsReporter = (*SoftwareRenderer)(nil)
	_ Batch         = (*softwareBatch)(nil)
)
