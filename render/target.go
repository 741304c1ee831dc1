// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gputypes"
)

// RenderTarget defines where rendering output goes.
//
// Targets expose their pixel dimensions and format, and CPU-accessible
// targets additionally expose their pixel data. GPU renderers copy their
// output back into the target's pixel buffer after each flush.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// Pixels returns direct access to pixel data, or nil for targets
	// without CPU access. For RGBA format, each pixel is 4 bytes:
	// R, G, B, A.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// Pixel rows follow the image convention: row 0 is the top of the image.
// Renderers are responsible for converting render-space Y coordinates to
// row indices when writing.
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int { return t.img.Rect.Dx() }

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int { return t.img.Rect.Dy() }

// Format returns RGBA8Unorm, the only format PixmapTarget supports.
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns the raw RGBA pixel data.
func (t *PixmapTarget) Pixels() []byte { return t.img.Pix }

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int { return t.img.Stride }

// Image returns the underlying image for inspection or encoding.
func (t *PixmapTarget) Image() *image.RGBA { return t.img }

// FillUniform fills the entire target with a single color.
func (t *PixmapTarget) FillUniform(c color.Color) {
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// At returns the color of the pixel at image coordinates (x, y),
// row 0 at the top.
func (t *PixmapTarget) At(x, y int) color.Color { return t.img.At(x, y) }
