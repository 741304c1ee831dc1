// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package display

import (
	"errors"
	"testing"

	"github.com/novage/novage"
	"github.com/novage/novage/render"
	"github.com/novage/novage/window"
)

func newTestContext(t *testing.T) (*Context, *window.Headless) {
	t.Helper()
	win := window.NewHeadless(64, 64)
	c, err := New(Config{Width: 64, Height: 64, Backend: "software", Window: win})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { c.Quit() })
	return c, win
}

func TestNewEntersSteadyState(t *testing.T) {
	c, _ := newTestContext(t)
	if !c.FrameOpen() {
		t.Error("frame not open after New")
	}
	if !c.BatchOpen() {
		t.Error("batch not open after New")
	}
	if c.Surface() == nil {
		t.Fatal("Surface() = nil")
	}
	if c.Viewport() != (Viewport{Width: 64, Height: 64}) {
		t.Errorf("Viewport = %+v", c.Viewport())
	}
}

func TestNewInvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 64}, {64, 0}, {-1, 64}, {64, -1}} {
		_, err := New(Config{Width: size[0], Height: size[1], Backend: "software",
			Window: window.NewHeadless(1, 1)})
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%dx%d) err = %v, want ErrInvalidSize", size[0], size[1], err)
		}
	}
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New(Config{Width: 8, Height: 8, Backend: "no-such-backend",
		Window: window.NewHeadless(8, 8)})
	if err == nil {
		t.Fatal("New with unknown backend succeeded")
	}
}

func TestFlipPreservesSteadyState(t *testing.T) {
	c, win := newTestContext(t)
	if err := c.Flip(); err != nil {
		t.Fatalf("Flip: %v", err)
	}
	if !c.FrameOpen() || !c.BatchOpen() {
		t.Error("steady state lost after Flip")
	}
	if win.Swaps() != 1 {
		t.Errorf("Swaps() = %d, want 1", win.Swaps())
	}
	if c.Flips() != 1 {
		t.Errorf("Flips() = %d, want 1", c.Flips())
	}
}

func TestEmptyFlipsFlushEmptyBatches(t *testing.T) {
	// Flip with zero draw calls is legal and still submits: each cycle
	// flushes one empty batch and swaps once.
	c, win := newTestContext(t)
	if err := c.Flip(); err != nil {
		t.Fatalf("Flip 1: %v", err)
	}
	if err := c.Flip(); err != nil {
		t.Fatalf("Flip 2: %v", err)
	}
	st := c.Stats()
	if st.BatchesFlushed != 2 {
		t.Errorf("BatchesFlushed = %d, want 2", st.BatchesFlushed)
	}
	if st.DrawCalls != 0 {
		t.Errorf("DrawCalls = %d, want 0 for empty batches", st.DrawCalls)
	}
	if win.Swaps() != 2 {
		t.Errorf("Swaps() = %d, want 2", win.Swaps())
	}
}

func TestFillThenFlip(t *testing.T) {
	c, _ := newTestContext(t)
	if err := c.Fill(novage.Blue); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if err := c.Flip(); err != nil {
		t.Fatalf("Flip: %v", err)
	}
	tgt, ok := c.Renderer().Target().(*render.PixmapTarget)
	if !ok {
		t.Fatal("software renderer target is not a PixmapTarget")
	}
	r, g, b, a := tgt.At(32, 32).RGBA()
	if r != 0 || g != 0 || b != 0xffff || a != 0xffff {
		t.Errorf("pixel after blue fill = %d,%d,%d,%d", r, g, b, a)
	}
}

func TestFlipPresentsFrameToWindow(t *testing.T) {
	// Flip hands the render target's pixels to the window before the
	// buffer swap, so the drawn frame actually reaches the display.
	c, win := newTestContext(t)
	if err := c.Fill(novage.Blue); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if err := c.Flip(); err != nil {
		t.Fatalf("Flip: %v", err)
	}
	if win.Presents() != 1 {
		t.Fatalf("Presents() = %d, want 1", win.Presents())
	}
	pix, w, h, stride := win.Frame()
	if w != 64 || h != 64 {
		t.Fatalf("presented frame = %dx%d, want 64x64", w, h)
	}
	off := 32*stride + 32*4
	if pix[off] != 0 || pix[off+1] != 0 || pix[off+2] != 255 || pix[off+3] != 255 {
		t.Errorf("presented pixel = %v, want blue (0, 0, 255, 255)", pix[off:off+4])
	}
}

func TestQuitIsTerminalAndIdempotent(t *testing.T) {
	c, _ := newTestContext(t)
	if err := c.Quit(); err != nil {
		t.Fatalf("Quit: %v", err)
	}
	if err := c.Quit(); err != nil {
		t.Fatalf("second Quit: %v", err)
	}
	if err := c.Fill(novage.Red); !errors.Is(err, ErrShutdown) {
		t.Errorf("Fill after Quit err = %v, want ErrShutdown", err)
	}
	if err := c.Flip(); !errors.Is(err, ErrShutdown) {
		t.Errorf("Flip after Quit err = %v, want ErrShutdown", err)
	}
	if _, _, err := c.Surface().DrawTarget(); !errors.Is(err, ErrShutdown) {
		t.Errorf("DrawTarget after Quit err = %v, want ErrShutdown", err)
	}
}

func TestDrawTargetReopensClosedBatch(t *testing.T) {
	c, _ := newTestContext(t)
	if err := c.batch.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	c.batchOpen = false

	b, vp, err := c.Surface().DrawTarget()
	if err != nil {
		t.Fatalf("DrawTarget: %v", err)
	}
	if !c.BatchOpen() {
		t.Error("batch not reopened by DrawTarget")
	}
	if vp != c.Viewport() {
		t.Errorf("viewport = %+v, want %+v", vp, c.Viewport())
	}
	if err := b.AppendLine(0, 0, 10, 10, 1, novage.White); err != nil {
		t.Errorf("AppendLine on reopened batch: %v", err)
	}
}

func TestDrawTargetRejectsOffscreenSurface(t *testing.T) {
	_, _ = newTestContext(t)
	off := NewSurface(32, 32)
	if _, _, err := off.DrawTarget(); !errors.Is(err, ErrNotActiveTarget) {
		t.Errorf("offscreen DrawTarget err = %v, want ErrNotActiveTarget", err)
	}
}

func TestDrawTargetNilSurface(t *testing.T) {
	var s *Surface
	if _, _, err := s.DrawTarget(); !errors.Is(err, ErrNoContext) {
		t.Errorf("nil surface DrawTarget err = %v, want ErrNoContext", err)
	}
}

// failRenderer flushes with an error, to exercise the no-recovery path.
type failRenderer struct {
	target *render.PixmapTarget
	batch  failBatch
}

type failBatch struct {
	open bool
	err  error
}

var errBoom = errors.New("boom")

func newFailRenderer() *failRenderer {
	return &failRenderer{
		target: render.NewPixmapTarget(8, 8),
		batch:  failBatch{err: errBoom},
	}
}

func (r *failRenderer) BeginFrame() error           { return nil }
func (r *failRenderer) EndFrame() error             { return nil }
func (r *failRenderer) Clear(novage.RGBA) error     { return nil }
func (r *failRenderer) Batch() render.Batch         { return &r.batch }
func (r *failRenderer) Target() render.RenderTarget { return r.target }
func (r *failRenderer) Close() error                { return nil }

func (b *failBatch) Begin() error { b.open = true; return nil }
func (b *failBatch) End() error   { b.open = false; return nil }
func (b *failBatch) Flush() error { return b.err }
func (b *failBatch) Len() int     { return 0 }

func (b *failBatch) AppendFilledRect(x, y, w, h float32, c novage.RGBA) error { return nil }
func (b *failBatch) AppendFilledCircle(cx, cy, r float32, segments int, c novage.RGBA) error {
	return nil
}
func (b *failBatch) AppendLine(x0, y0, x1, y1, thickness float32, c novage.RGBA) error { return nil }

func TestFlushFailureShutsDown(t *testing.T) {
	c, err := New(Config{Width: 8, Height: 8, Window: window.NewHeadless(8, 8),
		Renderer: newFailRenderer()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Flip(); !errors.Is(err, errBoom) {
		t.Fatalf("Flip err = %v, want wrapped errBoom", err)
	}
	if c.FrameOpen() || c.BatchOpen() {
		t.Error("frame or batch still open after flush failure")
	}
	if err := c.Fill(novage.Red); !errors.Is(err, ErrShutdown) {
		t.Errorf("Fill after failed Flip err = %v, want ErrShutdown", err)
	}
}
