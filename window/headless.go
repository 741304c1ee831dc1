// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package window

// Headless is a Window with no native surface. It records buffer swaps
// instead of presenting, which makes it suitable for tests and
// offscreen rendering on machines without a display.
type Headless struct {
	width, height int
	shouldClose   bool
	swaps         int
	polls         int

	presents       int
	frame          []byte
	frameW, frameH int
	frameStride    int
}

// NewHeadless creates a headless window with the given framebuffer size.
func NewHeadless(width, height int) *Headless {
	return &Headless{width: width, height: height}
}

// FramebufferSize returns the configured dimensions.
func (h *Headless) FramebufferSize() (int, int) { return h.width, h.height }

// Present retains a copy of the frame instead of displaying it.
func (h *Headless) Present(pix []byte, width, height, stride int) {
	h.presents++
	h.frame = append(h.frame[:0], pix...)
	h.frameW, h.frameH = width, height
	h.frameStride = stride
}

// SwapBuffers records a swap.
func (h *Headless) SwapBuffers() { h.swaps++ }

// PollEvents records a poll.
func (h *Headless) PollEvents() { h.polls++ }

// ShouldClose reports the close-requested flag.
func (h *Headless) ShouldClose() bool { return h.shouldClose }

// SetShouldClose sets the close-requested flag.
func (h *Headless) SetShouldClose(v bool) { h.shouldClose = v }

// Destroy is a no-op for headless windows.
func (h *Headless) Destroy() {}

// Swaps returns the number of SwapBuffers calls, for assertions on the
// presentation side of the flip cycle.
func (h *Headless) Swaps() int { return h.swaps }

// Polls returns the number of PollEvents calls.
func (h *Headless) Polls() int { return h.polls }

// Presents returns the number of Present calls.
func (h *Headless) Presents() int { return h.presents }

// Frame returns the most recently presented pixels and their dimensions.
// The slice is nil before the first Present.
func (h *Headless) Frame() (pix []byte, width, height, stride int) {
	return h.frame, h.frameW, h.frameH, h.frameStride
}

var _ Window = (*Headless)(nil)
