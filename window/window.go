// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

// Package window abstracts the window system collaborator: framebuffer
// dimensions, frame presentation, buffer swapping, and event polling.
// The display layer
// consumes this interface and never talks to GLFW directly, so tests and
// offscreen rendering can substitute a headless window.
package window

// Window is the narrow interface the display layer needs from the
// window system.
type Window interface {
	// FramebufferSize returns the current framebuffer dimensions in
	// pixels. This feeds the display viewport and may differ from the
	// logical window size on high-DPI displays.
	FramebufferSize() (width, height int)

	// Present uploads a rendered frame to the back buffer. pix is
	// tightly-packed RGBA with row 0 at the top of the image and stride
	// bytes per row. The frame becomes visible on the next SwapBuffers.
	Present(pix []byte, width, height, stride int)

	// SwapBuffers presents the back buffer. It blocks until the swap
	// completes (including any vsync wait).
	SwapBuffers()

	// PollEvents processes pending window system events.
	PollEvents()

	// ShouldClose reports whether the user has requested the window to
	// close.
	ShouldClose() bool

	// SetShouldClose sets the close-requested flag.
	SetShouldClose(bool)

	// Destroy releases the window. The window must not be used afterward.
	Destroy()
}

// Config holds window creation parameters.
type Config struct {
	// Width and Height are the logical window dimensions in pixels.
	Width, Height int

	// Title is the window title.
	Title string

	// Resizable allows the user to resize the window.
	Resizable bool

	// VSync synchronizes buffer swaps with the display refresh.
	VSync bool
}
