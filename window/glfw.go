// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package window

import (
	"fmt"
	"sync"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/novage/novage"
)

// glfwInitOnce guards glfw.Init, which must run exactly once per process.
var (
	glfwInitOnce sync.Once
	glfwInitErr  error
)

// GLFWWindow is a Window backed by a GLFW native window.
//
// GLFW requires that window creation and event polling happen on the
// main OS thread; callers should lock the main goroutine to it
// (runtime.LockOSThread in main's init) as usual for GLFW programs.
type GLFWWindow struct {
	win *glfw.Window

	// Presentation state: frames are uploaded into tex and blitted to the
	// back buffer through fbo.
	tex        uint32
	fbo        uint32
	texW, texH int
}

// NewGLFW creates a native window. The first call initializes GLFW;
// initialization failure is returned and not retried.
func NewGLFW(cfg Config) (*GLFWWindow, error) {
	glfwInitOnce.Do(func() {
		glfwInitErr = glfw.Init()
	})
	if glfwInitErr != nil {
		return nil, fmt.Errorf("window: glfw init: %w", glfwInitErr)
	}

	glfw.DefaultWindowHints()
	if cfg.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("window: create: %w", err)
	}

	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("window: gl init: %w", err)
	}
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	novage.Logger().Info("window created",
		"width", cfg.Width, "height", cfg.Height, "title", cfg.Title)
	return &GLFWWindow{win: win}, nil
}

// FramebufferSize returns the framebuffer dimensions in pixels.
func (w *GLFWWindow) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

// Present uploads the frame into a texture and blits it to the back
// buffer. pix row 0 is the top of the image while GL's framebuffer row 0
// is its bottom, so the blit flips vertically.
func (w *GLFWWindow) Present(pix []byte, width, height, stride int) {
	if len(pix) == 0 || width <= 0 || height <= 0 {
		return
	}
	if w.tex == 0 {
		gl.GenTextures(1, &w.tex)
		gl.GenFramebuffers(1, &w.fbo)
	}
	gl.BindTexture(gl.TEXTURE_2D, w.tex)
	if width != w.texW || height != w.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height),
			0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		w.texW, w.texH = width, height
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(stride/4))
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, w.fbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0,
		gl.TEXTURE_2D, w.tex, 0)
	fbw, fbh := w.win.GetFramebufferSize()
	gl.BlitFramebuffer(0, 0, int32(width), int32(height),
		0, int32(fbh), int32(fbw), 0,
		gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
}

// SwapBuffers presents the back buffer.
func (w *GLFWWindow) SwapBuffers() {
	w.win.SwapBuffers()
}

// PollEvents processes pending window system events.
func (w *GLFWWindow) PollEvents() {
	glfw.PollEvents()
}

// ShouldClose reports whether the user requested the window to close.
func (w *GLFWWindow) ShouldClose() bool {
	return w.win.ShouldClose()
}

// SetShouldClose sets the close-requested flag.
func (w *GLFWWindow) SetShouldClose(v bool) {
	w.win.SetShouldClose(v)
}

// Destroy releases the native window. GLFW itself stays initialized for
// the remainder of the process; call Terminate at program exit if needed.
func (w *GLFWWindow) Destroy() {
	if w.tex != 0 {
		gl.DeleteFramebuffers(1, &w.fbo)
		gl.DeleteTextures(1, &w.tex)
		w.tex, w.fbo = 0, 0
	}
	w.win.Destroy()
}

// Terminate shuts down GLFW. Call at most once, after all windows are
// destroyed.
func Terminate() {
	glfw.Terminate()
}

var _ Window = (*GLFWWindow)(nil)
