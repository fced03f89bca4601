// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package window opens GLFW windows with an OpenGL 4.1 core profile
// context, the environment the handle types in the root package are
// written against.
//
// OpenGL contexts have thread affinity. Call [Init] from the main
// goroutine; it pins that goroutine to its OS thread, and every other
// function in this package must then be called from the same
// goroutine.
package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/glh"
)

// Init initializes GLFW and pins the calling goroutine to its OS
// thread. It must be called from the main goroutine before any other
// function in this package, and paired with [Terminate].
func Init() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("window: init glfw: %w", err)
	}
	return nil
}

// Terminate destroys any remaining windows and releases GLFW.
// No OpenGL call may follow it.
func Terminate() {
	glfw.Terminate()
}

// Config holds window creation parameters.
type Config struct {
	// Title is the initial window title.
	// Default: "glh"
	Title string

	// Width and Height are the initial window size in screen
	// coordinates. On high-DPI displays the framebuffer may be larger;
	// Size reports the framebuffer.
	// Default: 800x600
	Width  int
	Height int

	// Resizable lets the user resize the window. The viewport tracks
	// the framebuffer size either way.
	// Default: true
	Resizable bool

	// Visible shows the window on creation. Hidden windows still carry
	// a usable context, which offscreen tools and tests rely on.
	// Default: true
	Visible bool

	// VSync synchronizes buffer swaps with the display refresh.
	// Default: true
	VSync bool

	// CloseOnEscape requests window close when Escape is pressed.
	// Default: true
	CloseOnEscape bool
}

// DefaultConfig returns the configuration the examples use: a
// resizable, visible 800x600 window with vsync on and Escape closing
// it.
func DefaultConfig() Config {
	return Config{
		Title:         "glh",
		Width:         800,
		Height:        600,
		Resizable:     true,
		Visible:       true,
		VSync:         true,
		CloseOnEscape: true,
	}
}

// Validate checks if the configuration is valid and returns an error
// if not.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window: size %dx%d is not positive", c.Width, c.Height)
	}
	return nil
}

// Window owns a GLFW window whose OpenGL context is current on the
// goroutine that created it.
type Window struct {
	win *glfw.Window
}

// New creates a window, makes its context current and loads the OpenGL
// function pointers. [Init] must have succeeded first.
//
// The context is fixed at OpenGL 4.1 core, forward-compatible: the
// newest version available on every desktop platform, including the
// macOS ceiling.
func New(cfg Config) (*Window, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolHint(cfg.Resizable))
	glfw.WindowHint(glfw.Visible, boolHint(cfg.Visible))

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("window: create %dx%d window: %w", cfg.Width, cfg.Height, err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("window: load OpenGL functions: %w", err)
	}

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	fbWidth, fbHeight := win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})

	if cfg.CloseOnEscape {
		win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
			if key == glfw.KeyEscape && action == glfw.Press {
				w.SetShouldClose(true)
			}
		})
	}

	glh.Logger().Info("window created",
		"width", cfg.Width,
		"height", cfg.Height,
		"gl_version", gl.GoStr(gl.GetString(gl.VERSION)),
		"gl_renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)
	return &Window{win: win}, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// ShouldClose reports whether the window has been asked to close.
func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// Close asks the window to close; the next [Window.Run] iteration or
// [Window.ShouldClose] call observes it.
func (w *Window) Close() {
	w.win.SetShouldClose(true)
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
}

// PollEvents processes pending input and window events.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// Size returns the current framebuffer size in pixels.
func (w *Window) Size() (width, height int) {
	return w.win.GetFramebufferSize()
}

// Time returns the seconds elapsed since [Init].
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

// SetClearColor sets the color [Window.Run] clears each frame to.
func (w *Window) SetClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

// Run drives a minimal render loop: each frame it clears the color and
// depth buffers, calls frame, swaps buffers and polls events. It
// returns nil once the window is asked to close, or the first error
// frame returns.
func (w *Window) Run(frame func() error) error {
	for !w.ShouldClose() {
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		if err := frame(); err != nil {
			return err
		}
		w.SwapBuffers()
		w.PollEvents()
	}
	return nil
}

// Destroy closes the window and releases its context. Idempotent.
func (w *Window) Destroy() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
	glh.Logger().Debug("window destroyed")
}
