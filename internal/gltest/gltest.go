// Package gltest creates throwaway OpenGL contexts for tests.
//
// Driver-dependent tests call NewContext at the top; when no display or GL
// driver is available (headless CI, missing libraries) the test is skipped
// with a diagnostic instead of failing. Pure-logic tests should not use
// this package.
package gltest

import (
	"runtime"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// NewContext makes a hidden 64x64 window with a 4.1 core context current on
// the calling test's goroutine, which it pins to its OS thread for the
// duration of the test. The context, window and glfw state are torn down in
// t.Cleanup.
//
// The context is created on the test goroutine, not the process main
// thread. That works on the X11, Wayland and win32 backends; on platforms
// that insist on the first thread the creation fails and the test skips.
func NewContext(t *testing.T) {
	t.Helper()
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)

	if err := glfw.Init(); err != nil {
		t.Skipf("OpenGL not available: glfw init: %v", err)
	}
	t.Cleanup(glfw.Terminate)

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	win, err := glfw.CreateWindow(64, 64, "glh test", nil, nil)
	if err != nil {
		t.Skipf("OpenGL not available: create window: %v", err)
	}
	t.Cleanup(win.Destroy)

	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		t.Skipf("OpenGL not available: load functions: %v", err)
	}
}
