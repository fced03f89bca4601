// Package glerr brackets fallible OpenGL calls around the driver's global
// error flag.
//
// OpenGL does not return errors from individual calls. Instead it latches
// error codes in a process-global flag that must be polled with GetError,
// which also clears the code it returns. Because any earlier call may have
// left the flag dirty, every fallible call site follows the same discipline:
// Clear before the call, Check (or MustClean) after it.
package glerr

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// maxDrain bounds the Clear loop. Implementations may latch one code per
// error category; a lost context reports CONTEXT_LOST indefinitely.
const maxDrain = 16

// Clear drains any pending error codes so that a following Check observes
// only errors raised in between. Never assume the flag is clean on entry.
func Clear() {
	for i := 0; i < maxDrain; i++ {
		if gl.GetError() == gl.NO_ERROR {
			return
		}
	}
}

// Check polls the error flag once. It returns nil if the flag is clean, or
// a descriptive error naming op and the decoded code otherwise.
func Check(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: %s", op, Name(code))
	}
	return nil
}

// MustClean panics if the error flag is not clean after an operation the
// driver reported as successful. A dirty flag here means the driver broke
// its documented contract; there is no state left to recover.
func MustClean(op string) {
	if code := gl.GetError(); code != gl.NO_ERROR {
		panic(fmt.Sprintf("glerr: error flag %s set after successful %s", Name(code), op))
	}
}

// Name returns the symbolic name of a GL error code, or its hex value for
// codes outside the core set.
func Name(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "GL_NO_ERROR"
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("0x%04x", code)
	}
}
