package glerr

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gogpu/glh/internal/gltest"
)

func TestName(t *testing.T) {
	tests := []struct {
		code uint32
		want string
	}{
		{gl.NO_ERROR, "GL_NO_ERROR"},
		{gl.INVALID_ENUM, "GL_INVALID_ENUM"},
		{gl.INVALID_VALUE, "GL_INVALID_VALUE"},
		{gl.INVALID_OPERATION, "GL_INVALID_OPERATION"},
		{gl.INVALID_FRAMEBUFFER_OPERATION, "GL_INVALID_FRAMEBUFFER_OPERATION"},
		{gl.OUT_OF_MEMORY, "GL_OUT_OF_MEMORY"},
		{0x9999, "0x9999"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Name(tt.code); got != tt.want {
				t.Errorf("Name(%#x) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

// latchError deliberately dirties the error flag. 0xFFFF is not a
// capability, so Enable must report GL_INVALID_ENUM.
func latchError() {
	gl.Enable(0xFFFF)
}

func TestCheckCleanFlag(t *testing.T) {
	gltest.NewContext(t)
	Clear()

	if err := Check("test op"); err != nil {
		t.Errorf("Check() = %v on a clean flag, want nil", err)
	}
}

func TestCheckDirtyFlag(t *testing.T) {
	gltest.NewContext(t)
	Clear()
	latchError()

	err := Check("enabling bogus capability")
	if err == nil {
		t.Fatal("Check() = nil after an erroring call")
	}
	if !strings.Contains(err.Error(), "enabling bogus capability") {
		t.Errorf("error = %q, want the op named", err)
	}
	if !strings.Contains(err.Error(), "GL_INVALID_ENUM") {
		t.Errorf("error = %q, want the code decoded", err)
	}

	// Check consumes the code it reports; the flag is clean again.
	if err := Check("followup"); err != nil {
		t.Errorf("Check() = %v after a consumed error, want nil", err)
	}
}

func TestClearDrainsFlag(t *testing.T) {
	gltest.NewContext(t)
	latchError()
	latchError()

	Clear()
	if err := Check("after clear"); err != nil {
		t.Errorf("Check() = %v after Clear, want nil", err)
	}
}

func TestMustCleanNoopOnCleanFlag(t *testing.T) {
	gltest.NewContext(t)
	Clear()

	// Must return normally.
	MustClean("test operation")
}

func TestMustCleanPanicsOnDirtyFlag(t *testing.T) {
	gltest.NewContext(t)
	Clear()
	latchError()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustClean did not panic on a dirty flag")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "GL_INVALID_ENUM") {
			t.Errorf("panic = %q, want the code decoded", msg)
		}
		if !strings.Contains(msg, "test operation") {
			t.Errorf("panic = %q, want the op named", msg)
		}
	}()
	MustClean("test operation")
}
