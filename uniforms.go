package glh

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/glh/internal/glerr"
)

// Uniform setters. Each call resolves the uniform location by name
// anew, so renaming or re-linking concerns never produce stale writes;
// the cost is one GetUniformLocation round trip per call.
//
// The driver applies glUniform updates to the program currently in
// use, so the receiver must be made active with [Program.Use] before
// any Set call. A name that does not resolve (unknown, or declared but
// optimized out as inactive) yields an invalid-name error; a value the
// driver rejects for the resolved location yields an invalid-value
// error decoding the driver's reason.

// setUniform runs the shared resolve-clear-set-check sequence around a
// typed update.
func (p *Program) setUniform(name string, value any, set func(loc int32)) error {
	if p.id == 0 {
		return errors.New("glh: program is deleted")
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc == -1 {
		return fmt.Errorf("glh: invalid uniform name %q", name)
	}
	glerr.Clear()
	set(loc)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("glh: invalid uniform value %v for %q: %s", value, name, glerr.Name(code))
	}
	return nil
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) error {
	return p.setUniform(name, v, func(loc int32) {
		gl.Uniform1f(loc, v)
	})
}

// SetInt sets an int uniform. Sampler uniforms are set this way, with
// the texture unit index as the value.
func (p *Program) SetInt(name string, v int32) error {
	return p.setUniform(name, v, func(loc int32) {
		gl.Uniform1i(loc, v)
	})
}

// SetVec2 sets a vec2 uniform.
func (p *Program) SetVec2(name string, v mgl32.Vec2) error {
	return p.setUniform(name, v, func(loc int32) {
		gl.Uniform2f(loc, v.X(), v.Y())
	})
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) error {
	return p.setUniform(name, v, func(loc int32) {
		gl.Uniform3f(loc, v.X(), v.Y(), v.Z())
	})
}

// SetVec4 sets a vec4 uniform.
func (p *Program) SetVec4(name string, v mgl32.Vec4) error {
	return p.setUniform(name, v, func(loc int32) {
		gl.Uniform4f(loc, v.X(), v.Y(), v.Z(), v.W())
	})
}

// SetMat4 sets a mat4 uniform. The matrix is passed in mgl32's native
// column-major layout, so no transposition happens on the way to the
// driver.
func (p *Program) SetMat4(name string, m mgl32.Mat4) error {
	return p.setUniform(name, m, func(loc int32) {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	})
}
