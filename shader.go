package glh

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gogpu/glh/internal/glerr"
)

// Shader is the interface shared by the five shader stage handles.
//
// Shader is sealed: only the concrete types in this package implement it,
// keeping the set of stages closed to exactly the programmable stages of
// the OpenGL 4.1 pipeline. Use it to treat shaders of different stages
// uniformly, for example when deleting a batch of them.
type Shader interface {
	// ID returns the raw OpenGL shader object name, or 0 after Delete.
	ID() uint32
	// Stage reports which pipeline stage the shader belongs to.
	Stage() Stage
	// Delete destroys the underlying shader object. Idempotent.
	Delete()

	sealedShader()
}

// compileShader creates a shader object for the given stage, uploads
// source, and compiles it. On failure the shader object is deleted
// before the error is returned, so no driver object leaks. On success
// the GL error flag must be clean; a dirty flag indicates a wrapper
// bug and aborts via panic.
func compileShader(stage Stage, source string) (uint32, error) {
	glerr.Clear()

	id := gl.CreateShader(stage.glEnum())
	if id == 0 {
		return 0, fmt.Errorf("glh: failed to create %s shader object", stage)
	}

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log, present := shaderInfoLog(id)
		gl.DeleteShader(id)
		glerr.MustClean("cleanup of failed " + stage.String() + " shader")
		switch {
		case !present:
			return 0, fmt.Errorf("glh: failed to compile %s shader, no info log available", stage)
		case !utf8.ValidString(log):
			return 0, fmt.Errorf("glh: failed to compile %s shader, info log is not valid UTF-8", stage)
		default:
			return 0, fmt.Errorf("glh: failed to compile %s shader: %s", stage, log)
		}
	}

	glerr.MustClean("compiling " + stage.String() + " shader")
	Logger().Debug("shader compiled", "stage", stage, "id", id)
	return id, nil
}

// shaderInfoLog reads the info log of a shader object. The second
// return value reports whether the driver provided a log at all.
func shaderInfoLog(id uint32) (string, bool) {
	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 1 {
		// Length includes the NUL terminator, so <= 1 means empty.
		return "", false
	}
	buf := make([]byte, logLength)
	gl.GetShaderInfoLog(id, logLength, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00\n"), true
}

// deleteShader destroys a shader object and zeroes the handle's id so
// a second Delete is a no-op rather than a double free.
func deleteShader(id *uint32, stage Stage) {
	if *id == 0 {
		return
	}
	gl.DeleteShader(*id)
	Logger().Debug("shader deleted", "stage", stage, "id", *id)
	*id = 0
}

// VertexShader owns a compiled vertex shader object.
//
// The zero value is not usable; obtain one from [NewVertexShader] or
// [WrapVertexShader].
type VertexShader struct {
	id uint32
}

// NewVertexShader compiles source as a vertex shader and returns a
// handle owning the resulting shader object.
func NewVertexShader(source string) (*VertexShader, error) {
	id, err := compileShader(StageVertex, source)
	if err != nil {
		return nil, err
	}
	return &VertexShader{id: id}, nil
}

// WrapVertexShader wraps an existing vertex shader object in a handle
// that assumes ownership of it. The id is not validated: the caller
// must guarantee it names a live vertex shader object, and must not
// delete it through any other path afterwards.
func WrapVertexShader(id uint32) *VertexShader {
	return &VertexShader{id: id}
}

// ID returns the raw OpenGL shader object name, or 0 after Delete.
// The handle retains ownership of the object.
func (s *VertexShader) ID() uint32 { return s.id }

// Stage returns [StageVertex].
func (s *VertexShader) Stage() Stage { return StageVertex }

// Delete destroys the underlying shader object. Idempotent.
func (s *VertexShader) Delete() { deleteShader(&s.id, StageVertex) }

func (*VertexShader) sealedShader() {}

// TessControlShader owns a compiled tessellation control shader object.
//
// The zero value is not usable; obtain one from [NewTessControlShader]
// or [WrapTessControlShader].
type TessControlShader struct {
	id uint32
}

// NewTessControlShader compiles source as a tessellation control shader
// and returns a handle owning the resulting shader object.
func NewTessControlShader(source string) (*TessControlShader, error) {
	id, err := compileShader(StageTessControl, source)
	if err != nil {
		return nil, err
	}
	return &TessControlShader{id: id}, nil
}

// WrapTessControlShader wraps an existing tessellation control shader
// object in a handle that assumes ownership of it. The id is not
// validated: the caller must guarantee it names a live tessellation
// control shader object, and must not delete it through any other path
// afterwards.
func WrapTessControlShader(id uint32) *TessControlShader {
	return &TessControlShader{id: id}
}

// ID returns the raw OpenGL shader object name, or 0 after Delete.
// The handle retains ownership of the object.
func (s *TessControlShader) ID() uint32 { return s.id }

// Stage returns [StageTessControl].
func (s *TessControlShader) Stage() Stage { return StageTessControl }

// Delete destroys the underlying shader object. Idempotent.
func (s *TessControlShader) Delete() { deleteShader(&s.id, StageTessControl) }

func (*TessControlShader) sealedShader() {}

// TessEvaluationShader owns a compiled tessellation evaluation shader
// object.
//
// The zero value is not usable; obtain one from [NewTessEvaluationShader]
// or [WrapTessEvaluationShader].
type TessEvaluationShader struct {
	id uint32
}

// NewTessEvaluationShader compiles source as a tessellation evaluation
// shader and returns a handle owning the resulting shader object.
func NewTessEvaluationShader(source string) (*TessEvaluationShader, error) {
	id, err := compileShader(StageTessEvaluation, source)
	if err != nil {
		return nil, err
	}
	return &TessEvaluationShader{id: id}, nil
}

// WrapTessEvaluationShader wraps an existing tessellation evaluation
// shader object in a handle that assumes ownership of it. The id is not
// validated: the caller must guarantee it names a live tessellation
// evaluation shader object, and must not delete it through any other
// path afterwards.
func WrapTessEvaluationShader(id uint32) *TessEvaluationShader {
	return &TessEvaluationShader{id: id}
}

// ID returns the raw OpenGL shader object name, or 0 after Delete.
// The handle retains ownership of the object.
func (s *TessEvaluationShader) ID() uint32 { return s.id }

// Stage returns [StageTessEvaluation].
func (s *TessEvaluationShader) Stage() Stage { return StageTessEvaluation }

// Delete destroys the underlying shader object. Idempotent.
func (s *TessEvaluationShader) Delete() { deleteShader(&s.id, StageTessEvaluation) }

func (*TessEvaluationShader) sealedShader() {}

// GeometryShader owns a compiled geometry shader object.
//
// The zero value is not usable; obtain one from [NewGeometryShader] or
// [WrapGeometryShader].
type GeometryShader struct {
	id uint32
}

// NewGeometryShader compiles source as a geometry shader and returns a
// handle owning the resulting shader object.
func NewGeometryShader(source string) (*GeometryShader, error) {
	id, err := compileShader(StageGeometry, source)
	if err != nil {
		return nil, err
	}
	return &GeometryShader{id: id}, nil
}

// WrapGeometryShader wraps an existing geometry shader object in a
// handle that assumes ownership of it. The id is not validated: the
// caller must guarantee it names a live geometry shader object, and
// must not delete it through any other path afterwards.
func WrapGeometryShader(id uint32) *GeometryShader {
	return &GeometryShader{id: id}
}

// ID returns the raw OpenGL shader object name, or 0 after Delete.
// The handle retains ownership of the object.
func (s *GeometryShader) ID() uint32 { return s.id }

// Stage returns [StageGeometry].
func (s *GeometryShader) Stage() Stage { return StageGeometry }

// Delete destroys the underlying shader object. Idempotent.
func (s *GeometryShader) Delete() { deleteShader(&s.id, StageGeometry) }

func (*GeometryShader) sealedShader() {}

// FragmentShader owns a compiled fragment shader object.
//
// The zero value is not usable; obtain one from [NewFragmentShader] or
// [WrapFragmentShader].
type FragmentShader struct {
	id uint32
}

// NewFragmentShader compiles source as a fragment shader and returns a
// handle owning the resulting shader object.
func NewFragmentShader(source string) (*FragmentShader, error) {
	id, err := compileShader(StageFragment, source)
	if err != nil {
		return nil, err
	}
	return &FragmentShader{id: id}, nil
}

// WrapFragmentShader wraps an existing fragment shader object in a
// handle that assumes ownership of it. The id is not validated: the
// caller must guarantee it names a live fragment shader object, and
// must not delete it through any other path afterwards.
func WrapFragmentShader(id uint32) *FragmentShader {
	return &FragmentShader{id: id}
}

// ID returns the raw OpenGL shader object name, or 0 after Delete.
// The handle retains ownership of the object.
func (s *FragmentShader) ID() uint32 { return s.id }

// Stage returns [StageFragment].
func (s *FragmentShader) Stage() Stage { return StageFragment }

// Delete destroys the underlying shader object. Idempotent.
func (s *FragmentShader) Delete() { deleteShader(&s.id, StageFragment) }

func (*FragmentShader) sealedShader() {}
