package glh

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gogpu/glh/internal/glerr"
)

// Program owns a linked program object.
//
// A Program can only be obtained through a successful link, so holding
// one is proof that the pipeline it describes is complete and valid.
// The shaders passed to [NewProgram] are borrowed for the duration of
// the call and detached before it returns, whatever the outcome; they
// remain usable in other programs and must be deleted by the caller.
//
// The zero value is not usable.
type Program struct {
	id uint32
}

// programConfig collects the optional pipeline stages.
type programConfig struct {
	geometry    *GeometryShader
	tessControl *TessControlShader
	tessEval    *TessEvaluationShader
}

// ProgramOption configures optional stages for [NewProgram].
type ProgramOption func(*programConfig)

// WithGeometryShader adds a geometry stage to the program.
// A nil gs is ignored, so a caller can pass a maybe-present shader
// without branching.
func WithGeometryShader(gs *GeometryShader) ProgramOption {
	return func(cfg *programConfig) {
		cfg.geometry = gs
	}
}

// WithTessellation adds the tessellation stages to the program. OpenGL
// requires the control and evaluation shaders as a pair; supplying only
// one of them makes [NewProgram] fail before touching the driver.
// Passing nil for both is ignored.
func WithTessellation(tcs *TessControlShader, tes *TessEvaluationShader) ProgramOption {
	return func(cfg *programConfig) {
		cfg.tessControl = tcs
		cfg.tessEval = tes
	}
}

// NewProgram links the given shaders into a program object and returns
// a handle owning it. The vertex and fragment stages are required;
// geometry and tessellation stages are added with [WithGeometryShader]
// and [WithTessellation].
//
// All shaders are attached before linking and detached after, whether
// or not the link succeeds, so the caller keeps full ownership of them.
// On link failure the partially created program object is destroyed
// before the error is returned.
func NewProgram(vs *VertexShader, fs *FragmentShader, opts ...ProgramOption) (*Program, error) {
	if vs == nil || vs.id == 0 {
		return nil, errors.New("glh: vertex shader is nil or deleted")
	}
	if fs == nil || fs.id == 0 {
		return nil, errors.New("glh: fragment shader is nil or deleted")
	}

	var cfg programConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if (cfg.tessControl == nil) != (cfg.tessEval == nil) {
		return nil, errors.New("glh: tessellation requires both control and evaluation shaders")
	}

	attached := []Shader{vs, fs}
	if cfg.geometry != nil {
		if cfg.geometry.id == 0 {
			return nil, errors.New("glh: geometry shader is deleted")
		}
		attached = append(attached, cfg.geometry)
	}
	if cfg.tessControl != nil {
		if cfg.tessControl.id == 0 {
			return nil, errors.New("glh: tessellation control shader is deleted")
		}
		if cfg.tessEval.id == 0 {
			return nil, errors.New("glh: tessellation evaluation shader is deleted")
		}
		attached = append(attached, cfg.tessControl, cfg.tessEval)
	}

	glerr.Clear()

	id := gl.CreateProgram()
	if id == 0 {
		return nil, errors.New("glh: failed to create program object")
	}

	for _, s := range attached {
		gl.AttachShader(id, s.ID())
	}
	gl.LinkProgram(id)
	// Detach unconditionally: the shaders are borrowed, and a failed
	// link must leave them reusable.
	for _, s := range attached {
		gl.DetachShader(id, s.ID())
	}

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log, present := programInfoLog(id)
		gl.DeleteProgram(id)
		glerr.MustClean("cleanup of failed program link")
		switch {
		case !present:
			return nil, errors.New("glh: failed to link program, no info log available")
		case !utf8.ValidString(log):
			return nil, errors.New("glh: failed to link program, info log is not valid UTF-8")
		default:
			return nil, fmt.Errorf("glh: failed to link program: %s", log)
		}
	}

	glerr.MustClean("linking program")
	Logger().Debug("program linked", "id", id, "shaders", len(attached))
	return &Program{id: id}, nil
}

// programInfoLog reads the info log of a program object. The second
// return value reports whether the driver provided a log at all.
func programInfoLog(id uint32) (string, bool) {
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 1 {
		return "", false
	}
	buf := make([]byte, logLength)
	gl.GetProgramInfoLog(id, logLength, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00\n"), true
}

// Use installs the program as the active pipeline for subsequent draw
// calls and uniform updates.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Unuse clears the active program binding.
func (p *Program) Unuse() {
	gl.UseProgram(0)
}

// ID returns the raw OpenGL program object name, or 0 after Delete.
// The handle retains ownership of the object; anything the caller
// attaches through the raw id it must also detach itself.
func (p *Program) ID() uint32 {
	return p.id
}

// Delete destroys the underlying program object. The handle must not
// be used afterwards. Idempotent.
func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	gl.DeleteProgram(p.id)
	Logger().Debug("program deleted", "id", p.id)
	p.id = 0
}
