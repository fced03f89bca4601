package glh

import (
	"strings"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gogpu/glh/internal/gltest"
)

// Minimal GLSL 4.10 sources, one per pipeline stage. 4.10 rather than
// 3.30 because the tessellation stages need a 4.x context anyway.
const (
	vertexSrc = `#version 410 core
layout(location = 0) in vec3 position;
void main() {
	gl_Position = vec4(position, 1.0);
}
`

	fragmentSrc = `#version 410 core
out vec4 color;
void main() {
	color = vec4(1.0, 0.5, 0.2, 1.0);
}
`

	geometrySrc = `#version 410 core
layout(points) in;
layout(points, max_vertices = 1) out;
void main() {
	gl_Position = gl_in[0].gl_Position;
	EmitVertex();
	EndPrimitive();
}
`

	tessControlSrc = `#version 410 core
layout(vertices = 3) out;
void main() {
	gl_out[gl_InvocationID].gl_Position = gl_in[gl_InvocationID].gl_Position;
	if (gl_InvocationID == 0) {
		gl_TessLevelInner[0] = 1.0;
		gl_TessLevelOuter[0] = 1.0;
		gl_TessLevelOuter[1] = 1.0;
		gl_TessLevelOuter[2] = 1.0;
	}
}
`

	tessEvalSrc = `#version 410 core
layout(triangles, equal_spacing, ccw) in;
void main() {
	gl_Position = gl_TessCoord.x * gl_in[0].gl_Position +
	              gl_TessCoord.y * gl_in[1].gl_Position +
	              gl_TessCoord.z * gl_in[2].gl_Position;
}
`
)

func TestNewShaderAllStages(t *testing.T) {
	gltest.NewContext(t)

	tests := []struct {
		name   string
		source string
		create func(string) (Shader, error)
		stage  Stage
	}{
		{"vertex", vertexSrc, func(src string) (Shader, error) { return NewVertexShader(src) }, StageVertex},
		{"tess control", tessControlSrc, func(src string) (Shader, error) { return NewTessControlShader(src) }, StageTessControl},
		{"tess evaluation", tessEvalSrc, func(src string) (Shader, error) { return NewTessEvaluationShader(src) }, StageTessEvaluation},
		{"geometry", geometrySrc, func(src string) (Shader, error) { return NewGeometryShader(src) }, StageGeometry},
		{"fragment", fragmentSrc, func(src string) (Shader, error) { return NewFragmentShader(src) }, StageFragment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.create(tt.source)
			if err != nil {
				t.Fatalf("compile %s shader: %v", tt.name, err)
			}
			id := s.ID()
			if id == 0 {
				t.Fatal("ID() = 0 for a freshly compiled shader")
			}
			if got := s.Stage(); got != tt.stage {
				t.Errorf("Stage() = %v, want %v", got, tt.stage)
			}
			if !gl.IsShader(id) {
				t.Errorf("driver does not know shader object %d", id)
			}

			s.Delete()
			if got := s.ID(); got != 0 {
				t.Errorf("ID() = %d after Delete, want 0", got)
			}
			if gl.IsShader(id) {
				t.Errorf("shader object %d still alive after Delete", id)
			}
			// Second delete must be a no-op, not a double free.
			s.Delete()
		})
	}
}

func TestShaderIdentifiersDistinctWhileLive(t *testing.T) {
	gltest.NewContext(t)

	creates := []func() (Shader, error){
		func() (Shader, error) { return NewVertexShader(vertexSrc) },
		func() (Shader, error) { return NewTessControlShader(tessControlSrc) },
		func() (Shader, error) { return NewTessEvaluationShader(tessEvalSrc) },
		func() (Shader, error) { return NewGeometryShader(geometrySrc) },
		func() (Shader, error) { return NewFragmentShader(fragmentSrc) },
	}

	seen := make(map[uint32]Stage)
	for _, create := range creates {
		s, err := create()
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(s.Delete)
		if prev, dup := seen[s.ID()]; dup {
			t.Errorf("%v shader got identifier %d, already held by live %v shader", s.Stage(), s.ID(), prev)
		}
		seen[s.ID()] = s.Stage()
	}
}

func TestNewShaderCompileError(t *testing.T) {
	gltest.NewContext(t)

	tests := []struct {
		name       string
		create     func(string) (Shader, error)
		wantPrefix string
	}{
		{"vertex", func(src string) (Shader, error) { return NewVertexShader(src) },
			"glh: failed to compile vertex shader"},
		{"tess control", func(src string) (Shader, error) { return NewTessControlShader(src) },
			"glh: failed to compile tessellation control shader"},
		{"tess evaluation", func(src string) (Shader, error) { return NewTessEvaluationShader(src) },
			"glh: failed to compile tessellation evaluation shader"},
		{"geometry", func(src string) (Shader, error) { return NewGeometryShader(src) },
			"glh: failed to compile geometry shader"},
		{"fragment", func(src string) (Shader, error) { return NewFragmentShader(src) },
			"glh: failed to compile fragment shader"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.create("this is not glsl")
			if err == nil {
				t.Fatal("compiling garbage source succeeded")
			}
			if !strings.HasPrefix(err.Error(), tt.wantPrefix) {
				t.Errorf("error = %q, want prefix %q", err, tt.wantPrefix)
			}
		})
	}
}

func TestWrapShaderAdoptsExistingObject(t *testing.T) {
	gltest.NewContext(t)

	// Create a raw object outside any handle, then adopt it.
	id := gl.CreateShader(gl.FRAGMENT_SHADER)
	if id == 0 {
		t.Fatal("CreateShader returned 0")
	}

	s := WrapFragmentShader(id)
	if got := s.ID(); got != id {
		t.Errorf("ID() = %d, want %d", got, id)
	}
	if got := s.Stage(); got != StageFragment {
		t.Errorf("Stage() = %v, want %v", got, StageFragment)
	}

	s.Delete()
	if gl.IsShader(id) {
		t.Errorf("shader object %d still alive after Delete of wrapping handle", id)
	}
}

func TestShaderZeroValueDeleteIsNoop(t *testing.T) {
	// Zero-value handles return before any driver call, so this needs
	// no context and must not crash.
	shaders := []Shader{
		&VertexShader{},
		&TessControlShader{},
		&TessEvaluationShader{},
		&GeometryShader{},
		&FragmentShader{},
	}
	for _, s := range shaders {
		s.Delete()
		if got := s.ID(); got != 0 {
			t.Errorf("%T.ID() = %d after zero-value Delete, want 0", s, got)
		}
	}
}

func TestShaderCompileDeleteCycle(t *testing.T) {
	gltest.NewContext(t)

	// Churn through compile/delete cycles, half of them failing. If a
	// path leaked its object the driver could not keep reusing names,
	// and the set of distinct identifiers would keep growing.
	seen := make(map[uint32]bool)
	for i := range 1000 {
		s, err := NewVertexShader(vertexSrc)
		if err != nil {
			t.Fatalf("cycle %d: %v", i, err)
		}
		seen[s.ID()] = true
		s.Delete()

		if _, err := NewFragmentShader("junk"); err == nil {
			t.Fatalf("cycle %d: compiling junk succeeded", i)
		}
	}
	if len(seen) > 100 {
		t.Errorf("1000 compile/delete cycles used %d distinct identifiers, want a stable reused range", len(seen))
	}
}
