package glh

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Stage identifies a programmable stage of the OpenGL pipeline.
// Each shader handle type corresponds to exactly one stage.
type Stage uint32

const (
	// StageVertex processes individual vertices.
	StageVertex Stage = iota
	// StageTessControl determines the tessellation level of a patch.
	StageTessControl
	// StageTessEvaluation computes positions for tessellated vertices.
	StageTessEvaluation
	// StageGeometry emits zero or more primitives per input primitive.
	StageGeometry
	// StageFragment computes the color of each rasterized fragment.
	StageFragment
)

// String returns the human-readable name of the stage, as it appears
// in error messages and log output.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageTessControl:
		return "tessellation control"
	case StageTessEvaluation:
		return "tessellation evaluation"
	case StageGeometry:
		return "geometry"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(s))
	}
}

// glEnum returns the OpenGL shader type constant for the stage.
// Returns 0 for an unknown stage; glCreateShader rejects 0 with
// GL_INVALID_ENUM, so a bad stage surfaces as a creation error
// rather than a panic.
func (s Stage) glEnum() uint32 {
	switch s {
	case StageVertex:
		return gl.VERTEX_SHADER
	case StageTessControl:
		return gl.TESS_CONTROL_SHADER
	case StageTessEvaluation:
		return gl.TESS_EVALUATION_SHADER
	case StageGeometry:
		return gl.GEOMETRY_SHADER
	case StageFragment:
		return gl.FRAGMENT_SHADER
	default:
		return 0
	}
}
