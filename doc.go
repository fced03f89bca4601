// Package glh wraps OpenGL shader and program objects in typed,
// ownership-safe handles.
//
// # Overview
//
// Raw OpenGL hands out untyped uint32 names and reports failures through a
// process-global error flag. glh narrows that surface: each shader stage
// gets its own handle type that can only be constructed from a successful
// compile, a Program can only be constructed from a successful link, and
// every handle releases its driver object exactly once.
//
// # Quick Start
//
//	import "github.com/gogpu/glh"
//
//	vs, err := glh.NewVertexShader(vertexSource)
//	if err != nil {
//		return err
//	}
//	defer vs.Delete()
//
//	fs, err := glh.NewFragmentShader(fragmentSource)
//	if err != nil {
//		return err
//	}
//	defer fs.Delete()
//
//	prog, err := glh.NewProgram(vs, fs)
//	if err != nil {
//		return err
//	}
//	defer prog.Delete()
//
//	prog.Use()
//	if err := prog.SetFloat("mixLevel", 0.5); err != nil {
//		return err
//	}
//
// # Ownership
//
// A handle is the sole owner of its driver identifier. Shaders are borrowed
// by Program construction, never consumed: the program attaches them, links,
// and detaches them again before NewProgram returns, so the same compiled
// shader can be linked into any number of programs and must be deleted by
// the caller that created it. Delete is idempotent; deferring it next to
// construction is the intended pattern.
//
// # Threading
//
// OpenGL binds a context to one thread. All glh calls must happen on the
// goroutine that owns the current context, locked to its OS thread (the
// window subpackage does the locking). Nothing in this package is safe for
// concurrent use except SetLogger and Logger.
//
// # Architecture
//
// The module is organized into:
//   - Root package: shader handles, Program, uniform setters
//   - window: GLFW window and context lifecycle
//   - texture: image decode and 2D texture upload
//   - mesh: vertex array / buffer objects with attribute layout
package glh

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
