// Package glapi describes the slice of the OpenGL 4.6 API the harness uses.
//
// A Context is an explicit handle to a rendering context that is current on
// the calling goroutine's OS thread. It is created and owned by a bootstrap
// package (glfwgl for a real window, softgl for a headless stand-in) and
// passed to every operation that talks to the driver.
package glapi

import (
	"fmt"
	"strings"

	"github.com/gogpu/glspv/diag"
	"github.com/gogpu/glspv/spirv"
)

// Shader is a driver-allocated shader object name. Zero is never a valid
// shader.
type Shader uint32

// Stage is the shader type passed to glCreateShader.
type Stage uint32

const (
	StageVertex         Stage = 0x8B31
	StageFragment       Stage = 0x8B30
	StageGeometry       Stage = 0x8DD9
	StageTessControl    Stage = 0x8E88
	StageTessEvaluation Stage = 0x8E87
	StageCompute        Stage = 0x91B9
)

var stageNames = []struct {
	stage Stage
	name  string
	model spirv.ExecutionModel
}{
	{StageVertex, "vertex", spirv.ExecutionModelVertex},
	{StageFragment, "fragment", spirv.ExecutionModelFragment},
	{StageGeometry, "geometry", spirv.ExecutionModelGeometry},
	{StageTessControl, "tess-control", spirv.ExecutionModelTessellationControl},
	{StageTessEvaluation, "tess-evaluation", spirv.ExecutionModelTessellationEvaluation},
	{StageCompute, "compute", spirv.ExecutionModelGLCompute},
}

// String returns the lower-case stage name used on the command line.
func (s Stage) String() string {
	for _, n := range stageNames {
		if n.stage == s {
			return n.name
		}
	}
	return fmt.Sprintf("Stage(0x%X)", uint32(s))
}

// ExecutionModel is the SPIR-V execution model an entry point must declare
// to be specialized into a shader of this stage.
func (s Stage) ExecutionModel() (spirv.ExecutionModel, bool) {
	for _, n := range stageNames {
		if n.stage == s {
			return n.model, true
		}
	}
	return 0, false
}

// ParseStage maps a command-line stage name to a Stage.
func ParseStage(name string) (Stage, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range stageNames {
		if n.name == name {
			return n.stage, nil
		}
	}
	return 0, fmt.Errorf("unknown shader stage %q", name)
}

// BinaryFormat is the binaryformat argument of glShaderBinary.
type BinaryFormat uint32

// BinaryFormatSPIRV is GL_SHADER_BINARY_FORMAT_SPIR_V.
const BinaryFormatSPIRV BinaryFormat = 0x9551

// Status is what the driver reports about a shader object when asked.
type Status struct {
	// SPIRVBinary is GL_SPIR_V_BINARY: a SPIR-V module was attached.
	SPIRVBinary bool
	// Compiled is GL_COMPILE_STATUS: specialization succeeded.
	Compiled bool
	// InfoLog is the shader info log, possibly empty.
	InfoLog string
}

// Context is a current OpenGL context. Every method runs synchronously on
// the calling thread; debug messages caused by a call are delivered to the
// installed sink before the call returns.
type Context interface {
	// CreateShader is glCreateShader.
	CreateShader(stage Stage) (Shader, error)

	// ShaderBinary is glShaderBinary with a count of one.
	ShaderBinary(shader Shader, format BinaryFormat, binary []byte)

	// SpecializeShader is glSpecializeShader. indices and values hold the
	// specialization constants and must have equal length.
	SpecializeShader(shader Shader, entryPoint string, indices, values []uint32)

	// ShaderStatus queries GL_SPIR_V_BINARY, GL_COMPILE_STATUS and the info log.
	ShaderStatus(shader Shader) Status

	// SetDebugSink routes debug output to sink. A nil sink discards it.
	SetDebugSink(sink diag.Sink)

	// DebugSink returns the sink currently installed.
	DebugSink() diag.Sink

	// Describe returns a short human-readable identification of the driver.
	Describe() string
}
