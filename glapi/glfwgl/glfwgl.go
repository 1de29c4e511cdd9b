// Package glfwgl opens a GLFW window with an OpenGL 4.6 core context and
// exposes it as a glapi.Context.
//
// GLFW and OpenGL calls must come from the thread that created the window.
// Callers lock the main goroutine to its OS thread (runtime.LockOSThread in
// an init function) before calling Open.
package glfwgl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/glspv/diag"
	"github.com/gogpu/glspv/glapi"
)

// GL_SPIR_V_BINARY, the glGetShaderiv parameter added by ARB_gl_spirv.
const spirvBinaryParam = 0x9552

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

// Context is a live window and its current GL context.
type Context struct {
	window *glfw.Window
	sink   diag.Sink
	closed bool
}

var _ glapi.Context = (*Context)(nil)

// Open initializes GLFW, creates the window described by cfg, makes its
// context current and enables synchronous debug output. Messages go to
// diag.Discard until SetDebugSink is called.
func Open(cfg glapi.WindowConfig) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, cfg.MajorVersion)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.MinorVersion)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	glfw.WindowHint(glfw.StencilBits, cfg.StencilBits)
	glfw.WindowHint(glfw.Samples, cfg.Samples)
	glfw.WindowHint(glfw.Decorated, boolHint(cfg.Decorated))
	glfw.WindowHint(glfw.Visible, boolHint(!cfg.Hidden))

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("load OpenGL functions: %w", err)
	}

	c := &Context{window: window, sink: diag.Discard}
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(c.debugProc, nil)
	return c, nil
}

func (c *Context) debugProc(source, gltype, id, severity uint32, _ int32, message string, _ unsafe.Pointer) {
	c.sink.Receive(diag.Message{
		Source:   diag.Source(source),
		Type:     diag.Type(gltype),
		ID:       id,
		Severity: diag.Severity(severity),
		Text:     strings.TrimRight(message, "\x00\n"),
	})
}

// SetDebugSink routes driver messages to sink.
func (c *Context) SetDebugSink(sink diag.Sink) {
	if sink == nil {
		sink = diag.Discard
	}
	c.sink = sink
}

// DebugSink returns the installed sink.
func (c *Context) DebugSink() diag.Sink { return c.sink }

// Describe returns the GL version, vendor and renderer strings.
func (c *Context) Describe() string {
	return fmt.Sprintf("%s (%s, %s)",
		gl.GoStr(gl.GetString(gl.VERSION)),
		gl.GoStr(gl.GetString(gl.VENDOR)),
		gl.GoStr(gl.GetString(gl.RENDERER)))
}

// CreateShader calls glCreateShader.
func (c *Context) CreateShader(stage glapi.Stage) (glapi.Shader, error) {
	s := gl.CreateShader(uint32(stage))
	if s == 0 {
		return 0, fmt.Errorf("glCreateShader(%s) returned 0", stage)
	}
	return glapi.Shader(s), nil
}

// ShaderBinary calls glShaderBinary with a single shader.
func (c *Context) ShaderBinary(s glapi.Shader, format glapi.BinaryFormat, binary []byte) {
	name := uint32(s)
	var ptr unsafe.Pointer
	if len(binary) > 0 {
		ptr = gl.Ptr(binary)
	}
	gl.ShaderBinary(1, &name, uint32(format), ptr, int32(len(binary)))
}

// SpecializeShader calls glSpecializeShader.
func (c *Context) SpecializeShader(s glapi.Shader, entryPoint string, indices, values []uint32) {
	entry, free := gl.Strs(entryPoint + "\x00")
	defer free()

	var idx, val *uint32
	if len(indices) > 0 {
		idx = &indices[0]
	}
	if len(values) > 0 {
		val = &values[0]
	}
	gl.SpecializeShader(uint32(s), *entry, uint32(len(indices)), idx, val)
}

// ShaderStatus queries GL_SPIR_V_BINARY, GL_COMPILE_STATUS and the info log.
func (c *Context) ShaderStatus(s glapi.Shader) glapi.Status {
	var spirvBinary, compiled, logLength int32
	gl.GetShaderiv(uint32(s), spirvBinaryParam, &spirvBinary)
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &compiled)
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)

	status := glapi.Status{
		SPIRVBinary: spirvBinary == gl.TRUE,
		Compiled:    compiled == gl.TRUE,
	}
	if logLength > 1 {
		buf := make([]uint8, logLength)
		gl.GetShaderInfoLog(uint32(s), logLength, nil, &buf[0])
		status.InfoLog = gl.GoStr(&buf[0])
	}
	return status
}

// Close destroys the window and terminates GLFW. Closing twice is a no-op.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.window.Destroy()
	glfw.Terminate()
}
