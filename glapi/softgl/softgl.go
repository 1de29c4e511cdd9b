// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package softgl is a headless glapi.Context that validates SPIR-V modules
// in software.
//
// It follows the GL 4.6 rules for glShaderBinary and glSpecializeShader
// closely enough to exercise the harness without a GPU: header checks happen
// at submission, entry point resolution, specialization constant lookup and
// binding limits at specialization. Problems are reported through the debug
// sink, synchronously and in call order, the way a driver with
// GL_DEBUG_OUTPUT_SYNCHRONOUS enabled does.
package softgl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/glspv/diag"
	"github.com/gogpu/glspv/glapi"
	"github.com/gogpu/glspv/spirv"
)

// State is the lifecycle of a shader object.
type State uint8

const (
	// StateCreated is a fresh shader with no module attached.
	StateCreated State = iota
	// StateSubmitted has a SPIR-V module attached but not yet specialized.
	StateSubmitted
	// StateSpecialized finished glSpecializeShader successfully.
	StateSpecialized
	// StateSpecializationFailed finished glSpecializeShader with errors.
	StateSpecializationFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateSubmitted:
		return "Submitted"
	case StateSpecialized:
		return "Specialized"
	case StateSpecializationFailed:
		return "SpecializationFailed"
	default:
		return "Unknown"
	}
}

// Limits are the implementation-dependent maxima checked at specialization.
type Limits struct {
	MaxUniformBufferBindings       uint32
	MaxShaderStorageBufferBindings uint32
	MaxCombinedTextureImageUnits   uint32
}

// DefaultLimits returns the minimum maxima OpenGL 4.6 requires.
func DefaultLimits() Limits {
	return Limits{
		MaxUniformBufferBindings:       84,
		MaxShaderStorageBufferBindings: 8,
		MaxCombinedTextureImageUnits:   80,
	}
}

// GL error codes, used as message IDs for API errors.
const (
	glInvalidEnum      = 0x0500
	glInvalidValue     = 0x0501
	glInvalidOperation = 0x0502

	compilerMessageID = 1
	noticeMessageID   = 2
)

// Option configures a Context.
type Option func(*Context)

// WithLimits overrides DefaultLimits.
func WithLimits(l Limits) Option {
	return func(c *Context) { c.limits = l }
}

// WithNotifications makes successful specializations emit a
// notification-severity message.
func WithNotifications() Option {
	return func(c *Context) { c.notify = true }
}

type shader struct {
	stage   glapi.Stage
	state   State
	binary  []byte
	infoLog strings.Builder
}

// Context implements glapi.Context. It is not safe for concurrent use.
type Context struct {
	limits  Limits
	notify  bool
	sink    diag.Sink
	shaders map[glapi.Shader]*shader
	next    glapi.Shader
}

var _ glapi.Context = (*Context)(nil)

// New returns an empty Context with debug output discarded until
// SetDebugSink is called.
func New(opts ...Option) *Context {
	c := &Context{
		limits:  DefaultLimits(),
		sink:    diag.Discard,
		shaders: make(map[glapi.Shader]*shader),
		next:    1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Describe identifies the context.
func (c *Context) Describe() string {
	return "softgl (software SPIR-V validation, OpenGL 4.6 core)"
}

// SetDebugSink installs sink.
func (c *Context) SetDebugSink(sink diag.Sink) {
	if sink == nil {
		sink = diag.Discard
	}
	c.sink = sink
}

// DebugSink returns the installed sink.
func (c *Context) DebugSink() diag.Sink { return c.sink }

// Limits returns the limits in effect.
func (c *Context) Limits() Limits { return c.limits }

// State returns the lifecycle state of s.
func (c *Context) State(s glapi.Shader) (State, bool) {
	sh, ok := c.shaders[s]
	if !ok {
		return 0, false
	}
	return sh.state, true
}

// CreateShader allocates a shader object of stage.
func (c *Context) CreateShader(stage glapi.Stage) (glapi.Shader, error) {
	if _, ok := stage.ExecutionModel(); !ok {
		c.apiError(glInvalidEnum, fmt.Sprintf("glCreateShader(type = 0x%X)", uint32(stage)))
		return 0, fmt.Errorf("softgl: invalid shader type 0x%X", uint32(stage))
	}
	s := c.next
	c.next++
	c.shaders[s] = &shader{stage: stage}
	return s, nil
}

// ShaderBinary attaches binary to s after checking the format and the
// SPIR-V header. The module body is not examined until specialization.
func (c *Context) ShaderBinary(s glapi.Shader, format glapi.BinaryFormat, binary []byte) {
	sh, ok := c.shaders[s]
	if !ok {
		c.apiError(glInvalidValue, fmt.Sprintf("glShaderBinary(shader %d is not a shader object)", s))
		return
	}
	if format != glapi.BinaryFormatSPIRV {
		c.apiError(glInvalidEnum, fmt.Sprintf("glShaderBinary(format = 0x%X)", uint32(format)))
		return
	}
	if err := checkHeader(binary); err != nil {
		c.apiError(glInvalidValue, fmt.Sprintf("glShaderBinary(%v)", err))
		return
	}
	if sh.state == StateSpecialized || sh.state == StateSpecializationFailed {
		c.apiError(glInvalidOperation, "glShaderBinary(shader already specialized)")
		return
	}
	sh.binary = append([]byte(nil), binary...)
	sh.state = StateSubmitted
}

// SpecializeShader resolves entryPoint in the attached module, applies the
// specialization constants and checks resource bindings against the limits.
func (c *Context) SpecializeShader(s glapi.Shader, entryPoint string, indices, values []uint32) {
	sh, ok := c.shaders[s]
	if !ok {
		c.apiError(glInvalidValue, fmt.Sprintf("glSpecializeShader(shader %d is not a shader object)", s))
		return
	}
	switch sh.state {
	case StateCreated:
		c.apiError(glInvalidOperation, "glSpecializeShader(not a SPIR-V shader)")
		sh.state = StateSpecializationFailed
		return
	case StateSpecialized, StateSpecializationFailed:
		c.apiError(glInvalidOperation, "glSpecializeShader(already specialized)")
		return
	}
	if len(indices) != len(values) {
		c.apiError(glInvalidValue, fmt.Sprintf("glSpecializeShader(%d indices, %d values)", len(indices), len(values)))
		sh.state = StateSpecializationFailed
		return
	}

	problems := c.validate(sh, entryPoint, indices)
	if len(problems) == 0 {
		sh.state = StateSpecialized
		if c.notify {
			c.emit(diag.Message{
				Source:   diag.SourceShaderCompiler,
				Type:     diag.TypeOther,
				ID:       noticeMessageID,
				Severity: diag.SeverityNotification,
				Text:     fmt.Sprintf("SPIR-V: specialized entry point %q for %s shader", entryPoint, sh.stage),
			})
		}
		return
	}

	sh.state = StateSpecializationFailed
	for _, p := range problems {
		sh.infoLog.WriteString(p)
		sh.infoLog.WriteByte('\n')
		c.emit(diag.Message{
			Source:   diag.SourceShaderCompiler,
			Type:     diag.TypeError,
			ID:       compilerMessageID,
			Severity: diag.SeverityHigh,
			Text:     p,
		})
	}
}

func (c *Context) validate(sh *shader, entryPoint string, indices []uint32) []string {
	module, err := spirv.Parse(sh.binary)
	if err != nil {
		return []string{fmt.Sprintf("SPIR-V parsing failed: %v", err)}
	}

	var problems []string
	model, _ := sh.stage.ExecutionModel()
	if _, ok := module.EntryPoint(entryPoint, model); !ok {
		if other, found := module.EntryPointNamed(entryPoint); found {
			problems = append(problems, fmt.Sprintf("SPIR-V: entry point %q has execution model %s, shader stage requires %s",
				entryPoint, other.Model, model))
		} else {
			problems = append(problems, fmt.Sprintf("SPIR-V: entry point %q not found", entryPoint))
		}
	}

	specIDs := make(map[uint32]bool)
	for _, sc := range module.SpecConstants() {
		specIDs[sc.SpecID] = true
	}
	for _, idx := range indices {
		if !specIDs[idx] {
			problems = append(problems, fmt.Sprintf("SPIR-V: specialization constant id %d not found", idx))
		}
	}

	for _, b := range module.Bindings() {
		limit, name, ok := c.bindingLimit(b.StorageClass)
		if ok && b.Binding >= limit {
			label := b.Name
			if label == "" {
				label = fmt.Sprintf("%%%d", b.Variable)
			}
			problems = append(problems, fmt.Sprintf("SPIR-V: %s variable %s binding %d exceeds %s (%d)",
				b.StorageClass, label, b.Binding, name, limit))
		}
	}
	return problems
}

func (c *Context) bindingLimit(class spirv.StorageClass) (uint32, string, bool) {
	switch class {
	case spirv.StorageClassUniform:
		return c.limits.MaxUniformBufferBindings, "GL_MAX_UNIFORM_BUFFER_BINDINGS", true
	case spirv.StorageClassStorageBuffer:
		return c.limits.MaxShaderStorageBufferBindings, "GL_MAX_SHADER_STORAGE_BUFFER_BINDINGS", true
	case spirv.StorageClassUniformConstant:
		return c.limits.MaxCombinedTextureImageUnits, "GL_MAX_COMBINED_TEXTURE_IMAGE_UNITS", true
	}
	return 0, "", false
}

// ShaderStatus reports the attachment and specialization state of s.
func (c *Context) ShaderStatus(s glapi.Shader) glapi.Status {
	sh, ok := c.shaders[s]
	if !ok {
		c.apiError(glInvalidValue, fmt.Sprintf("glGetShaderiv(shader %d is not a shader object)", s))
		return glapi.Status{}
	}
	return glapi.Status{
		SPIRVBinary: sh.binary != nil,
		Compiled:    sh.state == StateSpecialized,
		InfoLog:     sh.infoLog.String(),
	}
}

var errTooSmall = errors.New("SPIR-V binary too small")

func checkHeader(binary []byte) error {
	if len(binary) < spirv.HeaderWords*4 {
		return errTooSmall
	}
	if len(binary)%4 != 0 {
		return errors.New("SPIR-V binary size is not a multiple of 4")
	}
	magic := uint32(binary[0]) | uint32(binary[1])<<8 | uint32(binary[2])<<16 | uint32(binary[3])<<24
	if magic != spirv.MagicNumber && magic != 0x03022307 {
		return fmt.Errorf("invalid SPIR-V magic 0x%08X", magic)
	}
	return nil
}

func (c *Context) apiError(code uint32, text string) {
	c.emit(diag.Message{
		Source:   diag.SourceAPI,
		Type:     diag.TypeError,
		ID:       code,
		Severity: diag.SeverityHigh,
		Text:     text,
	})
}

func (c *Context) emit(m diag.Message) {
	c.sink.Receive(m)
}
