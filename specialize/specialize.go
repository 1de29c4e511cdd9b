// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package specialize submits a SPIR-V module to a shader object and
// specializes one entry point.
//
// Whether the driver accepted the module is reported only through the
// context's debug sink, synchronously and in call order. No diagnostic with
// error severity is the success signal.
package specialize

import "github.com/gogpu/glspv/glapi"

// Specialize attaches binary to shader as its single SPIR-V module and then
// specializes entryPoint with no specialization constants.
//
// The returned error covers only arguments that cannot be handed to the
// driver at all. An unknown entry point, a malformed module or a validation
// failure produce diagnostics instead, and Specialize returns nil.
func Specialize(ctx glapi.Context, shader glapi.Shader, binary []byte, entryPoint string) error {
	if ctx == nil {
		return NewError(ErrNoContext, "no current GL context")
	}
	if len(binary) == 0 {
		return NewError(ErrEmptyBinary, "shader binary is empty")
	}
	return Submit(ctx, shader, binary, entryPoint)
}

// Submit is Specialize without the empty-binary check. A zero-length module
// is passed to glShaderBinary as is, and the driver reports it through the
// debug sink like any other malformed module.
func Submit(ctx glapi.Context, shader glapi.Shader, binary []byte, entryPoint string) error {
	if ctx == nil {
		return NewError(ErrNoContext, "no current GL context")
	}
	if entryPoint == "" {
		return NewError(ErrEmptyEntryPoint, "entry point name is empty")
	}

	ctx.ShaderBinary(shader, glapi.BinaryFormatSPIRV, binary)
	ctx.SpecializeShader(shader, entryPoint, nil, nil)
	return nil
}

// Status queries GL_SPIR_V_BINARY, GL_COMPILE_STATUS and the info log of
// shader. Specialize never calls it.
func Status(ctx glapi.Context, shader glapi.Shader) glapi.Status {
	if ctx == nil {
		return glapi.Status{}
	}
	return ctx.ShaderStatus(shader)
}
