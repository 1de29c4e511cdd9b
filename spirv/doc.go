// Package spirv reads and writes SPIR-V binary modules.
//
// SPIR-V is the standard intermediate language for GPU shaders,
// consumed by OpenGL 4.6 through ARB_gl_spirv, by Vulkan, and by OpenCL.
//
// # Binary Writer
//
// ModuleBuilder constructs modules programmatically:
//
//	builder := spirv.NewModuleBuilder(spirv.Version1_0)
//	builder.AddCapability(spirv.CapabilityShader)
//	builder.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
//
//	voidType := builder.AddTypeVoid()
//	fn := builder.AddFunction(builder.AddTypeFunction(voidType), voidType, spirv.FunctionControlNone)
//	builder.AddLabel()
//	builder.AddReturn()
//	builder.AddFunctionEnd()
//	builder.AddEntryPoint(spirv.ExecutionModelFragment, fn, "main", nil)
//
//	binary := builder.Build()
//
// # Binary Reader
//
// Parse decodes the header and module-level declarations: capabilities,
// entry points, debug names, decorations and global variables. Function
// bodies are walked but not retained.
//
//	module, err := spirv.Parse(binary)
//	if err != nil {
//		log.Fatal(err)
//	}
//	ep, ok := module.EntryPoint("main", spirv.ExecutionModelFragment)
//
// # SPIR-V Structure
//
// SPIR-V modules consist of:
//   - Header (magic, version, generator, bound, schema)
//   - Capabilities (required features)
//   - Extensions (optional extensions)
//   - Extended instruction imports (GLSL.std.450, etc.)
//   - Memory model (addressing and memory model)
//   - Entry points (shader entry functions)
//   - Execution modes (shader configuration)
//   - Debug information (names, source info)
//   - Annotations (decorations)
//   - Types and constants
//   - Global variables
//   - Functions (code)
//
// # References
//
// SPIR-V Specification: https://registry.khronos.org/SPIR-V/specs/unified1/SPIRV.html
package spirv
