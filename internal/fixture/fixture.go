// Package fixture builds the candidate SPIR-V modules the harness compares:
// a well-formed fragment shader and a variant that binds a uniform block
// past every implementation limit.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/glspv/spirv"
)

const (
	// EntryPoint is the entry point name both candidates declare.
	EntryPoint = "main_ok"

	// GoodFile and BadFile are the file names WriteCandidates uses.
	GoodFile = "good.spv"
	BadFile  = "bad.spv"

	// BadBinding is the out-of-range uniform block binding of the bad candidate.
	BadBinding = 4096
)

// Options describes a single-entry-point module.
type Options struct {
	EntryPoint string
	Model      spirv.ExecutionModel

	// UniformBinding, when set, declares a uniform block at that binding.
	UniformBinding *uint32

	// SpecIDs declares one 32-bit unsigned spec constant per id.
	SpecIDs []uint32

	// Extensions are declared with OpExtension, in order.
	Extensions []string
}

// Build returns the binary described by opts.
func Build(opts Options) []byte {
	b := spirv.NewModuleBuilder(spirv.Version1_0)
	b.AddCapability(spirv.CapabilityShader)
	for _, ext := range opts.Extensions {
		b.AddExtension(ext)
	}
	b.AddExtInstImport("GLSL.std.450")
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	voidType := b.AddTypeVoid()
	funcType := b.AddTypeFunction(voidType)
	floatType := b.AddTypeFloat(32)
	vec4Type := b.AddTypeVector(floatType, 4)

	var interfaces []uint32
	if opts.Model == spirv.ExecutionModelFragment {
		outPtr := b.AddTypePointer(spirv.StorageClassOutput, vec4Type)
		color := b.AddVariable(outPtr, spirv.StorageClassOutput)
		b.AddDecorate(color, spirv.DecorationLocation, 0)
		b.AddName(color, "out_color")
		interfaces = append(interfaces, color)
	}

	if opts.UniformBinding != nil {
		block := b.AddTypeStruct(vec4Type)
		b.AddDecorate(block, spirv.DecorationBlock)
		b.AddMemberDecorate(block, 0, spirv.DecorationOffset, 0)
		uboPtr := b.AddTypePointer(spirv.StorageClassUniform, block)
		ubo := b.AddVariable(uboPtr, spirv.StorageClassUniform)
		b.AddDecorate(ubo, spirv.DecorationDescriptorSet, 0)
		b.AddDecorate(ubo, spirv.DecorationBinding, *opts.UniformBinding)
		b.AddName(ubo, "params")
	}

	if len(opts.SpecIDs) > 0 {
		uintType := b.AddTypeInt(32, false)
		for _, id := range opts.SpecIDs {
			b.AddSpecConstant(uintType, id, 0)
		}
	}

	fn := b.AddFunction(funcType, voidType, spirv.FunctionControlNone)
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(opts.Model, fn, opts.EntryPoint, interfaces)
	switch opts.Model {
	case spirv.ExecutionModelFragment:
		b.AddExecutionMode(fn, spirv.ExecutionModeOriginLowerLeft)
	case spirv.ExecutionModelGLCompute:
		b.AddExecutionMode(fn, spirv.ExecutionModeLocalSize, 1, 1, 1)
	}
	b.AddName(fn, opts.EntryPoint)
	return b.Build()
}

// Good is a fragment module declaring entry.
func Good(entry string) []byte {
	return Build(Options{EntryPoint: entry, Model: spirv.ExecutionModelFragment})
}

// Bad is Good plus a uniform block at BadBinding.
func Bad(entry string) []byte {
	binding := uint32(BadBinding)
	return Build(Options{EntryPoint: entry, Model: spirv.ExecutionModelFragment, UniformBinding: &binding})
}

// WriteCandidates writes GoodFile and BadFile into dir, creating it if
// needed, and returns their paths.
func WriteCandidates(dir, entry string) (good, bad string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create fixture dir: %w", err)
	}
	good = filepath.Join(dir, GoodFile)
	if err := os.WriteFile(good, Good(entry), 0o644); err != nil {
		return "", "", fmt.Errorf("write %s: %w", GoodFile, err)
	}
	bad = filepath.Join(dir, BadFile)
	if err := os.WriteFile(bad, Bad(entry), 0o644); err != nil {
		return "", "", fmt.Errorf("write %s: %w", BadFile, err)
	}
	return good, bad, nil
}
