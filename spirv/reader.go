// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// Header is the five-word preamble of a SPIR-V module.
type Header struct {
	Version   Version
	Generator uint32
	Bound     uint32
	Schema    uint32

	// BigEndian is set when the magic number was stored byte-swapped.
	BigEndian bool
}

// EntryPoint is one OpEntryPoint declaration.
type EntryPoint struct {
	Model      ExecutionModel
	Function   uint32
	Name       string
	Interfaces []uint32
}

// Binding is a global resource variable that carries a Binding decoration.
type Binding struct {
	Variable     uint32
	Name         string
	StorageClass StorageClass
	Set          uint32
	Binding      uint32
}

// SpecConstant is an OpSpecConstant* result decorated with SpecId.
type SpecConstant struct {
	ID     uint32
	SpecID uint32
}

// Module is the decoded outline of a SPIR-V binary. Only the parts needed to
// reason about entry points and resource interfaces are retained; function
// bodies are skipped.
type Module struct {
	Header       Header
	Capabilities []Capability
	Extensions   []string
	EntryPoints  []EntryPoint

	// Names maps result IDs to their OpName.
	Names map[uint32]string

	// Variables maps global OpVariable result IDs to their storage class.
	Variables map[uint32]StorageClass

	// InstructionCount is the number of instructions after the header.
	InstructionCount int

	decorations map[uint32]map[Decoration]uint32
	specIDs     map[uint32]bool
}

// ParseError reports a malformed SPIR-V binary.
type ParseError struct {
	// Offset is the byte offset of the offending word.
	Offset  int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("spirv: %s at offset 0x%X", e.Message, e.Offset)
}

// Parse decodes the header and module-level declarations of data.
//
// The magic number may be stored in either byte order; every following word
// is read in the same order. Parse fails on truncated input, on a zero word
// count, and on an instruction that overruns the buffer.
func Parse(data []byte) (*Module, error) {
	if len(data) < HeaderWords*4 {
		return nil, &ParseError{Offset: 0, Message: fmt.Sprintf("module too small (%d bytes)", len(data))}
	}
	if len(data)%4 != 0 {
		return nil, &ParseError{Offset: len(data) &^ 3, Message: "size is not a multiple of 4"}
	}

	var order binary.ByteOrder = binary.LittleEndian
	bigEndian := false
	switch magic := binary.LittleEndian.Uint32(data[0:4]); magic {
	case MagicNumber:
	case swap32(MagicNumber):
		order = binary.BigEndian
		bigEndian = true
	default:
		return nil, &ParseError{Offset: 0, Message: fmt.Sprintf("invalid magic 0x%08X", magic)}
	}

	m := &Module{
		Header: Header{
			Version:   versionFromWord(order.Uint32(data[4:8])),
			Generator: order.Uint32(data[8:12]),
			Bound:     order.Uint32(data[12:16]),
			Schema:    order.Uint32(data[16:20]),
			BigEndian: bigEndian,
		},
		Names:       make(map[uint32]string),
		Variables:   make(map[uint32]StorageClass),
		decorations: make(map[uint32]map[Decoration]uint32),
		specIDs:     make(map[uint32]bool),
	}

	inFunction := false
	for offset := HeaderWords * 4; offset < len(data); {
		word := order.Uint32(data[offset:])
		opcode := OpCode(word & 0xFFFF)
		wordCount := int(word >> 16)
		if wordCount == 0 {
			return nil, &ParseError{Offset: offset, Message: fmt.Sprintf("zero word count for opcode %d", opcode)}
		}
		if offset+wordCount*4 > len(data) {
			return nil, &ParseError{Offset: offset, Message: fmt.Sprintf("instruction of %d words overruns module", wordCount)}
		}

		ops := make([]uint32, wordCount-1)
		for i := range ops {
			ops[i] = order.Uint32(data[offset+4+i*4:])
		}
		if err := m.decode(opcode, ops, &inFunction); err != nil {
			err.Offset = offset
			return nil, err
		}

		m.InstructionCount++
		offset += wordCount * 4
	}
	return m, nil
}

func (m *Module) decode(opcode OpCode, ops []uint32, inFunction *bool) *ParseError {
	need := func(n int) *ParseError {
		if len(ops) < n {
			return &ParseError{Message: fmt.Sprintf("opcode %d needs %d operands, has %d", opcode, n, len(ops))}
		}
		return nil
	}

	switch opcode {
	case OpCapability:
		if err := need(1); err != nil {
			return err
		}
		m.Capabilities = append(m.Capabilities, Capability(ops[0]))

	case OpExtension:
		name, _ := decodeString(ops)
		m.Extensions = append(m.Extensions, name)

	case OpEntryPoint:
		if err := need(3); err != nil {
			return err
		}
		name, n := decodeString(ops[2:])
		ep := EntryPoint{
			Model:    ExecutionModel(ops[0]),
			Function: ops[1],
			Name:     name,
		}
		if rest := ops[2+n:]; len(rest) > 0 {
			ep.Interfaces = append([]uint32(nil), rest...)
		}
		m.EntryPoints = append(m.EntryPoints, ep)

	case OpName:
		if err := need(2); err != nil {
			return err
		}
		m.Names[ops[0]], _ = decodeString(ops[1:])

	case OpDecorate:
		if err := need(2); err != nil {
			return err
		}
		decs := m.decorations[ops[0]]
		if decs == nil {
			decs = make(map[Decoration]uint32)
			m.decorations[ops[0]] = decs
		}
		var literal uint32
		if len(ops) > 2 {
			literal = ops[2]
		}
		decs[Decoration(ops[1])] = literal

	case OpSpecConstant, OpSpecConstantTrue, OpSpecConstantFalse:
		if err := need(2); err != nil {
			return err
		}
		m.specIDs[ops[1]] = true

	case OpVariable:
		if err := need(3); err != nil {
			return err
		}
		if !*inFunction {
			m.Variables[ops[1]] = StorageClass(ops[2])
		}

	case OpFunction:
		*inFunction = true

	case OpFunctionEnd:
		*inFunction = false
	}
	return nil
}

// EntryPoint returns the entry point declared with name for model.
func (m *Module) EntryPoint(name string, model ExecutionModel) (EntryPoint, bool) {
	for _, ep := range m.EntryPoints {
		if ep.Name == name && ep.Model == model {
			return ep, true
		}
	}
	return EntryPoint{}, false
}

// EntryPointNamed returns the first entry point called name regardless of its
// execution model.
func (m *Module) EntryPointNamed(name string) (EntryPoint, bool) {
	for _, ep := range m.EntryPoints {
		if ep.Name == name {
			return ep, true
		}
	}
	return EntryPoint{}, false
}

// HasCapability reports whether the module declares c.
func (m *Module) HasCapability(c Capability) bool {
	for _, have := range m.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// Decoration returns the literal of decoration d on id.
func (m *Module) Decoration(id uint32, d Decoration) (uint32, bool) {
	v, ok := m.decorations[id][d]
	return v, ok
}

// Bindings lists global variables decorated with Binding, ordered by
// descriptor set, binding, then variable ID.
func (m *Module) Bindings() []Binding {
	var out []Binding
	for id, class := range m.Variables {
		binding, ok := m.Decoration(id, DecorationBinding)
		if !ok {
			continue
		}
		set, _ := m.Decoration(id, DecorationDescriptorSet)
		out = append(out, Binding{
			Variable:     id,
			Name:         m.Names[id],
			StorageClass: class,
			Set:          set,
			Binding:      binding,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Set != b.Set {
			return a.Set < b.Set
		}
		if a.Binding != b.Binding {
			return a.Binding < b.Binding
		}
		return a.Variable < b.Variable
	})
	return out
}

// SpecConstants lists specialization constants that carry a SpecId, ordered
// by SpecId.
func (m *Module) SpecConstants() []SpecConstant {
	var out []SpecConstant
	for id := range m.specIDs {
		if specID, ok := m.Decoration(id, DecorationSpecID); ok {
			out = append(out, SpecConstant{ID: id, SpecID: specID})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SpecID < out[j].SpecID })
	return out
}

// decodeString reads a NUL-terminated literal string from words and returns
// it together with the number of words it occupied.
func decodeString(words []uint32) (string, int) {
	buf := make([]byte, 0, len(words)*4)
	for i, w := range words {
		for shift := 0; shift < 32; shift += 8 {
			c := byte(w >> shift)
			if c == 0 {
				return string(buf), i + 1
			}
			buf = append(buf, c)
		}
	}
	return string(buf), len(words)
}

func swap32(v uint32) uint32 {
	return v>>24 | (v>>8)&0xFF00 | (v<<8)&0xFF0000 | v<<24
}
