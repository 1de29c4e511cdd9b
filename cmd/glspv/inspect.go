package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/glspv/loader"
	"github.com/gogpu/glspv/spirv"
)

var capabilityNames = map[spirv.Capability]string{
	0: "Matrix", 1: "Shader", 2: "Geometry", 3: "Tessellation",
	4: "Addresses", 5: "Linkage", 6: "Kernel", 9: "Float16",
	10: "Float64", 11: "Int64", 12: "Int64Atomics", 22: "Int16",
	32: "ClipDistance", 33: "CullDistance", 39: "Int8",
	50: "ImageQuery", 57: "MultiViewport", 4427: "DrawParameters",
}

func capabilityName(c spirv.Capability) string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Capability(%d)", uint32(c))
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.spv>",
		Short: "Print the header, entry points and resource bindings of a binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			module, err := spirv.Parse(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			writeInspection(cmd.OutOrStdout(), args[0], len(data), module)
			return nil
		},
	}
}

func writeInspection(w io.Writer, path string, size int, m *spirv.Module) {
	h := m.Header
	order := "little-endian"
	if h.BigEndian {
		order = "big-endian"
	}
	fmt.Fprintf(w, "; %s: %d bytes, %s\n", path, size, order)
	fmt.Fprintf(w, "; SPIR-V %d.%d\n", h.Version.Major, h.Version.Minor)
	fmt.Fprintf(w, "; Generator: 0x%08X\n", h.Generator)
	fmt.Fprintf(w, "; Bound: %d\n", h.Bound)
	fmt.Fprintf(w, "; Instructions: %d\n", m.InstructionCount)

	if len(m.Capabilities) > 0 {
		names := make([]string, len(m.Capabilities))
		for i, c := range m.Capabilities {
			names[i] = capabilityName(c)
		}
		fmt.Fprintf(w, "capabilities: %s\n", strings.Join(names, ", "))
	}
	if len(m.Extensions) > 0 {
		fmt.Fprintf(w, "extensions: %s\n", strings.Join(m.Extensions, ", "))
	}

	fmt.Fprintln(w, "entry points:")
	if len(m.EntryPoints) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, ep := range m.EntryPoints {
		fmt.Fprintf(w, "  %-10s %q %%%d", ep.Model, ep.Name, ep.Function)
		if len(ep.Interfaces) > 0 {
			ids := make([]string, len(ep.Interfaces))
			for i, id := range ep.Interfaces {
				ids[i] = fmt.Sprintf("%%%d", id)
				if name := m.Names[id]; name != "" {
					ids[i] += "(" + name + ")"
				}
			}
			fmt.Fprintf(w, " interface %s", strings.Join(ids, " "))
		}
		fmt.Fprintln(w)
	}

	if bindings := m.Bindings(); len(bindings) > 0 {
		fmt.Fprintln(w, "bindings:")
		for _, b := range bindings {
			name := b.Name
			if name == "" {
				name = fmt.Sprintf("%%%d", b.Variable)
			}
			fmt.Fprintf(w, "  set=%d binding=%d %s %s\n", b.Set, b.Binding, b.StorageClass, name)
		}
	}

	if consts := m.SpecConstants(); len(consts) > 0 {
		fmt.Fprintln(w, "specialization constants:")
		for _, sc := range consts {
			fmt.Fprintf(w, "  SpecId %d -> %%%d\n", sc.SpecID, sc.ID)
		}
	}
}
