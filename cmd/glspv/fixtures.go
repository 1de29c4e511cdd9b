package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/glspv/internal/fixture"
)

func newFixturesCommand() *cobra.Command {
	var dir, entry string

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Write the good.spv and bad.spv candidate binaries",
		Long: `Write two fragment-shader modules declaring the same entry point:
good.spv is well-formed, bad.spv also binds a uniform block at binding 4096,
past every implementation's GL_MAX_UNIFORM_BUFFER_BINDINGS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			good, bad, err := fixture.WriteCandidates(dir, entry)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\nWrote %s\n", good, bad)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "output directory")
	cmd.Flags().StringVar(&entry, "entry", fixture.EntryPoint, "entry point name")
	return cmd
}
