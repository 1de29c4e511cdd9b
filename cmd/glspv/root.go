package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is overridden by ldflags.
var Version = "dev"

func newRootCommand(stdout, stderr io.Writer, lookupEnv func(string) (string, bool)) *cobra.Command {
	root := &cobra.Command{
		Use:   "glspv",
		Short: "SPIR-V specialization harness for OpenGL 4.6",
		Long: `glspv loads a precompiled SPIR-V binary, attaches it to a shader object
with glShaderBinary, specializes one entry point with glSpecializeShader and
prints every message the driver reports through GL_KHR_debug.

Diagnostics are the outcome: the run exits 0 once specialization returns,
unless --strict is given.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate(versionText())

	root.AddCommand(newRunCommand(lookupEnv))
	root.AddCommand(newInspectCommand())
	root.AddCommand(newFixturesCommand())
	root.AddCommand(newVersionCommand())
	return root
}

func versionText() string {
	return fmt.Sprintf("glspv version %s\nGo version: %s\nPlatform: %s/%s\n",
		Version, goVersion(), runtime.GOOS, runtime.GOARCH)
}

func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionText())
		},
	}
}
