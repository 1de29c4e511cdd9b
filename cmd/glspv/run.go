package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/glspv"
	"github.com/gogpu/glspv/diag"
	"github.com/gogpu/glspv/glapi"
	"github.com/gogpu/glspv/glapi/softgl"
	"github.com/gogpu/glspv/internal/config"
	"github.com/gogpu/glspv/internal/console"
)

// exitDiagnostics is the --strict exit status when the driver reported an
// error.
const exitDiagnostics = 2

func newRunCommand(lookupEnv func(string) (string, bool)) *cobra.Command {
	cfg := config.Default()
	envErr := cfg.ApplyEnv(lookupEnv)
	variant := string(cfg.Variant)
	driver := string(cfg.Driver)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a binary and specialize its entry point",
		Long: `Load a SPIR-V binary, submit it to a fresh shader object and specialize
the named entry point. Every driver diagnostic is printed as "OpenGL: <text>".

Flags override GLSPV_* environment variables, which override the defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return fmt.Errorf("environment: %w", envErr)
			}
			cfg.Variant = config.Variant(variant)
			cfg.Driver = config.Driver(driver)
			return runPipeline(cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Binary, "binary", cfg.Binary, "SPIR-V file to load (overrides --variant)")
	f.StringVar(&variant, "variant", variant, "candidate to load from --dir: good or bad")
	f.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory holding good.spv and bad.spv")
	f.StringVar(&cfg.Entry, "entry", cfg.Entry, "entry point to specialize")
	f.StringVar(&cfg.Stage, "stage", cfg.Stage, "shader stage: vertex, fragment, geometry, tess-control, tess-evaluation, compute")
	f.StringVar(&driver, "driver", driver, "context: gl (GLFW window) or soft (headless validation)")
	f.BoolVar(&cfg.CheckStatus, "check-status", cfg.CheckStatus, "query GL_COMPILE_STATUS and the info log afterwards")
	f.BoolVar(&cfg.Strict, "strict", cfg.Strict, "exit 2 when an error diagnostic was reported")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "print driver, module and status details")
	f.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")

	f.IntVar(&cfg.Window.Width, "width", cfg.Window.Width, "window width")
	f.IntVar(&cfg.Window.Height, "height", cfg.Window.Height, "window height")
	f.StringVar(&cfg.Window.Title, "title", cfg.Window.Title, "window title")
	f.IntVar(&cfg.Window.Samples, "samples", cfg.Window.Samples, "multisample count")
	f.IntVar(&cfg.Window.StencilBits, "stencil-bits", cfg.Window.StencilBits, "stencil buffer depth")
	f.IntVar(&cfg.Window.MajorVersion, "gl-major", cfg.Window.MajorVersion, "OpenGL context major version")
	f.IntVar(&cfg.Window.MinorVersion, "gl-minor", cfg.Window.MinorVersion, "OpenGL context minor version")
	f.BoolVar(&cfg.Window.Decorated, "decorated", cfg.Window.Decorated, "decorated window")
	f.BoolVar(&cfg.Window.Hidden, "hidden", cfg.Window.Hidden, "do not show the window")

	f.Uint32Var(&cfg.Limits.MaxUniformBufferBindings, "max-uniform-bindings", cfg.Limits.MaxUniformBufferBindings, "soft driver GL_MAX_UNIFORM_BUFFER_BINDINGS")
	f.Uint32Var(&cfg.Limits.MaxShaderStorageBufferBindings, "max-storage-bindings", cfg.Limits.MaxShaderStorageBufferBindings, "soft driver GL_MAX_SHADER_STORAGE_BUFFER_BINDINGS")
	f.Uint32Var(&cfg.Limits.MaxCombinedTextureImageUnits, "max-texture-units", cfg.Limits.MaxCombinedTextureImageUnits, "soft driver GL_MAX_COMBINED_TEXTURE_IMAGE_UNITS")

	cmd.Flags().SortFlags = false
	return cmd
}

func runPipeline(cmd *cobra.Command, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	path, _ := cfg.BinaryPath()
	stage, _ := cfg.ShaderStage()

	printer := console.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Verbose, cfg.NoColor)

	sink := printer.Sink()
	ctx, cleanup, err := openContext(cfg, sink)
	if err != nil {
		return err
	}
	defer cleanup()
	printer.Detailf("context: %s", ctx.Describe())

	report, err := glspv.New(ctx, sink, glspv.WithProgress(printer)).Run(glspv.Request{
		Path:        path,
		EntryPoint:  cfg.Entry,
		Stage:       stage,
		CheckStatus: cfg.CheckStatus,
	})
	if err != nil {
		return err
	}

	if cfg.Strict && report.Failed() {
		printer.Detailf("%d error diagnostic(s)", len(report.Errors()))
		return &exitError{code: exitDiagnostics}
	}
	return nil
}

func noopCleanup() {}

// openContext creates the configured context and routes its debug output
// to sink from the start, so messages raised before the pipeline runs are
// printed too.
func openContext(cfg config.Config, sink diag.Sink) (glapi.Context, func(), error) {
	var (
		ctx     glapi.Context
		cleanup = noopCleanup
		err     error
	)
	switch cfg.Driver {
	case config.DriverSoft:
		ctx = softgl.New(softgl.WithLimits(cfg.Limits))
	default:
		ctx, cleanup, err = openGL(cfg.Window)
		if err != nil {
			return nil, cleanup, err
		}
	}
	ctx.SetDebugSink(sink)
	return ctx, cleanup, nil
}
