// Package glspv loads a precompiled SPIR-V shader, specializes one entry
// point on an OpenGL 4.6 context and collects the driver's diagnostics.
//
// The pipeline is deliberately thin:
//  1. Print "Loading shader <entry> from <path>"
//  2. Read the file (loader.Load)
//  3. Create a shader object of the requested stage
//  4. Attach the module and specialize the entry point (specialize.Submit)
//  5. Print "Specialized shader"
//
// Driver messages reach the configured diag.Sink synchronously while steps 3
// and 4 run. They never become Go errors; Run returns an error only when a
// prerequisite (the file, the shader object) is unavailable.
//
// Example usage:
//
//	ctx := softgl.New()
//	p := glspv.New(ctx, diag.NewConsole(os.Stdout))
//	report, err := p.Run(glspv.Request{
//	    Path:       "good.spv",
//	    EntryPoint: "main_ok",
//	    Stage:      glapi.StageFragment,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if report.Failed() {
//	    os.Exit(2)
//	}
package glspv

import (
	"fmt"

	"github.com/gogpu/glspv/diag"
	"github.com/gogpu/glspv/glapi"
	"github.com/gogpu/glspv/loader"
	"github.com/gogpu/glspv/specialize"
	"github.com/gogpu/glspv/spirv"
)

// Request describes one specialization attempt.
type Request struct {
	// Path is the SPIR-V file to load.
	Path string

	// EntryPoint must match an OpEntryPoint name in the module.
	EntryPoint string

	// Stage is the shader object type (default: fragment).
	Stage glapi.Stage

	// CheckStatus queries GL_COMPILE_STATUS and the info log after
	// specialization. Diagnostics stay the primary signal.
	CheckStatus bool
}

// Report is what a run observed.
type Report struct {
	Path       string
	EntryPoint string
	Stage      glapi.Stage
	Size       int
	Shader     glapi.Shader

	// Diagnostics holds every driver message in arrival order.
	Diagnostics []diag.Message

	// Status is set only when the request asked for it.
	Status *glapi.Status
}

// Errors returns the error-severity diagnostics.
func (r *Report) Errors() []diag.Message {
	var out []diag.Message
	for _, m := range r.Diagnostics {
		if m.IsError() {
			out = append(out, m)
		}
	}
	return out
}

// Failed reports whether the driver rejected the module: an error-severity
// diagnostic was observed, or a requested status query says the shader did
// not compile.
func (r *Report) Failed() bool {
	if len(r.Errors()) > 0 {
		return true
	}
	return r.Status != nil && !r.Status.Compiled
}

// Progress receives the pipeline's console lines.
type Progress interface {
	Progressf(format string, args ...any)
	Detailf(format string, args ...any)
}

type discardProgress struct{}

func (discardProgress) Progressf(string, ...any) {}
func (discardProgress) Detailf(string, ...any)   {}

// Pipeline runs requests against one context.
type Pipeline struct {
	ctx      glapi.Context
	sink     diag.Sink
	progress Progress
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProgress sets where progress lines go. Without it they are dropped.
func WithProgress(p Progress) Option {
	return func(pl *Pipeline) { pl.progress = p }
}

// New returns a Pipeline for ctx. Every diagnostic is forwarded to sink,
// which may be nil.
func New(ctx glapi.Context, sink diag.Sink, opts ...Option) *Pipeline {
	p := &Pipeline{ctx: ctx, sink: sink, progress: discardProgress{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes req. A non-nil error means the attempt could not be made;
// the outcome of an attempt that was made is in the Report. An empty file is
// still submitted; the driver reports it.
//
// While Run executes, the context's debug sink is replaced by one feeding
// both the pipeline's sink and the report. The previous sink is restored
// before Run returns.
func (p *Pipeline) Run(req Request) (*Report, error) {
	if p.ctx == nil {
		return nil, specialize.NewError(specialize.ErrNoContext, "pipeline has no GL context")
	}
	stage := req.Stage
	if stage == 0 {
		stage = glapi.StageFragment
	}
	report := &Report{Path: req.Path, EntryPoint: req.EntryPoint, Stage: stage}

	p.progress.Progressf("Loading shader %s from %s", req.EntryPoint, req.Path)
	binary, err := loader.Load(req.Path)
	if err != nil {
		return nil, err
	}
	report.Size = len(binary)
	p.describe(binary)

	recorder := &diag.Recorder{}
	previous := p.ctx.DebugSink()
	p.ctx.SetDebugSink(diag.Tee(p.sink, recorder))
	defer p.ctx.SetDebugSink(previous)

	shader, err := p.ctx.CreateShader(stage)
	if err != nil {
		report.Diagnostics = recorder.Messages()
		return report, fmt.Errorf("create %s shader: %w", stage, err)
	}
	report.Shader = shader

	if err := specialize.Submit(p.ctx, shader, binary, req.EntryPoint); err != nil {
		report.Diagnostics = recorder.Messages()
		return report, err
	}
	p.progress.Progressf("Specialized shader")

	if req.CheckStatus {
		status := specialize.Status(p.ctx, shader)
		report.Status = &status
		p.progress.Detailf("GL_SPIR_V_BINARY=%t GL_COMPILE_STATUS=%t", status.SPIRVBinary, status.Compiled)
		if status.InfoLog != "" {
			p.progress.Detailf("info log: %s", status.InfoLog)
		}
	}

	report.Diagnostics = recorder.Messages()
	return report, nil
}

func (p *Pipeline) describe(binary []byte) {
	p.progress.Detailf("%d bytes", len(binary))
	module, err := spirv.Parse(binary)
	if err != nil {
		p.progress.Detailf("pre-flight: %v", err)
		return
	}
	p.progress.Detailf("SPIR-V %d.%d, bound %d, %d instructions",
		module.Header.Version.Major, module.Header.Version.Minor, module.Header.Bound, module.InstructionCount)
	for _, ep := range module.EntryPoints {
		p.progress.Detailf("entry point %q (%s)", ep.Name, ep.Model)
	}
}
