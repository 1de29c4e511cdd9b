package glspv

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glspv/diag"
	"github.com/gogpu/glspv/glapi"
	"github.com/gogpu/glspv/glapi/softgl"
	"github.com/gogpu/glspv/internal/fixture"
	"github.com/gogpu/glspv/loader"
	"github.com/gogpu/glspv/specialize"
)

type lines struct {
	progress []string
	detail   []string
}

func (l *lines) Progressf(format string, args ...any) {
	l.progress = append(l.progress, fmt.Sprintf(format, args...))
}

func (l *lines) Detailf(format string, args ...any) {
	l.detail = append(l.detail, fmt.Sprintf(format, args...))
}

func candidates(t *testing.T) (good, bad string) {
	t.Helper()
	good, bad, err := fixture.WriteCandidates(t.TempDir(), fixture.EntryPoint)
	require.NoError(t, err)
	return good, bad
}

func TestRun_Good(t *testing.T) {
	good, _ := candidates(t)
	ctx := softgl.New()
	var out bytes.Buffer
	progress := &lines{}

	report, err := New(ctx, diag.NewConsole(&out, diag.WithoutColor()), WithProgress(progress)).Run(Request{
		Path:       good,
		EntryPoint: fixture.EntryPoint,
	})

	require.NoError(t, err)
	assert.False(t, report.Failed())
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, out.String())
	assert.Equal(t, glapi.StageFragment, report.Stage)
	assert.Equal(t, len(fixture.Good(fixture.EntryPoint)), report.Size)
	assert.Nil(t, report.Status)

	assert.Equal(t, []string{
		"Loading shader main_ok from " + good,
		"Specialized shader",
	}, progress.progress)

	state, ok := ctx.State(report.Shader)
	require.True(t, ok)
	assert.Equal(t, softgl.StateSpecialized, state)
}

func TestRun_Bad(t *testing.T) {
	_, bad := candidates(t)
	ctx := softgl.New()
	var out bytes.Buffer

	report, err := New(ctx, diag.NewConsole(&out, diag.WithoutColor())).Run(Request{
		Path:       bad,
		EntryPoint: fixture.EntryPoint,
	})

	require.NoError(t, err, "driver diagnostics are not run errors")
	assert.True(t, report.Failed())
	require.NotEmpty(t, report.Errors())
	assert.Equal(t, diag.TypeError, report.Errors()[0].Type)

	// Console shows the driver text verbatim.
	want := diag.Prefix + " " + report.Errors()[0].Text + "\n"
	assert.Equal(t, want, out.String())
	assert.Contains(t, out.String(), "binding 4096")
}

func TestRun_UnknownEntryPoint(t *testing.T) {
	good, _ := candidates(t)
	ctx := softgl.New()

	report, err := New(ctx, nil).Run(Request{Path: good, EntryPoint: "frag_main"})

	require.NoError(t, err)
	assert.True(t, report.Failed())
	state, _ := ctx.State(report.Shader)
	assert.Equal(t, softgl.StateSpecializationFailed, state)
}

func TestRun_CheckStatus(t *testing.T) {
	good, bad := candidates(t)

	t.Run("Good", func(t *testing.T) {
		progress := &lines{}
		report, err := New(softgl.New(), nil, WithProgress(progress)).Run(Request{
			Path: good, EntryPoint: fixture.EntryPoint, CheckStatus: true,
		})
		require.NoError(t, err)
		require.NotNil(t, report.Status)
		assert.True(t, report.Status.Compiled)
		assert.False(t, report.Failed())
		assert.Contains(t, progress.detail, "GL_SPIR_V_BINARY=true GL_COMPILE_STATUS=true")
	})

	t.Run("Bad", func(t *testing.T) {
		report, err := New(softgl.New(), nil).Run(Request{
			Path: bad, EntryPoint: fixture.EntryPoint, CheckStatus: true,
		})
		require.NoError(t, err)
		require.NotNil(t, report.Status)
		assert.False(t, report.Status.Compiled)
		assert.Contains(t, report.Status.InfoLog, "GL_MAX_UNIFORM_BUFFER_BINDINGS")
	})
}

func TestRun_MissingFile(t *testing.T) {
	progress := &lines{}
	ctx := softgl.New()
	path := filepath.Join(t.TempDir(), "nope.spv")

	report, err := New(ctx, nil, WithProgress(progress)).Run(Request{Path: path, EntryPoint: "main_ok"})

	assert.Nil(t, report)
	assert.True(t, loader.IsResourceUnavailable(err))
	// The progress line comes before the load is attempted.
	assert.Equal(t, []string{"Loading shader main_ok from " + path}, progress.progress)
	_, created := ctx.State(1)
	assert.False(t, created, "no shader object after a failed load")
}

func TestRun_Preconditions(t *testing.T) {
	good, _ := candidates(t)

	_, err := New(nil, nil).Run(Request{Path: good, EntryPoint: "main_ok"})
	var se *specialize.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, specialize.ErrNoContext, se.Kind)

	_, err = New(softgl.New(), nil).Run(Request{Path: good, EntryPoint: ""})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, specialize.ErrEmptyEntryPoint, se.Kind)

	_, err = New(softgl.New(), nil).Run(Request{Path: good, EntryPoint: "main_ok", Stage: glapi.Stage(7)})
	assert.ErrorContains(t, err, "create")
}

func TestRun_VerboseDescribe(t *testing.T) {
	good, _ := candidates(t)
	progress := &lines{}

	_, err := New(softgl.New(), nil, WithProgress(progress)).Run(Request{Path: good, EntryPoint: "main_ok"})

	require.NoError(t, err)
	joined := strings.Join(progress.detail, "\n")
	assert.Contains(t, joined, "SPIR-V 1.0")
	assert.Contains(t, joined, `entry point "main_ok" (Fragment)`)
}

func TestReport_Failed(t *testing.T) {
	warning := diag.Message{Type: diag.TypePerformance, Severity: diag.SeverityMedium, Text: "slow"}
	failure := diag.Message{Type: diag.TypeError, Severity: diag.SeverityHigh, Text: "bad"}

	assert.False(t, (&Report{}).Failed())
	assert.False(t, (&Report{Diagnostics: []diag.Message{warning}}).Failed())
	assert.True(t, (&Report{Diagnostics: []diag.Message{warning, failure}}).Failed())
	assert.True(t, (&Report{Status: &glapi.Status{Compiled: false}}).Failed())
	assert.False(t, (&Report{Status: &glapi.Status{Compiled: true}}).Failed())
}

func TestRun_EmptyFileIsSubmitted(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.spv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	ctx := softgl.New()
	var out bytes.Buffer
	progress := &lines{}

	report, err := New(ctx, diag.NewConsole(&out, diag.WithoutColor()), WithProgress(progress)).Run(Request{
		Path:       empty,
		EntryPoint: fixture.EntryPoint,
	})

	require.NoError(t, err, "an empty module is the driver's to reject")
	assert.Zero(t, report.Size)
	assert.True(t, report.Failed())
	assert.Equal(t, []string{
		"Loading shader main_ok from " + empty,
		"Specialized shader",
	}, progress.progress)
	assert.Equal(t,
		"OpenGL: glShaderBinary(SPIR-V binary too small)\n"+
			"OpenGL: glSpecializeShader(not a SPIR-V shader)\n",
		out.String())

	state, _ := ctx.State(report.Shader)
	assert.Equal(t, softgl.StateSpecializationFailed, state)
}

func TestRun_RestoresDebugSink(t *testing.T) {
	good, bad := candidates(t)
	ctx := softgl.New()
	outer := &diag.Recorder{}
	ctx.SetDebugSink(outer)

	report, err := New(ctx, nil).Run(Request{Path: bad, EntryPoint: fixture.EntryPoint})
	require.NoError(t, err)
	require.Len(t, report.Diagnostics, 1)
	assert.Same(t, outer, ctx.DebugSink())
	assert.Zero(t, outer.Len(), "pipeline messages go to the pipeline's sink only")

	// Calls made after Run reach the caller's sink and leave the report alone.
	_, err = ctx.CreateShader(glapi.Stage(7))
	require.Error(t, err)
	assert.Equal(t, 1, outer.Len())
	assert.Len(t, report.Diagnostics, 1)

	second, err := New(ctx, nil).Run(Request{Path: good, EntryPoint: fixture.EntryPoint})
	require.NoError(t, err)
	assert.Empty(t, second.Diagnostics)
	assert.Same(t, outer, ctx.DebugSink())
}
