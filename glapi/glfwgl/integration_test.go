//go:build integration

package glfwgl

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glspv/diag"
	"github.com/gogpu/glspv/glapi"
	"github.com/gogpu/glspv/internal/fixture"
	"github.com/gogpu/glspv/specialize"
)

func init() {
	runtime.LockOSThread()
}

func openTestContext(t *testing.T) *Context {
	t.Helper()
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		t.Skip("no display")
	}
	cfg := glapi.DefaultWindowConfig()
	cfg.Hidden = true
	ctx, err := Open(cfg)
	if err != nil {
		t.Skip(err)
	}
	t.Cleanup(ctx.Close)
	return ctx
}

func TestIntegration_Candidates(t *testing.T) {
	ctx := openTestContext(t)
	t.Log(ctx.Describe())

	rec := &diag.Recorder{}
	ctx.SetDebugSink(rec)

	good, err := ctx.CreateShader(glapi.StageFragment)
	require.NoError(t, err)
	require.NoError(t, specialize.Specialize(ctx, good, fixture.Good(fixture.EntryPoint), fixture.EntryPoint))
	assert.False(t, rec.HasErrors(), "good module: %v", rec.Messages())
	assert.True(t, specialize.Status(ctx, good).Compiled)

	rec.Reset()
	missing, err := ctx.CreateShader(glapi.StageFragment)
	require.NoError(t, err)
	require.NoError(t, specialize.Specialize(ctx, missing, fixture.Good(fixture.EntryPoint), "main_missing"))
	assert.False(t, specialize.Status(ctx, missing).Compiled)
}
