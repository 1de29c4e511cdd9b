package specialize

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/gogpu/glspv/diag"
	"github.com/gogpu/glspv/glapi"
	"github.com/gogpu/glspv/glapi/softgl"
	"github.com/gogpu/glspv/internal/fixture"
)

func setup(t *testing.T) (*softgl.Context, *diag.Recorder, glapi.Shader) {
	t.Helper()
	ctx := softgl.New()
	rec := &diag.Recorder{}
	ctx.SetDebugSink(rec)
	s, err := ctx.CreateShader(glapi.StageFragment)
	require.NoError(t, err)
	return ctx, rec, s
}

func TestSpecialize_Good(t *testing.T) {
	ctx, rec, s := setup(t)

	err := Specialize(ctx, s, fixture.Good(fixture.EntryPoint), fixture.EntryPoint)

	require.NoError(t, err)
	assert.False(t, rec.HasErrors())
	state, ok := ctx.State(s)
	require.True(t, ok)
	assert.Equal(t, softgl.StateSpecialized, state)

	status := Status(ctx, s)
	assert.True(t, status.SPIRVBinary)
	assert.True(t, status.Compiled)
}

func TestSpecialize_Bad(t *testing.T) {
	ctx, rec, s := setup(t)

	err := Specialize(ctx, s, fixture.Bad(fixture.EntryPoint), fixture.EntryPoint)

	require.NoError(t, err, "driver rejection is not an error value")
	require.True(t, rec.HasErrors())
	assert.Equal(t, diag.TypeError, rec.Errors()[0].Type)
	assert.Contains(t, rec.Errors()[0].Text, fmt.Sprint(fixture.BadBinding))
	assert.False(t, Status(ctx, s).Compiled)
}

func TestSpecialize_UnknownEntryPoint(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		entry := rapid.StringMatching(`[a-z_][a-z0-9_]{0,24}`).Draw(rt, "entry")
		other := rapid.StringMatching(`[a-z_][a-z0-9_]{0,24}`).Filter(func(s string) bool {
			return s != entry
		}).Draw(rt, "other")

		ctx := softgl.New()
		rec := &diag.Recorder{}
		ctx.SetDebugSink(rec)
		s, err := ctx.CreateShader(glapi.StageFragment)
		if err != nil {
			rt.Fatal(err)
		}

		if err := Specialize(ctx, s, fixture.Good(entry), other); err != nil {
			rt.Fatal(err)
		}
		if !rec.HasErrors() {
			rt.Fatalf("no error diagnostic for entry %q in module declaring %q", other, entry)
		}
		if state, _ := ctx.State(s); state != softgl.StateSpecializationFailed {
			rt.Fatalf("state = %s", state)
		}
	})
}

func TestSpecialize_KnownEntryPoint(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		entry := rapid.StringMatching(`[A-Za-z_][A-Za-z0-9_]{0,80}`).Draw(rt, "entry")

		ctx := softgl.New()
		rec := &diag.Recorder{}
		ctx.SetDebugSink(rec)
		s, err := ctx.CreateShader(glapi.StageFragment)
		if err != nil {
			rt.Fatal(err)
		}

		if err := Specialize(ctx, s, fixture.Good(entry), entry); err != nil {
			rt.Fatal(err)
		}
		if rec.HasErrors() {
			rt.Fatalf("unexpected diagnostics: %v", rec.Messages())
		}
	})
}

func TestSpecialize_DiagnosticsFollowCallOrder(t *testing.T) {
	ctx := softgl.New()
	rec := &diag.Recorder{}
	ctx.SetDebugSink(rec)

	var shaders []glapi.Shader
	for i := 0; i < 3; i++ {
		s, err := ctx.CreateShader(glapi.StageFragment)
		require.NoError(t, err)
		shaders = append(shaders, s)
	}

	require.NoError(t, Specialize(ctx, shaders[0], []byte("garbage!"), "a"))
	require.NoError(t, Specialize(ctx, shaders[1], fixture.Good("b"), "missing_b"))
	require.NoError(t, Specialize(ctx, shaders[2], fixture.Bad("c"), "c"))

	msgs := rec.Messages()
	require.Len(t, msgs, 4)
	assert.Contains(t, msgs[0].Text, "glShaderBinary")
	assert.Contains(t, msgs[1].Text, "glSpecializeShader")
	assert.Contains(t, msgs[2].Text, "missing_b")
	assert.Contains(t, msgs[3].Text, "params")
}

func TestSpecialize_Preconditions(t *testing.T) {
	ctx, rec, s := setup(t)
	good := fixture.Good(fixture.EntryPoint)

	tests := []struct {
		name  string
		ctx   glapi.Context
		bin   []byte
		entry string
		kind  ErrorKind
	}{
		{"NilContext", nil, good, fixture.EntryPoint, ErrNoContext},
		{"EmptyBinary", ctx, nil, fixture.EntryPoint, ErrEmptyBinary},
		{"EmptyEntryPoint", ctx, good, "", ErrEmptyEntryPoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Specialize(tt.ctx, s, tt.bin, tt.entry)

			var se *Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.kind, se.Kind)
			assert.Contains(t, err.Error(), tt.kind.String())
		})
	}

	assert.Zero(t, rec.Len(), "preconditions must not reach the driver")
	state, _ := ctx.State(s)
	assert.Equal(t, softgl.StateCreated, state)
}

func TestStatus_NilContext(t *testing.T) {
	assert.Equal(t, glapi.Status{}, Status(nil, 1))
}

func TestSubmit_EmptyBinaryReachesDriver(t *testing.T) {
	ctx, rec, s := setup(t)

	err := Submit(ctx, s, nil, fixture.EntryPoint)

	require.NoError(t, err)
	msgs := rec.Messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Text, "too small")
	assert.Contains(t, msgs[1].Text, "not a SPIR-V shader")
	state, _ := ctx.State(s)
	assert.Equal(t, softgl.StateSpecializationFailed, state)
}

func TestSubmit_Preconditions(t *testing.T) {
	ctx, rec, s := setup(t)

	var se *Error
	require.ErrorAs(t, Submit(nil, s, nil, "main"), &se)
	assert.Equal(t, ErrNoContext, se.Kind)
	require.ErrorAs(t, Submit(ctx, s, fixture.Good("main"), ""), &se)
	assert.Equal(t, ErrEmptyEntryPoint, se.Kind)
	assert.Zero(t, rec.Len())
}
