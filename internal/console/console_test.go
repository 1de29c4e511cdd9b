package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/glspv/diag"
)

func TestPrinter_Progress(t *testing.T) {
	var out, errOut bytes.Buffer
	p := New(&out, &errOut, false, true)

	p.Progressf("Loading shader %s from %s", "main_ok", "good.spv")
	p.Detailf("hidden")
	p.Errorf("boom %d", 1)

	assert.Equal(t, "Loading shader main_ok from good.spv\n", out.String())
	assert.Equal(t, "error: boom 1\n", errOut.String())
}

func TestPrinter_Verbose(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &out, true, true)

	p.Detailf("size %d bytes", 40)

	assert.Equal(t, "  size 40 bytes\n", out.String())
}

func TestPrinter_Sink(t *testing.T) {
	msg := diag.Message{
		Source:   diag.SourceShaderCompiler,
		Type:     diag.TypeError,
		ID:       1,
		Severity: diag.SeverityHigh,
		Text:     "SPIR-V: entry point \"x\" not found",
	}

	t.Run("Plain", func(t *testing.T) {
		var out bytes.Buffer
		New(&out, &out, false, true).Sink().Receive(msg)
		assert.Equal(t, "OpenGL: SPIR-V: entry point \"x\" not found\n", out.String())
	})

	t.Run("Verbose", func(t *testing.T) {
		var out bytes.Buffer
		New(&out, &out, true, true).Sink().Receive(msg)
		assert.Contains(t, out.String(), "OpenGL: SPIR-V: entry point \"x\" not found (")
		assert.Contains(t, out.String(), msg.Severity.String())
	})

	t.Run("NonTerminalIsUnstyled", func(t *testing.T) {
		var out bytes.Buffer
		New(&out, &out, false, false).Sink().Receive(msg)
		assert.Equal(t, "OpenGL: SPIR-V: entry point \"x\" not found\n", out.String())
	})
}
