// Package console prints the harness's progress lines.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/glspv/diag"
)

// Printer writes progress to out and failures to errOut.
type Printer struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
	plain   bool

	detail lipgloss.Style
	failed lipgloss.Style
}

// New returns a Printer. verbose enables Detail lines; plain disables
// styling.
func New(out, errOut io.Writer, verbose, plain bool) *Printer {
	return &Printer{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
		plain:   plain,
		detail:  lipgloss.NewRenderer(out).NewStyle().Foreground(lipgloss.Color("240")),
		failed:  lipgloss.NewRenderer(errOut).NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

// Progressf writes one unstyled line to out.
func (p *Printer) Progressf(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Detailf writes a dimmed line when verbose output is on.
func (p *Printer) Detailf(format string, args ...any) {
	if !p.verbose {
		return
	}
	line := fmt.Sprintf("  "+format, args...)
	if !p.plain {
		line = p.detail.Render(line)
	}
	fmt.Fprintln(p.out, line)
}

// Errorf writes an error line to errOut.
func (p *Printer) Errorf(format string, args ...any) {
	prefix := "error:"
	if !p.plain {
		prefix = p.failed.Render(prefix)
	}
	fmt.Fprintf(p.errOut, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// Sink returns a diagnostic sink writing "OpenGL: <text>" lines to out.
// Verbose printers also show the message source, type and severity.
func (p *Printer) Sink() *diag.Console {
	var opts []diag.ConsoleOption
	if p.verbose {
		opts = append(opts, diag.WithDetails())
	}
	if p.plain {
		opts = append(opts, diag.WithoutColor())
	}
	return diag.NewConsole(p.out, opts...)
}
