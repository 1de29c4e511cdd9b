package diag

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Prefix starts every line the console sink writes.
const Prefix = "OpenGL:"

// Console writes one line per message: the prefix followed by the message
// text exactly as the driver reported it.
type Console struct {
	w       io.Writer
	details bool
	plain   bool

	errStyle  lipgloss.Style
	warnStyle lipgloss.Style
	infoStyle lipgloss.Style
	dimStyle  lipgloss.Style
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithDetails appends source, type, severity and id after the text.
func WithDetails() ConsoleOption {
	return func(c *Console) { c.details = true }
}

// WithoutColor disables styling even on a terminal.
func WithoutColor() ConsoleOption {
	return func(c *Console) { c.plain = true }
}

// NewConsole returns a Console writing to w. Styling follows the color
// profile lipgloss detects for w, so pipes and files get plain text.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	r := lipgloss.NewRenderer(w)
	c := &Console{
		w:         w,
		errStyle:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		warnStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		infoStyle: r.NewStyle().Foreground(lipgloss.Color("86")),
		dimStyle:  r.NewStyle().Foreground(lipgloss.Color("240")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Receive writes m. Write errors are ignored; there is nowhere to report them.
func (c *Console) Receive(m Message) {
	prefix := Prefix
	var suffix string
	if c.details {
		suffix = fmt.Sprintf(" (%s/%s/%s #%d)", m.Source, m.Type, m.Severity, m.ID)
	}
	if !c.plain {
		prefix = c.styleFor(m).Render(prefix)
		if suffix != "" {
			suffix = c.dimStyle.Render(suffix)
		}
	}
	fmt.Fprintf(c.w, "%s %s%s\n", prefix, m.Text, suffix)
}

func (c *Console) styleFor(m Message) lipgloss.Style {
	switch {
	case m.IsError():
		return c.errStyle
	case m.Severity == SeverityMedium || m.Severity == SeverityLow:
		return c.warnStyle
	default:
		return c.infoStyle
	}
}
