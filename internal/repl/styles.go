package repl

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles colours REPL output. The zero value prints plain text.
type Styles struct {
	enabled bool
	result  lipgloss.Style
	err     lipgloss.Style
	label   lipgloss.Style
}

// NewStyles resolves mode ("auto", "always" or "never") against w.
func NewStyles(mode string, w io.Writer) Styles {
	switch mode {
	case "never":
		return Styles{}
	case "always":
	default:
		if !isTerminal(w) {
			return Styles{}
		}
	}
	r := lipgloss.NewRenderer(w)
	if mode == "always" {
		r.SetColorProfile(termenv.ANSI256)
	}
	return Styles{
		enabled: true,
		result:  r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		err:     r.NewStyle().Foreground(lipgloss.Color("196")),
		label:   r.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

func (s Styles) Result(str string) string { return s.render(s.result, str) }
func (s Styles) Error(str string) string  { return s.render(s.err, str) }
func (s Styles) Label(str string) string  { return s.render(s.label, str) }

// render styles each line on its own so multi-line text is not padded.
func (s Styles) render(st lipgloss.Style, str string) string {
	if !s.enabled || str == "" {
		return str
	}
	lines := strings.Split(str, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = st.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

type fder interface{ Fd() uintptr }

func isTerminal(v interface{}) bool {
	f, ok := v.(fder)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
