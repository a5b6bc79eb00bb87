package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kievzenit/snuplc/internal/compiler_errors"
)

type printer struct {
	out io.Writer

	header  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	dim     lipgloss.Style
}

// newPrinter styles output for out. The renderer drops colors when out is
// not a terminal.
func newPrinter(out io.Writer, color bool) *printer {
	r := lipgloss.NewRenderer(out)

	p := &printer{
		out: out,

		header:  r.NewStyle(),
		success: r.NewStyle(),
		failure: r.NewStyle(),
		dim:     r.NewStyle(),
	}

	if color {
		p.header = p.header.Bold(true)
		p.success = p.success.Foreground(lipgloss.Color("2"))
		p.failure = p.failure.Foreground(lipgloss.Color("1")).Bold(true)
		p.dim = p.dim.Foreground(lipgloss.Color("8"))
	}

	return p
}

func (p *printer) print(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(p.out, style.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) text(s string) {
	fmt.Fprint(p.out, s)
	if !strings.HasSuffix(s, "\n") {
		fmt.Fprintln(p.out)
	}
}

// diagnostic renders a syntax error as "<file>: syntax error at L:C : msg".
func (p *printer) diagnostic(fileName string, err compiler_errors.CompilerError) string {
	msg := fmt.Sprintf("syntax error at %d:%d : %s", err.GetLine(), err.GetColumn(), err.GetMessage())
	if fileName != "" {
		msg = fileName + ": " + msg
	}

	return p.failure.Render(msg)
}

// caret points at column col of a single source line.
func (p *printer) caret(line string, col int) {
	if col < 1 {
		col = 1
	}

	fmt.Fprintln(p.out, "  "+line)
	fmt.Fprintln(p.out, p.dim.Render("  "+strings.Repeat(" ", col-1)+"^"))
}

func (p *printer) errorHandler() *compiler_errors.CompilerErrorHandler {
	return compiler_errors.NewErrorHandler(p.out).WithFormatter(p.diagnostic)
}
