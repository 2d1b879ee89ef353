package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorSuccess = lipgloss.Color("#04B575")
	ColorWarning = lipgloss.Color("#FFCC00")
	ColorError   = lipgloss.Color("#FF5F87")
	ColorInfo    = lipgloss.Color("#87CEEB")
	ColorMuted   = lipgloss.Color("#626262")

	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Printer writes styled status lines. Styles degrade to plain text when the
// writer is not a terminal.
type Printer struct {
	out io.Writer
	err io.Writer
}

// NewPrinter creates a Printer writing normal output to out and errors and
// warnings to errOut.
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{out: out, err: errOut}
}

func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, SuccessStyle.Render("✓")+" "+msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out, InfoStyle.Render("→")+" "+msg)
}

// Detail prints an indented, muted line under a previous status line.
func (p *Printer) Detail(msg string) {
	fmt.Fprintln(p.out, "  "+MutedStyle.Render(msg))
}

func (p *Printer) Warning(msg string) {
	fmt.Fprintln(p.err, WarningStyle.Render("!")+" "+msg)
}

func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.err, ErrorStyle.Render("Error:")+" "+msg)
}
