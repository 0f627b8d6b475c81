// Package ui prints status lines for the git-ai binaries.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// Printer writes styled lines. Success, Info and Header go to Out; Warn and
// Error go to Err. When Plain is set no styling is applied.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	Plain bool
}

// NewPrinter returns a Printer on out and errOut, plain unless out is a terminal.
func NewPrinter(out, errOut io.Writer) *Printer {
	f, ok := out.(*os.File)
	return &Printer{Out: out, Err: errOut, Plain: !ok || !IsInteractive(f)}
}

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (p *Printer) render(s lipgloss.Style, msg string) string {
	if p == nil || p.Plain {
		return msg
	}
	return s.Render(msg)
}

func (p *Printer) line(w io.Writer, s lipgloss.Style, msg string) {
	if p == nil || w == nil {
		return
	}
	fmt.Fprintln(w, p.render(s, msg))
}

func (p *Printer) Header(msg string) {
	if p == nil {
		return
	}
	p.line(p.Out, headerStyle, msg)
}

func (p *Printer) Success(msg string) {
	if p == nil {
		return
	}
	p.line(p.Out, successStyle, msg)
}

func (p *Printer) Info(msg string) {
	if p == nil {
		return
	}
	p.line(p.Out, faintStyle, msg)
}

func (p *Printer) Warn(msg string) {
	if p == nil {
		return
	}
	p.line(p.Err, warnStyle, msg)
}

func (p *Printer) Error(msg string) {
	if p == nil {
		return
	}
	p.line(p.Err, errorStyle, msg)
}

// Text writes msg to Out unstyled, followed by a newline.
func (p *Printer) Text(msg string) {
	if p == nil || p.Out == nil {
		return
	}
	fmt.Fprintln(p.Out, msg)
}

// Inserted and Deleted style fragments of an edit diff.
func (p *Printer) Inserted(s string) string { return p.render(successStyle, s) }
func (p *Printer) Deleted(s string) string  { return p.render(errorStyle, s) }
