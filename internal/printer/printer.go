// Package printer writes user-facing lines for the interactive client with
// colour cues. Colour is disabled when NO_COLOR is set.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Printer prints to a single writer. The zero value is not usable; see New.
type Printer struct {
	w io.Writer
}

func New(w io.Writer) *Printer {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
	return &Printer{w: w}
}

// Writer exposes the underlying writer for table output.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Success prints a green line prefixed with a checkmark.
func (p *Printer) Success(format string, a ...any) {
	green.Fprintln(p.w, "✓ "+fmt.Sprintf(format, a...))
}

// Warning prints a yellow line.
func (p *Printer) Warning(format string, a ...any) {
	yellow.Fprintln(p.w, "! "+fmt.Sprintf(format, a...))
}

// Error prints err in red. Multi-error chains joined with newlines are
// printed one per line.
func (p *Printer) Error(err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		red.Fprintln(p.w, "✗ "+line)
	}
}

// Step prints a cyan progress line.
func (p *Printer) Step(format string, a ...any) {
	cyan.Fprintln(p.w, "→ "+fmt.Sprintf(format, a...))
}

// Info prints a plain line.
func (p *Printer) Info(format string, a ...any) {
	fmt.Fprintln(p.w, fmt.Sprintf(format, a...))
}
