// Package pretty prints the pipeline's progress and warning lines. Warnings
// get color when the destination is a terminal; quiet mode drops progress
// but never warnings.
package pretty

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var warnColor = color.New(color.FgYellow)

// Printer writes user-facing progress to W.
type Printer struct {
	W     io.Writer
	Quiet bool
}

// Progressf prints a progress line unless quiet.
func (p Printer) Progressf(format string, args ...any) {
	if p.Quiet || p.W == nil {
		return
	}
	fmt.Fprintf(p.W, format, args...)
}

// Warnf prints a warning line, highlighted on terminals. Warnings are shown
// even in quiet mode.
func (p Printer) Warnf(format string, args ...any) {
	if p.W == nil {
		return
	}
	_, _ = warnColor.Fprintf(p.W, format, args...)
}
