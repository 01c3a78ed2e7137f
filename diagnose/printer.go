package diagnose

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Printer writes human-readable failure reports: the
// error description followed by the source window when
// the failure is an Error with a known line.
type Printer struct {
	// Radius is the number of context lines on each side.
	Radius int
	// Color enables ANSI highlighting.
	Color bool
}

// Fprint writes the report for err to w.
func (pr Printer) Fprint(w io.Writer, err error) error {
	const errCtx = "printing report"

	if err == nil {
		return nil
	}

	headCol := pr.paint(color.FgRed, color.Bold)
	markCol := pr.paint(color.FgYellow, color.Bold)
	restCol := pr.paint(color.Faint)

	if _, werr := headCol.Fprintln(w, err.Error()); werr != nil {
		return fmt.Errorf("%s: %w", errCtx, werr)
	}

	var der *Error
	if !errors.As(err, &der) {
		return nil
	}

	lines, lerr := der.ContextLines(pr.Radius)
	if lerr != nil {
		return fmt.Errorf("%s: %w", errCtx, lerr)
	}

	for _, ln := range lines {
		col := restCol
		if strings.HasPrefix(ln, markerLine) {
			col = markCol
		}

		if _, werr := col.Fprintln(w, ln); werr != nil {
			return fmt.Errorf("%s: %w", errCtx, werr)
		}
	}

	return nil
}

func (pr Printer) paint(attrs ...color.Attribute) *color.Color {
	col := color.New(attrs...)
	if pr.Color {
		col.EnableColor()
	} else {
		col.DisableColor()
	}

	return col
}
