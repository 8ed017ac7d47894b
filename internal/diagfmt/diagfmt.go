// Package diagfmt renders diagnostics for the terminal. Pretty prints a
// positioned excerpt with an underline; Short prints one line per diagnostic.
package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lualint/internal/diag"
	"lualint/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
)

func sevColor(sev diag.Severity) *color.Color {
	if sev == diag.SevError {
		return errColor
	}
	return warnColor
}

func sevLabel(sev diag.Severity, useColor bool) string {
	if useColor {
		return sevColor(sev).Sprint(sev.String())
	}
	return sev.String()
}

// Pretty writes one block for d: a header line
// <path>:<line>:<col>: <SEV> <code>: <message>
// followed by the offending source line, an underline, and a blank separator.
func Pretty(w io.Writer, file *source.File, d diag.Diagnostic, useColor bool) {
	start := file.Resolve(d.Span.Start)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		file.Path, start.Line, start.Col, sevLabel(d.Severity, useColor), d.Code, d.Message)

	lineText := file.Line(start.Line)
	col := int(start.Col) - 1
	if col > len(lineText) {
		col = len(lineText)
	}

	spanLen := int(d.Span.Len())
	if avail := len(lineText) - col; spanLen > avail {
		// The span runs past this line; underline what is visible.
		spanLen = avail
	}

	// Zero-width diagnostics still get a single caret to point at.
	underWidth := 1
	if !d.Span.Empty() {
		underWidth = runewidth.StringWidth(lineText[col : col+spanLen])
		if underWidth < 1 {
			underWidth = 1
		}
	}
	underline := "^" + strings.Repeat("~", underWidth-1)
	if useColor {
		underline = sevColor(d.Severity).Sprint(underline)
	}

	gutter := len(strconv.FormatUint(uint64(start.Line), 10))
	pad := runewidth.StringWidth(lineText[:col])
	fmt.Fprintf(w, "%*d | %s\n", gutter, start.Line, lineText)
	fmt.Fprintf(w, "%s | %s%s\n", strings.Repeat(" ", gutter), strings.Repeat(" ", pad), underline)
	fmt.Fprintln(w)
}

// Short writes one line per diagnostic:
// <SEV> <code> <path>:<line>:<col> <message>
func Short(w io.Writer, file *source.File, d diag.Diagnostic, useColor bool) {
	start := file.Resolve(d.Span.Start)
	fmt.Fprintf(w, "%s %s %s:%d:%d %s\n",
		sevLabel(d.Severity, useColor), d.Code, file.Path, start.Line, start.Col, d.Message)
}
