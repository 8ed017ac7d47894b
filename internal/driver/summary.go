package driver

import (
	"fmt"
	"io"
	"strconv"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// totals is the run-wide aggregator. Counters only ever grow, from any
// worker, and are read once after the pool drains.
type totals struct {
	parseErrors  atomic.Uint64
	lintErrors   atomic.Uint64
	lintWarnings atomic.Uint64
}

func (t *totals) summary() Summary {
	return Summary{
		ParseErrors:  t.parseErrors.Load(),
		LintErrors:   t.lintErrors.Load(),
		LintWarnings: t.lintWarnings.Load(),
	}
}

// Summary holds the final counters of a completed run.
type Summary struct {
	ParseErrors  uint64
	LintErrors   uint64
	LintWarnings uint64
}

func (s Summary) Total() uint64 {
	return s.ParseErrors + s.LintErrors + s.LintWarnings
}

// ExitCode maps the summary onto the process exit status: clean runs exit 0,
// anything counted exits 1.
func (s Summary) ExitCode() int {
	if s.Total() > 0 {
		return 1
	}
	return 0
}

var nonzeroStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

func (s Summary) print(w io.Writer, useColor bool) {
	fmt.Fprintln(w, "Results:")

	stat := func(n uint64, label string) {
		num := strconv.FormatUint(n, 10)
		if n > 0 && useColor {
			num = nonzeroStyle.Render(num)
		}
		fmt.Fprintf(w, "%s %s\n", num, label)
	}

	stat(s.LintErrors, "errors")
	stat(s.LintWarnings, "warnings")
	stat(s.ParseErrors, "parse errors")
}
