// Package diag defines the diagnostic model shared by the checker and the
// driver. It carries no formatting or IO; rendering lives in internal/diagfmt.
package diag

import (
	"sort"

	"lualint/internal/source"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevWarning counts toward the run's warning total.
	SevWarning Severity = iota
	// SevError counts toward the run's error total.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Diagnostic is a single issue reported by a rule against one file.
type Diagnostic struct {
	Severity Severity
	Code     string // rule name
	Message  string
	Span     source.Span
}

// SortByPosition orders diagnostics by start offset ascending. The sort is
// stable, so same-position diagnostics keep their reported order.
func SortByPosition(items []Diagnostic) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Span.Start != items[j].Span.Start {
			return items[i].Span.Start < items[j].Span.Start
		}
		return items[i].Span.End < items[j].Span.End
	})
}
