package driver

import (
	"fmt"

	"lualint/internal/diag"
	"lualint/internal/diagfmt"
	"lualint/internal/parser"
	"lualint/internal/source"
)

// lintFile is the per-file unit of work: read, parse, check, render,
// aggregate. Nothing in here is fatal to the run; every failure path reports
// and returns.
func (r *runner) lintFile(path string) {
	file, err := source.Load(path)
	if err != nil {
		r.reportError(fmt.Sprintf("couldn't read contents of file %s: %v", path, err))
		return
	}

	tree, err := parser.Parse(file)
	if err != nil {
		r.totals.parseErrors.Add(1)
		r.reportError(fmt.Sprintf("error parsing %s: %v", path, err))
		return
	}

	diags := r.checker.Check(tree)
	diag.SortByPosition(diags)

	var errs, warns uint64
	for _, d := range diags {
		if d.Severity == diag.SevError {
			errs++
		} else {
			warns++
		}
	}
	r.totals.lintErrors.Add(errs)
	r.totals.lintWarnings.Add(warns)

	for _, d := range diags {
		r.render(file, d)
	}
}

// render writes one diagnostic block. The lock spans a whole block so
// concurrent tasks interleave between blocks, never inside one.
func (r *runner) render(file *source.File, d diag.Diagnostic) {
	r.outMu.Lock()
	defer r.outMu.Unlock()

	if r.opts.Quiet {
		diagfmt.Short(r.opts.Stdout, file, d, r.opts.Color)
	} else {
		diagfmt.Pretty(r.opts.Stdout, file, d, r.opts.Color)
	}
}
