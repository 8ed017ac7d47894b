package driver

import (
	"io"
	"os"
	"runtime"
)

// Options is the resolved input of one run. It is never mutated after Run
// starts; workers only read it.
type Options struct {
	// Targets are the file or directory paths to lint.
	Targets []string
	// Pattern is the glob applied inside directory targets.
	Pattern string
	// ConfigPath, when set, overrides the working-directory config lookup.
	ConfigPath string
	// NumThreads bounds the worker pool; values < 1 mean one worker per CPU.
	NumThreads int
	// Quiet switches diagnostic rendering to the one-line form.
	Quiet bool
	// Color enables terminal styling on both output streams.
	Color bool
	// Dir is the working directory used to resolve the default config file
	// and standard-library files. Empty means the process working directory.
	Dir string
	// Stdout receives rendered diagnostics and the summary.
	Stdout io.Writer
	// Stderr receives non-fatal per-target error reports.
	Stderr io.Writer
}

// DefaultPattern matches Lua sources recursively inside directory targets.
const DefaultPattern = "**/*.lua"

func (o *Options) normalize() {
	if o.Pattern == "" {
		o.Pattern = DefaultPattern
	}
	if o.NumThreads < 1 {
		o.NumThreads = runtime.GOMAXPROCS(0)
	}
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}
