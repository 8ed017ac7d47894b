// Package driver orchestrates a lint run: it resolves the checker engine,
// expands targets, fans per-file tasks across a bounded worker pool, and
// aggregates the results into a Summary.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"lualint/internal/check"
	"lualint/internal/config"
	"lualint/internal/stdlib"
)

type runner struct {
	opts    Options
	checker *check.Checker
	totals  totals

	outMu sync.Mutex // one rendered block per lock
	errMu sync.Mutex
}

// Run executes one lint run. A returned error is fatal: nothing was linted
// and no summary was printed. Per-target failures are reported to
// opts.Stderr and reflected in the Summary instead.
func Run(ctx context.Context, opts Options) (Summary, error) {
	opts.normalize()

	cfg, err := config.Load(opts.ConfigPath, opts.Dir)
	if err != nil {
		return Summary{}, err
	}

	std, err := resolveStdLib(cfg.Std, opts.Dir)
	if err != nil {
		return Summary{}, err
	}

	checker, err := check.New(cfg, std)
	if err != nil {
		return Summary{}, err
	}

	// The pattern is shared by every directory target, so a bad one aborts
	// before any task is submitted.
	if !doublestar.ValidatePattern(opts.Pattern) {
		return Summary{}, fmt.Errorf("invalid glob pattern '%s'", opts.Pattern)
	}

	r := &runner{opts: opts, checker: checker}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.NumThreads)

	for _, target := range opts.Targets {
		r.enumerate(gctx, g, target)
	}

	// Join barrier: the counters below reflect every submitted task. Tasks
	// never return errors; failures degrade to per-file reports.
	_ = g.Wait()

	summary := r.totals.summary()
	summary.print(opts.Stdout, opts.Color)
	return summary, nil
}

// enumerate expands one target and submits a task per discovered file. Each
// file is submitted as soon as it is found; matching inside large directories
// overlaps with linting already-discovered files.
func (r *runner) enumerate(ctx context.Context, g *errgroup.Group, target string) {
	info, err := os.Stat(target)
	if err != nil {
		r.reportError(fmt.Sprintf("error getting metadata of %s: %v", target, err))
		return
	}

	switch {
	case info.Mode().IsRegular():
		r.submit(ctx, g, target)

	case info.IsDir():
		fsys := os.DirFS(target)
		walkErr := doublestar.GlobWalk(fsys, r.opts.Pattern, func(path string, d fs.DirEntry) error {
			if d.IsDir() {
				return nil
			}
			r.submit(ctx, g, filepath.Join(target, filepath.FromSlash(path)))
			return nil
		})
		if walkErr != nil {
			r.reportError(fmt.Sprintf("couldn't search %s: %v", target, walkErr))
		}

	default:
		// Fifos, sockets, device nodes. Skip rather than die on user input.
		r.reportError(fmt.Sprintf("unsupported file type for %s, skipping", target))
	}
}

func (r *runner) submit(ctx context.Context, g *errgroup.Group, path string) {
	// Go blocks while all workers are busy, bounding the amount of queued
	// work without materializing the full file list.
	g.Go(func() error {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		r.lintFile(path)
		return nil
	})
}

var errPrefix = color.New(color.FgRed)

// reportError emits one non-fatal error line to the error stream.
func (r *runner) reportError(msg string) {
	r.errMu.Lock()
	defer r.errMu.Unlock()

	prefix := "ERROR:"
	if r.opts.Color {
		prefix = errPrefix.Sprint(prefix)
	}
	fmt.Fprintln(r.opts.Stderr, prefix, msg)
}

// resolveStdLib loads the standard-library definition named by selector: a
// <selector>.toml file in dir wins over a built-in preset of the same name.
func resolveStdLib(selector, dir string) (*stdlib.StandardLibrary, error) {
	path := filepath.Join(dir, selector+".toml")
	content, err := os.ReadFile(path)
	if err == nil {
		std, parseErr := stdlib.Parse(content)
		if parseErr != nil {
			return nil, fmt.Errorf("custom standard library wasn't formatted properly: %w", parseErr)
		}
		if inflateErr := std.Inflate(dir); inflateErr != nil {
			return nil, fmt.Errorf("custom standard library wasn't formatted properly: %w", inflateErr)
		}
		return std, nil
	}

	std, ok := stdlib.FromName(selector)
	if !ok {
		return nil, fmt.Errorf("unknown standard library '%s'", selector)
	}
	return std, nil
}
