// Package check implements the analysis engine. A Checker is built once from
// the configuration and an inflated standard-library definition, then shared
// read-only across workers; nothing here mutates it after New returns.
package check

import (
	"fmt"

	"lualint/internal/config"
	"lualint/internal/diag"
	"lualint/internal/parser"
	"lualint/internal/stdlib"
)

// Checker holds the resolved rule set and the environment to lint against.
type Checker struct {
	std    *stdlib.StandardLibrary
	levels map[string]diag.Severity // enabled rules only
}

var defaultLevels = map[string]diag.Severity{
	"undefined_global":  diag.SevError,
	"deprecated_global": diag.SevWarning,
	"empty_block":       diag.SevWarning,
}

// New validates the per-rule severity levels from cfg against the known rule
// set and builds an immutable Checker.
func New(cfg config.Config, std *stdlib.StandardLibrary) (*Checker, error) {
	if std == nil {
		return nil, fmt.Errorf("no standard library definition")
	}
	if std.BasedOn != "" {
		return nil, fmt.Errorf("standard library definition was not inflated")
	}

	levels := make(map[string]diag.Severity, len(defaultLevels))
	for name, sev := range defaultLevels {
		levels[name] = sev
	}
	for name, level := range cfg.Rules {
		if _, ok := defaultLevels[name]; !ok {
			return nil, fmt.Errorf("unknown rule '%s'", name)
		}
		switch level {
		case "allow":
			delete(levels, name)
		case "warn":
			levels[name] = diag.SevWarning
		case "deny":
			levels[name] = diag.SevError
		default:
			return nil, fmt.Errorf("invalid severity '%s' for rule '%s' (expected allow, warn, or deny)", level, name)
		}
	}

	return &Checker{std: std, levels: levels}, nil
}

// Check runs every enabled rule over tree. The returned diagnostics are in no
// particular order; callers sort before rendering.
func (c *Checker) Check(tree *parser.Tree) []diag.Diagnostic {
	var out []diag.Diagnostic
	out = append(out, c.checkGlobals(tree)...)
	out = append(out, c.checkEmptyBlocks(tree)...)
	return out
}
