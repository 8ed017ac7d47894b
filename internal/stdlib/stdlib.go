// Package stdlib models the standard-library definitions the checker lints
// against. A definition is either a named built-in preset or a TOML file; a
// file may extend another definition via based_on and must be inflated before
// use.
package stdlib

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Global describes one name the environment provides.
type Global struct {
	// Deprecated holds a replacement hint when the name should no longer be
	// used. Empty means the name is current.
	Deprecated string `toml:"deprecated"`
}

// StandardLibrary is the set of globals a chunk may reference.
type StandardLibrary struct {
	BasedOn string            `toml:"based_on"`
	Globals map[string]Global `toml:"globals"`
}

// Parse decodes a custom definition from TOML.
func Parse(content []byte) (*StandardLibrary, error) {
	// toml.Unmarshal zero-fills a scalar decoded into a map or struct field
	// instead of failing, so the document shape is checked against the raw
	// form first.
	var raw map[string]any
	if err := toml.Unmarshal(content, &raw); err != nil {
		return nil, err
	}
	if err := checkShape(raw); err != nil {
		return nil, err
	}

	var std StandardLibrary
	if err := toml.Unmarshal(content, &std); err != nil {
		return nil, err
	}
	if std.Globals == nil {
		std.Globals = map[string]Global{}
	}
	return &std, nil
}

func checkShape(raw map[string]any) error {
	if v, ok := raw["based_on"]; ok {
		if _, isString := v.(string); !isString {
			return fmt.Errorf("'based_on' must be a string")
		}
	}
	v, ok := raw["globals"]
	if !ok {
		return nil
	}
	globals, isTable := v.(map[string]any)
	if !isTable {
		return fmt.Errorf("'globals' must be a table")
	}
	for name, entry := range globals {
		fields, isTable := entry.(map[string]any)
		if !isTable {
			return fmt.Errorf("global '%s' must be a table", name)
		}
		if dep, ok := fields["deprecated"]; ok {
			if _, isString := dep.(string); !isString {
				return fmt.Errorf("'deprecated' for global '%s' must be a string", name)
			}
		}
	}
	return nil
}

// Inflate flattens the based_on chain into the receiver. Bases resolve to a
// <name>.toml file inside dir first, then to a built-in preset, mirroring the
// top-level selector lookup. Entries already present win over inherited ones.
// Inflate is idempotent: a flattened definition has no based_on left.
func (s *StandardLibrary) Inflate(dir string) error {
	if s.Globals == nil {
		s.Globals = map[string]Global{}
	}

	seen := map[string]bool{}
	base := s.BasedOn
	for base != "" {
		if seen[base] {
			return fmt.Errorf("standard library inheritance cycle through '%s'", base)
		}
		seen[base] = true

		parent, err := resolveBase(base, dir)
		if err != nil {
			return err
		}
		for name, global := range parent.Globals {
			if _, ok := s.Globals[name]; !ok {
				s.Globals[name] = global
			}
		}
		base = parent.BasedOn
	}

	s.BasedOn = ""
	return nil
}

func resolveBase(name, dir string) (*StandardLibrary, error) {
	path := filepath.Join(dir, name+".toml")
	// #nosec G304 -- name comes from the user's own definition file
	content, err := os.ReadFile(path)
	if err == nil {
		parent, err := Parse(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return parent, nil
	}

	if preset, ok := FromName(name); ok {
		return preset, nil
	}
	return nil, fmt.Errorf("unknown standard library '%s'", name)
}
