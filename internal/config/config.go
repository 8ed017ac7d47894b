// Package config loads the lint configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is looked up in the working directory when no explicit
// config path is given.
const DefaultFileName = "lualint.toml"

// Config mirrors the lualint.toml schema. Rules maps a rule name to its
// severity level: "allow", "warn", or "deny".
type Config struct {
	Std   string            `toml:"std"`
	Rules map[string]string `toml:"rules"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{Std: "lua51"}
}

// Load resolves the effective configuration. An explicit path must be
// readable and well-formed. Otherwise DefaultFileName inside dir is used when
// present; a missing default file silently falls back to Default(), but a
// malformed one is still an error.
func Load(explicit, dir string) (Config, error) {
	if explicit != "" {
		// #nosec G304 -- path is provided by the caller
		content, err := os.ReadFile(explicit)
		if err != nil {
			return Config{}, fmt.Errorf("couldn't read config file: %w", err)
		}
		return parse(explicit, content)
	}

	path := filepath.Join(dir, DefaultFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	return parse(path, content)
}

func parse(path string, content []byte) (Config, error) {
	// toml.Unmarshal zero-fills a scalar decoded into a map field instead of
	// failing, so the document shape is checked against the raw form first.
	var raw map[string]any
	if err := toml.Unmarshal(content, &raw); err != nil {
		return Config{}, fmt.Errorf("%s: config file not in correct format: %w", path, err)
	}
	if err := checkShape(raw); err != nil {
		return Config{}, fmt.Errorf("%s: config file not in correct format: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: config file not in correct format: %w", path, err)
	}
	if cfg.Std == "" {
		cfg.Std = Default().Std
	}
	return cfg, nil
}

func checkShape(raw map[string]any) error {
	if v, ok := raw["std"]; ok {
		if _, isString := v.(string); !isString {
			return fmt.Errorf("'std' must be a string")
		}
	}
	v, ok := raw["rules"]
	if !ok {
		return nil
	}
	rules, isTable := v.(map[string]any)
	if !isTable {
		return fmt.Errorf("'rules' must be a table")
	}
	for name, level := range rules {
		if _, isString := level.(string); !isString {
			return fmt.Errorf("level for rule '%s' must be a string", name)
		}
	}
	return nil
}
