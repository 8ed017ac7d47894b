package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "custom.toml")
	writeFile(t, path, "std = \"lua52\"\n[rules]\nempty_block = \"allow\"\n")

	cfg, err := Load(path, tmp)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Std != "lua52" {
		t.Errorf("Std = %q, want lua52", cfg.Std)
	}
	if cfg.Rules["empty_block"] != "allow" {
		t.Errorf("Rules = %v", cfg.Rules)
	}
}

func TestLoadExplicitPathMissing(t *testing.T) {
	tmp := t.TempDir()
	if _, err := Load(filepath.Join(tmp, "nope.toml"), tmp); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadExplicitPathMalformed(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "broken.toml")
	writeFile(t, path, "std = [\n")

	if _, err := Load(path, tmp); err == nil {
		t.Fatal("expected error for malformed explicit config")
	}
}

func TestLoadDefaultFile(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, DefaultFileName), "std = \"lua53\"\n")

	cfg, err := Load("", tmp)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Std != "lua53" {
		t.Errorf("Std = %q, want lua53", cfg.Std)
	}
}

func TestLoadDefaultFileAbsentFallsBack(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Std != Default().Std {
		t.Errorf("Std = %q, want built-in default", cfg.Std)
	}
}

func TestLoadDefaultFileMalformedIsError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid toml", "std = =\n"},
		{"std is not a string", "std = 3\n"},
		{"rules is a scalar", "rules = 3\n"},
		{"rule level is not a string", "[rules]\nempty_block = 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			writeFile(t, filepath.Join(tmp, DefaultFileName), tt.content)

			if _, err := Load("", tmp); err == nil {
				t.Fatal("expected error for malformed default config")
			}
		})
	}
}

func TestLoadEmptyStdKeepsDefault(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, DefaultFileName), "[rules]\nempty_block = \"deny\"\n")

	cfg, err := Load("", tmp)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Std != "lua51" {
		t.Errorf("Std = %q, want lua51", cfg.Std)
	}
}
