package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveMultiLine(t *testing.T) {
	f := New("test.lua", []byte("local x = 1\nreturn x\n"))

	tests := []struct {
		name     string
		off      uint32
		expected LineCol
	}{
		{"start of file", 0, LineCol{Line: 1, Col: 1}},
		{"middle of first line", 6, LineCol{Line: 1, Col: 7}},
		{"newline belongs to its line", 11, LineCol{Line: 1, Col: 12}},
		{"start of second line", 12, LineCol{Line: 2, Col: 1}},
		{"middle of second line", 19, LineCol{Line: 2, Col: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Resolve(tt.off)
			if got != tt.expected {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, got, tt.expected)
			}
		})
	}
}

func TestResolveSingleLine(t *testing.T) {
	f := New("test.lua", []byte("return 1"))

	got := f.Resolve(7)
	if (got != LineCol{Line: 1, Col: 8}) {
		t.Errorf("Resolve(7) = %+v, want 1:8", got)
	}
}

func TestLine(t *testing.T) {
	f := New("test.lua", []byte("local x = 1\nreturn x\n"))

	if got := f.Line(1); got != "local x = 1" {
		t.Errorf("Line(1) = %q", got)
	}
	if got := f.Line(2); got != "return x" {
		t.Errorf("Line(2) = %q", got)
	}
	if got := f.Line(3); got != "" {
		t.Errorf("Line(3) = %q, want empty", got)
	}
	if got := f.Line(0); got != "" {
		t.Errorf("Line(0) = %q, want empty", got)
	}
}

func TestLineWithoutTrailingNewline(t *testing.T) {
	f := New("test.lua", []byte("a\nreturn b"))

	if got := f.Line(2); got != "return b" {
		t.Errorf("Line(2) = %q", got)
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "win.lua")

	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("local a = 1\r\nreturn a\r\n")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if string(f.Content) != "local a = 1\nreturn a\n" {
		t.Errorf("unexpected normalized content: %q", f.Content)
	}
	if got := f.Resolve(12); (got != LineCol{Line: 2, Col: 1}) {
		t.Errorf("Resolve(12) = %+v, want 2:1", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{Start: 5, End: 8}
	b := Span{Start: 10, End: 13}

	got := a.Cover(b)
	if (got != Span{Start: 5, End: 13}) {
		t.Errorf("Cover = %+v", got)
	}
	if a.Cover(a) != a {
		t.Error("covering itself should be a no-op")
	}
}

func TestSpanEmpty(t *testing.T) {
	if !(Span{Start: 5, End: 5}).Empty() {
		t.Error("zero-width span should be empty")
	}
	if (Span{Start: 5, End: 8}).Empty() {
		t.Error("nonzero span should not be empty")
	}
}
