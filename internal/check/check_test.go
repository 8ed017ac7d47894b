package check

import (
	"strings"
	"testing"

	"lualint/internal/config"
	"lualint/internal/diag"
	"lualint/internal/parser"
	"lualint/internal/source"
	"lualint/internal/stdlib"
)

func newChecker(t *testing.T, cfg config.Config) *Checker {
	t.Helper()
	std, ok := stdlib.FromName(cfg.Std)
	if !ok {
		t.Fatalf("unknown preset %q", cfg.Std)
	}
	c, err := New(cfg, std)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return c
}

func checkString(t *testing.T, c *Checker, src string) []diag.Diagnostic {
	t.Helper()
	tree, err := parser.Parse(source.New("test.lua", []byte(src)))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return c.Check(tree)
}

func TestNewUnknownRule(t *testing.T) {
	std, _ := stdlib.FromName("lua51")
	cfg := config.Config{Std: "lua51", Rules: map[string]string{"no_such_rule": "deny"}}

	_, err := New(cfg, std)
	if err == nil {
		t.Fatal("expected construction error")
	}
	if !strings.Contains(err.Error(), "unknown rule 'no_such_rule'") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewInvalidSeverity(t *testing.T) {
	std, _ := stdlib.FromName("lua51")
	cfg := config.Config{Std: "lua51", Rules: map[string]string{"empty_block": "whatever"}}

	if _, err := New(cfg, std); err == nil {
		t.Fatal("expected construction error")
	}
}

func TestNewRejectsUninflatedStd(t *testing.T) {
	std := &stdlib.StandardLibrary{BasedOn: "lua51"}
	if _, err := New(config.Default(), std); err == nil {
		t.Fatal("expected construction error for uninflated definition")
	}
}

func TestNewRejectsNilStd(t *testing.T) {
	if _, err := New(config.Default(), nil); err == nil {
		t.Fatal("expected construction error for nil definition")
	}
}

func TestUndefinedGlobal(t *testing.T) {
	c := newChecker(t, config.Default())

	diags := checkString(t, c, "return foo")
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	if d.Code != "undefined_global" || d.Severity != diag.SevError {
		t.Errorf("unexpected diagnostic: %+v", d)
	}
	if d.Message != "`foo` is not defined" {
		t.Errorf("unexpected message: %q", d.Message)
	}
	if d.Span.Start != 7 {
		t.Errorf("span starts at %d, want 7", d.Span.Start)
	}
}

func TestKnownGlobalsNotFlagged(t *testing.T) {
	c := newChecker(t, config.Default())

	for _, src := range []string{
		"print(\"hi\")",
		"local fmt = string.format",
		"return table.concat({}, \",\")",
		"local ok, err = pcall(print)",
	} {
		if diags := checkString(t, c, src); len(diags) != 0 {
			t.Errorf("Check(%q) = %+v, want none", src, diags)
		}
	}
}

func TestLocalsAndFieldsNotFlagged(t *testing.T) {
	c := newChecker(t, config.Default())

	for _, src := range []string{
		"local value = 1\nreturn value",
		"local t = {}\nreturn t.anything",
		"local obj = {}\nfunction obj:go() return self end\nreturn obj:go()",
		"local t = { width = 1 }\nreturn t",
		"for i = 1, 3 do print(i) end",
	} {
		if diags := checkString(t, c, src); len(diags) != 0 {
			t.Errorf("Check(%q) = %+v, want none", src, diags)
		}
	}
}

func TestDeprecatedGlobal(t *testing.T) {
	c := newChecker(t, config.Default())

	diags := checkString(t, c, "return gcinfo()")
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	if d.Code != "deprecated_global" || d.Severity != diag.SevWarning {
		t.Errorf("unexpected diagnostic: %+v", d)
	}
	if !strings.Contains(d.Message, "deprecated") {
		t.Errorf("unexpected message: %q", d.Message)
	}
}

func TestEmptyBlocks(t *testing.T) {
	c := newChecker(t, config.Default())

	tests := []struct {
		src  string
		want int
	}{
		{"do end", 1},
		{"if x then end", 1},
		{"if x then print(x) else end", 1},
		{"repeat until done", 1},
		{"do print(1) end", 0},
		{"do end do end", 2},
	}

	for _, tt := range tests {
		var got int
		for _, d := range checkString(t, c, tt.src) {
			if d.Code == "empty_block" {
				got++
			}
		}
		if got != tt.want {
			t.Errorf("Check(%q): %d empty_block diagnostics, want %d", tt.src, got, tt.want)
		}
	}
}

func TestSeverityOverrides(t *testing.T) {
	allowed := newChecker(t, config.Config{
		Std:   "lua51",
		Rules: map[string]string{"undefined_global": "allow"},
	})
	if diags := checkString(t, allowed, "return foo"); len(diags) != 0 {
		t.Errorf("allow should disable the rule, got %+v", diags)
	}

	warned := newChecker(t, config.Config{
		Std:   "lua51",
		Rules: map[string]string{"undefined_global": "warn"},
	})
	diags := checkString(t, warned, "return foo")
	if len(diags) != 1 || diags[0].Severity != diag.SevWarning {
		t.Errorf("warn should downgrade the rule, got %+v", diags)
	}

	denied := newChecker(t, config.Config{
		Std:   "lua51",
		Rules: map[string]string{"empty_block": "deny"},
	})
	diags = checkString(t, denied, "do end")
	if len(diags) != 1 || diags[0].Severity != diag.SevError {
		t.Errorf("deny should upgrade the rule, got %+v", diags)
	}
}
