package check

import (
	"fmt"

	"lualint/internal/diag"
	"lualint/internal/parser"
)

// checkGlobals flags references to names the chunk neither defines nor the
// standard library provides, and uses of globals the library marks deprecated.
func (c *Checker) checkGlobals(tree *parser.Tree) []diag.Diagnostic {
	undefSev, undefOn := c.levels["undefined_global"]
	deprSev, deprOn := c.levels["deprecated_global"]
	if !undefOn && !deprOn {
		return nil
	}

	var out []diag.Diagnostic
	tokens := tree.Tokens
	for i, tok := range tokens {
		if tok.Kind != parser.TokName {
			continue
		}
		if !isGlobalRef(tokens, i) {
			continue
		}
		if tok.Text == "self" || tree.Defined[tok.Text] {
			continue
		}

		global, known := c.std.Globals[tok.Text]
		switch {
		case !known && undefOn:
			out = append(out, diag.Diagnostic{
				Severity: undefSev,
				Code:     "undefined_global",
				Message:  fmt.Sprintf("`%s` is not defined", tok.Text),
				Span:     tok.Span,
			})
		case known && global.Deprecated != "" && deprOn:
			out = append(out, diag.Diagnostic{
				Severity: deprSev,
				Code:     "deprecated_global",
				Message:  fmt.Sprintf("`%s` is deprecated: %s", tok.Text, global.Deprecated),
				Span:     tok.Span,
			})
		}
	}
	return out
}

// isGlobalRef reports whether the name at index i reads a global: not a field
// or method access, not a declaration, not a goto label.
func isGlobalRef(tokens []parser.Token, i int) bool {
	if i > 0 {
		prev := tokens[i-1]
		if prev.Kind == parser.TokOp && (prev.Text == "." || prev.Text == ":" || prev.Text == "::") {
			return false
		}
		if prev.Kind == parser.TokKeyword &&
			(prev.Text == "function" || prev.Text == "local" || prev.Text == "goto") {
			return false
		}
	}
	if i+1 < len(tokens) {
		next := tokens[i+1]
		if next.Kind == parser.TokOp && next.Text == "::" {
			return false
		}
	}
	return true
}

// checkEmptyBlocks flags blocks with no statements at all: `do end`,
// `then end`, `else end`, and `repeat until`.
func (c *Checker) checkEmptyBlocks(tree *parser.Tree) []diag.Diagnostic {
	sev, on := c.levels["empty_block"]
	if !on {
		return nil
	}

	var out []diag.Diagnostic
	tokens := tree.Tokens
	for i := 0; i+1 < len(tokens); i++ {
		open, next := tokens[i], tokens[i+1]
		if open.Kind != parser.TokKeyword || next.Kind != parser.TokKeyword {
			continue
		}
		empty := ((open.Text == "do" || open.Text == "then" || open.Text == "else") && next.Text == "end") ||
			(open.Text == "repeat" && next.Text == "until")
		if !empty {
			continue
		}
		out = append(out, diag.Diagnostic{
			Severity: sev,
			Code:     "empty_block",
			Message:  "empty block",
			Span:     open.Span.Cover(next.Span),
		})
	}
	return out
}
