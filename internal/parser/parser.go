// Package parser turns Lua source into the token tree the checker consumes.
// It validates lexical structure and block nesting; anything deeper is the
// checker's business.
package parser

import (
	"fmt"

	"lualint/internal/source"
)

// Tree is the parsed form of one chunk: the token stream plus the names the
// chunk introduces itself (locals, parameters, loop variables, assignment
// targets).
type Tree struct {
	File    *source.File
	Tokens  []Token
	Defined map[string]bool
}

// Parse lexes the file and validates its block structure. The returned error,
// when non-nil, is a *ParseError.
func Parse(file *source.File) (*Tree, error) {
	lx := newLexer(file)

	var tokens []Token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}

	if err := checkBlocks(file, tokens); err != nil {
		return nil, err
	}

	return &Tree{
		File:    file,
		Tokens:  tokens,
		Defined: collectDefined(tokens),
	}, nil
}

func parseErrAt(file *source.File, off uint32, msg string) *ParseError {
	pos := file.Resolve(off)
	return &ParseError{Msg: msg, Offset: off, Line: pos.Line, Col: pos.Col}
}

// checkBlocks verifies that every block opener has its closer. The 'do' that
// terminates a while/for header belongs to that header and opens no block of
// its own.
func checkBlocks(file *source.File, tokens []Token) *ParseError {
	var stack []Token
	pendingDo := false

	for _, tok := range tokens {
		if tok.Kind != TokKeyword && tok.Kind != TokEOF {
			continue
		}

		switch tok.Text {
		case "function", "if", "repeat":
			stack = append(stack, tok)
		case "while", "for":
			stack = append(stack, tok)
			pendingDo = true
		case "do":
			if pendingDo {
				pendingDo = false
			} else {
				stack = append(stack, tok)
			}
		case "end":
			if len(stack) == 0 {
				return parseErrAt(file, tok.Span.Start, "unexpected 'end'")
			}
			top := stack[len(stack)-1]
			if top.Text == "repeat" {
				return parseErrAt(file, tok.Span.Start, "'until' expected to close 'repeat'")
			}
			stack = stack[:len(stack)-1]
		case "until":
			if len(stack) == 0 || stack[len(stack)-1].Text != "repeat" {
				return parseErrAt(file, tok.Span.Start, "unexpected 'until'")
			}
			stack = stack[:len(stack)-1]
		}

		if tok.Kind == TokEOF {
			if pendingDo {
				return parseErrAt(file, tok.Span.Start, "'do' expected")
			}
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				closer := "end"
				if top.Text == "repeat" {
					closer = "until"
				}
				openPos := file.Resolve(top.Span.Start)
				return parseErrAt(file, tok.Span.Start, fmt.Sprintf(
					"'%s' expected to close '%s' at line %d", closer, top.Text, openPos.Line))
			}
		}
	}
	return nil
}

// collectDefined gathers every name the chunk introduces: local declarations,
// function names and parameters, loop variables, and assignment targets.
// Table keys written as `name =` land here too, which keeps the global rules
// from flagging constructor fields.
func collectDefined(tokens []Token) map[string]bool {
	defined := map[string]bool{}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind == TokName {
			if i+1 < len(tokens) && isOp(tokens[i+1], "=") {
				defined[tok.Text] = true
			}
			continue
		}
		if tok.Kind != TokKeyword {
			continue
		}

		switch tok.Text {
		case "local":
			if i+1 < len(tokens) && tokens[i+1].Kind == TokKeyword && tokens[i+1].Text == "function" {
				continue // handled by the function case below
			}
			for j := i + 1; j < len(tokens); j++ {
				t := tokens[j]
				if t.Kind == TokName {
					defined[t.Text] = true
					continue
				}
				if !isOp(t, ",") {
					break
				}
			}
		case "for":
			for j := i + 1; j < len(tokens); j++ {
				t := tokens[j]
				if t.Kind == TokName {
					defined[t.Text] = true
					continue
				}
				if !isOp(t, ",") {
					break
				}
			}
		case "function":
			j := i + 1
			if j < len(tokens) && tokens[j].Kind == TokName {
				defined[tokens[j].Text] = true
				j++
				for j+1 < len(tokens) && (isOp(tokens[j], ".") || isOp(tokens[j], ":")) {
					j += 2
				}
			}
			if j < len(tokens) && isOp(tokens[j], "(") {
				for j++; j < len(tokens); j++ {
					t := tokens[j]
					if t.Kind == TokName {
						defined[t.Text] = true
						continue
					}
					if !isOp(t, ",") && !isOp(t, "...") {
						break
					}
				}
			}
		}
	}
	return defined
}

func isOp(t Token, text string) bool {
	return t.Kind == TokOp && t.Text == text
}
