package parser

import (
	"bytes"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"lualint/internal/source"
)

type lexer struct {
	file *source.File
	src  []byte
	pos  int
}

func newLexer(file *source.File) *lexer {
	return &lexer{file: file, src: file.Content}
}

func offset32(off int) uint32 {
	off32, err := safecast.Conv[uint32](off)
	if err != nil {
		panic(fmt.Errorf("source offset overflow: %w", err))
	}
	return off32
}

func (lx *lexer) errAt(off int, msg string) *ParseError {
	off32 := offset32(off)
	pos := lx.file.Resolve(off32)
	return &ParseError{Msg: msg, Offset: off32, Line: pos.Line, Col: pos.Col}
}

func (lx *lexer) token(kind TokenKind, start int) Token {
	return Token{
		Kind: kind,
		Text: string(lx.src[start:lx.pos]),
		Span: source.Span{Start: offset32(start), End: offset32(lx.pos)},
	}
}

// next returns the next token, skipping whitespace and comments.
func (lx *lexer) next() (Token, *ParseError) {
	for {
		lx.skipSpace()
		if lx.pos >= len(lx.src) {
			end := offset32(len(lx.src))
			return Token{Kind: TokEOF, Span: source.Span{Start: end, End: end}}, nil
		}

		if lx.src[lx.pos] == '-' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '-' {
			if err := lx.skipComment(); err != nil {
				return Token{}, err
			}
			continue
		}
		break
	}

	start := lx.pos
	c := lx.src[lx.pos]

	switch {
	case c == '[' && lx.longBracketLevel() >= 0:
		if err := lx.scanLongBracket(lx.longBracketLevel(), "string"); err != nil {
			return Token{}, err
		}
		return lx.token(TokString, start), nil

	case c == '"' || c == '\'':
		if err := lx.scanString(c); err != nil {
			return Token{}, err
		}
		return lx.token(TokString, start), nil

	case isDigit(c) || (c == '.' && lx.pos+1 < len(lx.src) && isDigit(lx.src[lx.pos+1])):
		lx.scanNumber()
		return lx.token(TokNumber, start), nil

	case isNameStart(c):
		for lx.pos < len(lx.src) && isNameCont(lx.src[lx.pos]) {
			lx.pos++
		}
		tok := lx.token(TokName, start)
		if keywords[tok.Text] {
			tok.Kind = TokKeyword
		}
		return tok, nil

	default:
		return lx.scanOperator()
	}
}

func (lx *lexer) skipSpace() {
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case ' ', '\t', '\r', '\n':
			lx.pos++
		default:
			return
		}
	}
}

// skipComment consumes a -- comment, long-bracket or line form.
func (lx *lexer) skipComment() *ParseError {
	start := lx.pos
	lx.pos += 2
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '[' {
		if level := lx.longBracketLevel(); level >= 0 {
			if err := lx.scanLongBracket(level, "comment"); err != nil {
				err.Offset = offset32(start)
				return err
			}
			return nil
		}
	}
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
		lx.pos++
	}
	return nil
}

// longBracketLevel reports the level of a long bracket opening at the current
// position, or -1 when the current '[' does not open one.
func (lx *lexer) longBracketLevel() int {
	i := lx.pos + 1
	level := 0
	for i < len(lx.src) && lx.src[i] == '=' {
		level++
		i++
	}
	if i < len(lx.src) && lx.src[i] == '[' {
		return level
	}
	return -1
}

func (lx *lexer) scanLongBracket(level int, what string) *ParseError {
	start := lx.pos
	lx.pos += level + 2
	closer := "]" + strings.Repeat("=", level) + "]"
	if idx := bytes.Index(lx.src[lx.pos:], []byte(closer)); idx >= 0 {
		lx.pos += idx + len(closer)
		return nil
	}
	lx.pos = len(lx.src)
	return lx.errAt(start, "unfinished long "+what)
}

func (lx *lexer) scanString(quote byte) *ParseError {
	start := lx.pos
	lx.pos++
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case quote:
			lx.pos++
			return nil
		case '\\':
			lx.pos += 2
		case '\n':
			return lx.errAt(start, "unfinished string")
		default:
			lx.pos++
		}
	}
	return lx.errAt(start, "unfinished string")
}

func (lx *lexer) scanNumber() {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if isDigit(c) || isNameCont(c) || c == '.' {
			lx.pos++
			continue
		}
		// Exponent signs are part of the literal.
		if (c == '+' || c == '-') && isExponent(lx.src[lx.pos-1]) {
			lx.pos++
			continue
		}
		return
	}
}

var longOps = []string{
	"...", "==", "~=", "<=", ">=", "..", "::", "//", "<<", ">>",
}

const singleOps = "+-*/%^#&~|<>=(){}[];:,."

func (lx *lexer) scanOperator() (Token, *ParseError) {
	start := lx.pos
	rest := lx.src[lx.pos:]
	for _, op := range longOps {
		if bytes.HasPrefix(rest, []byte(op)) {
			lx.pos += len(op)
			return lx.token(TokOp, start), nil
		}
	}
	if strings.IndexByte(singleOps, lx.src[lx.pos]) >= 0 {
		lx.pos++
		return lx.token(TokOp, start), nil
	}
	return Token{}, lx.errAt(start, fmt.Sprintf("unexpected symbol near '%c'", lx.src[lx.pos]))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameCont(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

func isExponent(c byte) bool {
	return c == 'e' || c == 'E' || c == 'p' || c == 'P'
}
