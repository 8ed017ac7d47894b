package parser

import "lualint/internal/source"

// TokenKind classifies a lexed token.
type TokenKind uint8

const (
	TokEOF TokenKind = iota
	TokName
	TokKeyword
	TokNumber
	TokString
	TokOp
)

// Token is one lexical element of a chunk.
type Token struct {
	Kind TokenKind
	Text string
	Span source.Span
}

var keywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "goto": true,
	"if": true, "in": true, "local": true, "nil": true, "not": true,
	"or": true, "repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}
