package parser

import "fmt"

// ParseError is a positioned syntax error.
type ParseError struct {
	Msg    string
	Offset uint32
	Line   uint32
	Col    uint32
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Msg, e.Line, e.Col)
}
