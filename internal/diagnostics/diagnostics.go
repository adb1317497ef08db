package diagnostics

import (
	"fmt"

	"github.com/rill-lang/rill/internal/token"
)

// Error codes by stage: Lxxx lexer, Pxxx parser.
const (
	ErrL001 = "L001" // illegal character
	ErrL002 = "L002" // unterminated string
	ErrP001 = "P001" // unexpected token
	ErrP002 = "P002" // no prefix parse rule
	ErrP003 = "P003" // malformed parameter list
	ErrP004 = "P004" // recursion depth exceeded
)

type Error struct {
	Code    string
	Line    int
	Column  int
	Message string
}

func NewError(code string, tok token.Token, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%d:%d] %s", e.Code, e.Line, e.Column, e.Message)
}
