package parser

import (
	"fmt"

	"github.com/metaphox/mosaic-lang/ast"
)

// ErrorKind classifies a syntax error.
type ErrorKind int

const (
	// UnexpectedToken is a token the grammar does not allow where it appears.
	UnexpectedToken ErrorKind = iota
	// UnexpectedEndOfFile is input that stops in the middle of a construct.
	UnexpectedEndOfFile
	// InvalidAssignmentTarget is an '=' whose left side is not a getter.
	InvalidAssignmentTarget
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnexpectedEndOfFile:
		return "unexpected end of file"
	case InvalidAssignmentTarget:
		return "invalid assignment target"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a malformed token sequence. Found and Lexeme describe the offending
// token for UnexpectedToken.
type Error struct {
	Kind    ErrorKind
	Found   ast.TokenType
	Lexeme  string
	Message string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("%s (found %q)", e.Message, e.Lexeme)
	case UnexpectedEndOfFile:
		if e.Message == "" {
			return e.Kind.String()
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

const (
	msgRootToken        = "token not allowed in the root of a source file"
	msgStructBody       = "struct declarations may only contain variable declarations"
	msgImplBody         = "impls may only contain function declarations"
	msgNestedFunc       = "function declarations may not be nested"
	msgBreakOutsideLoop = "the 'break' keyword may only be used inside of a loop"
	msgUnterminated     = "statement is unterminated; statements end with a line break or a closing brace"
	msgAssignTarget     = "only a getter such as 'a.b' can be assigned to"
	msgExpectExpression = "expected an expression"
)
