package lexer

import "fmt"

// ErrorKind classifies a lexical error.
type ErrorKind int

const (
	// UnrecognizedCharacter is a character that cannot start any token.
	UnrecognizedCharacter ErrorKind = iota
	// UnterminatedString is a string literal cut off by a line break or the
	// end of the input.
	UnterminatedString
	// InvalidNumberLiteral is a number with a second '.' or a '.' that is not
	// followed by a digit.
	InvalidNumberLiteral
)

func (k ErrorKind) String() string {
	switch k {
	case UnrecognizedCharacter:
		return "unrecognized character"
	case UnterminatedString:
		return "unterminated string"
	case InvalidNumberLiteral:
		return "invalid number literal"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a malformed lexeme. Char is set for UnrecognizedCharacter; Lexeme
// holds the partial lexeme for the other kinds.
type Error struct {
	Kind   ErrorKind
	Char   rune
	Lexeme string
}

func (e *Error) Error() string {
	if e.Kind == UnrecognizedCharacter {
		return fmt.Sprintf("%s %q", e.Kind, e.Char)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Lexeme)
}

// Is matches any *Error of the same kind, so callers can write
// errors.Is(err, &lexer.Error{Kind: lexer.UnterminatedString}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
