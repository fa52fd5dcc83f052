// Package ast defines the token types, the Token struct and the syntax tree
// produced by the Mosaic lexer and parser.
//
// Tokens are the smallest meaningful units of a Mosaic source file. Every token
// carries its type, the exact lexeme it was scanned from, its source position
// (line + column) and whether a line break follows it. Position is 1-based: the
// first character of a file is Line 1, Column 1.
package ast

// TokenType identifies the category of a scanned token.
type TokenType int

const (
	// ── Symbols ────────────────────────────────────────────────────────────────

	DOT          TokenType = iota // .
	COMMA                         // ,
	BANG                          // !
	STAR                          // *
	SLASH                         // /
	PERCENT                       // %
	PLUS                          // +
	MINUS                         // -
	EQUAL                         // =
	AMPERSAND                     // &
	PIPE                          // |
	CARET                         // ^
	COLON                         // :
	SINGLE_QUOTE                  // '
	LPAREN                        // (
	RPAREN                        // )
	LBRACE                        // {
	RBRACE                        // }
	LBRACKET                      // [
	RBRACKET                      // ]
	LESS_THAN                     // <
	GREATER_THAN                  // >
	// ARROW introduces a function's return type: func f() -> Int
	ARROW

	// ── Literals ───────────────────────────────────────────────────────────────

	// STRING_LITERAL keeps both quotes in its lexeme: "abc" scans as `"abc"`.
	STRING_LITERAL
	// INTEGER_LITERAL is a run of decimal digits.
	INTEGER_LITERAL
	// FIXED_LITERAL is a decimal literal with exactly one '.', e.g. 12.5.
	FIXED_LITERAL
	// ARRAY_LITERAL is accepted by the parser as a primary expression. The text
	// lexer never emits it; it only reaches the parser from other scanners.
	ARRAY_LITERAL

	// ── Special ────────────────────────────────────────────────────────────────

	// IDENT is an identifier: [letter_][letter digit _]*
	IDENT
	// EOF terminates every token sequence. It is positioned just past the last
	// scanned character and has an empty lexeme.
	EOF

	// ── Keywords ───────────────────────────────────────────────────────────────

	STRUCT
	IMPL
	FUNC
	CONST
	VAR
	IF
	ELSE
	EACH
	IN
	WHILE
	RETURN
	BREAK
	TRUE
	FALSE
	NIL
	SELF
)

var tokenNames = [...]string{
	DOT:             ".",
	COMMA:           ",",
	BANG:            "!",
	STAR:            "*",
	SLASH:           "/",
	PERCENT:         "%",
	PLUS:            "+",
	MINUS:           "-",
	EQUAL:           "=",
	AMPERSAND:       "&",
	PIPE:            "|",
	CARET:           "^",
	COLON:           ":",
	SINGLE_QUOTE:    "'",
	LPAREN:          "(",
	RPAREN:          ")",
	LBRACE:          "{",
	RBRACE:          "}",
	LBRACKET:        "[",
	RBRACKET:        "]",
	LESS_THAN:       "<",
	GREATER_THAN:    ">",
	ARROW:           "->",
	STRING_LITERAL:  "string literal",
	INTEGER_LITERAL: "integer literal",
	FIXED_LITERAL:   "fixed literal",
	ARRAY_LITERAL:   "array literal",
	IDENT:           "identifier",
	EOF:             "end of file",
	STRUCT:          "struct",
	IMPL:            "impl",
	FUNC:            "func",
	CONST:           "const",
	VAR:             "var",
	IF:              "if",
	ELSE:            "else",
	EACH:            "each",
	IN:              "in",
	WHILE:           "while",
	RETURN:          "return",
	BREAK:           "break",
	TRUE:            "true",
	FALSE:           "false",
	NIL:             "nil",
	SELF:            "self",
}

// String returns the symbol or keyword spelling of tt, or a short description
// for literal kinds.
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return "unknown"
}

// IsKeyword reports whether tt is one of the reserved words.
func (tt TokenType) IsKeyword() bool {
	return tt >= STRUCT && tt <= SELF
}

// keywords maps the lexeme of every Mosaic keyword to its TokenType.
// The lexer consults this map when it finishes scanning an identifier.
var keywords = map[string]TokenType{
	"struct": STRUCT,
	"impl":   IMPL,
	"func":   FUNC,
	"const":  CONST,
	"var":    VAR,
	"if":     IF,
	"else":   ELSE,
	"each":   EACH,
	"in":     IN,
	"while":  WHILE,
	"return": RETURN,
	"break":  BREAK,
	"true":   TRUE,
	"false":  FALSE,
	"nil":    NIL,
	"self":   SELF,
}

// LookupIdent checks whether ident is a reserved keyword and returns the
// corresponding TokenType. If ident is not a keyword, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// Token is a single lexical unit produced by the Mosaic lexer.
//
// TerminatedWithNewline is true when a line break occurs between this token's
// lexeme and the next non-whitespace content. The parser uses it in place of
// an explicit newline token to end statements.
type Token struct {
	Type                  TokenType
	Line                  int
	Column                int
	Lexeme                string
	TerminatedWithNewline bool
}

// String returns the lexeme, useful for debugging and error messages.
func (t Token) String() string {
	return t.Lexeme
}
