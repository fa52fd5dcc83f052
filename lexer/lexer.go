// Package lexer implements the Mosaic lexer (tokeniser).
//
// The lexer converts a Mosaic source string into a complete slice of
// [ast.Token] values terminated by a single [ast.EOF] token, together with the
// positioned lexical errors it found. It never stops early: a bad character or
// malformed literal is reported and scanning continues.
//
// Design notes:
//   - Single-pass, character-by-character scanning over a [Cursor].
//   - Line breaks produce no token. They set TerminatedWithNewline on the
//     token before them, which is what the parser uses to end statements.
//   - Comments (// …) are consumed silently.
//   - Only '->' is combined here. Operators such as '==', '&&' and '>>' are
//     left as single-character tokens for the parser to pair up.
//   - Identifiers are scanned first and then classified as keywords via
//     [ast.LookupIdent].
package lexer

import (
	"unicode"

	"github.com/metaphox/mosaic-lang/ast"
)

// Lexer holds the buffers used while scanning. Scan resets them on every call,
// so a Lexer may be reused, but not from several goroutines at once.
type Lexer struct {
	tokens []ast.Token
	errors []ast.Located[*Error]

	lexemeLine   int // position where the current lexeme started
	lexemeColumn int

	fixed *position
}

type position struct {
	line, column int
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithFixedPosition stamps every token and error with the given position
// instead of the real one. Tests use it to compare trees without caring
// where each token sits in the source.
func WithFixedPosition(line, column int) Option {
	return func(l *Lexer) {
		l.fixed = &position{line: line, column: column}
	}
}

// New creates a Lexer.
func New(opts ...Option) *Lexer {
	l := &Lexer{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Scan tokenises src with a fresh Lexer.
func Scan(src string) ([]ast.Token, []ast.Located[*Error]) {
	return New().Scan(src)
}

// Scan tokenises src. The returned token slice is never empty and always ends
// with exactly one EOF token positioned just past the last character.
func (l *Lexer) Scan(src string) ([]ast.Token, []ast.Located[*Error]) {
	c := NewCursor(src)
	l.tokens = nil
	l.errors = nil

	for !c.AtEnd() {
		l.startLexeme(c)
		l.scanToken(c)
	}

	l.startLexeme(c)
	l.makeToken(ast.EOF, "")
	return l.tokens, l.errors
}

// ── Internal helpers ──────────────────────────────────────────────────────────

func (l *Lexer) startLexeme(c *Cursor) {
	l.lexemeLine = c.Line()
	l.lexemeColumn = c.Column()
}

func (l *Lexer) pos() (int, int) {
	if l.fixed != nil {
		return l.fixed.line, l.fixed.column
	}
	return l.lexemeLine, l.lexemeColumn
}

// makeToken appends a token positioned at the start of the current lexeme.
func (l *Lexer) makeToken(tt ast.TokenType, lexeme string) {
	line, col := l.pos()
	l.tokens = append(l.tokens, ast.Token{Type: tt, Line: line, Column: col, Lexeme: lexeme})
}

// emitError records an error positioned at the start of the current lexeme.
func (l *Lexer) emitError(kind ErrorKind, char rune, lexeme string) {
	line, col := l.pos()
	l.errors = append(l.errors, ast.Locate(&Error{Kind: kind, Char: char, Lexeme: lexeme}, line, col))
}

// markNewline flags the most recent token as ending its line.
func (l *Lexer) markNewline() {
	if n := len(l.tokens); n > 0 {
		l.tokens[n-1].TerminatedWithNewline = true
	}
}

var symbols = map[rune]ast.TokenType{
	'.':  ast.DOT,
	',':  ast.COMMA,
	'!':  ast.BANG,
	'*':  ast.STAR,
	'%':  ast.PERCENT,
	'+':  ast.PLUS,
	'=':  ast.EQUAL,
	'&':  ast.AMPERSAND,
	'|':  ast.PIPE,
	'^':  ast.CARET,
	':':  ast.COLON,
	'\'': ast.SINGLE_QUOTE,
	'(':  ast.LPAREN,
	')':  ast.RPAREN,
	'{':  ast.LBRACE,
	'}':  ast.RBRACE,
	'[':  ast.LBRACKET,
	']':  ast.RBRACKET,
	'<':  ast.LESS_THAN,
	'>':  ast.GREATER_THAN,
}

func (l *Lexer) scanToken(c *Cursor) {
	ch := c.Advance()

	if tt, ok := symbols[ch]; ok {
		l.makeToken(tt, string(ch))
		return
	}

	switch {
	case ch == '-':
		if c.MatchRune('>') {
			l.makeToken(ast.ARROW, "->")
		} else {
			l.makeToken(ast.MINUS, "-")
		}
	case ch == '/':
		if c.MatchRune('/') {
			l.skipComment(c)
		} else {
			l.makeToken(ast.SLASH, "/")
		}
	case ch == '"':
		l.scanString(c)
	case isNewline(ch):
		l.markNewline()
	case isDigit(ch):
		l.scanNumber(c)
	case isIdentifierHead(ch):
		l.scanIdentifier(c)
	case unicode.IsSpace(ch):
		// other whitespace is insignificant
	default:
		l.emitError(UnrecognizedCharacter, ch, "")
	}
}

// skipComment consumes the rest of a line comment, leaving the line break for
// scanToken so it still terminates the preceding token.
func (l *Lexer) skipComment(c *Cursor) {
	for !c.AtEnd() && !isNewline(c.Peek(0)) {
		c.Advance()
	}
}

// scanString scans a double-quoted string literal; the opening quote has been
// consumed. The token lexeme keeps both quotes and no escapes are processed.
//
// A line break before the closing quote ends the literal with an error and is
// left unconsumed, so it is scanned again as ordinary input.
func (l *Lexer) scanString(c *Cursor) {
	lexeme := []rune{c.Previous()}
	for !c.AtEnd() {
		if isNewline(c.Peek(0)) {
			l.emitError(UnterminatedString, 0, string(lexeme))
			return
		}
		next := c.Advance()
		lexeme = append(lexeme, next)
		if next == '"' {
			l.makeToken(ast.STRING_LITERAL, string(lexeme))
			return
		}
	}
	l.emitError(UnterminatedString, 0, string(lexeme))
}

// scanNumber scans an integer or fixed-point literal; the first digit has been
// consumed. A '.' is only allowed once and only when a digit follows it. An
// offending '.' is consumed into the reported lexeme and ends the literal.
func (l *Lexer) scanNumber(c *Cursor) {
	lexeme := []rune{c.Previous()}
	scannedDot := false
	for !c.AtEnd() {
		next := c.Peek(0)
		switch {
		case next == '.' && (scannedDot || !isDigit(c.Peek(1))):
			lexeme = append(lexeme, c.Advance())
			l.emitError(InvalidNumberLiteral, 0, string(lexeme))
			return
		case next == '.':
			scannedDot = true
			lexeme = append(lexeme, c.Advance())
		case isDigit(next):
			lexeme = append(lexeme, c.Advance())
		default:
			l.makeNumber(scannedDot, lexeme)
			return
		}
	}
	l.makeNumber(scannedDot, lexeme)
}

func (l *Lexer) makeNumber(fixed bool, lexeme []rune) {
	if fixed {
		l.makeToken(ast.FIXED_LITERAL, string(lexeme))
	} else {
		l.makeToken(ast.INTEGER_LITERAL, string(lexeme))
	}
}

// scanIdentifier scans an identifier or keyword; the head character has been
// consumed.
func (l *Lexer) scanIdentifier(c *Cursor) {
	lexeme := []rune{c.Previous()}
	for c.Match(isIdentifierChar) {
		lexeme = append(lexeme, c.Previous())
	}
	word := string(lexeme)
	l.makeToken(ast.LookupIdent(word), word)
}

func isNewline(r rune) bool {
	return r == '\n'
}

// isDigit reports whether r is an ASCII decimal digit (0–9).
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isIdentifierHead reports whether r may start an identifier: a letter or '_'.
func isIdentifierHead(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierChar(r rune) bool {
	return isIdentifierHead(r) || unicode.IsDigit(r)
}
