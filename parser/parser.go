// Package parser implements the Mosaic recursive-descent parser.
//
// The parser asks a [Scanner] for the complete token sequence of a source
// text and builds an [ast.SourceFile] from it. Expressions are parsed by
// precedence climbing: one function per precedence level, each folding its
// operators left-associatively into [ast.Binary] nodes.
//
// Usage:
//
//	file, err := parser.Parse(source)
//	var errs ast.ErrorList
//	if errors.As(err, &errs) { ... }
//
// Error recovery: a syntax error abandons the current top-level declaration.
// The error is recorded with its position and the parser skips ahead to the
// next struct, impl or func keyword, so errors in unrelated declarations are
// still reported. Parsing succeeds only when no lexical or syntax error was
// found; otherwise the whole list is returned and the partial tree dropped.
package parser

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/metaphox/mosaic-lang/ast"
	"github.com/metaphox/mosaic-lang/lexer"
)

// Scanner turns source text into a token sequence. *lexer.Lexer is the real
// implementation; tests substitute fixtures with controlled positions and
// newline flags.
type Scanner interface {
	Scan(src string) ([]ast.Token, []ast.Located[*lexer.Error])
}

// Parser holds all state needed to parse one source text at a time.
// Create one with [New] and call [Parser.Parse]. Each call resets the state,
// so a Parser can be reused but must not be shared between goroutines.
type Parser struct {
	scanner Scanner

	tokens  []ast.Token
	current int // index of the token being examined
	errors  ast.ErrorList

	loopDepth int // number of each/while bodies enclosing the current statement
}

// New creates a Parser backed by the real lexer.
func New() *Parser {
	return NewWithScanner(lexer.New())
}

// NewWithScanner creates a Parser that reads tokens from s.
func NewWithScanner(s Scanner) *Parser {
	return &Parser{scanner: s}
}

// Parse parses src with a fresh Parser.
func Parse(src string) (*ast.SourceFile, error) {
	return New().Parse(src)
}

// ParseFile reads path from fs and parses it with a fresh Parser.
func ParseFile(fs afero.Fs, path string) (*ast.SourceFile, error) {
	return New().ParseFile(fs, path)
}

// ParseFile reads path from fs and parses its contents. A read failure is
// returned as is; syntax problems are returned as an [ast.ErrorList].
func (p *Parser) ParseFile(fs afero.Fs, path string) (*ast.SourceFile, error) {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.Parse(string(src))
}

// Parse builds the syntax tree of src. On failure the error is a non-empty
// [ast.ErrorList] holding every lexical and syntax error found.
func (p *Parser) Parse(src string) (*ast.SourceFile, error) {
	tokens, lexErrs := p.scanner.Scan(src)
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != ast.EOF {
		panic("parser: scanner must return a token sequence terminated by EOF")
	}

	p.tokens = tokens
	p.current = 0
	p.loopDepth = 0
	p.errors = nil
	for _, e := range lexErrs {
		p.errors = append(p.errors, ast.Widen(e))
	}

	file := p.parseSourceFile()
	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return file, nil
}

// ── Token management ──────────────────────────────────────────────────────────

func (p *Parser) peek() ast.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() ast.Token {
	if p.current == 0 {
		panic("parser: no token before the first one")
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == ast.EOF
}

// advance consumes the current token and returns it. EOF is never consumed.
func (p *Parser) advance() ast.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt ast.TokenType) bool {
	return p.peek().Type == tt
}

// checkSeq reports whether the upcoming tokens have exactly the given types.
// Every token but the last must share a line with its successor, so '=' at
// the end of one line and '=' at the start of the next do not form '=='.
func (p *Parser) checkSeq(types ...ast.TokenType) bool {
	for i, tt := range types {
		tok := p.tokens[p.current+i]
		if tok.Type != tt {
			return false
		}
		if tok.Type == ast.EOF {
			return i == len(types)-1
		}
		if i < len(types)-1 && tok.TerminatedWithNewline {
			return false
		}
	}
	return true
}

func (p *Parser) match(tt ast.TokenType) bool {
	if !p.check(tt) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) matchSeq(types ...ast.TokenType) bool {
	if !p.checkSeq(types...) {
		return false
	}
	for range types {
		p.advance()
	}
	return true
}

// matchSingle matches tt only when it is not the first half of the doubled
// operator tt tt, e.g. '|' but not '||'.
func (p *Parser) matchSingle(tt ast.TokenType) bool {
	if !p.check(tt) || p.checkSeq(tt, tt) {
		return false
	}
	p.advance()
	return true
}

// sameLine reports whether the last consumed token is not followed by a line
// break, i.e. whether the construct being parsed may continue.
func (p *Parser) sameLine() bool {
	return !p.previous().TerminatedWithNewline
}

// consume requires the current token to be tt and returns it.
func (p *Parser) consume(tt ast.TokenType, message string) ast.Token {
	if p.check(tt) {
		return p.advance()
	}
	if p.isAtEnd() {
		p.fail(UnexpectedEndOfFile, message)
	}
	p.fail(UnexpectedToken, message)
	panic("unreachable")
}

// statementEnd requires the statement just parsed to be terminated by a line
// break, a closing brace or the end of the file.
func (p *Parser) statementEnd() {
	if p.previous().TerminatedWithNewline || p.check(ast.RBRACE) || p.isAtEnd() {
		return
	}
	p.fail(UnexpectedToken, msgUnterminated)
}

// ── Errors and recovery ───────────────────────────────────────────────────────

// fail aborts the current declaration with an error located at the current
// token. parseDeclaration recovers it.
func (p *Parser) fail(kind ErrorKind, message string) {
	tok := p.peek()
	err := &Error{Kind: kind, Message: message}
	if kind == UnexpectedToken {
		err.Found = tok.Type
		err.Lexeme = tok.Lexeme
	}
	panic(ast.Locate(err, tok.Line, tok.Column))
}

// synchronize skips the offending token and everything after it up to the
// next token that can start a fresh declaration.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		switch p.peek().Type {
		case ast.STRUCT, ast.IMPL, ast.FUNC:
			return
		}
		p.advance()
	}
}

// ── Declarations ──────────────────────────────────────────────────────────────

func (p *Parser) parseSourceFile() *ast.SourceFile {
	var decls []ast.Declaration
	for !p.isAtEnd() {
		if d, ok := p.parseDeclaration(); ok {
			decls = append(decls, d)
		}
	}
	return &ast.SourceFile{Declarations: decls, EndOfFile: p.peek()}
}

// parseDeclaration parses one top-level declaration. A syntax error raised
// anywhere below it is recorded here and ok is false.
func (p *Parser) parseDeclaration() (decl ast.Declaration, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			located, isSyntax := r.(ast.Located[*Error])
			if !isSyntax {
				panic(r)
			}
			p.errors = append(p.errors, ast.Widen(located))
			p.synchronize()
		}
	}()

	switch p.peek().Type {
	case ast.STRUCT:
		return p.parseStruct(), true
	case ast.IMPL:
		return p.parseImpl(), true
	case ast.FUNC:
		return p.parseFunc(), true
	case ast.VAR, ast.CONST:
		return p.parseVariable(), true
	}
	p.fail(UnexpectedToken, msgRootToken)
	return nil, false
}

// parseStruct parses `struct Name { variableDecl* }`.
func (p *Parser) parseStruct() ast.StructDeclaration {
	p.consume(ast.STRUCT, "expected 'struct'")
	typ := p.parseTypeIdentifier()
	p.consume(ast.LBRACE, "expected '{' after struct name")

	var vars []ast.VariableDeclaration
	for !p.check(ast.RBRACE) && !p.isAtEnd() {
		if !p.check(ast.VAR) && !p.check(ast.CONST) {
			p.fail(UnexpectedToken, msgStructBody)
		}
		vars = append(vars, p.parseVariable())
	}
	p.consume(ast.RBRACE, "expected '}' after struct body")
	return ast.StructDeclaration{Type: typ, Variables: vars}
}

// parseImpl parses `impl Name { funcDecl* }`.
func (p *Parser) parseImpl() ast.ImplDeclaration {
	p.consume(ast.IMPL, "expected 'impl'")
	typ := p.parseTypeIdentifier()
	p.consume(ast.LBRACE, "expected '{' after impl type name")

	var methods []ast.FuncDeclaration
	for !p.check(ast.RBRACE) && !p.isAtEnd() {
		if !p.check(ast.FUNC) {
			p.fail(UnexpectedToken, msgImplBody)
		}
		methods = append(methods, p.parseFunc())
	}
	p.consume(ast.RBRACE, "expected '}' after impl body")
	return ast.ImplDeclaration{Type: typ, Methods: methods}
}

// parseFunc parses `func name(params) [-> Type] { body }`.
func (p *Parser) parseFunc() ast.FuncDeclaration {
	p.consume(ast.FUNC, "expected 'func'")
	name := p.consume(ast.IDENT, "expected function name after 'func'")
	p.consume(ast.LPAREN, "expected '(' after function name")

	var params []ast.Parameter
	if !p.match(ast.RPAREN) {
		params = append(params, p.parseParameter())
		for p.match(ast.COMMA) {
			params = append(params, p.parseParameter())
		}
		p.consume(ast.RPAREN, "expected ')' after parameter list")
	}

	var ret *ast.TypeIdentifier
	if p.match(ast.ARROW) {
		t := p.parseTypeIdentifier()
		ret = &t
	}

	body := p.parseBlock()
	return ast.FuncDeclaration{Name: name, Parameters: params, ReturnType: ret, Body: body}
}

// parseParameter parses `name: Type`.
func (p *Parser) parseParameter() ast.Parameter {
	name := p.consume(ast.IDENT, "expected parameter name")
	p.consume(ast.COLON, "expected ':' after parameter name")
	return ast.Parameter{Name: name, Type: p.parseTypeIdentifier()}
}

// parseVariable parses `var|const name [: Type] [= expr]` and its terminator.
func (p *Parser) parseVariable() ast.VariableDeclaration {
	mutability := ast.Variable
	if !p.match(ast.VAR) {
		p.consume(ast.CONST, "expected 'const' or 'var'")
		mutability = ast.Constant
	}
	name := p.consume(ast.IDENT, "expected variable name")

	var typ *ast.TypeIdentifier
	if p.match(ast.COLON) {
		t := p.parseTypeIdentifier()
		typ = &t
	}

	var value ast.Expression
	if p.match(ast.EQUAL) {
		value = p.parseExpression()
	}

	p.statementEnd()
	return ast.VariableDeclaration{Mutability: mutability, Name: name, Type: typ, InitialValue: value}
}

func (p *Parser) parseTypeIdentifier() ast.TypeIdentifier {
	return ast.TypeIdentifier{Name: p.consume(ast.IDENT, "expected type name")}
}

// ── Statements ────────────────────────────────────────────────────────────────

// parseBlock parses `{ statement* }`. The result is never nil, so an empty
// block can be told apart from a missing one.
func (p *Parser) parseBlock() []ast.Statement {
	p.consume(ast.LBRACE, "expected '{' to open block")
	stmts := []ast.Statement{}
	for !p.check(ast.RBRACE) && !p.isAtEnd() {
		stmts = append(stmts, p.parseStatement())
	}
	p.consume(ast.RBRACE, "expected '}' to close block")
	return stmts
}

// parseLoopBody parses the block of an each or while loop, inside which break
// is allowed. The depth is restored even when the body fails to parse.
func (p *Parser) parseLoopBody() []ast.Statement {
	p.loopDepth++
	defer func() { p.loopDepth-- }()
	return p.parseBlock()
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.peek().Type {
	case ast.VAR, ast.CONST:
		return p.parseVariable()
	case ast.EACH:
		return p.parseEach()
	case ast.WHILE:
		return p.parseWhile()
	case ast.IF:
		return p.parseIf()
	case ast.RETURN:
		return p.parseReturn()
	case ast.BREAK:
		return p.parseBreak()
	case ast.FUNC:
		p.fail(UnexpectedToken, msgNestedFunc)
	}
	return p.parseAssignmentOrExpression()
}

// parseEach parses `each element in collection { body }`.
func (p *Parser) parseEach() ast.EachStmt {
	p.consume(ast.EACH, "expected 'each'")
	element := p.consume(ast.IDENT, "expected element name after 'each'")
	p.consume(ast.IN, "expected 'in' after element name")
	collection := p.parseExpression()
	body := p.parseLoopBody()
	return ast.EachStmt{Element: element, Collection: collection, Body: body}
}

// parseWhile parses `while condition { body }`.
func (p *Parser) parseWhile() ast.WhileStmt {
	p.consume(ast.WHILE, "expected 'while'")
	cond := p.parseExpression()
	body := p.parseLoopBody()
	return ast.WhileStmt{Condition: cond, Body: body}
}

// parseIf parses `if condition { then } [else { else }]`. An `else if` chain
// is kept as an else branch holding a single nested IfStmt.
func (p *Parser) parseIf() ast.IfStmt {
	p.consume(ast.IF, "expected 'if'")
	cond := p.parseExpression()
	then := p.parseBlock()

	var els []ast.Statement
	if p.match(ast.ELSE) {
		if p.check(ast.IF) {
			els = []ast.Statement{p.parseIf()}
		} else {
			els = p.parseBlock()
		}
	}
	return ast.IfStmt{Condition: cond, ThenBranch: then, ElseBranch: els}
}

// parseReturn parses `return [expr]`. The value is absent exactly when the
// return keyword ends its line.
func (p *Parser) parseReturn() ast.ReturnStmt {
	tok := p.consume(ast.RETURN, "expected 'return'")
	if tok.TerminatedWithNewline {
		return ast.ReturnStmt{}
	}
	value := p.parseExpression()
	p.statementEnd()
	return ast.ReturnStmt{Value: value}
}

func (p *Parser) parseBreak() ast.BreakStmt {
	if p.loopDepth == 0 {
		p.fail(UnexpectedToken, msgBreakOutsideLoop)
	}
	p.consume(ast.BREAK, "expected 'break'")
	p.statementEnd()
	return ast.BreakStmt{}
}

// parseAssignmentOrExpression parses an expression statement. When the
// expression is followed by a single '=' on the same line the statement is an
// assignment, and the expression must be a getter.
func (p *Parser) parseAssignmentOrExpression() ast.Statement {
	expr := p.parseExpression()

	if p.sameLine() && p.check(ast.EQUAL) && !p.checkSeq(ast.EQUAL, ast.EQUAL) {
		target, ok := expr.(ast.Getter)
		if !ok {
			p.fail(InvalidAssignmentTarget, msgAssignTarget)
		}
		p.advance() // '='
		value := p.parseExpression()
		p.statementEnd()
		return ast.Setter{Target: target, Value: value}
	}

	p.statementEnd()
	return ast.ExpressionStmt{Expression: expr}
}
