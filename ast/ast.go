// Syntax tree node types for the Mosaic language.
//
// The tree is made of closed sum types. Each family is an interface with an
// unexported marker method, so the set of variants is fixed by this package:
//
//	Node (interface)
//	  Declaration: top-level items
//	    StructDeclaration, ImplDeclaration, FuncDeclaration, VariableDeclaration
//	  Statement
//	    VariableDeclaration, ExpressionStmt, EachStmt, IfStmt
//	    ReturnStmt, BreakStmt, WhileStmt, Setter
//	  Expression
//	    Getter, Binary, Unary, Call, Grouping
//	    BoolLiteral, NilLiteral, IntegerLiteral, FixedLiteral
//	    StringLiteral, ArrayLiteral
//
// Nodes are plain values. A tree owns its children; nothing is shared and the
// parser never mutates a node after building it.

package ast

import (
	"fmt"
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element in the Mosaic syntax tree.
type Node interface {
	// String returns a compact, human-readable representation of the node.
	// It is intended for debugging and test output, not pretty-printing.
	String() string
}

// Declaration is an item that may appear at the root of a source file.
type Declaration interface {
	Node
	declarationNode()
}

// Statement is an item that may appear inside a function body or block.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// ── Source file ───────────────────────────────────────────────────────────────

// SourceFile is the root node produced by the parser.
type SourceFile struct {
	Declarations []Declaration
	EndOfFile    Token
}

// String returns all declarations, one per line.
func (f SourceFile) String() string {
	var b strings.Builder
	for _, d := range f.Declarations {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// ── Support types ─────────────────────────────────────────────────────────────

// TypeIdentifier names a type. Types are bare names; there are no generics.
type TypeIdentifier struct {
	Name Token
}

func (t TypeIdentifier) String() string { return t.Name.Lexeme }

// Identifier is one segment of a Getter path.
type Identifier struct {
	Token Token
}

func (i Identifier) String() string { return i.Token.Lexeme }

// Parameter is a single function parameter: name: Type.
type Parameter struct {
	Name Token
	Type TypeIdentifier
}

func (p Parameter) String() string {
	return fmt.Sprintf("%s: %s", p.Name.Lexeme, p.Type.String())
}

// Mutability distinguishes const from var declarations.
type Mutability int

const (
	Constant Mutability = iota
	Variable
)

func (m Mutability) String() string {
	if m == Variable {
		return "var"
	}
	return "const"
}

// ── Declarations ──────────────────────────────────────────────────────────────

// StructDeclaration is a named collection of variables.
//
//	struct Point { var x: Fixed }
type StructDeclaration struct {
	Type      TypeIdentifier
	Variables []VariableDeclaration
}

func (StructDeclaration) declarationNode() {}
func (d StructDeclaration) String() string {
	vars := make([]Statement, len(d.Variables))
	for i, v := range d.Variables {
		vars[i] = v
	}
	return fmt.Sprintf("struct %s %s", d.Type.String(), blockString(vars))
}

// ImplDeclaration attaches methods to a struct type by name. The struct does
// not need to be declared first, or at all; that is for later passes to check.
//
//	impl Point { func length() -> Fixed { ... } }
type ImplDeclaration struct {
	Type    TypeIdentifier
	Methods []FuncDeclaration
}

func (ImplDeclaration) declarationNode() {}
func (d ImplDeclaration) String() string {
	methods := make([]string, len(d.Methods))
	for i, m := range d.Methods {
		methods[i] = m.String()
	}
	if len(methods) == 0 {
		return fmt.Sprintf("impl %s { }", d.Type.String())
	}
	return fmt.Sprintf("impl %s { %s }", d.Type.String(), strings.Join(methods, " "))
}

// FuncDeclaration is a named function at source or impl scope.
//
//	func add(a: Int, b: Int) -> Int { return a + b }
type FuncDeclaration struct {
	Name       Token
	Parameters []Parameter
	ReturnType *TypeIdentifier // nil when the function returns nothing
	Body       []Statement
}

func (FuncDeclaration) declarationNode() {}
func (d FuncDeclaration) String() string {
	params := make([]string, len(d.Parameters))
	for i, p := range d.Parameters {
		params[i] = p.String()
	}
	sig := fmt.Sprintf("func %s(%s)", d.Name.Lexeme, strings.Join(params, ", "))
	if d.ReturnType != nil {
		sig += " -> " + d.ReturnType.String()
	}
	return sig + " " + blockString(d.Body)
}

// VariableDeclaration introduces a binding. It is valid both at the root of a
// source file and as a statement.
//
//	var count = 0
//	const name: String = "Tao"
//	var flag: Bool
type VariableDeclaration struct {
	Mutability   Mutability
	Name         Token
	Type         *TypeIdentifier // nil when no annotation is given
	InitialValue Expression      // nil when no initializer is given
}

func (VariableDeclaration) declarationNode() {}
func (VariableDeclaration) statementNode()   {}
func (d VariableDeclaration) String() string {
	out := d.Mutability.String() + " " + d.Name.Lexeme
	if d.Type != nil {
		out += ": " + d.Type.String()
	}
	if d.InitialValue != nil {
		out += " = " + d.InitialValue.String()
	}
	return out
}

// ── Statements ────────────────────────────────────────────────────────────────

// ExpressionStmt wraps an expression that appears in statement position.
type ExpressionStmt struct {
	Expression Expression
}

func (ExpressionStmt) statementNode()   {}
func (s ExpressionStmt) String() string { return s.Expression.String() }

// EachStmt iterates the elements of a collection.
//
//	each item in list { print(item) }
type EachStmt struct {
	Element    Token
	Collection Expression
	Body       []Statement
}

func (EachStmt) statementNode() {}
func (s EachStmt) String() string {
	return fmt.Sprintf("each %s in %s %s", s.Element.Lexeme, s.Collection.String(), blockString(s.Body))
}

// IfStmt is a conditional. ElseBranch is nil when there is no else clause; a
// present but empty else clause is a non-nil, empty slice.
type IfStmt struct {
	Condition  Expression
	ThenBranch []Statement
	ElseBranch []Statement
}

func (IfStmt) statementNode() {}
func (s IfStmt) String() string {
	out := fmt.Sprintf("if %s %s", s.Condition.String(), blockString(s.ThenBranch))
	if s.ElseBranch != nil {
		out += " else " + blockString(s.ElseBranch)
	}
	return out
}

// ReturnStmt exits the enclosing function. Value is nil for a bare return.
type ReturnStmt struct {
	Value Expression
}

func (ReturnStmt) statementNode() {}
func (s ReturnStmt) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}

// BreakStmt exits the nearest enclosing loop.
type BreakStmt struct{}

func (BreakStmt) statementNode()   {}
func (BreakStmt) String() string { return "break" }

// WhileStmt is a conditional loop.
type WhileStmt struct {
	Condition Expression
	Body      []Statement
}

func (WhileStmt) statementNode() {}
func (s WhileStmt) String() string {
	return fmt.Sprintf("while %s %s", s.Condition.String(), blockString(s.Body))
}

// Setter is an assignment statement: a getter path receives a new value.
//
//	self.count = self.count + 1
type Setter struct {
	Target Getter
	Value  Expression
}

func (Setter) statementNode() {}
func (s Setter) String() string {
	return fmt.Sprintf("%s = %s", s.Target.String(), s.Value.String())
}

// ── Expressions ───────────────────────────────────────────────────────────────

// Getter is a dot-delimited access path, optionally rooted at self. Self is
// nil unless the path starts with the self keyword; Path holds the identifiers
// after it.
//
//	foo.bar   → Self=nil,   Path=[foo bar]
//	self.x    → Self=&self, Path=[x]
type Getter struct {
	Self *Token
	Path []Identifier
}

func (Getter) expressionNode() {}
func (g Getter) String() string {
	parts := make([]string, 0, len(g.Path)+1)
	if g.Self != nil {
		parts = append(parts, g.Self.Lexeme)
	}
	for _, id := range g.Path {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ".")
}

// BinaryOperator is one of the infix operators.
type BinaryOperator int

const (
	LogicOr BinaryOperator = iota
	LogicAnd
	BitwiseOr
	BitwiseXor
	BitwiseAnd
	Equal
	NotEqual
	GreaterThan
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual
	LeftShift
	RightShift
	Plus
	Minus
	Divide
	Multiply
	Remainder
)

var binaryOperatorSymbols = [...]string{
	LogicOr:            "||",
	LogicAnd:           "&&",
	BitwiseOr:          "|",
	BitwiseXor:         "^",
	BitwiseAnd:         "&",
	Equal:              "==",
	NotEqual:           "!=",
	GreaterThan:        ">",
	GreaterThanOrEqual: ">=",
	LessThan:           "<",
	LessThanOrEqual:    "<=",
	LeftShift:          "<<",
	RightShift:         ">>",
	Plus:               "+",
	Minus:              "-",
	Divide:             "/",
	Multiply:           "*",
	Remainder:          "%",
}

// String returns the operator's source spelling.
func (op BinaryOperator) String() string {
	if op >= 0 && int(op) < len(binaryOperatorSymbols) {
		return binaryOperatorSymbols[op]
	}
	return "?"
}

// Binary is an infix expression: Left Operator Right.
type Binary struct {
	Left     Expression
	Right    Expression
	Operator BinaryOperator
}

func (Binary) expressionNode() {}
func (e Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Operator.String(), e.Right.String())
}

// UnaryOperator is one of the prefix operators.
type UnaryOperator int

const (
	Not UnaryOperator = iota
	Negate
)

func (op UnaryOperator) String() string {
	if op == Negate {
		return "-"
	}
	return "!"
}

// Unary is a prefix expression: !x or -x.
type Unary struct {
	Operand  Expression
	Operator UnaryOperator
}

func (Unary) expressionNode() {}
func (e Unary) String() string {
	return fmt.Sprintf("(%s%s)", e.Operator.String(), e.Operand.String())
}

// Call invokes the function or method named by Callee.
type Call struct {
	Callee    Getter
	Arguments []Expression
}

func (Call) expressionNode() {}
func (e Call) String() string {
	args := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee.String(), strings.Join(args, ", "))
}

// Grouping is a parenthesised expression.
type Grouping struct {
	Inner Expression
}

func (Grouping) expressionNode()  {}
func (e Grouping) String() string { return "(group " + e.Inner.String() + ")" }

// BoolLiteral is true or false.
type BoolLiteral struct {
	Value bool
}

func (BoolLiteral) expressionNode() {}
func (e BoolLiteral) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

// NilLiteral is the nil keyword.
type NilLiteral struct{}

func (NilLiteral) expressionNode() {}
func (NilLiteral) String() string  { return "nil" }

// IntegerLiteral is a decimal integer literal. The value is kept as its token;
// range checking belongs to later passes.
type IntegerLiteral struct {
	Token Token
}

func (IntegerLiteral) expressionNode()  {}
func (e IntegerLiteral) String() string { return e.Token.Lexeme }

// FixedLiteral is a decimal-point literal such as 3.25.
type FixedLiteral struct {
	Token Token
}

func (FixedLiteral) expressionNode()  {}
func (e FixedLiteral) String() string { return e.Token.Lexeme }

// StringLiteral is a double-quoted string; the lexeme includes the quotes.
type StringLiteral struct {
	Token Token
}

func (StringLiteral) expressionNode()  {}
func (e StringLiteral) String() string { return e.Token.Lexeme }

// ArrayLiteral is an array literal token.
type ArrayLiteral struct {
	Token Token
}

func (ArrayLiteral) expressionNode()  {}
func (e ArrayLiteral) String() string { return e.Token.Lexeme }

// blockString renders a statement list as "{ a; b; }", or "{ }" when empty.
func blockString(stmts []Statement) string {
	var b strings.Builder
	b.WriteString("{ ")
	for _, s := range stmts {
		b.WriteString(s.String())
		b.WriteString("; ")
	}
	b.WriteString("}")
	return b.String()
}
