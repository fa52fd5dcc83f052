package ast

import "fmt"

// Inspect traverses the tree rooted at node in depth-first order. It calls
// f(n) for each node; if f returns false, the children of n are skipped.
//
// Every variant of the tree is handled here. A node type this function does
// not know is an internal bug and panics, so adding a variant without teaching
// Inspect about it fails loudly in tests.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	case SourceFile:
		for _, d := range n.Declarations {
			Inspect(d, f)
		}
	case *SourceFile:
		for _, d := range n.Declarations {
			Inspect(d, f)
		}

	// Declarations
	case StructDeclaration:
		Inspect(n.Type, f)
		for _, v := range n.Variables {
			Inspect(v, f)
		}
	case ImplDeclaration:
		Inspect(n.Type, f)
		for _, m := range n.Methods {
			Inspect(m, f)
		}
	case FuncDeclaration:
		for _, p := range n.Parameters {
			Inspect(p, f)
		}
		if n.ReturnType != nil {
			Inspect(*n.ReturnType, f)
		}
		inspectList(n.Body, f)
	case VariableDeclaration:
		if n.Type != nil {
			Inspect(*n.Type, f)
		}
		if n.InitialValue != nil {
			Inspect(n.InitialValue, f)
		}
	case Parameter:
		Inspect(n.Type, f)
	case TypeIdentifier, Identifier:
		// leaves

	// Statements
	case ExpressionStmt:
		Inspect(n.Expression, f)
	case EachStmt:
		Inspect(n.Collection, f)
		inspectList(n.Body, f)
	case IfStmt:
		Inspect(n.Condition, f)
		inspectList(n.ThenBranch, f)
		inspectList(n.ElseBranch, f)
	case ReturnStmt:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case BreakStmt:
		// leaf
	case WhileStmt:
		Inspect(n.Condition, f)
		inspectList(n.Body, f)
	case Setter:
		Inspect(n.Target, f)
		Inspect(n.Value, f)

	// Expressions
	case Getter:
		for _, id := range n.Path {
			Inspect(id, f)
		}
	case Binary:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case Unary:
		Inspect(n.Operand, f)
	case Call:
		Inspect(n.Callee, f)
		for _, a := range n.Arguments {
			Inspect(a, f)
		}
	case Grouping:
		Inspect(n.Inner, f)
	case BoolLiteral, NilLiteral, IntegerLiteral, FixedLiteral, StringLiteral, ArrayLiteral:
		// leaves

	default:
		panic(fmt.Sprintf("ast.Inspect: unexpected node type %T", n))
	}
}

func inspectList(stmts []Statement, f func(Node) bool) {
	for _, s := range stmts {
		Inspect(s, f)
	}
}
