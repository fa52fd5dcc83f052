// Package dump serialises syntax trees for inspection.
//
// Trees are first converted to plain maps and slices, one map per node with
// a "kind" entry naming the variant, and then encoded as YAML or JSON.
package dump

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/metaphox/mosaic-lang/ast"
)

// File is the serialisable form of one parsed source file.
type File struct {
	Path         string           `yaml:"path" json:"path"`
	Declarations []map[string]any `yaml:"declarations" json:"declarations"`
}

// Convert turns a parsed source file into its serialisable form.
func Convert(path string, file *ast.SourceFile) File {
	out := File{Path: path, Declarations: []map[string]any{}}
	for _, d := range file.Declarations {
		out.Declarations = append(out.Declarations, node(d))
	}
	return out
}

// Write encodes files in format, which is "yaml" or "json".
func Write(w io.Writer, format string, files []File) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(files); err != nil {
			return fmt.Errorf("could not marshal YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(files); err != nil {
			return fmt.Errorf("could not marshal JSON: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown dump format %q", format)
}

func pos(t ast.Token) string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

func typeName(t *ast.TypeIdentifier) any {
	if t == nil {
		return nil
	}
	return t.Name.Lexeme
}

func block(stmts []ast.Statement) []map[string]any {
	out := make([]map[string]any, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, node(s))
	}
	return out
}

func expressions(exprs []ast.Expression) []map[string]any {
	out := make([]map[string]any, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, node(e))
	}
	return out
}

func optional(n ast.Node) any {
	if n == nil {
		return nil
	}
	return node(n)
}

func function(f ast.FuncDeclaration) map[string]any {
	params := make([]map[string]any, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		params = append(params, map[string]any{
			"name": p.Name.Lexeme,
			"type": p.Type.Name.Lexeme,
			"pos":  pos(p.Name),
		})
	}
	return map[string]any{
		"kind":       "func",
		"name":       f.Name.Lexeme,
		"pos":        pos(f.Name),
		"parameters": params,
		"returns":    typeName(f.ReturnType),
		"body":       block(f.Body),
	}
}

func variable(v ast.VariableDeclaration) map[string]any {
	return map[string]any{
		"kind":    v.Mutability.String(),
		"name":    v.Name.Lexeme,
		"pos":     pos(v.Name),
		"type":    typeName(v.Type),
		"initial": optional(v.InitialValue),
	}
}

// node converts a single node. Every variant of the tree is handled.
func node(n ast.Node) map[string]any {
	switch n := n.(type) {
	case ast.StructDeclaration:
		vars := make([]map[string]any, 0, len(n.Variables))
		for _, v := range n.Variables {
			vars = append(vars, variable(v))
		}
		return map[string]any{
			"kind":      "struct",
			"name":      n.Type.Name.Lexeme,
			"pos":       pos(n.Type.Name),
			"variables": vars,
		}
	case ast.ImplDeclaration:
		methods := make([]map[string]any, 0, len(n.Methods))
		for _, m := range n.Methods {
			methods = append(methods, function(m))
		}
		return map[string]any{
			"kind":    "impl",
			"name":    n.Type.Name.Lexeme,
			"pos":     pos(n.Type.Name),
			"methods": methods,
		}
	case ast.FuncDeclaration:
		return function(n)
	case ast.VariableDeclaration:
		return variable(n)

	case ast.ExpressionStmt:
		return map[string]any{"kind": "expression", "expression": node(n.Expression)}
	case ast.EachStmt:
		return map[string]any{
			"kind":       "each",
			"element":    n.Element.Lexeme,
			"collection": node(n.Collection),
			"body":       block(n.Body),
		}
	case ast.IfStmt:
		m := map[string]any{
			"kind":      "if",
			"condition": node(n.Condition),
			"then":      block(n.ThenBranch),
		}
		if n.ElseBranch != nil {
			m["else"] = block(n.ElseBranch)
		}
		return m
	case ast.ReturnStmt:
		return map[string]any{"kind": "return", "value": optional(n.Value)}
	case ast.BreakStmt:
		return map[string]any{"kind": "break"}
	case ast.WhileStmt:
		return map[string]any{
			"kind":      "while",
			"condition": node(n.Condition),
			"body":      block(n.Body),
		}
	case ast.Setter:
		return map[string]any{"kind": "assign", "target": node(n.Target), "value": node(n.Value)}

	case ast.Getter:
		return map[string]any{"kind": "get", "path": n.String()}
	case ast.Binary:
		return map[string]any{
			"kind":     "binary",
			"operator": n.Operator.String(),
			"left":     node(n.Left),
			"right":    node(n.Right),
		}
	case ast.Unary:
		return map[string]any{"kind": "unary", "operator": n.Operator.String(), "operand": node(n.Operand)}
	case ast.Call:
		return map[string]any{"kind": "call", "callee": n.Callee.String(), "arguments": expressions(n.Arguments)}
	case ast.Grouping:
		return map[string]any{"kind": "group", "inner": node(n.Inner)}
	case ast.BoolLiteral:
		return map[string]any{"kind": "bool", "value": n.Value}
	case ast.NilLiteral:
		return map[string]any{"kind": "nil"}
	case ast.IntegerLiteral:
		return map[string]any{"kind": "integer", "value": n.Token.Lexeme}
	case ast.FixedLiteral:
		return map[string]any{"kind": "fixed", "value": n.Token.Lexeme}
	case ast.StringLiteral:
		return map[string]any{"kind": "string", "value": n.Token.Lexeme}
	case ast.ArrayLiteral:
		return map[string]any{"kind": "array", "value": n.Token.Lexeme}
	}
	panic(fmt.Sprintf("dump: unexpected node type %T", n))
}
