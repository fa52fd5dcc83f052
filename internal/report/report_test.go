package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaphox/mosaic-lang/ast"
	"github.com/metaphox/mosaic-lang/lexer"
	"github.com/metaphox/mosaic-lang/parser"
)

func TestPrinter_Diagnostics(t *testing.T) {
	t.Parallel()

	_, err := parser.Parse("var a = 1 $\nfoo")
	var list ast.ErrorList
	require.ErrorAs(t, err, &list)

	var buf bytes.Buffer
	NewPrinter(&buf, false).Diagnostics("main.mosaic", list)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `main.mosaic:1:11: lexical error: unrecognized character '$'`, lines[0])
	assert.Equal(t, `main.mosaic:2:1: syntax error: token not allowed in the root of a source file (found "foo")`, lines[1])
}

func TestPrinter_Colors(t *testing.T) {
	t.Parallel()

	list := ast.ErrorList{ast.Widen(ast.Locate(errors.New("bad"), 1, 1))}

	var plain, colored bytes.Buffer
	NewPrinter(&plain, false).Diagnostics("f", list)
	NewPrinter(&colored, true).Diagnostics("f", list)

	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
	assert.Contains(t, plain.String(), "f:1:1: error: bad")
}

func TestPrinter_Tokens(t *testing.T) {
	t.Parallel()

	tokens, errs := lexer.Scan("x\n")
	require.Empty(t, errs)

	var buf bytes.Buffer
	NewPrinter(&buf, false).Tokens(tokens)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "1:1")
	assert.Contains(t, lines[0], "identifier")
	assert.Contains(t, lines[0], `"x"`)
	assert.Contains(t, lines[0], "⏎")
	assert.Contains(t, lines[1], "end of file")
	assert.NotContains(t, lines[1], "⏎")
}

func TestPrinter_Summary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	p.Summary(3, 0, 0)
	p.Summary(3, 1, 2)

	assert.Equal(t, "3 file(s) parsed, no errors\n3 file(s) parsed, 2 error(s) in 1 file(s)\n", buf.String())
}

func TestCategory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lexical error", Category(&lexer.Error{}))
	assert.Equal(t, "syntax error", Category(&parser.Error{}))
	assert.Equal(t, "error", Category(errors.New("other")))
}
