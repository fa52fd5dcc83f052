// Package report prints diagnostics and token listings for humans.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/metaphox/mosaic-lang/ast"
	"github.com/metaphox/mosaic-lang/lexer"
	"github.com/metaphox/mosaic-lang/parser"
)

// IsTerminal reports whether f is attached to a terminal, including the
// Cygwin and MSYS pseudo terminals.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Stdout returns a writer for standard output and whether it is a terminal
// that can show colors. Escape sequences are translated on Windows consoles
// and stripped when the output is not a terminal.
func Stdout() (io.Writer, bool) {
	if !IsTerminal(os.Stdout) {
		return colorable.NewNonColorable(os.Stdout), false
	}
	return colorable.NewColorableStdout(), true
}

// Stderr is Stdout for standard error.
func Stderr() (io.Writer, bool) {
	if !IsTerminal(os.Stderr) {
		return colorable.NewNonColorable(os.Stderr), false
	}
	return colorable.NewColorableStderr(), true
}

// Printer writes diagnostics and token listings. It is safe for concurrent
// use; every call writes its lines as one block.
type Printer struct {
	mu sync.Mutex
	w  io.Writer

	position *color.Color
	severity *color.Color
	lexeme   *color.Color
	faint    *color.Color
}

// NewPrinter creates a Printer writing to w, with or without colors.
func NewPrinter(w io.Writer, colorize bool) *Printer {
	p := &Printer{
		w:        w,
		position: color.New(color.Bold),
		severity: color.New(color.FgRed, color.Bold),
		lexeme:   color.New(color.FgCyan),
		faint:    color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.position, p.severity, p.lexeme, p.faint} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Diagnostics prints one line per diagnostic in list, in the form
//
//	path:line:column: error: message
func (p *Printer) Diagnostics(path string, list ast.ErrorList) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, d := range list {
		fmt.Fprintf(p.w, "%s %s %s\n",
			p.position.Sprintf("%s:%d:%d:", path, d.Line, d.Column),
			p.severity.Sprintf("%s:", Category(d.Value)),
			d.Value.Error(),
		)
	}
}

// Category names the stage that produced a diagnostic.
func Category(err error) string {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return "lexical error"
	}
	var synErr *parser.Error
	if errors.As(err, &synErr) {
		return "syntax error"
	}
	return "error"
}

// Tokens prints one token per line: position, type, lexeme, and a marker
// when a line break follows the token.
func (p *Printer) Tokens(tokens []ast.Token) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, tok := range tokens {
		line := fmt.Sprintf("%-8s %-16s %s",
			p.position.Sprintf("%d:%d", tok.Line, tok.Column),
			tok.Type.String(),
			p.lexeme.Sprintf("%q", tok.Lexeme),
		)
		if tok.TerminatedWithNewline {
			line += " " + p.faint.Sprint("⏎")
		}
		fmt.Fprintln(p.w, line)
	}
}

// Summary prints how many files were parsed and how many diagnostics they
// produced.
func (p *Printer) Summary(files, failed, diagnostics int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if failed == 0 {
		fmt.Fprintf(p.w, "%d file(s) parsed, no errors\n", files)
		return
	}
	fmt.Fprintf(p.w, "%d file(s) parsed, %s in %d file(s)\n",
		files, p.severity.Sprintf("%d error(s)", diagnostics), failed)
}
