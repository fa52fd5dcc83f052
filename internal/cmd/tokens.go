package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/metaphox/mosaic-lang/ast"
	"github.com/metaphox/mosaic-lang/internal/errext"
	"github.com/metaphox/mosaic-lang/lexer"
)

func getTokensCmd(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [flags] file",
		Short: "Print the token stream of a source file",
		Long: `Print every token of a file with its position, type and lexeme. Tokens
followed by a line break are marked, since line breaks end statements.
Lexical errors are printed to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(root, args[0])
		},
	}
}

func runTokens(root *rootCommand, path string) error {
	src, err := afero.ReadFile(root.gs.fs, path)
	if err != nil {
		return errext.WithExitCodeIfNone(fmt.Errorf("reading %s: %w", path, err), errext.InvalidInput)
	}

	tokens, errs := lexer.Scan(string(src))
	root.gs.logger.WithField("file", path).Debugf("scanned %d token(s)", len(tokens))
	root.stdoutPrinter().Tokens(tokens)

	if len(errs) == 0 {
		return nil
	}
	list := make(ast.ErrorList, len(errs))
	for i, e := range errs {
		list[i] = ast.Widen(e)
	}
	root.stderrPrinter().Diagnostics(path, list)
	err = fmt.Errorf("%s has %d lexical error(s)", path, len(errs))
	return errext.Silent(errext.WithExitCodeIfNone(err, errext.SyntaxErrors))
}
