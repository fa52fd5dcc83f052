package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/mosaic-lang/internal/config"
	"github.com/metaphox/mosaic-lang/internal/driver"
	"github.com/metaphox/mosaic-lang/internal/dump"
	"github.com/metaphox/mosaic-lang/internal/errext"
)

func getParseCmd(root *rootCommand) *cobra.Command {
	parseCmd := &cobra.Command{
		Use:   "parse [flags] path...",
		Short: "Parse source files and report their errors",
		Long: `Parse every given file, and every ` + driver.SourceExt + ` file below every given
directory, concurrently. Diagnostics are printed to stderr as file:line:column.
With --dump the syntax trees of the files that parsed are written to stdout.`,
		Example: `  mosaic parse main.mosaic
  mosaic parse --dump yaml src/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, root, args)
		},
	}
	parseCmd.Flags().String("dump", "", "write the syntax trees to stdout as yaml or json")
	return parseCmd
}

func runParse(cmd *cobra.Command, root *rootCommand, args []string) error {
	logger := root.gs.logger
	d := driver.New(root.gs.fs, logger, root.conf.Jobs)

	paths, err := d.Expand(args)
	if err != nil {
		return errext.WithExitCodeIfNone(err, errext.InvalidInput)
	}
	results, err := d.ParseAll(cmd.Context(), paths)
	if err != nil {
		return errext.WithExitCodeIfNone(err, errext.InvalidInput)
	}

	diagnostics := root.stderrPrinter()
	var trees []dump.File
	failed, count := 0, 0
	for _, r := range results {
		if r.Failed() {
			failed++
			count += len(r.Diagnostics)
			diagnostics.Diagnostics(r.Path, r.Diagnostics)
			continue
		}
		trees = append(trees, dump.Convert(r.Path, r.File))
	}

	if root.conf.Dump != config.DumpNone {
		if err := dump.Write(root.gs.stdout, root.conf.Dump, trees); err != nil {
			return err
		}
	}
	if len(results) > 1 || failed > 0 {
		diagnostics.Summary(len(results), failed, count)
	}

	if failed > 0 {
		err := fmt.Errorf("%d of %d file(s) have errors", failed, len(results))
		return errext.Silent(errext.WithExitCodeIfNone(err, errext.SyntaxErrors))
	}
	return nil
}
