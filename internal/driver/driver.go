// Package driver parses many source files concurrently.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/metaphox/mosaic-lang/ast"
	"github.com/metaphox/mosaic-lang/parser"
)

// SourceExt is the extension of Mosaic source files, used when a directory
// is expanded.
const SourceExt = ".mosaic"

// Result is the outcome of parsing one file. Exactly one of File and
// Diagnostics is set.
type Result struct {
	Path        string
	File        *ast.SourceFile
	Diagnostics ast.ErrorList
}

// Failed reports whether the file had lexical or syntax errors.
func (r Result) Failed() bool {
	return len(r.Diagnostics) > 0
}

// Driver parses files from a filesystem with a bounded number of workers.
type Driver struct {
	fs     afero.Fs
	logger logrus.FieldLogger
	jobs   int
}

// New creates a Driver. jobs below 1 is treated as 1.
func New(fs afero.Fs, logger logrus.FieldLogger, jobs int) *Driver {
	if jobs < 1 {
		jobs = 1
	}
	return &Driver{fs: fs, logger: logger, jobs: jobs}
}

// Expand replaces every directory in paths with the source files below it,
// sorted by path. Plain files are kept as given, whatever their extension.
func (d *Driver) Expand(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := d.fs.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}

		var found []string
		err = afero.Walk(d.fs, p, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && filepath.Ext(path) == SourceExt {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
		sort.Strings(found)
		d.logger.WithField("dir", p).Debugf("found %d source file(s)", len(found))
		out = append(out, found...)
	}
	return out, nil
}

// ParseAll parses every path and returns the results in the order of paths.
// Lexical and syntax errors are part of the results; a file that cannot be
// read, or a cancelled ctx, stops the whole run with an error.
func (d *Driver) ParseAll(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := d.parseOne(path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (d *Driver) parseOne(path string) (Result, error) {
	logger := d.logger.WithField("file", path)

	file, err := parser.ParseFile(d.fs, path)
	var diags ast.ErrorList
	switch {
	case errors.As(err, &diags):
		diags.Sort()
		logger.WithField("errors", len(diags)).Debug("parse failed")
		return Result{Path: path, Diagnostics: diags}, nil
	case err != nil:
		logger.WithError(err).Error("could not read file")
		return Result{}, err
	}
	logger.WithField("declarations", len(file.Declarations)).Debug("parsed")
	return Result{Path: path, File: file}, nil
}
