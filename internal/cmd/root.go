// Package cmd implements the mosaic command line interface.
package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/metaphox/mosaic-lang/internal/config"
	"github.com/metaphox/mosaic-lang/internal/errext"
	"github.com/metaphox/mosaic-lang/internal/report"
)

// globalState holds everything the commands touch outside of their own
// arguments, so tests can run them against an in-memory filesystem and
// buffers.
type globalState struct {
	ctx context.Context

	fs        afero.Fs
	args      []string
	lookupEnv func(string) (string, bool)

	stdout, stderr           io.Writer
	stdoutColor, stderrColor bool

	logger *logrus.Logger
}

func newGlobalState(ctx context.Context) *globalState {
	stdout, stdoutTTY := report.Stdout()
	stderr, stderrTTY := report.Stderr()
	return &globalState{
		ctx:         ctx,
		fs:          afero.NewOsFs(),
		args:        os.Args[1:],
		lookupEnv:   os.LookupEnv,
		stdout:      stdout,
		stderr:      stderr,
		stdoutColor: stdoutTTY,
		stderrColor: stderrTTY,
		logger: &logrus.Logger{
			Out:       stderr,
			Formatter: new(logrus.TextFormatter),
			Hooks:     make(logrus.LevelHooks),
			Level:     logrus.InfoLevel,
		},
	}
}

// rootCommand keeps the fields shared by every subcommand.
type rootCommand struct {
	gs   *globalState
	cmd  *cobra.Command
	conf config.Config

	configPath string
}

func newRootCommand(gs *globalState) *rootCommand {
	c := &rootCommand{gs: gs}
	c.cmd = &cobra.Command{
		Use:               "mosaic",
		Short:             "Mosaic compiler front end",
		Long:              "Lex and parse Mosaic source files and report every error found.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.persistentPreRunE,
	}
	c.cmd.SetArgs(gs.args)
	c.cmd.SetOut(gs.stdout)
	c.cmd.SetErr(gs.stderr)
	c.cmd.PersistentFlags().AddFlagSet(c.rootCmdPersistentFlagSet())

	c.cmd.AddCommand(
		getParseCmd(c),
		getTokensCmd(c),
	)
	return c
}

func (c *rootCommand) rootCmdPersistentFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.StringVarP(&c.configPath, "config", "c", "", "`path` of the TOML config file (default ./"+config.DefaultFileName+")")
	flags.IntP("jobs", "j", 0, "number of files parsed concurrently (default: number of CPUs)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "", "log level: panic, fatal, error, warning, info, debug or trace")
	flags.String("log-format", "", "log format: text or json")
	return flags
}

func (c *rootCommand) persistentPreRunE(cmd *cobra.Command, _ []string) error {
	conf, err := config.Load(c.gs.fs, c.configPath, c.gs.lookupEnv)
	if err != nil {
		return errext.WithExitCodeIfNone(err, errext.InvalidConfig)
	}
	cliLayer, err := flagLayer(cmd.Flags())
	if err != nil {
		return errext.WithExitCodeIfNone(err, errext.InvalidConfig)
	}
	conf = conf.Apply(cliLayer)
	if err := conf.Validate(); err != nil {
		return errext.WithExitCodeIfNone(err, errext.InvalidConfig)
	}
	c.conf = conf

	c.setupLogger()
	c.gs.logger.WithFields(logrus.Fields{
		"jobs":   conf.Jobs,
		"config": c.configPath,
	}).Debug("configuration loaded")
	return nil
}

// flagLayer collects the flags set on the command line. Flags left at their
// defaults do not override the file or the environment.
func flagLayer(flags *pflag.FlagSet) (config.Layer, error) {
	var l config.Layer
	if flags.Changed("jobs") {
		v, err := flags.GetInt("jobs")
		if err != nil {
			return l, err
		}
		l.Jobs = &v
	}
	if flags.Changed("no-color") {
		v, err := flags.GetBool("no-color")
		if err != nil {
			return l, err
		}
		l.NoColor = &v
	}
	for name, dst := range map[string]**string{
		"log-level":  &l.LogLevel,
		"log-format": &l.LogFormat,
		"dump":       &l.Dump,
	} {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return l, err
		}
		*dst = &v
	}
	return l, nil
}

func (c *rootCommand) setupLogger() {
	level, _ := logrus.ParseLevel(c.conf.LogLevel) // validated
	c.gs.logger.SetLevel(level)
	if c.conf.LogFormat == "json" {
		c.gs.logger.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	colorize := c.gs.stderrColor && !c.conf.NoColor
	c.gs.logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:   colorize,
		DisableColors: !colorize,
	})
}

// stdoutPrinter and stderrPrinter honour the no-color setting.
func (c *rootCommand) stdoutPrinter() *report.Printer {
	return report.NewPrinter(c.gs.stdout, c.gs.stdoutColor && !c.conf.NoColor)
}

func (c *rootCommand) stderrPrinter() *report.Printer {
	return report.NewPrinter(c.gs.stderr, c.gs.stderrColor && !c.conf.NoColor)
}

// execute runs the command tree and returns the process exit code.
func (c *rootCommand) execute() int {
	err := c.cmd.ExecuteContext(c.gs.ctx)
	if err == nil {
		return 0
	}
	code := errext.Code(err)
	if !errext.IsSilent(err) {
		fields := logrus.Fields{}
		if code != errext.Generic {
			fields["exit_code"] = code
		}
		c.gs.logger.WithFields(fields).Error(err)
	}
	var ec errext.HasExitCode
	if !errors.As(err, &ec) {
		// cobra usage errors and the like
		return int(errext.InvalidInput)
	}
	return int(code)
}

// Execute runs the mosaic command with the process arguments and exits.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	code := newRootCommand(newGlobalState(ctx)).execute()
	cancel()
	os.Exit(code)
}
