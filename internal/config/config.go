// Package config consolidates the settings of the mosaic command.
//
// Settings are layered, each layer overriding the one before it:
//
//  1. built-in defaults
//  2. a TOML file (mosaic.toml in the working directory, or --config)
//  3. MOSAIC_* environment variables
//  4. command line flags, applied by the caller with Apply
//
// A layer only overrides the settings it actually sets, which is why the
// file and environment layers are decoded into Layer, whose fields are
// pointers.
package config

import (
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mstoykov/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// DefaultFileName is the configuration file looked up in the working
// directory when no explicit path is given.
const DefaultFileName = "mosaic.toml"

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "MOSAIC"

// Dump formats accepted by the Dump setting.
const (
	DumpNone = ""
	DumpYAML = "yaml"
	DumpJSON = "json"
)

// Config is the consolidated configuration.
type Config struct {
	// Jobs is the number of files parsed concurrently.
	Jobs int
	// NoColor disables colored diagnostics even on a terminal.
	NoColor bool
	// LogLevel is a logrus level name.
	LogLevel string
	// LogFormat is "text" or "json".
	LogFormat string
	// Dump selects the syntax tree output format, DumpNone for none.
	Dump string
}

// Layer is one partial source of settings. Nil fields are not set by it.
type Layer struct {
	Jobs      *int    `toml:"jobs" envconfig:"JOBS"`
	NoColor   *bool   `toml:"no_color" envconfig:"NO_COLOR"`
	LogLevel  *string `toml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat *string `toml:"log_format" envconfig:"LOG_FORMAT"`
	Dump      *string `toml:"dump" envconfig:"DUMP"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Jobs:      runtime.NumCPU(),
		LogLevel:  logrus.InfoLevel.String(),
		LogFormat: "text",
		Dump:      DumpNone,
	}
}

// Apply returns c overridden by every setting l sets.
func (c Config) Apply(l Layer) Config {
	if l.Jobs != nil {
		c.Jobs = *l.Jobs
	}
	if l.NoColor != nil {
		c.NoColor = *l.NoColor
	}
	if l.LogLevel != nil {
		c.LogLevel = *l.LogLevel
	}
	if l.LogFormat != nil {
		c.LogFormat = *l.LogFormat
	}
	if l.Dump != nil {
		c.Dump = *l.Dump
	}
	return c
}

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	switch c.Dump {
	case DumpNone, DumpYAML, DumpJSON:
	default:
		return fmt.Errorf("dump format must be yaml or json, got %q", c.Dump)
	}
	return nil
}

// Load consolidates the defaults, the TOML file at path and the environment
// seen through lookupEnv. An empty path means DefaultFileName if it exists.
// Command line flags are not part of Load; callers apply them afterwards.
func Load(fs afero.Fs, path string, lookupEnv func(string) (string, bool)) (Config, error) {
	conf := Default()

	fileLayer, err := readFile(fs, path)
	if err != nil {
		return conf, err
	}
	conf = conf.Apply(fileLayer)

	envLayer, err := readEnv(lookupEnv)
	if err != nil {
		return conf, err
	}
	return conf.Apply(envLayer), nil
}

func readFile(fs afero.Fs, path string) (Layer, error) {
	var l Layer
	if path == "" {
		exists, err := afero.Exists(fs, DefaultFileName)
		if err != nil || !exists {
			return l, err
		}
		path = DefaultFileName
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return l, fmt.Errorf("reading config file: %w", err)
	}
	md, err := toml.Decode(string(data), &l)
	if err != nil {
		return l, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return l, fmt.Errorf("config file %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return l, nil
}

func readEnv(lookupEnv func(string) (string, bool)) (Layer, error) {
	var l Layer
	if err := envconfig.Process(EnvPrefix, &l, lookupEnv); err != nil {
		return l, fmt.Errorf("reading environment: %w", err)
	}
	return l, nil
}
