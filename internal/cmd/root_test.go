package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/metaphox/mosaic-lang/internal/errext"
)

type testState struct {
	*globalState
	stdout, stderr *bytes.Buffer
	env            map[string]string
}

func newTestState(t *testing.T, files map[string]string, args ...string) *testState {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, src := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(src), 0o644))
	}

	ts := &testState{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		env:    map[string]string{},
	}
	ts.globalState = &globalState{
		ctx:  context.Background(),
		fs:   fs,
		args: args,
		lookupEnv: func(key string) (string, bool) {
			v, ok := ts.env[key]
			return v, ok
		},
		stdout: ts.stdout,
		stderr: ts.stderr,
		logger: &logrus.Logger{
			Out:       ts.stderr,
			Formatter: new(logrus.TextFormatter),
			Hooks:     make(logrus.LevelHooks),
			Level:     logrus.InfoLevel,
		},
	}
	return ts
}

func (ts *testState) run() int {
	return newRootCommand(ts.globalState).execute()
}

const validSource = `struct Point {
    var x: Fixed
    var y: Fixed
}

func origin() -> Point {
    return nil
}
`

func TestParseCommand_Valid(t *testing.T) {
	t.Parallel()

	ts := newTestState(t, map[string]string{"/main.mosaic": validSource}, "parse", "/main.mosaic")

	assert.Equal(t, 0, ts.run())
	assert.Empty(t, ts.stdout.String())
	assert.Empty(t, ts.stderr.String())
}

func TestParseCommand_SyntaxErrors(t *testing.T) {
	t.Parallel()

	ts := newTestState(t, map[string]string{
		"/src/good.mosaic": validSource,
		"/src/bad.mosaic":  "func f() {\n    break\n}\n",
	}, "parse", "/src")

	assert.Equal(t, int(errext.SyntaxErrors), ts.run())
	stderr := ts.stderr.String()
	assert.Contains(t, stderr, "/src/bad.mosaic:2:5: syntax error: the 'break' keyword may only be used inside of a loop")
	assert.Contains(t, stderr, "2 file(s) parsed, 1 error(s) in 1 file(s)")
	assert.NotContains(t, stderr, "level=error", "reported diagnostics are not logged again")
}

func TestParseCommand_MissingFile(t *testing.T) {
	t.Parallel()

	ts := newTestState(t, nil, "parse", "/missing.mosaic")

	assert.Equal(t, int(errext.InvalidInput), ts.run())
	assert.Contains(t, ts.stderr.String(), "level=error")
	assert.Contains(t, ts.stderr.String(), "/missing.mosaic")
}

func TestParseCommand_NoArgs(t *testing.T) {
	t.Parallel()

	ts := newTestState(t, nil, "parse")
	assert.Equal(t, int(errext.InvalidInput), ts.run())
}

func TestParseCommand_DumpYAML(t *testing.T) {
	t.Parallel()

	ts := newTestState(t, map[string]string{"/main.mosaic": validSource}, "parse", "--dump", "yaml", "/main.mosaic")

	require.Equal(t, 0, ts.run())
	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(ts.stdout.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "/main.mosaic", decoded[0]["path"])
	assert.Len(t, decoded[0]["declarations"], 2)
}

func TestParseCommand_DumpFromEnvironment(t *testing.T) {
	t.Parallel()

	ts := newTestState(t, map[string]string{"/main.mosaic": validSource}, "parse", "/main.mosaic")
	ts.env["MOSAIC_DUMP"] = "json"

	require.Equal(t, 0, ts.run())
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(ts.stdout.Bytes(), &decoded))
	assert.Len(t, decoded, 1)
}

func TestParseCommand_FlagsOverrideConfig(t *testing.T) {
	t.Parallel()

	ts := newTestState(t, map[string]string{
		"/main.mosaic": validSource,
		"/mosaic.toml": "dump = \"json\"\nlog_level = \"debug\"\n",
	}, "parse", "-c", "/mosaic.toml", "--dump", "yaml", "--log-level", "warning", "/main.mosaic")

	require.Equal(t, 0, ts.run())
	assert.Contains(t, ts.stdout.String(), "path: /main.mosaic", "yaml from the flag, not json from the file")
	assert.Empty(t, ts.stderr.String(), "debug logs are off")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"zero jobs flag", []string{"parse", "-j", "0", "/x"}, nil},
		{"bad log level env", []string{"parse", "/x"}, map[string]string{"MOSAIC_LOG_LEVEL": "loud"}},
		{"bad dump flag", []string{"parse", "--dump", "xml", "/x"}, nil},
		{"missing config file", []string{"parse", "--config", "/nope.toml", "/x"}, nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestState(t, nil, tt.args...)
			for k, v := range tt.env {
				ts.env[k] = v
			}
			assert.Equal(t, int(errext.InvalidConfig), ts.run())
			assert.Contains(t, ts.stderr.String(), "exit_code=3")
		})
	}
}

func TestTokensCommand(t *testing.T) {
	t.Parallel()

	ts := newTestState(t, map[string]string{"/a.mosaic": "var x = 1\n"}, "tokens", "/a.mosaic")

	require.Equal(t, 0, ts.run())
	out := ts.stdout.String()
	assert.Contains(t, out, `"var"`)
	assert.Contains(t, out, "integer literal")
	assert.Contains(t, out, "end of file")
	assert.Empty(t, ts.stderr.String())
}

func TestTokensCommand_LexicalErrors(t *testing.T) {
	t.Parallel()

	ts := newTestState(t, map[string]string{"/a.mosaic": "x $ \"open\n"}, "tokens", "/a.mosaic")

	assert.Equal(t, int(errext.SyntaxErrors), ts.run())
	assert.Contains(t, ts.stdout.String(), `"x"`)
	stderr := ts.stderr.String()
	assert.Contains(t, stderr, "/a.mosaic:1:3: lexical error: unrecognized character '$'")
	assert.Contains(t, stderr, "/a.mosaic:1:5: lexical error: unterminated string: \"open")
}

func TestTokensCommand_Args(t *testing.T) {
	t.Parallel()

	ts := newTestState(t, nil, "tokens")
	assert.Equal(t, int(errext.InvalidInput), ts.run())

	ts = newTestState(t, nil, "tokens", "/missing.mosaic")
	assert.Equal(t, int(errext.InvalidInput), ts.run())
}
