package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/menubutton/internal/config"
	"github.com/oakwood-commons/menubutton/internal/ui"
	"github.com/oakwood-commons/menubutton/pkg/actionmenu"
	"github.com/oakwood-commons/menubutton/pkg/settings"
)

const sampleBoard = `
title: Servers
defaults:
  key_mode: emacs
options:
  - label: Restart
    disabled_when: item.state != "running"
    action: {type: log, message: "restarting {{ .name }}"}
  - label: Drain
    action: {type: noop}
items:
  - id: web-1
    name: web one
    fields: {state: running}
  - id: db-1
    name: db one
    fields: {state: stopped}
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeBoard(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRoot_BuiltinBoardTable(t *testing.T) {
	out, err := execute(t, "--no-color", "--width", "200")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Invoices\n"))
	assert.Contains(t, out, "inv-1001")
	assert.Contains(t, out, "Edit, Approve, Archive, Delete")
	assert.Contains(t, out, "Edit, [Approve], Archive, [Delete]")
	assert.Contains(t, out, "disabled")
}

func TestRoot_Tree(t *testing.T) {
	out, err := execute(t, "--no-color", "-o", "tree", writeBoard(t, "b.yaml", sampleBoard))
	require.NoError(t, err)
	assert.Contains(t, out, "Servers")
	assert.Contains(t, out, "web one")
	assert.Contains(t, out, "Drain")
}

func TestRoot_TOMLBoard(t *testing.T) {
	body := `
title = "Queues"

[[options]]
label = "Purge"
[options.action]
type = "noop"

[[items]]
id = "q1"
name = "orders"
`
	out, err := execute(t, "--no-color", "--width", "120", writeBoard(t, "b.toml", body))
	require.NoError(t, err)
	assert.Contains(t, out, "orders")
	assert.Contains(t, out, "Purge")
}

func TestRoot_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad output", []string{"-o", "json"}, `invalid --output "json"`},
		{"bad keymap", []string{"--keymap", "nano"}, `invalid keymap "nano"`},
		{"bad log level", []string{"--log-level", "loud"}, `invalid --log-level "loud"`},
		{"missing file", []string{"/does/not/exist.yaml"}, "exist.yaml"},
		{"bad extension", []string{"board.json"}, "unsupported board file extension"},
		{"too many args", []string{"a.yaml", "b.yaml"}, "accepts at most 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRoot_UnknownActionTypeNamesFile(t *testing.T) {
	path := writeBoard(t, "b.yaml", "options:\n  - label: X\n    action: {type: lgo}\nitems:\n  - id: a\n")
	_, err := execute(t, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), `did you mean "log"?`)
}

func TestRoot_StartsBoardOnTerminal(t *testing.T) {
	origTerm, origRun := stdoutIsTerminal, runBoardTUI
	t.Cleanup(func() { stdoutIsTerminal, runBoardTUI = origTerm, origRun })
	stdoutIsTerminal = func() bool { return true }

	var got *ui.Model
	var run *settings.Run
	runBoardTUI = func(ctx context.Context, m *ui.Model, _, _ int, _ ...tea.ProgramOption) error {
		got = m
		run, _ = settings.FromContext(ctx)
		return nil
	}
	path := writeBoard(t, "b.yaml", sampleBoard)

	_, err := execute(t, path)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, actionmenu.KeyModeEmacs, got.Menu(0).KeyMode(), "board default")
	assert.False(t, got.Menu(0).Options()[0].Disabled)
	assert.True(t, got.Menu(1).Options()[0].Disabled)
	require.NotNil(t, run)
	assert.Equal(t, path, run.BoardFile)
	assert.False(t, run.NoTUI)

	_, err = execute(t, "--keymap", "function", "--type-ahead", path)
	require.NoError(t, err)
	assert.Equal(t, actionmenu.KeyModeFunction, got.Menu(0).KeyMode(), "flag wins")
	assert.True(t, run.TypeAhead)

	got = nil
	_, err = execute(t, "--no-tui", "--no-color", path)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveBoardPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Empty(t, resolveBoardPath(""))
	assert.Equal(t, "x.yaml", resolveBoardPath("x.yaml"))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "menubutton"), 0o755))
	want := filepath.Join(dir, "menubutton", "board.toml")
	require.NoError(t, os.WriteFile(want, []byte("x"), 0o600))
	assert.Equal(t, want, resolveBoardPath(""))
}

func TestLoadBoard_Builtin(t *testing.T) {
	b, source, err := loadBoard("")
	require.NoError(t, err)
	assert.Equal(t, builtinSource, source)
	assert.Equal(t, "Invoices", b.Title)
}

func TestBoardCmd_RoundTrips(t *testing.T) {
	for _, format := range []config.Format{config.FormatYAML, config.FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			out, err := execute(t, "board", "-o", string(format), writeBoard(t, "b.yaml", sampleBoard))
			require.NoError(t, err)
			b, err := config.Parse([]byte(out), format)
			require.NoError(t, err)
			assert.Equal(t, "Servers", b.Title)
			assert.Equal(t, "emacs", b.Defaults.KeyMode)
			assert.Equal(t, "fa-solid fa-ellipsis-vertical", b.Defaults.Icon)
			require.Len(t, b.Items, 2)
			assert.Equal(t, "running", b.Items[0].Fields["state"])
			assert.Equal(t, `item.state != "running"`, b.Options[0].DisabledWhen)
		})
	}
}

func TestBoardCmd_BadFormat(t *testing.T) {
	_, err := execute(t, "board", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported board format")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "menubutton v0.0.0-nightly"))

	out, err = execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, cliVersionString()+"\n", out)
}

func TestRootFlags(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	root.Flags().VisitAll(func(f *pflag.Flag) {
		names[f.Name] = true
		assert.NotEmpty(t, f.Usage, f.Name)
	})
	for _, want := range []string{"keymap", "type-ahead", "no-color", "no-tui", "output", "width", "height"} {
		assert.True(t, names[want], want)
	}
	level := root.PersistentFlags().Lookup("log-level")
	require.NotNil(t, level)
	assert.Equal(t, "warn", level.DefValue)
	assert.Equal(t, "o", root.Flags().Lookup("output").Shorthand)
}
