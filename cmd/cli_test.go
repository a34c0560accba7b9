package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzft/go-collections/commands"
	"github.com/fzft/go-collections/primitive"
)

func runScript(t *testing.T, mode OutputMode, script string) string {
	t.Helper()
	var out bytes.Buffer
	registry := commands.NewRegistry(commands.NewKeyspace(primitive.DefaultCapacity), nil)
	cli := NewCli(&CliConfig{Prompt: "collsh> ", Output: mode}, registry, &out)
	require.NoError(t, cli.RunScript(strings.NewReader(script)))
	return out.String()
}

func TestRunScriptStandardOutput(t *testing.T) {
	out := runScript(t, OutputStandard, `SADD names Tom Dick "Harry Potter"
SMEMBERS names
SCARD missing
MGET m 1
BOGUS
`)
	want := "(integer) 3\n" +
		"1) \"Tom\"\n" +
		"2) \"Dick\"\n" +
		"3) \"Harry Potter\"\n" +
		"(integer) 0\n" +
		"(nil)\n" +
		"(error) ERR unknown command 'BOGUS', with args beginning with: \n"
	assert.Equal(t, want, out)
}

func TestRunScriptRawOutput(t *testing.T) {
	out := runScript(t, OutputRaw, "SADD s a\nSMEMBERS s\nMGET m 1\n")
	assert.Equal(t, ":1\r\n~1\r\n$1\r\na\r\n_\r\n", out)
}

func TestRunScriptRepeatAndQuit(t *testing.T) {
	out := runScript(t, OutputStandard, "3 MINCR m 1 2\n0 MLEN m\nquit\nMLEN m\n")
	want := "(integer) 2\n(integer) 4\n(integer) 6\n" +
		"Invalid collsh repeat command option value.\n"
	assert.Equal(t, want, out)
}

func TestRunScriptSkipsBlankAndInvalidLines(t *testing.T) {
	out := runScript(t, OutputStandard, "\n   \nSADD s 'unterminated\nSCARD s\n")
	assert.Equal(t, "Invalid argument(s)\n(integer) 0\n", out)
}

func TestSplitArgs(t *testing.T) {
	argv, err := splitArgs(`SADD key "two words" 'single' plain`)
	require.NoError(t, err)
	assert.Equal(t, []string{"SADD", "key", "two words", "single", "plain"}, argv)
}

func TestGetDotfilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, CliHisFileDefault), getDotfilePath("", CliHisFileDefault))
	assert.Equal(t, "/tmp/h", getDotfilePath("/tmp/h", CliHisFileDefault))
	assert.Equal(t, "", getDotfilePath(CliNoHistory, CliHisFileDefault))
}

func TestExecTokenizedArgs(t *testing.T) {
	var out bytes.Buffer
	registry := commands.NewRegistry(commands.NewKeyspace(primitive.DefaultCapacity), nil)
	cli := NewCli(&CliConfig{}, registry, &out)

	assert.False(t, cli.Exec([]string{"SADD", "s", "a b"}))
	assert.False(t, cli.Exec(nil))
	assert.True(t, cli.Exec([]string{"EXIT"}))
	assert.Equal(t, "(integer) 1\n", out.String())
}
