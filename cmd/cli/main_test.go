package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/aivoice/mock"
	"github.com/emmett/aivoice/internal/config"
	"github.com/emmett/aivoice/internal/output"
)

const validPreset = `{"PresetName":"p","VoiceName":"v","MergedVoiceContainer":{"BasePitchVoiceName":"","MergedVoices":[]},` +
	`"Volume":1,"Speed":1,"Pitch":1,"PitchRange":1,"MiddlePause":150,"LongPause":370,` +
	`"Styles":[{"Name":"J","Value":0}]}`

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func useJSONOutput(t *testing.T) *output.JSONFormatter {
	t.Helper()
	f := output.NewJSONFormatter(&bytes.Buffer{})
	prev := g.out
	g.out = f
	t.Cleanup(func() { g.out = prev })
	return f
}

func TestParseInts(t *testing.T) {
	nums, err := parseInts([]string{"0", " 3", "12"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3, 12}, nums)

	_, err = parseInts([]string{"1", "x"})
	assert.ErrorContains(t, err, `"x"`)
}

func TestReadInput(t *testing.T) {
	data, err := readInput("-", strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", string(data))

	path := filepath.Join(t.TempDir(), "preset.json")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o644))
	data, err = readInput(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from file", string(data))
}

func TestJoinText(t *testing.T) {
	text, err := joinText([]string{"hello", "world"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)

	_, err = joinText([]string{" ", ""})
	assert.Error(t, err)
}

func TestRootCmd_HasEveryCommand(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{
		"status", "version", "hosts", "voices", "presets", "preset", "text", "mode",
		"list", "speak", "play", "stop", "save", "master", "reload", "host",
		"connect", "disconnect", "devices", "hotkey", "remote", "config",
	} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	cmd, _, err := root.Find([]string{"list", "sentence", "set"})
	require.NoError(t, err)
	assert.Equal(t, "set", cmd.Name())
}

func TestPresetValidate(t *testing.T) {
	f := useJSONOutput(t)

	require.NoError(t, execute(t, newPresetValidateCmd(), validPreset, "-"))
	require.Len(t, f.Results(), 1)
	assert.Equal(t, "ok", f.Results()[0].Value)

	err := execute(t, newPresetValidateCmd(), `{"PresetName":"p","VoiceName":"v"}`, "-")
	assert.ErrorContains(t, err, "missing required fields")
}

func TestPresetAdd_RejectsIncompletePreset(t *testing.T) {
	err := execute(t, newPresetCmd(), `{"PresetName":"p"}`, "add", "-")
	assert.ErrorContains(t, err, "VoiceName")
}

func TestMasterSet_RejectsInvalidJSON(t *testing.T) {
	err := execute(t, newMasterCmd(), "", "set", "{not json")
	assert.ErrorContains(t, err, "JSON")
}

func TestListSelect_RangeNeedsOneIndex(t *testing.T) {
	err := execute(t, newListSelectCmd(), "", "1", "2", "--range", "3")
	assert.ErrorContains(t, err, "--range")
}

func TestSelection_ArgCount(t *testing.T) {
	err := execute(t, newSelectionCmd(), "", "1")
	assert.Error(t, err)
}

// useHost points the commands at a fake host that is installed but not yet
// initialized or connected.
func useHost(t *testing.T) *mock.Dispatcher {
	t.Helper()
	d := mock.NewDispatcher()
	d.Props["IsInitialized"] = false
	d.Props["Status"] = "NotConnected"
	d.Results["GetAvailableHostNames"] = []any{"A.I.VOICE Editor"}
	d.Hooks["Initialize"] = func(d *mock.Dispatcher, _ []any) { d.Props["IsInitialized"] = true }
	d.Hooks["Connect"] = func(d *mock.Dispatcher, _ []any) { d.Props["Status"] = "Idle" }

	cfg := config.DefaultConfig()
	cfg.Editor.Dir = `C:\AIVoiceEditor`
	prevCfg, prevOpts := g.cfg, g.sessionOpts
	g.cfg = cfg
	g.sessionOpts = []aivoice.Option{aivoice.WithLoader(d.Loader()), aivoice.WithFileCheck(mock.AnyFile)}
	t.Cleanup(func() { g.cfg, g.sessionOpts = prevCfg, prevOpts })
	return d
}

func callOrder(d *mock.Dispatcher) []string {
	var names []string
	for _, a := range d.Accesses {
		if a.Op == mock.OpCall {
			names = append(names, a.Name)
		}
	}
	return names
}

func TestConnect_InitializesBeforeConnecting(t *testing.T) {
	d := useHost(t)

	require.NoError(t, execute(t, newConnectCmd(), ""))
	assert.Equal(t, []string{"GetAvailableHostNames", "Initialize", "Connect"}, callOrder(d))
	assert.Equal(t, "Idle", d.Prop("Status"))
}

func TestStatus_InitializesWithoutConnecting(t *testing.T) {
	d := useHost(t)
	f := useJSONOutput(t)

	require.NoError(t, execute(t, newStatusCmd(), ""))
	assert.Equal(t, []string{"GetAvailableHostNames", "Initialize"}, callOrder(d))
	require.Len(t, f.Results(), 1)
	assert.Equal(t, aivoice.NotConnected, f.Results()[0].Value)
}

func TestHosts_SkipsInitialize(t *testing.T) {
	d := useHost(t)
	useJSONOutput(t)

	require.NoError(t, execute(t, newHostsCmd(), ""))
	assert.Equal(t, []string{"GetAvailableHostNames"}, callOrder(d))
}

func TestConfigInit(t *testing.T) {
	f := useJSONOutput(t)
	path := filepath.Join(t.TempDir(), "sub", "aivoice.yaml")

	require.NoError(t, execute(t, newConfigCmd(), "", "init", path))
	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Editor.ProgID, loaded.Editor.ProgID)
	require.Len(t, f.Results(), 1)
	assert.Equal(t, path, f.Results()[0].Value)

	err = execute(t, newConfigCmd(), "", "init", path)
	assert.ErrorContains(t, err, "already exists")
	require.NoError(t, execute(t, newConfigCmd(), "", "init", "--force", path))
}
