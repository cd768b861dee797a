package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "AI.Talk.Editor.Api.TtsControl", cfg.Editor.ProgID)
	assert.True(t, cfg.Editor.AutoStart)
	assert.Zero(t, cfg.Session.KeepAlive)
	assert.Equal(t, 500*time.Millisecond, cfg.Session.PlayMargin)
	assert.Equal(t, 50051, cfg.Server.Port)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
editor:
  dir: 'D:\MyApps\AIVoice\AIVoiceEditor'
  service_name: A.I.VOICE Editor
session:
  keepalive: 5m
  play_margin: 1s
output:
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, `D:\MyApps\AIVoice\AIVoiceEditor`, cfg.Editor.Dir)
	assert.Equal(t, "A.I.VOICE Editor", cfg.Editor.ServiceName)
	assert.Equal(t, 5*time.Minute, cfg.Session.KeepAlive)
	assert.Equal(t, time.Second, cfg.Session.PlayMargin)
	assert.Equal(t, "json", cfg.Output.Format)
	// untouched sections keep their defaults
	assert.Equal(t, 100*time.Millisecond, cfg.Session.PollInterval)
	assert.Equal(t, "ctrl+shift+p", cfg.Hotkey.Play)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor: [unterminated"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadWithFallback_EnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	t.Setenv("AIVOICE_EDITOR_DIR", `E:\AIVoiceEditor`)
	t.Setenv("AIVOICE_KEEPALIVE", "9m")
	t.Setenv("AIVOICE_SERVER_PORT", "6000")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor:\n  dir: 'C:\\ignored'\n"), 0o644))

	cfg, err := LoadWithFallback(path)
	require.NoError(t, err)

	assert.Equal(t, `E:\AIVoiceEditor`, cfg.Editor.Dir)
	assert.Equal(t, 9*time.Minute, cfg.Session.KeepAlive)
	assert.Equal(t, 6000, cfg.Server.Port)
}

func TestSaveAndLoad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Editor.ServiceName = "A.I.VOICE Editor"
	cfg.Audio.Device = "CABLE Input"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Session.PollInterval = 0
	assert.Error(t, cfg.Validate())
}
