package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.design/x/hotkey"
)

func TestParseHotkey(t *testing.T) {
	mods, key, err := ParseHotkey("Ctrl+Shift+P")
	require.NoError(t, err)
	assert.Equal(t, []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, mods)
	assert.Equal(t, hotkey.KeyP, key)

	mods, key, err = ParseHotkey("alt + f9")
	require.NoError(t, err)
	assert.Equal(t, []hotkey.Modifier{modAlt()}, mods)
	assert.Equal(t, hotkey.KeyF9, key)

	_, key, err = ParseHotkey("space")
	require.NoError(t, err)
	assert.Equal(t, hotkey.KeySpace, key)
}

func TestParseHotkey_Invalid(t *testing.T) {
	for _, s := range []string{"", "ctrl+shift", "ctrl+a+b", "ctrl+pagedown"} {
		_, _, err := ParseHotkey(s)
		assert.Error(t, err, s)
	}
}
