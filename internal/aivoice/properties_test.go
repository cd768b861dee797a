package aivoice_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/aivoice/mock"
)

func TestStringProperties_ForwardUnmodified(t *testing.T) {
	ctrl, d := newControl(t)

	tests := []struct {
		member string
		set    func(string) error
		get    func() (string, error)
		value  string
	}{
		{"CurrentVoicePresetName", ctrl.SetCurrentVoicePresetName, ctrl.CurrentVoicePresetName, "琴葉 茜"},
		{"MasterControl", ctrl.SetMasterControl, ctrl.MasterControl, `{"Volume":1.0,"Speed":1.0}`},
		{"Text", ctrl.SetText, ctrl.Text, "こんにちは <world> & \"friends\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.member, func(t *testing.T) {
			require.NoError(t, tt.set(tt.value))
			assert.Equal(t, mock.Access{Op: mock.OpPut, Name: tt.member, Args: []any{tt.value}}, d.Last())

			got, err := tt.get()
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
			assert.Equal(t, mock.Access{Op: mock.OpGet, Name: tt.member}, d.Last())
		})
	}
}

func TestIntProperties_ForwardUnmodified(t *testing.T) {
	ctrl, d := newControl(t)

	require.NoError(t, ctrl.SetTextSelectionStart(7))
	assert.Equal(t, int32(7), d.Prop("TextSelectionStart"))
	require.NoError(t, ctrl.SetTextSelectionLength(12))
	assert.Equal(t, int32(12), d.Prop("TextSelectionLength"))

	start, err := ctrl.TextSelectionStart()
	require.NoError(t, err)
	assert.Equal(t, 7, start)

	length, err := ctrl.TextSelectionLength()
	require.NoError(t, err)
	assert.Equal(t, 12, length)
}

func TestTextEditMode(t *testing.T) {
	ctrl, d := newControl(t)

	require.NoError(t, ctrl.SetTextEditMode(aivoice.ListMode))
	assert.Equal(t, int32(1), d.Prop("TextEditMode"))

	mode, err := ctrl.TextEditMode()
	require.NoError(t, err)
	assert.Equal(t, aivoice.ListMode, mode)

	d.SetProp("TextEditMode", "Text")
	mode, err = ctrl.TextEditMode()
	require.NoError(t, err)
	assert.Equal(t, aivoice.TextMode, mode)

	d.SetProp("TextEditMode", int32(5))
	_, err = ctrl.TextEditMode()
	var convErr *aivoice.ConversionError
	assert.ErrorAs(t, err, &convErr)
}

func TestReadOnlyProperties(t *testing.T) {
	ctrl, d := newControl(t)
	d.Props["IsInitialized"] = true
	d.Props["Version"] = "1.4.9.0"
	d.Props["VoiceNames"] = []any{"akane_west_emo_48", "aoi_emo_44"}
	d.Props["VoicePresetNames"] = []string{"琴葉 茜", "琴葉 葵"}

	initialized, err := ctrl.IsInitialized()
	require.NoError(t, err)
	assert.True(t, initialized)

	version, err := ctrl.Version()
	require.NoError(t, err)
	assert.Equal(t, "1.4.9.0", version)

	voices, err := ctrl.VoiceNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"akane_west_emo_48", "aoi_emo_44"}, voices)

	presets, err := ctrl.VoicePresetNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"琴葉 茜", "琴葉 葵"}, presets)
}

func TestNameLists_NilBecomesEmpty(t *testing.T) {
	ctrl, _ := newControl(t)

	voices, err := ctrl.VoiceNames()
	require.NoError(t, err)
	assert.NotNil(t, voices)
	assert.Empty(t, voices)

	hosts, err := ctrl.GetAvailableHostNames()
	require.NoError(t, err)
	assert.NotNil(t, hosts)
	assert.Empty(t, hosts)
}

func TestStatus(t *testing.T) {
	ctrl, d := newControl(t)

	d.Props["Status"] = "Busy"
	status, err := ctrl.Status()
	require.NoError(t, err)
	assert.Equal(t, aivoice.Busy, status)

	d.Props["Status"] = int32(2)
	status, err = ctrl.Status()
	require.NoError(t, err)
	assert.Equal(t, aivoice.Idle, status)
}

func TestHostErrorsPassThrough(t *testing.T) {
	ctrl, d := newControl(t)
	hostErr := errors.New("host: not connected")
	d.Errors["Text"] = hostErr
	d.Errors["Status"] = hostErr

	_, err := ctrl.Text()
	assert.Same(t, hostErr, err)
	assert.Same(t, hostErr, ctrl.SetText("x"))

	_, err = ctrl.Status()
	assert.Same(t, hostErr, err)
}

func TestConversionError(t *testing.T) {
	ctrl, d := newControl(t)
	d.Props["Version"] = 42

	_, err := ctrl.Version()

	var convErr *aivoice.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "Version", convErr.Member)
}
