package aivoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/aivoice/mock"
)

func TestVoidMethods_ForwardOneCall(t *testing.T) {
	ctrl, d := newControl(t)

	tests := []struct {
		name   string
		invoke func() error
		want   mock.Access
	}{
		{"AddListItem", func() error { return ctrl.AddListItem("琴葉 茜", "こんにちは") }, mock.Access{Op: mock.OpCall, Name: "AddListItem", Args: []any{"琴葉 茜", "こんにちは"}}},
		{"InsertListItem", func() error { return ctrl.InsertListItem("p", "t") }, mock.Access{Op: mock.OpCall, Name: "InsertListItem", Args: []any{"p", "t"}}},
		{"RemoveListItem", func() error { return ctrl.RemoveListItem(3) }, mock.Access{Op: mock.OpCall, Name: "RemoveListItem", Args: []any{int32(3)}}},
		{"ClearListItems", ctrl.ClearListItems, mock.Access{Op: mock.OpCall, Name: "ClearListItems"}},
		{"SetListSelectionIndex", func() error { return ctrl.SetListSelectionIndex(2) }, mock.Access{Op: mock.OpCall, Name: "SetListSelectionIndices", Args: []any{[]int32{2}}}},
		{"SetListSelectionIndices", func() error { return ctrl.SetListSelectionIndices([]int{0, 2, 5}) }, mock.Access{Op: mock.OpCall, Name: "SetListSelectionIndices", Args: []any{[]int32{0, 2, 5}}}},
		{"SetListSelectionRange", func() error { return ctrl.SetListSelectionRange(1, 4) }, mock.Access{Op: mock.OpCall, Name: "SetListSelectionRange", Args: []any{int32(1), int32(4)}}},
		{"SetListSentence", func() error { return ctrl.SetListSentence("文", true) }, mock.Access{Op: mock.OpCall, Name: "SetListSentence", Args: []any{"文", true}}},
		{"SetListVoicePreset", func() error { return ctrl.SetListVoicePreset("p") }, mock.Access{Op: mock.OpCall, Name: "SetListVoicePreset", Args: []any{"p"}}},
		{"Play", ctrl.Play, mock.Access{Op: mock.OpCall, Name: "Play"}},
		{"Stop", ctrl.Stop, mock.Access{Op: mock.OpCall, Name: "Stop"}},
		{"Connect", ctrl.Connect, mock.Access{Op: mock.OpCall, Name: "Connect"}},
		{"Disconnect", ctrl.Disconnect, mock.Access{Op: mock.OpCall, Name: "Disconnect"}},
		{"StartHost", ctrl.StartHost, mock.Access{Op: mock.OpCall, Name: "StartHost"}},
		{"TerminateHost", ctrl.TerminateHost, mock.Access{Op: mock.OpCall, Name: "TerminateHost"}},
		{"Initialize", func() error { return ctrl.Initialize("VoiceroidEditorHost") }, mock.Access{Op: mock.OpCall, Name: "Initialize", Args: []any{"VoiceroidEditorHost"}}},
		{"SaveAudioToFile", func() error { return ctrl.SaveAudioToFile(`C:\out\voice.wav`) }, mock.Access{Op: mock.OpCall, Name: "SaveAudioToFile", Args: []any{`C:\out\voice.wav`}}},
		{"ReloadPhraseDictionary", ctrl.ReloadPhraseDictionary, mock.Access{Op: mock.OpCall, Name: "ReloadPhraseDictionary"}},
		{"ReloadSymbolDictionary", ctrl.ReloadSymbolDictionary, mock.Access{Op: mock.OpCall, Name: "ReloadSymbolDictionary"}},
		{"ReloadWordDictionary", ctrl.ReloadWordDictionary, mock.Access{Op: mock.OpCall, Name: "ReloadWordDictionary"}},
		{"ReloadVoicePreset", ctrl.ReloadVoicePreset, mock.Access{Op: mock.OpCall, Name: "ReloadVoicePreset"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d.Reset()
			require.NoError(t, tt.invoke())
			assert.Equal(t, []mock.Access{tt.want}, d.Accesses)
		})
	}
}

func TestValueMethods(t *testing.T) {
	ctrl, d := newControl(t)
	d.Results["GetListCount"] = int32(4)
	d.Results["GetListSelectionCount"] = int32(2)
	d.Results["GetListSelectionIndices"] = []any{int32(1), int32(3)}
	d.Results["GetListSentence"] = "二行目"
	d.Results["GetListVoicePreset"] = "琴葉 葵"
	d.Results["GetPlayTime"] = int32(2350)
	d.Results["GetAvailableHostNames"] = []any{"A.I.VOICE Editor"}

	count, err := ctrl.GetListCount()
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	selected, err := ctrl.GetListSelectionCount()
	require.NoError(t, err)
	assert.Equal(t, 2, selected)

	indices, err := ctrl.GetListSelectionIndices()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, indices)

	sentence, err := ctrl.GetListSentence(1)
	require.NoError(t, err)
	assert.Equal(t, "二行目", sentence)
	assert.Equal(t, []any{int32(1)}, d.Last().Args)

	preset, err := ctrl.GetListVoicePreset()
	require.NoError(t, err)
	assert.Equal(t, "琴葉 葵", preset)

	playTime, err := ctrl.GetPlayTime()
	require.NoError(t, err)
	assert.Equal(t, 2350, playTime)

	hosts, err := ctrl.GetAvailableHostNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"A.I.VOICE Editor"}, hosts)
}

func TestGetListSelectionIndices_Empty(t *testing.T) {
	ctrl, _ := newControl(t)

	indices, err := ctrl.GetListSelectionIndices()
	require.NoError(t, err)
	assert.Equal(t, []int{}, indices)
}

func TestVoicePreset_SetForwardsJSON(t *testing.T) {
	ctrl, d := newControl(t)
	preset := aivoice.VoicePreset{
		PresetName: "聞きやすい茜ちゃん",
		VoiceName:  "akane_west_emo_48",
		Speed:      aivoice.Float(0.85),
	}

	require.NoError(t, ctrl.SetVoicePreset(preset))
	require.NoError(t, ctrl.AddVoicePreset(preset))

	want := `{"PresetName":"聞きやすい茜ちゃん","VoiceName":"akane_west_emo_48","Speed":0.85}`
	assert.Equal(t, []any{want}, d.Calls("SetVoicePreset")[0].Args)
	assert.Equal(t, []any{want}, d.Calls("AddVoicePreset")[0].Args)
}

func TestVoicePreset_GetParsesJSONString(t *testing.T) {
	ctrl, d := newControl(t)
	d.Results["GetVoicePreset"] = samplePresetJSON

	preset, err := ctrl.GetVoicePreset("琴葉 茜")

	require.NoError(t, err)
	assert.Equal(t, []any{"琴葉 茜"}, d.Last().Args)
	assert.Equal(t, "琴葉 茜", preset.PresetName)
	require.NotNil(t, preset.LongPause)
	assert.Equal(t, 370, *preset.LongPause)
	assert.Len(t, preset.Styles, 3)
}

func TestVoicePreset_GetRejectsNonString(t *testing.T) {
	ctrl, d := newControl(t)
	d.Results["GetVoicePreset"] = map[string]any{"PresetName": "x"}

	_, err := ctrl.GetVoicePreset("x")

	var convErr *aivoice.ConversionError
	assert.ErrorAs(t, err, &convErr)
}

func TestVoicePreset_RoundTripThroughHost(t *testing.T) {
	ctrl, d := newControl(t)
	// The fake host stores what SetVoicePreset received and hands it back.
	d.Hooks["SetVoicePreset"] = func(d *mock.Dispatcher, args []any) {
		d.Results["GetVoicePreset"] = args[0]
	}

	in, err := aivoice.ParseVoicePreset(samplePresetJSON)
	require.NoError(t, err)
	require.NoError(t, ctrl.SetVoicePreset(in))

	out, err := ctrl.GetVoicePreset(in.PresetName)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
