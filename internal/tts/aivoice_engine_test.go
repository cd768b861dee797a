package tts_test

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/aivoice/mock"
	"github.com/emmett/aivoice/internal/audio"
	"github.com/emmett/aivoice/internal/tts"
)

const masterControl = `{"Volume":1.0,"Speed":1.0,"Pitch":1.0,"PitchRange":1.0,"MiddlePause":150,"LongPause":370,"SentencePause":800}`

func newHost(t *testing.T, status string) (*aivoice.Control, *mock.Dispatcher) {
	t.Helper()
	d := mock.NewDispatcher()
	d.Props["IsInitialized"] = false
	d.Props["Status"] = status
	d.Props["MasterControl"] = masterControl
	d.Props["VoicePresetNames"] = []any{"琴葉 茜", "琴葉 葵"}
	d.Results["GetAvailableHostNames"] = []any{"A.I.VOICE Editor"}
	d.Hooks["Initialize"] = func(d *mock.Dispatcher, args []any) { d.Props["IsInitialized"] = true }
	d.Hooks["StartHost"] = func(d *mock.Dispatcher, args []any) { d.Props["Status"] = "NotConnected" }
	d.Hooks["Connect"] = func(d *mock.Dispatcher, args []any) { d.Props["Status"] = "Idle" }

	ctrl, err := aivoice.New(aivoice.WithEditorDir(`C:\AIVoiceEditor`), aivoice.WithLoader(d.Loader()), aivoice.WithFileCheck(mock.AnyFile))
	require.NoError(t, err)
	return ctrl, d
}

func pcm(n int) []byte {
	out := make([]byte, 2*n)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(int16(i*100)))
	}
	return out
}

// saveWAV makes SaveAudioToFile write a short clip to the requested path.
func saveWAV(t *testing.T, frames int) func(d *mock.Dispatcher, args []any) {
	return func(d *mock.Dispatcher, args []any) {
		path := args[0].(string)
		err := audio.SaveWAV(path, &audio.Clip{SampleRate: 44100, Channels: 1, PCM: pcm(frames)})
		if err != nil {
			t.Errorf("write wav: %v", err)
		}
	}
}

func TestAIVoiceEngine_Synthesize(t *testing.T) {
	ctrl, d := newHost(t, "NotConnected")
	d.Hooks["SaveAudioToFile"] = saveWAV(t, 3000)

	engine := tts.NewAIVoiceEngine(ctrl)
	cfg := tts.DefaultConfig()
	cfg.WorkDir = t.TempDir()
	cfg.ChunkSize = 1024
	require.NoError(t, engine.Initialize(cfg))
	assert.True(t, engine.IsInitialized())

	var chunks []tts.AudioChunk
	err := engine.Synthesize(context.Background(), tts.SynthesizeRequest{Text: "こんにちは", Voice: "琴葉 葵"}, func(c tts.AudioChunk) error {
		chunks = append(chunks, c)
		return nil
	})
	require.NoError(t, err)

	total := 0
	for _, c := range chunks {
		assert.Equal(t, 44100, c.SampleRate)
		assert.Equal(t, 1, c.Channels)
		assert.LessOrEqual(t, len(c.Data), 1024)
		total += len(c.Data)
	}
	assert.Equal(t, 6000, total)
	assert.Len(t, chunks, 6)

	assert.Equal(t, int32(aivoice.TextMode), d.Prop("TextEditMode"))
	assert.Equal(t, "琴葉 葵", d.Prop("CurrentVoicePresetName"))
	assert.Equal(t, "こんにちは", d.Prop("Text"))

	saved := d.Calls("SaveAudioToFile")
	require.Len(t, saved, 1)
	_, statErr := os.Stat(saved[0].Args[0].(string))
	assert.True(t, os.IsNotExist(statErr), "temporary audio file should be removed")
}

func TestAIVoiceEngine_SpeedIsRestored(t *testing.T) {
	ctrl, d := newHost(t, "Idle")
	var speedDuringSave string
	write := saveWAV(t, 10)
	d.Hooks["SaveAudioToFile"] = func(d *mock.Dispatcher, args []any) {
		speedDuringSave = d.Props["MasterControl"].(string)
		write(d, args)
	}

	engine := tts.NewAIVoiceEngine(ctrl)
	cfg := tts.DefaultConfig()
	cfg.WorkDir = t.TempDir()
	require.NoError(t, engine.Initialize(cfg))

	_, err := engine.Render(context.Background(), tts.SynthesizeRequest{Text: "テスト", Speed: 1.5})
	require.NoError(t, err)

	assert.Contains(t, speedDuringSave, `"Speed":1.5`)
	assert.Contains(t, speedDuringSave, `"SentencePause":800`)
	assert.Equal(t, masterControl, d.Prop("MasterControl"))
	assert.Nil(t, d.Prop("CurrentVoicePresetName"))
}

func TestAIVoiceEngine_Errors(t *testing.T) {
	ctrl, d := newHost(t, "Idle")
	engine := tts.NewAIVoiceEngine(ctrl)

	_, err := engine.Render(context.Background(), tts.SynthesizeRequest{Text: "x"})
	assert.Error(t, err, "not initialized")

	cfg := tts.DefaultConfig()
	cfg.WorkDir = t.TempDir()
	require.NoError(t, engine.Initialize(cfg))
	assert.Error(t, engine.Initialize(cfg))

	_, err = engine.Render(context.Background(), tts.SynthesizeRequest{})
	assert.Error(t, err)

	hostErr := errors.New("host busy")
	d.Errors["SaveAudioToFile"] = hostErr
	_, err = engine.Render(context.Background(), tts.SynthesizeRequest{Text: "x"})
	assert.ErrorIs(t, err, hostErr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Render(ctx, tts.SynthesizeRequest{Text: "x"})
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, engine.Close())
	assert.False(t, engine.IsInitialized())
}

func TestAIVoiceEngine_CallbackErrorStops(t *testing.T) {
	ctrl, d := newHost(t, "Idle")
	d.Hooks["SaveAudioToFile"] = saveWAV(t, 3000)

	engine := tts.NewAIVoiceEngine(ctrl)
	cfg := tts.DefaultConfig()
	cfg.WorkDir = t.TempDir()
	cfg.ChunkSize = 1000
	require.NoError(t, engine.Initialize(cfg))

	stop := errors.New("stop")
	calls := 0
	err := engine.Synthesize(context.Background(), tts.SynthesizeRequest{Text: "x"}, func(tts.AudioChunk) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestAIVoiceEngine_ListVoices(t *testing.T) {
	ctrl, _ := newHost(t, "Idle")

	voices, err := tts.NewAIVoiceEngine(ctrl).ListVoices()
	require.NoError(t, err)
	assert.Equal(t, []tts.Voice{{ID: "琴葉 茜", Name: "琴葉 茜"}, {ID: "琴葉 葵", Name: "琴葉 葵"}}, voices)
}
