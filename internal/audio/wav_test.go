package audio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcm16(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

func samples16(pcm []byte) []int16 {
	out := make([]int16, len(pcm)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(pcm[2*i:]))
	}
	return out
}

func TestClip_FormatAndDuration(t *testing.T) {
	clip := &Clip{SampleRate: 1000, Channels: 2, PCM: make([]byte, 4*500)}

	assert.Equal(t, Format{SampleRate: 1000, Channels: 2, BitDepth: 16}, clip.Format())
	assert.Equal(t, 500, clip.Duration())
	assert.Equal(t, 0, (&Clip{}).Duration())
}

func TestWAV_SaveLoad(t *testing.T) {
	want := []int16{0, 1000, -1000, 16384, -16384, 32000}
	path := filepath.Join(t.TempDir(), "clip.wav")

	require.NoError(t, SaveWAV(path, &Clip{SampleRate: 44100, Channels: 1, PCM: pcm16(want...)}))

	clip, err := LoadWAV(path)
	require.NoError(t, err)
	assert.Equal(t, 44100, clip.SampleRate)
	assert.Equal(t, 1, clip.Channels)

	got := samples16(clip.PCM)
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 2, "sample %d", i)
	}
}

func TestLoadWAV_Invalid(t *testing.T) {
	_, err := LoadWAV(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "junk.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a riff header"), 0o644))
	_, err = LoadWAV(path)
	assert.Error(t, err)
}

func TestMatchDevice(t *testing.T) {
	devices := []DeviceInfo{
		{ID: "playback-0", Name: "Speakers (Realtek)"},
		{ID: "playback-1", Name: "Headphones", IsDefault: true},
	}

	d, err := MatchDevice(devices, "playback-0")
	require.NoError(t, err)
	assert.Equal(t, "Speakers (Realtek)", d.Name)

	d, err = MatchDevice(devices, "headph")
	require.NoError(t, err)
	assert.Equal(t, "playback-1", d.ID)

	_, err = MatchDevice(devices, "hdmi")
	assert.Error(t, err)

	d, err = DefaultDevice(devices)
	require.NoError(t, err)
	assert.Equal(t, "Headphones", d.Name)

	_, err = DefaultDevice(nil)
	assert.Error(t, err)
}
