package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// BitDepth is the sample width of every Clip: decoded audio is always
// re-encoded as signed 16-bit little-endian PCM.
const BitDepth = 16

// Clip is decoded PCM audio.
type Clip struct {
	SampleRate int
	Channels   int
	PCM        []byte
}

// Format returns the playback format of the clip.
func (c *Clip) Format() Format {
	return Format{SampleRate: uint32(c.SampleRate), Channels: uint32(c.Channels), BitDepth: BitDepth}
}

// Duration returns the clip length in milliseconds.
func (c *Clip) Duration() int {
	frameSize := c.Channels * BitDepth / 8
	if frameSize == 0 || c.SampleRate == 0 {
		return 0
	}
	frames := len(c.PCM) / frameSize
	return frames * 1000 / c.SampleRate
}

// DecodeWAV decodes a WAV stream into 16-bit PCM.
func DecodeWAV(r io.Reader) (*Clip, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode wav: %w", err)
	}
	defer streamer.Close()

	out := beep.Format{SampleRate: format.SampleRate, NumChannels: format.NumChannels, Precision: BitDepth / 8}
	clip := &Clip{
		SampleRate: int(format.SampleRate),
		Channels:   format.NumChannels,
		PCM:        make([]byte, 0, streamer.Len()*out.Width()),
	}

	samples := make([][2]float64, 512)
	frame := make([]byte, out.Width())
	for {
		n, ok := streamer.Stream(samples)
		for i := 0; i < n; i++ {
			out.EncodeSigned(frame, samples[i])
			clip.PCM = append(clip.PCM, frame...)
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wav samples: %w", err)
	}

	return clip, nil
}

// WriteWAV encodes the clip as a 16-bit WAV stream.
func WriteWAV(w io.WriteSeeker, clip *Clip) error {
	format := beep.Format{
		SampleRate:  beep.SampleRate(clip.SampleRate),
		NumChannels: clip.Channels,
		Precision:   BitDepth / 8,
	}
	if err := wav.Encode(w, &pcmStreamer{format: format, pcm: clip.PCM}, format); err != nil {
		return fmt.Errorf("failed to encode wav: %w", err)
	}
	return nil
}

// SaveWAV writes the clip to path, replacing any existing file.
func SaveWAV(path string, clip *Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWAV(f, clip); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadWAV decodes the WAV file at path.
func LoadWAV(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeWAV(f)
}

// pcmStreamer replays 16-bit PCM as a beep.Streamer.
type pcmStreamer struct {
	format beep.Format
	pcm    []byte
}

func (s *pcmStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	width := s.format.Width()
	for n < len(samples) && len(s.pcm) >= width {
		samples[n], _ = s.format.DecodeSigned(s.pcm[:width])
		s.pcm = s.pcm[width:]
		n++
	}
	return n, n > 0
}

func (s *pcmStreamer) Err() error { return nil }
