package audio

import (
	"context"
)

// Format describes PCM handed to a Player.
type Format struct {
	// SampleRate is the number of samples per second (Hz)
	SampleRate uint32

	// Channels is the number of audio channels
	Channels uint32

	// BitDepth is the number of bits per sample; only 16 is supported
	BitDepth uint32
}

// PlaybackConfig holds configuration for audio playback
type PlaybackConfig struct {
	// DeviceName selects the output device by case-insensitive partial
	// match. Empty string = default device
	DeviceName string

	// BufferSize is the size in bytes of the ring buffer between the
	// producer and the device callback
	BufferSize int

	// BufferFrames is the number of frames per device period
	BufferFrames uint32
}

// DefaultPlaybackConfig returns a configuration with ~2s of buffering at 48kHz mono
func DefaultPlaybackConfig() PlaybackConfig {
	return PlaybackConfig{
		DeviceName:   "",
		BufferSize:   48000 * 2 * 2,
		BufferFrames: 480,
	}
}

// Player is the interface for audio playback implementations
type Player interface {
	// Start opens the output device for the given format
	Start(ctx context.Context, format Format) error

	// Write queues PCM for playback, blocking while the buffer is full
	Write(ctx context.Context, pcm []byte) error

	// Drain blocks until every queued byte has been played
	Drain(ctx context.Context) error

	// Stop closes the output device, discarding queued audio
	Stop() error

	// IsRunning returns true if the device is open
	IsRunning() bool
}

// NewPlayer creates a new audio player with the given configuration
func NewPlayer(config PlaybackConfig) (Player, error) {
	return NewMalgoPlayer(config)
}

// PlayClip plays a whole clip and waits for it to finish.
func PlayClip(ctx context.Context, p Player, clip *Clip) error {
	if err := p.Start(ctx, clip.Format()); err != nil {
		return err
	}
	defer p.Stop()

	if err := p.Write(ctx, clip.PCM); err != nil {
		return err
	}
	return p.Drain(ctx)
}
