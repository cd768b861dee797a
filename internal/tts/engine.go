package tts

import (
	"context"
	"os"

	"github.com/emmett/aivoice/internal/audio"
)

// Engine defines the interface for text-to-speech engines
type Engine interface {
	// Initialize sets up the TTS engine with the given config
	Initialize(config Config) error

	// Synthesize converts text to audio, streaming chunks via callback
	Synthesize(ctx context.Context, req SynthesizeRequest, callback AudioCallback) error

	// ListVoices returns available voices
	ListVoices() ([]Voice, error)

	// Close releases resources
	Close() error

	// IsInitialized returns true if engine is ready
	IsInitialized() bool
}

// Renderer is implemented by engines that produce a whole clip at once.
type Renderer interface {
	Render(ctx context.Context, req SynthesizeRequest) (*audio.Clip, error)
}

// Config holds TTS engine configuration
type Config struct {
	// ServiceName is the host to initialize; empty picks the first
	// available one
	ServiceName string

	// AutoStart launches the host program when it is not running
	AutoStart bool

	// WorkDir receives the intermediate audio files
	WorkDir string

	// ChunkSize is the number of PCM bytes per AudioChunk
	ChunkSize int
}

// SynthesizeRequest contains text-to-speech parameters
type SynthesizeRequest struct {
	Text  string
	Voice string  // voice preset name; empty keeps the current one
	Speed float32 // 1.0 = normal, 0.5 = half speed, 2.0 = double; 0 keeps the host value
}

// AudioChunk represents a chunk of synthesized audio
type AudioChunk struct {
	Data       []byte
	SampleRate int
	Channels   int
}

// AudioCallback is called for each audio chunk during synthesis
type AudioCallback func(chunk AudioChunk) error

// Voice represents an available TTS voice
type Voice struct {
	ID   string
	Name string
}

// DefaultConfig returns default TTS configuration
func DefaultConfig() Config {
	return Config{
		AutoStart: true,
		WorkDir:   os.TempDir(),
		ChunkSize: 4096,
	}
}
