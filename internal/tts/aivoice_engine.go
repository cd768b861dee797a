package tts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/audio"
	"github.com/emmett/aivoice/internal/logging"
	"github.com/emmett/aivoice/internal/session"
)

var _ Renderer = (*AIVoiceEngine)(nil)

// AIVoiceEngine implements the Engine interface by rendering through the
// A.I.VOICE Editor and reading the saved audio back.
type AIVoiceEngine struct {
	ctrl        *aivoice.Control
	config      Config
	mu          sync.Mutex
	initialized bool
	log         *logrus.Entry
}

// NewAIVoiceEngine creates an engine over an open control.
func NewAIVoiceEngine(ctrl *aivoice.Control) *AIVoiceEngine {
	return &AIVoiceEngine{
		ctrl: ctrl,
		log:  logging.Component("tts"),
	}
}

// Initialize connects to the host
func (e *AIVoiceEngine) Initialize(config Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return fmt.Errorf("engine already initialized")
	}
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultConfig().ChunkSize
	}
	if config.WorkDir == "" {
		config.WorkDir = os.TempDir()
	}

	if err := session.ConnectHost(e.ctrl, config.ServiceName, config.AutoStart); err != nil {
		return err
	}

	e.config = config
	e.initialized = true
	return nil
}

// Synthesize renders req.Text and streams the PCM through callback.
func (e *AIVoiceEngine) Synthesize(ctx context.Context, req SynthesizeRequest, callback AudioCallback) error {
	clip, err := e.Render(ctx, req)
	if err != nil {
		return err
	}

	for off := 0; off < len(clip.PCM); off += e.config.ChunkSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(off+e.config.ChunkSize, len(clip.PCM))
		chunk := AudioChunk{
			Data:       clip.PCM[off:end],
			SampleRate: clip.SampleRate,
			Channels:   clip.Channels,
		}
		if err := callback(chunk); err != nil {
			return err
		}
	}
	return nil
}

// Render synthesizes req.Text into a decoded clip.
func (e *AIVoiceEngine) Render(ctx context.Context, req SynthesizeRequest) (*audio.Clip, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return nil, fmt.Errorf("engine not initialized")
	}
	if req.Text == "" {
		return nil, fmt.Errorf("text is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := e.ctrl.SetTextEditMode(aivoice.TextMode); err != nil {
		return nil, fmt.Errorf("failed to select text mode: %w", err)
	}
	if req.Voice != "" {
		if err := e.ctrl.SetCurrentVoicePresetName(req.Voice); err != nil {
			return nil, fmt.Errorf("failed to select voice %q: %w", req.Voice, err)
		}
	}
	if err := e.ctrl.SetText(req.Text); err != nil {
		return nil, fmt.Errorf("failed to set text: %w", err)
	}

	if req.Speed > 0 {
		restore, err := e.overrideSpeed(req.Speed)
		if err != nil {
			return nil, err
		}
		defer restore()
	}

	path := filepath.Join(e.config.WorkDir, "aivoice-"+uuid.NewString()+".wav")
	defer os.Remove(path)

	e.log.WithField("path", path).Debug("saving audio")
	if err := e.ctrl.SaveAudioToFile(path); err != nil {
		return nil, fmt.Errorf("failed to save audio: %w", err)
	}

	clip, err := audio.LoadWAV(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesized audio: %w", err)
	}
	return clip, nil
}

// overrideSpeed sets the master speed and returns a func restoring the
// previous master control values.
func (e *AIVoiceEngine) overrideSpeed(speed float32) (func(), error) {
	original, err := e.ctrl.MasterControl()
	if err != nil {
		return nil, fmt.Errorf("failed to read master control: %w", err)
	}

	values := map[string]any{}
	if original != "" {
		if err := json.Unmarshal([]byte(original), &values); err != nil {
			return nil, fmt.Errorf("failed to parse master control: %w", err)
		}
	}
	values["Speed"] = float64(speed)

	updated, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	if err := e.ctrl.SetMasterControl(string(updated)); err != nil {
		return nil, fmt.Errorf("failed to set speed: %w", err)
	}

	return func() {
		if err := e.ctrl.SetMasterControl(original); err != nil {
			e.log.WithError(err).Warn("failed to restore master control")
		}
	}, nil
}

// ListVoices returns the voice presets known to the host
func (e *AIVoiceEngine) ListVoices() ([]Voice, error) {
	names, err := e.ctrl.VoicePresetNames()
	if err != nil {
		return nil, err
	}
	voices := make([]Voice, 0, len(names))
	for _, name := range names {
		voices = append(voices, Voice{ID: name, Name: name})
	}
	return voices, nil
}

// Close marks the engine closed; the control stays open for its owner.
func (e *AIVoiceEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.initialized = false
	return nil
}

// IsInitialized returns true if engine is ready
func (e *AIVoiceEngine) IsInitialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}
