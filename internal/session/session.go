// Package session keeps a connection to the A.I.VOICE Editor usable over
// time and composes binding calls into the few multi-step operations the
// frontends share.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/logging"
)

// Config controls how a Session connects and waits.
type Config struct {
	EditorDir   string
	ProgID      string
	ServiceName string
	AutoStart   bool

	// KeepAlive is the status ping interval; zero disables it.
	KeepAlive time.Duration

	// PlayMargin is added to the reported play time when waiting.
	PlayMargin time.Duration

	// PollInterval is how often PlayAndWait checks the host status.
	PollInterval time.Duration
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		ProgID:       aivoice.ProgID,
		AutoStart:    true,
		PlayMargin:   500 * time.Millisecond,
		PollInterval: 100 * time.Millisecond,
	}
}

// Session owns a Control and serializes the composite operations on it.
type Session struct {
	ctrl *aivoice.Control
	cfg  Config
	mu   sync.Mutex
	log  *logrus.Entry
}

// Open creates the control and brings the host to a connected state.
// Extra options are applied after the ones derived from cfg.
func Open(cfg Config, opts ...aivoice.Option) (*Session, error) {
	s, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := ConnectHost(s.ctrl, cfg.ServiceName, cfg.AutoStart); err != nil {
		s.ctrl.Close()
		return nil, err
	}
	return s, nil
}

// New creates the control without touching the host.
func New(cfg Config, opts ...aivoice.Option) (*Session, error) {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultConfig().PollInterval
	}

	base := []aivoice.Option{aivoice.WithEditorDir(cfg.EditorDir)}
	if cfg.ProgID != "" && cfg.ProgID != aivoice.ProgID {
		base = append(base, aivoice.WithLoader(aivoice.NewCOMLoader(cfg.ProgID)))
	}

	ctrl, err := aivoice.New(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load A.I.VOICE control: %w", err)
	}

	return &Session{
		ctrl: ctrl,
		cfg:  cfg,
		log:  logging.Component("session"),
	}, nil
}

// Initialize initializes the API without starting or connecting the host.
func (s *Session) Initialize() error {
	return InitializeAPI(s.ctrl, s.cfg.ServiceName)
}

// Control returns the underlying control.
func (s *Session) Control() *aivoice.Control {
	return s.ctrl
}

// Close releases the control. The host connection is left as is.
func (s *Session) Close() error {
	return s.ctrl.Close()
}

// EnsureConnected reconnects when the host dropped the connection.
func (s *Session) EnsureConnected() error {
	status, err := s.ctrl.Status()
	if err != nil {
		return fmt.Errorf("failed to read host status: %w", err)
	}
	if status == aivoice.Idle || status == aivoice.Busy {
		return nil
	}
	s.log.WithField("status", status).Info("host not connected, reconnecting")
	return ConnectHost(s.ctrl, s.cfg.ServiceName, s.cfg.AutoStart)
}

// KeepAlive calls EnsureConnected every interval until ctx is done. It
// returns immediately when interval is not positive.
func (s *Session) KeepAlive(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.EnsureConnected(); err != nil {
				s.log.WithError(err).Warn("keepalive failed")
			}
		}
	}
}

// SpeakRequest is the input of Speak.
type SpeakRequest struct {
	Text   string
	Preset string // empty keeps the current preset
	Wait   bool
}

// Speak puts text into the text-mode editor and plays it. The session lock
// is held until playback has started, so concurrent callers cannot replace
// the text in between; waiting for the end happens without it.
func (s *Session) Speak(ctx context.Context, req SpeakRequest) error {
	if req.Text == "" {
		return fmt.Errorf("text is empty")
	}

	s.mu.Lock()
	err := s.prepare(req)
	var deadline time.Time
	if err == nil {
		if req.Wait {
			deadline, err = s.startPlayback()
		} else {
			err = s.ctrl.Play()
		}
	}
	s.mu.Unlock()
	if err != nil || !req.Wait {
		return err
	}
	return s.waitPlayback(ctx, deadline)
}

func (s *Session) prepare(req SpeakRequest) error {
	if err := s.EnsureConnected(); err != nil {
		return err
	}
	if err := s.ctrl.SetTextEditMode(aivoice.TextMode); err != nil {
		return fmt.Errorf("failed to select text mode: %w", err)
	}
	if req.Preset != "" {
		if err := s.ctrl.SetCurrentVoicePresetName(req.Preset); err != nil {
			return fmt.Errorf("failed to select preset %q: %w", req.Preset, err)
		}
	}
	if err := s.ctrl.SetText(req.Text); err != nil {
		return fmt.Errorf("failed to set text: %w", err)
	}
	return nil
}

// PlayAndWait starts playback and blocks until the reported play time plus
// the configured margin has passed and the host is no longer Busy.
func (s *Session) PlayAndWait(ctx context.Context) error {
	s.mu.Lock()
	deadline, err := s.startPlayback()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.waitPlayback(ctx, deadline)
}

// startPlayback plays the current text and returns when it should be over.
func (s *Session) startPlayback() (time.Time, error) {
	playTime, err := s.ctrl.GetPlayTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read play time: %w", err)
	}
	if err := s.ctrl.Play(); err != nil {
		return time.Time{}, err
	}
	return time.Now().Add(time.Duration(playTime)*time.Millisecond + s.cfg.PlayMargin), nil
}

func (s *Session) waitPlayback(ctx context.Context, deadline time.Time) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if !time.Now().Before(deadline) {
			status, err := s.ctrl.Status()
			if err != nil {
				return err
			}
			if status != aivoice.Busy {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SaveAudio writes the audio of req.Text, or of the current text when
// req.Text is empty, to path on the host's file system.
func (s *Session) SaveAudio(req SpeakRequest, path string) error {
	if path == "" {
		return fmt.Errorf("path is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Text != "" {
		if err := s.prepare(req); err != nil {
			return err
		}
	} else if err := s.EnsureConnected(); err != nil {
		return err
	}
	return s.ctrl.SaveAudioToFile(path)
}

// ReloadKinds lists the arguments accepted by Reload besides "all".
var ReloadKinds = []string{"phrase", "symbol", "word", "preset"}

// Reload re-reads dictionaries or presets from disk. An empty kind or
// "all" reloads everything.
func (s *Session) Reload(kind string) error {
	reload := map[string]func() error{
		"phrase": s.ctrl.ReloadPhraseDictionary,
		"symbol": s.ctrl.ReloadSymbolDictionary,
		"word":   s.ctrl.ReloadWordDictionary,
		"preset": s.ctrl.ReloadVoicePreset,
	}

	if kind == "" || kind == "all" {
		for _, k := range ReloadKinds {
			if err := reload[k](); err != nil {
				return fmt.Errorf("failed to reload %s: %w", k, err)
			}
		}
		return nil
	}

	fn, ok := reload[kind]
	if !ok {
		return fmt.Errorf("unknown reload kind %q", kind)
	}
	return fn()
}
