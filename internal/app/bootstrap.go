package app

import (
	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/config"
	"github.com/emmett/aivoice/internal/session"
)

// SessionConfig maps the editor and session sections of cfg.
func SessionConfig(cfg *config.Config) session.Config {
	return session.Config{
		EditorDir:    cfg.Editor.Dir,
		ProgID:       cfg.Editor.ProgID,
		ServiceName:  cfg.Editor.ServiceName,
		AutoStart:    cfg.Editor.AutoStart,
		KeepAlive:    cfg.Session.KeepAlive,
		PlayMargin:   cfg.Session.PlayMargin,
		PollInterval: cfg.Session.PollInterval,
	}
}

// OpenSession loads the control and connects to the host.
func OpenSession(cfg *config.Config, opts ...aivoice.Option) (*session.Session, error) {
	return session.Open(SessionConfig(cfg), opts...)
}

// LoadSession loads the control without connecting, for commands that
// manage the host itself.
func LoadSession(cfg *config.Config, opts ...aivoice.Option) (*session.Session, error) {
	return session.New(SessionConfig(cfg), opts...)
}

// InitSession loads the control and initializes the API without starting or
// connecting the host, for commands that query or drive the host's state.
func InitSession(cfg *config.Config, opts ...aivoice.Option) (*session.Session, error) {
	s, err := LoadSession(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Initialize(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
