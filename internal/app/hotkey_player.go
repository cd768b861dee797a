package app

import (
	"context"
	"fmt"

	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/input"
	"github.com/emmett/aivoice/internal/output"
	"github.com/emmett/aivoice/internal/session"
)

// HotkeyPlayer toggles the editor's playback from a global hotkey
type HotkeyPlayer struct {
	session   *session.Session
	hotkey    string
	statusOut *output.ConsoleOutput
	presses   chan struct{}
}

// NewHotkeyPlayer creates a new HotkeyPlayer
func NewHotkeyPlayer(sess *session.Session, hotkey string, out *output.ConsoleOutput) *HotkeyPlayer {
	if out == nil {
		out = output.DefaultConsoleOutput()
	}
	return &HotkeyPlayer{
		session:   sess,
		hotkey:    hotkey,
		statusOut: out,
		presses:   make(chan struct{}, 10),
	}
}

// Run listens for the hotkey until ctx is done
func (p *HotkeyPlayer) Run(ctx context.Context) error {
	hotkeyMgr := input.NewHotkeyManager(func() {
		select {
		case p.presses <- struct{}{}:
		default:
		}
	})
	if err := hotkeyMgr.Start(ctx, p.hotkey); err != nil {
		return fmt.Errorf("failed to start hotkey listener: %w", err)
	}
	defer hotkeyMgr.Stop()

	p.statusOut.Info(fmt.Sprintf("Press %s to play or stop the editor text. Press Ctrl+C to exit.", p.hotkey))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.presses:
			if _, err := p.Toggle(); err != nil {
				p.statusOut.Error(err.Error())
			}
		}
	}
}

// Toggle stops playback when the host is busy and starts it otherwise. It
// returns whether playback was started.
func (p *HotkeyPlayer) Toggle() (bool, error) {
	if err := p.session.EnsureConnected(); err != nil {
		return false, err
	}
	ctrl := p.session.Control()

	status, err := ctrl.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read status: %w", err)
	}
	if status == aivoice.Busy {
		if err := ctrl.Stop(); err != nil {
			return false, fmt.Errorf("failed to stop: %w", err)
		}
		p.statusOut.Write("[Stopped]")
		return false, nil
	}

	if err := ctrl.Play(); err != nil {
		return false, fmt.Errorf("failed to play: %w", err)
	}
	p.statusOut.Write("[Playing]")
	return true, nil
}
