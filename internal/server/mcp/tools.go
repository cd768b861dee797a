package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/session"
)

func textResult(lines ...string) *sdk.CallToolResult {
	content := make([]sdk.Content, 0, len(lines))
	for _, l := range lines {
		content = append(content, &sdk.TextContent{Text: l})
	}
	return &sdk.CallToolResult{Content: content}
}

func jsonResult(v any) (*sdk.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return textResult(string(data)), nil, nil
}

func (s *Server) handleGetStatus(ctx context.Context, req *sdk.CallToolRequest, args EmptyArgs) (*sdk.CallToolResult, any, error) {
	ctrl := s.session.Control()

	status, err := ctrl.Status()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read status: %w", err)
	}
	result := StatusResult{Status: status.String()}

	// the remaining members need a connection
	if status == aivoice.Idle || status == aivoice.Busy {
		if result.Version, err = ctrl.Version(); err != nil {
			return nil, nil, err
		}
		if result.Preset, err = ctrl.CurrentVoicePresetName(); err != nil {
			return nil, nil, err
		}
		mode, err := ctrl.TextEditMode()
		if err != nil {
			return nil, nil, err
		}
		result.TextEditMode = mode.String()
	}
	return jsonResult(result)
}

func (s *Server) handleListVoices(ctx context.Context, req *sdk.CallToolRequest, args EmptyArgs) (*sdk.CallToolResult, any, error) {
	if err := s.session.EnsureConnected(); err != nil {
		return nil, nil, err
	}
	names, err := s.session.Control().VoiceNames()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list voices: %w", err)
	}
	return textResult(fmt.Sprintf("Voices (%d):", len(names)), strings.Join(names, "\n")), nil, nil
}

func (s *Server) handleListPresets(ctx context.Context, req *sdk.CallToolRequest, args EmptyArgs) (*sdk.CallToolResult, any, error) {
	if err := s.session.EnsureConnected(); err != nil {
		return nil, nil, err
	}
	ctrl := s.session.Control()
	names, err := ctrl.VoicePresetNames()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list presets: %w", err)
	}
	current, err := ctrl.CurrentVoicePresetName()
	if err != nil {
		return nil, nil, err
	}

	lines := make([]string, 0, len(names))
	for _, n := range names {
		if n == current {
			n = "* " + n
		}
		lines = append(lines, n)
	}
	return textResult(fmt.Sprintf("Voice presets (%d):", len(names)), strings.Join(lines, "\n")), nil, nil
}

func (s *Server) handleGetPreset(ctx context.Context, req *sdk.CallToolRequest, args PresetNameArgs) (*sdk.CallToolResult, any, error) {
	if args.Name == "" {
		return nil, nil, fmt.Errorf("name is required")
	}
	if err := s.session.EnsureConnected(); err != nil {
		return nil, nil, err
	}
	preset, err := s.session.Control().GetVoicePreset(args.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get preset %q: %w", args.Name, err)
	}
	payload, err := preset.JSON()
	if err != nil {
		return nil, nil, err
	}
	return textResult(payload), nil, nil
}

func (s *Server) handleSetPreset(ctx context.Context, req *sdk.CallToolRequest, args PresetArgs) (*sdk.CallToolResult, any, error) {
	preset, err := parsePreset(args.Preset)
	if err != nil {
		return nil, nil, err
	}
	if err := s.session.EnsureConnected(); err != nil {
		return nil, nil, err
	}
	if err := s.session.Control().SetVoicePreset(preset); err != nil {
		return nil, nil, fmt.Errorf("failed to set preset: %w", err)
	}
	return textResult("Updated preset " + preset.PresetName), nil, nil
}

func (s *Server) handleAddPreset(ctx context.Context, req *sdk.CallToolRequest, args PresetArgs) (*sdk.CallToolResult, any, error) {
	preset, err := parsePreset(args.Preset)
	if err != nil {
		return nil, nil, err
	}
	if err := s.session.EnsureConnected(); err != nil {
		return nil, nil, err
	}
	if err := s.session.Control().AddVoicePreset(preset); err != nil {
		return nil, nil, fmt.Errorf("failed to add preset: %w", err)
	}
	return textResult("Added preset " + preset.PresetName), nil, nil
}

func parsePreset(payload string) (aivoice.VoicePreset, error) {
	preset, err := aivoice.ParseVoicePreset(payload)
	if err != nil {
		return preset, fmt.Errorf("invalid preset: %w", err)
	}
	if preset.PresetName == "" || preset.VoiceName == "" {
		return preset, fmt.Errorf("invalid preset: PresetName and VoiceName are required")
	}
	return preset, nil
}

func (s *Server) handleSetText(ctx context.Context, req *sdk.CallToolRequest, args SetTextArgs) (*sdk.CallToolResult, any, error) {
	if err := s.session.EnsureConnected(); err != nil {
		return nil, nil, err
	}
	if err := s.session.Control().SetText(args.Text); err != nil {
		return nil, nil, fmt.Errorf("failed to set text: %w", err)
	}
	return textResult(fmt.Sprintf("Text set (%d characters)", len([]rune(args.Text)))), nil, nil
}

func (s *Server) handleSpeak(ctx context.Context, req *sdk.CallToolRequest, args SpeakArgs) (*sdk.CallToolResult, any, error) {
	s.log.WithField("wait", args.Wait).Debug("speak")
	err := s.session.Speak(ctx, session.SpeakRequest{Text: args.Text, Preset: args.Preset, Wait: args.Wait})
	if err != nil {
		return nil, nil, fmt.Errorf("speak failed: %w", err)
	}
	if args.Wait {
		return textResult("Playback finished"), nil, nil
	}
	return textResult("Playback started"), nil, nil
}

func (s *Server) handleStop(ctx context.Context, req *sdk.CallToolRequest, args EmptyArgs) (*sdk.CallToolResult, any, error) {
	if err := s.session.Control().Stop(); err != nil {
		return nil, nil, fmt.Errorf("failed to stop: %w", err)
	}
	return textResult("Stopped"), nil, nil
}

func (s *Server) handleSaveAudio(ctx context.Context, req *sdk.CallToolRequest, args SaveAudioArgs) (*sdk.CallToolResult, any, error) {
	err := s.session.SaveAudio(session.SpeakRequest{Text: args.Text, Preset: args.Preset}, args.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to save audio: %w", err)
	}
	return textResult("Saved audio to " + args.Path), nil, nil
}

func (s *Server) handleGetPlayTime(ctx context.Context, req *sdk.CallToolRequest, args EmptyArgs) (*sdk.CallToolResult, any, error) {
	if err := s.session.EnsureConnected(); err != nil {
		return nil, nil, err
	}
	ms, err := s.session.Control().GetPlayTime()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get play time: %w", err)
	}
	return textResult(fmt.Sprintf("%d", ms)), nil, nil
}

func (s *Server) handleReload(ctx context.Context, req *sdk.CallToolRequest, args ReloadArgs) (*sdk.CallToolResult, any, error) {
	if err := s.session.Reload(args.Kind); err != nil {
		return nil, nil, err
	}
	kind := args.Kind
	if kind == "" {
		kind = "all"
	}
	return textResult("Reloaded " + kind), nil, nil
}
