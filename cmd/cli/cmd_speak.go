package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emmett/aivoice/internal/app"
	"github.com/emmett/aivoice/internal/audio"
	"github.com/emmett/aivoice/internal/output"
	"github.com/emmett/aivoice/internal/session"
	"github.com/emmett/aivoice/internal/tts"
)

type speakOptions struct {
	preset string
	wait   bool
	local  bool
	speed  float32
	device string
}

func newSpeakCmd() *cobra.Command {
	var opts speakOptions
	cmd := &cobra.Command{
		Use:   "speak [text...]",
		Short: "Speak text with the editor (reads stdin when no text is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				args = []string{strings.TrimSpace(string(data))}
			}
			text, err := joinText(args)
			if err != nil {
				return err
			}
			return withSession(func(s *session.Session) error {
				if opts.local {
					return speakLocal(cmd, s, text, opts)
				}
				return s.Speak(cmd.Context(), session.SpeakRequest{Text: text, Preset: opts.preset, Wait: opts.wait})
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.preset, "preset", "p", "", "Voice preset to use")
	flags.BoolVarP(&opts.wait, "wait", "w", false, "Wait until playback has finished")
	flags.BoolVar(&opts.local, "local", false, "Render to audio and play it on a local device")
	flags.Float32Var(&opts.speed, "speed", 0, "Speech speed for --local (0.5-4.0, 0 keeps the preset speed)")
	flags.StringVarP(&opts.device, "device", "d", "", "Playback device for --local (default: from config)")
	return cmd
}

func speakLocal(cmd *cobra.Command, s *session.Session, text string, opts speakOptions) error {
	engine := tts.NewAIVoiceEngine(s.Control())
	ttsCfg := tts.DefaultConfig()
	ttsCfg.ServiceName = g.cfg.Editor.ServiceName
	ttsCfg.AutoStart = g.cfg.Editor.AutoStart
	if err := engine.Initialize(ttsCfg); err != nil {
		return err
	}
	defer engine.Close()

	playCfg := audio.DefaultPlaybackConfig()
	playCfg.DeviceName = g.cfg.Audio.Device
	if opts.device != "" {
		playCfg.DeviceName = opts.device
	}
	player, err := audio.NewPlayer(playCfg)
	if err != nil {
		return err
	}
	return app.NewLocalSpeaker(engine, player).Speak(cmd.Context(), app.SpeakRequest{
		Text:   text,
		Preset: opts.preset,
		Speed:  opts.speed,
	})
}

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List local playback devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.cfg.Output.Format == output.FormatJSON {
				devices, err := audio.ListDevices()
				if err != nil {
					return err
				}
				return emit(cmd, devices)
			}
			return app.NewDeviceManager().ListDevices()
		},
	}
}

func newHotkeyCmd() *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "hotkey",
		Short: "Toggle editor playback with a global hotkey",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if key == "" {
				key = g.cfg.Hotkey.Play
			}
			return withSession(func(s *session.Session) error {
				return app.NewHotkeyPlayer(s, key, nil).Run(cmd.Context())
			})
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "", "Hotkey, e.g. ctrl+shift+p (default: from config)")
	return cmd
}
