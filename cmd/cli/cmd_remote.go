package main

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emmett/aivoice/internal/audio"
	grpcserver "github.com/emmett/aivoice/internal/server/grpc"
)

func newRemoteCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Drive an editor exposed by aivoice-server",
	}
	cmd.PersistentFlags().StringVar(&addr, "addr", "", "Server address host:port (default: from config)")

	dial := func() (*grpcserver.Client, func(), error) {
		target := addr
		if target == "" {
			target = net.JoinHostPort(g.cfg.Server.Host, strconv.Itoa(g.cfg.Server.Port))
		}
		conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to %s: %w", target, err)
		}
		return grpcserver.NewClient(conn), func() { conn.Close() }, nil
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the remote host status and version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, done, err := dial()
			if err != nil {
				return err
			}
			defer done()
			st, err := client.GetStatus(cmd.Context())
			if err != nil {
				return err
			}
			version, err := client.GetVersion(cmd.Context())
			if err != nil {
				return err
			}
			return emit(cmd, map[string]string{"status": st, "version": version})
		},
	}

	var preset string
	speak := &cobra.Command{
		Use:   "speak <text>...",
		Short: "Play text on the remote editor",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := joinText(args)
			if err != nil {
				return err
			}
			client, done, err := dial()
			if err != nil {
				return err
			}
			defer done()
			ctx := cmd.Context()
			if preset != "" {
				if err := client.SetCurrentVoicePreset(ctx, preset); err != nil {
					return err
				}
			}
			if err := client.SetText(ctx, text); err != nil {
				return err
			}
			return client.Play(ctx)
		},
	}
	speak.Flags().StringVarP(&preset, "preset", "p", "", "Voice preset to use")

	var voice, out string
	var speed float32
	synth := &cobra.Command{
		Use:   "synthesize <text>...",
		Short: "Stream synthesized audio from the server into a WAV file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := joinText(args)
			if err != nil {
				return err
			}
			client, done, err := dial()
			if err != nil {
				return err
			}
			defer done()
			clip, err := client.SynthesizeClip(cmd.Context(), text, voice, speed)
			if err != nil {
				return err
			}
			if err := audio.SaveWAV(out, clip); err != nil {
				return err
			}
			return emit(cmd, map[string]any{"file": out, "duration_ms": clip.Duration()})
		},
	}
	synth.Flags().StringVarP(&voice, "voice", "v", "", "Voice preset to use")
	synth.Flags().Float32Var(&speed, "speed", 0, "Speech speed (0 keeps the preset speed)")
	synth.Flags().StringVarP(&out, "out", "o", "speech.wav", "Output WAV file")

	cmd.AddCommand(status, speak, synth)
	return cmd
}
