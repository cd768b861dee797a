package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/session"
)

func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Inspect and edit voice presets",
	}
	cmd.AddCommand(
		newPresetCurrentCmd(),
		newPresetUseCmd(),
		newPresetGetCmd(),
		newPresetWriteCmd("add", "Create a preset from a JSON file (- for stdin)", func(c *aivoice.Control, p aivoice.VoicePreset) error {
			return c.AddVoicePreset(p)
		}),
		newPresetWriteCmd("set", "Overwrite a preset from a JSON file (- for stdin)", func(c *aivoice.Control, p aivoice.VoicePreset) error {
			return c.SetVoicePreset(p)
		}),
		newPresetValidateCmd(),
	)
	return cmd
}

func newPresetCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the active preset name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(s *session.Session) error {
				name, err := s.Control().CurrentVoicePresetName()
				if err != nil {
					return err
				}
				return emit(cmd, name)
			})
		},
	}
}

func newPresetUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Make a preset the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(s *session.Session) error {
				return s.Control().SetCurrentVoicePresetName(args[0])
			})
		},
	}
}

func newPresetGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Print a preset as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(s *session.Session) error {
				p, err := s.Control().GetVoicePreset(args[0])
				if err != nil {
					return err
				}
				return emit(cmd, p)
			})
		},
	}
}

func newPresetWriteCmd(use, short string, write func(*aivoice.Control, aivoice.VoicePreset) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			p, err := aivoice.ParseVoicePreset(string(data))
			if err != nil {
				return err
			}
			if p.PresetName == "" || p.VoiceName == "" {
				return fmt.Errorf("preset needs PresetName and VoiceName")
			}
			return withSession(func(s *session.Session) error {
				return write(s.Control(), p)
			})
		},
	}
}

func newPresetValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a preset file carries every member with a valid type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := aivoice.ValidatePresetJSON(data); err != nil {
				return err
			}
			return emit(cmd, "ok")
		},
	}
}
