package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/session"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the host status without connecting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAPI(func(s *session.Session) error {
				st, err := s.Control().Status()
				if err != nil {
					return err
				}
				return emit(cmd, st)
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show CLI and host versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			versions := map[string]string{
				"cli":    Version,
				"commit": GitCommit,
			}
			err := withSession(func(s *session.Session) error {
				v, err := s.Control().Version()
				versions["host"] = v
				return err
			})
			if err != nil {
				return err
			}
			return emit(cmd, versions)
		},
	}
}

func newHostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hosts",
		Short: "List the hosts that can be initialized",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withControl(func(s *session.Session) error {
				names, err := s.Control().GetAvailableHostNames()
				if err != nil {
					return err
				}
				return emit(cmd, names)
			})
		},
	}
}

func newVoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List installed voice names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(s *session.Session) error {
				names, err := s.Control().VoiceNames()
				if err != nil {
					return err
				}
				return emit(cmd, names)
			})
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List voice preset names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(s *session.Session) error {
				names, err := s.Control().VoicePresetNames()
				if err != nil {
					return err
				}
				return emit(cmd, names)
			})
		},
	}
}

func newTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Read or replace the text-mode editor contents",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the current text",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(func(s *session.Session) error {
					text, err := s.Control().Text()
					if err != nil {
						return err
					}
					return emit(cmd, text)
				})
			},
		},
		&cobra.Command{
			Use:   "set <text>...",
			Short: "Replace the text",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(func(s *session.Session) error {
					return s.Control().SetText(strings.Join(args, " "))
				})
			},
		},
		newSelectionCmd(),
	)
	return cmd
}

func newSelectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selection [start length]",
		Short: "Show or set the text selection",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected no arguments or <start> <length>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(s *session.Session) error {
				ctrl := s.Control()
				if len(args) == 2 {
					nums, err := parseInts(args)
					if err != nil {
						return err
					}
					if err := ctrl.SetTextSelectionStart(nums[0]); err != nil {
						return err
					}
					return ctrl.SetTextSelectionLength(nums[1])
				}
				start, err := ctrl.TextSelectionStart()
				if err != nil {
					return err
				}
				length, err := ctrl.TextSelectionLength()
				if err != nil {
					return err
				}
				return emit(cmd, map[string]int{"start": start, "length": length})
			})
		},
	}
	return cmd
}

func newModeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode",
		Short: "Read or switch the input representation (text or list)",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the current mode",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(func(s *session.Session) error {
					mode, err := s.Control().TextEditMode()
					if err != nil {
						return err
					}
					return emit(cmd, mode)
				})
			},
		},
		&cobra.Command{
			Use:   "set <text|list>",
			Short: "Switch the mode",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				mode, err := aivoice.ParseTextEditMode(args[0])
				if err != nil {
					return err
				}
				return withSession(func(s *session.Session) error {
					return s.Control().SetTextEditMode(mode)
				})
			},
		},
	)
	return cmd
}

func newPlayCmd() *cobra.Command {
	var wait bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play (or pause) the current text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(s *session.Session) error {
				if wait {
					return s.PlayAndWait(cmd.Context())
				}
				return s.Control().Play()
			})
		},
	}
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Wait until playback has finished")
	return cmd
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop playback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(s *session.Session) error {
				return s.Control().Stop()
			})
		},
	}
}

func newSaveCmd() *cobra.Command {
	var text, preset string
	cmd := &cobra.Command{
		Use:   "save <path>",
		Short: "Save the synthesized audio to a file",
		Long: "Save the synthesized audio to a file. The host appends the right " +
			"extension when it does not match its audio format, and ignores the " +
			"path when it is configured to name files by rule.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(s *session.Session) error {
				return s.SaveAudio(session.SpeakRequest{Text: text, Preset: preset}, args[0])
			})
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "Text to synthesize (default: the current text)")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "Voice preset to use")
	return cmd
}

func newMasterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "master",
		Short: "Read or write the master control values",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the master control JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(func(s *session.Session) error {
					v, err := s.Control().MasterControl()
					if err != nil {
						return err
					}
					return emit(cmd, v)
				})
			},
		},
		&cobra.Command{
			Use:   "set <json>",
			Short: "Write the master control JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !json.Valid([]byte(args[0])) {
					return fmt.Errorf("master control must be a JSON object")
				}
				return withSession(func(s *session.Session) error {
					return s.Control().SetMasterControl(args[0])
				})
			},
		},
	)
	return cmd
}

func newReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "reload [phrase|symbol|word|preset|all]",
		Short:     "Reload dictionaries and voice presets from disk",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: append(session.ReloadKinds, "all"),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := ""
			if len(args) == 1 {
				kind = args[0]
			}
			return withSession(func(s *session.Session) error {
				return s.Reload(kind)
			})
		},
	}
}

func newHostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Start or terminate the host program",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Initialize the API and launch the host program",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withControl(func(s *session.Session) error {
					return session.ConnectHost(s.Control(), g.cfg.Editor.ServiceName, true)
				})
			},
		},
		&cobra.Command{
			Use:   "terminate",
			Short: "Exit the host program",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withAPI(func(s *session.Session) error {
					return s.Control().TerminateHost()
				})
			},
		},
	)
	return cmd
}

func newConnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Connect to the host (it disconnects after ten idle minutes)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAPI(func(s *session.Session) error {
				return s.Control().Connect()
			})
		},
	}
}

func newDisconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect from the host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAPI(func(s *session.Session) error {
				return s.Control().Disconnect()
			})
		},
	}
}
