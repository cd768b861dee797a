package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emmett/aivoice/internal/session"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Edit the list-mode rows",
		Long:  "Edit the list-mode rows. Switch the editor with 'mode set list' first.",
	}
	cmd.AddCommand(
		newListAddCmd("add", "Append a row", false),
		newListAddCmd("insert", "Insert a row at the selection", true),
		&cobra.Command{
			Use:   "remove <index>",
			Short: "Remove a row",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				nums, err := parseInts(args)
				if err != nil {
					return err
				}
				return withSession(func(s *session.Session) error {
					return s.Control().RemoveListItem(nums[0])
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every row",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(func(s *session.Session) error {
					return s.Control().ClearListItems()
				})
			},
		},
		&cobra.Command{
			Use:   "count",
			Short: "Print the number of rows and selected rows",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(func(s *session.Session) error {
					ctrl := s.Control()
					total, err := ctrl.GetListCount()
					if err != nil {
						return err
					}
					selected, err := ctrl.GetListSelectionCount()
					if err != nil {
						return err
					}
					return emit(cmd, map[string]int{"count": total, "selected": selected})
				})
			},
		},
		newListSelectCmd(),
		newListSentenceCmd(),
		newListPresetCmd(),
	)
	return cmd
}

func newListAddCmd(use, short string, insert bool) *cobra.Command {
	var preset string
	cmd := &cobra.Command{
		Use:   use + " <text>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := joinText(args)
			if err != nil {
				return err
			}
			return withSession(func(s *session.Session) error {
				ctrl := s.Control()
				name := preset
				if name == "" {
					if name, err = ctrl.CurrentVoicePresetName(); err != nil {
						return err
					}
				}
				if insert {
					return ctrl.InsertListItem(name, text)
				}
				return ctrl.AddListItem(name, text)
			})
		},
	}
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "Voice preset for the row (default: the active preset)")
	return cmd
}

func newListSelectCmd() *cobra.Command {
	var rangeLen int
	cmd := &cobra.Command{
		Use:   "select [index...]",
		Short: "Show or change the selected rows",
		Example: "  aivoice list select            # print the selection\n" +
			"  aivoice list select 2\n" +
			"  aivoice list select 0 3 4\n" +
			"  aivoice list select 1 --range 3",
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := parseInts(args)
			if err != nil {
				return err
			}
			if rangeLen > 0 && len(nums) != 1 {
				return fmt.Errorf("--range needs exactly one start index")
			}
			return withSession(func(s *session.Session) error {
				ctrl := s.Control()
				switch {
				case rangeLen > 0:
					return ctrl.SetListSelectionRange(nums[0], rangeLen)
				case len(nums) == 1:
					return ctrl.SetListSelectionIndex(nums[0])
				case len(nums) > 1:
					return ctrl.SetListSelectionIndices(nums)
				}
				indices, err := ctrl.GetListSelectionIndices()
				if err != nil {
					return err
				}
				return emit(cmd, indices)
			})
		},
	}
	cmd.Flags().IntVar(&rangeLen, "range", 0, "Select this many rows starting at the index")
	return cmd
}

func newListSentenceCmd() *cobra.Command {
	var synthesize bool
	cmd := &cobra.Command{
		Use:   "sentence",
		Short: "Read or replace row sentences",
	}
	set := &cobra.Command{
		Use:   "set <text>...",
		Short: "Replace the sentence of the selected row",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := joinText(args)
			if err != nil {
				return err
			}
			return withSession(func(s *session.Session) error {
				return s.Control().SetListSentence(text, synthesize)
			})
		},
	}
	set.Flags().BoolVar(&synthesize, "synthesize", false, "Re-synthesize the row after the change")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <index>",
			Short: "Print the sentence of a row",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				nums, err := parseInts(args)
				if err != nil {
					return err
				}
				return withSession(func(s *session.Session) error {
					sentence, err := s.Control().GetListSentence(nums[0])
					if err != nil {
						return err
					}
					return emit(cmd, sentence)
				})
			},
		},
		set,
	)
	return cmd
}

func newListPresetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preset [name]",
		Short: "Show or set the preset of the selected row",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(s *session.Session) error {
				if len(args) == 1 {
					return s.Control().SetListVoicePreset(args[0])
				}
				name, err := s.Control().GetListVoicePreset()
				if err != nil {
					return err
				}
				return emit(cmd, name)
			})
		},
	}
}
