// Command aivoice-mcp serves the A.I.VOICE Editor as MCP tools over stdio.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emmett/aivoice/internal/app"
	"github.com/emmett/aivoice/internal/config"
	"github.com/emmett/aivoice/internal/logging"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile, editorDir string
	cmd := &cobra.Command{
		Use:           "aivoice-mcp",
		Short:         "Serve the A.I.VOICE Editor as MCP tools over stdio",
		Version:       fmt.Sprintf("%s (commit: %s, branch: %s, built: %s)", Version, GitCommit, GitBranch, BuildTime),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithFallback(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if editorDir != "" {
				cfg.Editor.Dir = editorDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, nil); err != nil {
				return err
			}

			// The host is connected lazily by the first tool call.
			sess, err := app.LoadSession(cfg)
			if err != nil {
				return err
			}
			defer sess.Close()

			handler := app.NewMCPHandler(sess, Version, GitCommit)
			handler.PrintClientConfig(os.Args[1:])
			return handler.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "Path to configuration file")
	cmd.Flags().StringVar(&editorDir, "editor-dir", "", "A.I.VOICE Editor install directory")
	return cmd
}
