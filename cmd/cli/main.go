// Command aivoice drives the A.I.VOICE Editor from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/app"
	"github.com/emmett/aivoice/internal/config"
	"github.com/emmett/aivoice/internal/logging"
	"github.com/emmett/aivoice/internal/output"
	"github.com/emmett/aivoice/internal/session"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

// globals holds the state shared by every command.
type globals struct {
	configFile string
	format     string
	editorDir  string
	logLevel   string

	cfg    *config.Config
	out    output.Formatter
	closer io.Closer

	// sessionOpts are appended to every control the commands load.
	sessionOpts []aivoice.Option
}

var g globals

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "aivoice",
		Short:         "Control the A.I.VOICE Editor",
		Version:       fmt.Sprintf("%s (commit: %s, branch: %s, built: %s)", Version, GitCommit, GitBranch, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return teardown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.configFile, "config", "", "Path to configuration file (default: ~/.aivoicerc or the system config)")
	flags.StringVarP(&g.format, "format", "f", "", "Output format: text, console, json")
	flags.StringVar(&g.editorDir, "editor-dir", "", "A.I.VOICE Editor install directory")
	flags.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newStatusCmd(),
		newVersionCmd(),
		newHostsCmd(),
		newVoicesCmd(),
		newPresetsCmd(),
		newPresetCmd(),
		newTextCmd(),
		newModeCmd(),
		newListCmd(),
		newSpeakCmd(),
		newPlayCmd(),
		newStopCmd(),
		newSaveCmd(),
		newMasterCmd(),
		newReloadCmd(),
		newHostCmd(),
		newConnectCmd(),
		newDisconnectCmd(),
		newDevicesCmd(),
		newHotkeyCmd(),
		newRemoteCmd(),
		newConfigCmd(),
	)
	return root
}

// setup loads configuration, applies flag overrides and opens the output.
func setup() error {
	cfg, err := config.LoadWithFallback(g.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if g.format != "" {
		cfg.Output.Format = g.format
	}
	if g.editorDir != "" {
		cfg.Editor.Dir = g.editorDir
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, nil); err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if cfg.Output.File != "" {
		f, err := os.Create(cfg.Output.File)
		if err != nil {
			return fmt.Errorf("failed to open output file: %w", err)
		}
		w = f
		g.closer = f
	}

	g.out, err = output.NewFormatter(cfg.Output.Format, w)
	if err != nil {
		return err
	}
	g.cfg = cfg
	return nil
}

func teardown() error {
	if g.out != nil {
		g.out.Flush()
		g.out.Close()
	}
	if g.closer != nil {
		return g.closer.Close()
	}
	return nil
}

// emit writes a command result in the configured format.
func emit(cmd *cobra.Command, v any) error {
	return g.out.WriteResult(output.Result{Command: cmd.CommandPath(), Value: v})
}

// withSession opens a connected session for the duration of fn.
func withSession(fn func(s *session.Session) error) error {
	s, err := app.OpenSession(g.cfg, g.sessionOpts...)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// withControl loads the control without initializing the API, for commands
// that run before a host is chosen.
func withControl(fn func(s *session.Session) error) error {
	s, err := app.LoadSession(g.cfg, g.sessionOpts...)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// withAPI initializes the API without starting or connecting the host, for
// commands that must work while the host is down or disconnected.
func withAPI(fn func(s *session.Session) error) error {
	s, err := app.InitSession(g.cfg, g.sessionOpts...)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}
