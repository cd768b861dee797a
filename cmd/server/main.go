// Command aivoice-server exposes the A.I.VOICE Editor over gRPC.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/app"
	"github.com/emmett/aivoice/internal/config"
	"github.com/emmett/aivoice/internal/logging"
	grpcserver "github.com/emmett/aivoice/internal/server/grpc"
	"github.com/emmett/aivoice/internal/tts"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

type serverOptions struct {
	configFile string
	host       string
	port       int
	noTTS      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts serverOptions
	cmd := &cobra.Command{
		Use:           "aivoice-server",
		Short:         "Serve the A.I.VOICE Editor over gRPC",
		Version:       fmt.Sprintf("%s (commit: %s, branch: %s, built: %s)", Version, GitCommit, GitBranch, BuildTime),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "Path to configuration file")
	flags.StringVar(&opts.host, "host", "", "Listen host (default: from config)")
	flags.IntVarP(&opts.port, "port", "p", 0, "gRPC server port (default: from config)")
	flags.BoolVar(&opts.noTTS, "no-tts", false, "Do not register the audio synthesis service")
	return cmd
}

// run serves until ctx is cancelled. A failure of any part is returned;
// shutting down because ctx ended is not an error.
func run(ctx context.Context, opts serverOptions, sessionOpts ...aivoice.Option) error {
	cfg, err := config.LoadWithFallback(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.port != 0 {
		cfg.Server.Port = opts.port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, nil); err != nil {
		return err
	}
	log := logging.Component("server")
	log.WithField("version", Version).WithField("commit", GitCommit).Info("starting")

	sess, err := app.OpenSession(cfg, sessionOpts...)
	if err != nil {
		return err
	}
	defer sess.Close()

	var engine tts.Engine
	if !opts.noTTS {
		e := tts.NewAIVoiceEngine(sess.Control())
		ttsCfg := tts.DefaultConfig()
		ttsCfg.ServiceName = cfg.Editor.ServiceName
		ttsCfg.AutoStart = cfg.Editor.AutoStart
		if err := e.Initialize(ttsCfg); err != nil {
			return fmt.Errorf("failed to initialize synthesis: %w", err)
		}
		engine = e
	}

	server := grpcserver.NewServer(grpcserver.Config{Host: cfg.Server.Host, Port: cfg.Server.Port}, sess, engine)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		return sess.KeepAlive(gctx, cfg.Session.KeepAlive)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		server.Stop()
		return nil
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
