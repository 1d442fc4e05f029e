package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/xstatus/cli"
	"github.com/grovetools/xstatus/command"
	"github.com/grovetools/xstatus/config"
	"github.com/grovetools/xstatus/internal/daemon/engine"
	"github.com/grovetools/xstatus/internal/daemon/pidfile"
	"github.com/grovetools/xstatus/internal/daemon/watcher"
	"github.com/grovetools/xstatus/logging"
	"github.com/grovetools/xstatus/pkg/paths"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRunCmd returns the command running the status loop in the foreground.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the status loop (default)",
		Long: `Publish the status line to the root window every interval until
interrupted. Exits 1 when the mixer or backlight helper is missing.`,
		Args: cobra.NoArgs,
		RunE: runDaemon,
	}
	addRunFlags(cmd)
	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-watch", false, "Do not reload the config file when it changes")
	cmd.Flags().String("display", "", "X display to publish to (default: $DISPLAY)")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	return startDaemon(cmd, engine.Deps{})
}

// startDaemon runs the status loop in the foreground until a stop signal or
// a failed cycle. Zero deps fields get production defaults.
func startDaemon(cmd *cobra.Command, deps engine.Deps) error {
	opts := cli.GetOptions(cmd)
	logger := cli.GetLogger(cmd, logging.DaemonComponent)
	if deps.Logger == nil {
		deps.Logger = logger
	}
	if deps.LookPath == nil {
		deps.LookPath = command.DefaultLookPath
	}

	cfg, cfgPath, err := config.Resolve(opts.ConfigFile, logger)
	if err != nil {
		return err
	}
	if display, _ := cmd.Flags().GetString("display"); display != "" {
		cfg.Display = display
	}

	// A missing helper is reported before touching the pidfile or the display.
	if err := command.Preflight(deps.LookPath, cfg.RequiredHelpers()); err != nil {
		return err
	}

	pidPath := paths.PidFilePath()
	if err := pidfile.Acquire(pidPath); err != nil {
		return err
	}
	defer func() {
		if err := pidfile.Release(pidPath); err != nil {
			logger.Errorf("Failed to release pidfile: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)
	go func() {
		select {
		case sig := <-stop:
			logger.WithField("signal", sig.String()).Info("Received stop signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	if deps.Reloads == nil {
		deps.Reloads = watchConfig(ctx, cmd, cfgPath, logger)
	}

	logger.WithFields(logrus.Fields{
		"pid":    os.Getpid(),
		"config": cfgPath,
	}).Info("Starting xstatus")

	return engine.Launch(ctx, cfg, deps)
}

// watchConfig returns the reload channel, or nil with --no-watch or when the
// watcher cannot start.
func watchConfig(ctx context.Context, cmd *cobra.Command, cfgPath string, logger *logrus.Entry) <-chan *config.Config {
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		return nil
	}
	reloads, err := watcher.Reloads(ctx, cfgPath, logger)
	if err != nil {
		logger.WithError(err).Warn("Config watcher disabled")
		return nil
	}
	return reloads
}
