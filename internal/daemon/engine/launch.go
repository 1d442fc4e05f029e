package engine

import (
	"context"
	"time"

	"github.com/grovetools/xstatus/command"
	"github.com/grovetools/xstatus/config"
	"github.com/grovetools/xstatus/internal/xroot"
	"github.com/grovetools/xstatus/logging"
	"github.com/sirupsen/logrus"
)

// OpenFunc opens a display by name; empty means $DISPLAY.
type OpenFunc func(name string) (Display, error)

// Deps are the outside-world hooks Launch uses. Zero fields get production defaults.
type Deps struct {
	LookPath command.LookPathFunc
	Open     OpenFunc
	Runner   command.Runner
	Logger   *logrus.Entry
	Now      func() time.Time
	Reloads  <-chan *config.Config
}

func (d Deps) withDefaults(cfg *config.Config) Deps {
	if d.LookPath == nil {
		d.LookPath = command.DefaultLookPath
	}
	if d.Open == nil {
		d.Open = OpenRootWindow
	}
	if d.Runner == nil {
		d.Runner = command.NewExecRunner(cfg.HelperTimeout())
	}
	if d.Logger == nil {
		d.Logger = logging.NewLogger(logging.DaemonComponent)
	}
	return d
}

// OpenRootWindow opens the named X display's root window.
func OpenRootWindow(name string) (Display, error) {
	d, err := xroot.Open(name)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Launch checks the required helpers, opens the display, and runs the loop
// until ctx is cancelled or a cycle fails. The display is closed on return.
// Nothing touches the display when a helper is missing.
func Launch(ctx context.Context, cfg *config.Config, deps Deps) error {
	deps = deps.withDefaults(cfg)
	logger := deps.Logger

	if err := command.Preflight(deps.LookPath, cfg.RequiredHelpers()); err != nil {
		return err
	}

	display, err := deps.Open(cfg.Display)
	if err != nil {
		return err
	}
	defer func() {
		if err := display.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close display")
		}
	}()
	logger.WithField("display", cfg.Display).Debug("Opened display")

	e := New(cfg, deps.Runner, display, logger,
		WithClock(deps.Now),
		WithReloads(deps.Reloads),
		WithPreflight(deps.LookPath),
	)
	return e.Run(ctx)
}
