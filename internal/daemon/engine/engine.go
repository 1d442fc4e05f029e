// Package engine runs the poll-format-publish loop.
package engine

import (
	"context"
	"time"

	"github.com/grovetools/xstatus/command"
	"github.com/grovetools/xstatus/config"
	"github.com/grovetools/xstatus/errors"
	"github.com/grovetools/xstatus/internal/daemon/collector"
	"github.com/grovetools/xstatus/internal/daemon/statusline"
	"github.com/sirupsen/logrus"
)

// Publisher receives each formatted status line.
type Publisher interface {
	Publish(line string) error
}

// Display is a Publisher holding an open display connection.
type Display interface {
	Publisher
	Close() error
}

// Engine gathers the collector readings and publishes the status line.
type Engine struct {
	cfg        *config.Config
	collectors collector.Set
	publisher  Publisher
	runner     command.Runner
	now        func() time.Time
	logger     *logrus.Entry
	reloads    <-chan *config.Config
	lookPath   command.LookPathFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithReloads makes Run apply configs received on ch between cycles.
func WithReloads(ch <-chan *config.Config) Option {
	return func(e *Engine) { e.reloads = ch }
}

// WithPreflight rejects reloaded configs whose helpers cannot be resolved.
func WithPreflight(lookPath command.LookPathFunc) Option {
	return func(e *Engine) { e.lookPath = lookPath }
}

// WithClock sets the time source for the clock collector.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates a new Engine instance. A nil publisher is allowed for Collect-only use.
func New(cfg *config.Config, runner command.Runner, publisher Publisher, logger *logrus.Entry, opts ...Option) *Engine {
	e := &Engine{
		cfg:       cfg,
		publisher: publisher,
		runner:    runner,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.collectors = collector.FromConfig(cfg, runner, e.now)
	return e
}

// Config returns the configuration currently in effect.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Collect gathers every reading in order: time, batteries, audio, backlight.
func (e *Engine) Collect(ctx context.Context) (statusline.Line, error) {
	var values [4]string
	for i, c := range e.collectors.Ordered() {
		v, err := c.Read(ctx)
		if err != nil {
			return statusline.Line{}, errors.CollectorFailed(c.Name(), err)
		}
		values[i] = v
	}
	return statusline.Line{
		Time:       values[0],
		Battery:    values[1],
		Volume:     values[2],
		Brightness: values[3],
	}, nil
}

// Tick runs one gather-format-publish cycle.
func (e *Engine) Tick(ctx context.Context) error {
	line, err := e.Collect(ctx)
	if err != nil {
		return err
	}
	text := line.String()
	if err := e.publisher.Publish(text); err != nil {
		return err
	}
	e.logger.WithField("line", text).Debug("Published status line")
	return nil
}

// Run publishes a status line every interval until ctx is cancelled or a
// cycle fails. Cancellation is a normal stop and returns nil.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.WithField("interval", e.cfg.PollInterval()).Info("Starting status loop")

	for {
		if err := e.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			e.logger.WithError(err).Error("Status loop stopped")
			return err
		}

		timer := time.NewTimer(e.cfg.PollInterval())
		select {
		case <-ctx.Done():
			timer.Stop()
			e.logger.Info("Status loop cancelled")
			return nil
		case cfg := <-e.reloads:
			timer.Stop()
			e.apply(cfg)
		case <-timer.C:
		}
	}
}

func (e *Engine) apply(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if e.lookPath != nil {
		if err := command.Preflight(e.lookPath, cfg.RequiredHelpers()); err != nil {
			e.logger.WithError(err).Warn("Ignoring reloaded configuration")
			return
		}
	}

	if r, ok := e.runner.(*command.ExecRunner); ok {
		e.runner = r.WithTimeout(cfg.HelperTimeout())
	}
	e.cfg = cfg
	e.collectors = collector.FromConfig(cfg, e.runner, e.now)

	e.logger.WithFields(logrus.Fields{
		"interval":  cfg.Interval,
		"batteries": cfg.Batteries,
		"backlight": cfg.Backlight.Source,
	}).Info("Applied reloaded configuration")
}
