package engine

import (
	"context"
	"io"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/grovetools/xstatus/command"
	"github.com/grovetools/xstatus/config"
	"github.com/grovetools/xstatus/errors"
	"github.com/grovetools/xstatus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDisplay struct {
	mu      sync.Mutex
	lines   []string
	closed  bool
	onWrite func(n int)
}

func (d *recordingDisplay) Publish(line string) error {
	d.mu.Lock()
	d.lines = append(d.lines, line)
	n := len(d.lines)
	d.mu.Unlock()
	if d.onWrite != nil {
		d.onWrite(n)
	}
	return nil
}

func (d *recordingDisplay) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *recordingDisplay) Lines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.lines...)
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func fixedNow() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
}

func lookPathAll(string) (string, error) { return "/usr/bin/helper", nil }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.PowerSupplyDir = testutil.CreatePowerSupply(t, map[int][2]string{
		0: {"Discharging", "80"},
		1: {"Charging", "100"},
	})
	cfg.Interval = "10ms"
	return cfg
}

func testRunner() *testutil.FakeRunner {
	return testutil.NewFakeRunner().
		Set("amixer get Master", testutil.AmixerOutput("37%", "on")).
		Set("xbacklight", "42.500000\n")
}

const stockLine = "[V: 37%] [B: 42%] [0: 80% C: 100%] [2024-01-01 00:00:00]"

func TestCollect(t *testing.T) {
	e := New(testConfig(t), testRunner(), nil, testLogger(), WithClock(fixedNow))

	line, err := e.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "37%", line.Volume)
	assert.Equal(t, "42%", line.Brightness)
	assert.Equal(t, "0: 80% C: 100%", line.Battery)
	assert.Equal(t, "2024-01-01 00:00:00", line.Time)
}

func TestCollectOrder(t *testing.T) {
	runner := testRunner()
	e := New(testConfig(t), runner, nil, testLogger(), WithClock(fixedNow))

	_, err := e.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"amixer get Master", "xbacklight"}, runner.Calls())
}

func TestTick(t *testing.T) {
	display := &recordingDisplay{}
	e := New(testConfig(t), testRunner(), display, testLogger(), WithClock(fixedNow))

	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, []string{stockLine}, display.Lines())
}

func TestRunStopsOnCollectorError(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cfg *config.Config, r *testutil.FakeRunner)
		collector string
		cause     errors.ErrorCode
	}{
		{
			name:      "missing battery",
			mutate:    func(cfg *config.Config, _ *testutil.FakeRunner) { cfg.Batteries = []int{0, 7} },
			collector: "battery",
			cause:     errors.ErrCodeSysfsRead,
		},
		{
			name: "short mixer output",
			mutate: func(_ *config.Config, r *testutil.FakeRunner) {
				r.Set("amixer get Master", "Simple mixer control 'Master',0\n")
			},
			collector: "audio",
			cause:     errors.ErrCodeParse,
		},
		{
			name: "backlight failure",
			mutate: func(_ *config.Config, r *testutil.FakeRunner) {
				r.Fail("xbacklight", errors.CommandFailed("xbacklight", exec.ErrNotFound))
			},
			collector: "backlight",
			cause:     errors.ErrCodeCommandFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			runner := testRunner()
			tt.mutate(cfg, runner)
			display := &recordingDisplay{}

			e := New(cfg, runner, display, testLogger(), WithClock(fixedNow))
			err := e.Run(context.Background())

			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeCollectorFailed, errors.GetCode(err))
			assert.True(t, errors.Is(err, tt.cause))
			statusErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.collector, statusErr.Details["collector"])
			assert.Empty(t, display.Lines())
		})
	}
}

func TestRunReturnsNilOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	display := &recordingDisplay{onWrite: func(n int) {
		if n == 3 {
			cancel()
		}
	}}
	e := New(testConfig(t), testRunner(), display, testLogger(), WithClock(fixedNow))

	require.NoError(t, e.Run(ctx))
	assert.Equal(t, []string{stockLine, stockLine, stockLine}, display.Lines())
}

func TestRunAppliesReload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig(t)
	cfg.Interval = "1h"

	reloaded := *cfg
	reloaded.Interval = "10ms"
	reloaded.Batteries = []int{1}
	reloaded.TimeFormat = "15:04"

	reloads := make(chan *config.Config, 1)
	reloads <- &reloaded

	display := &recordingDisplay{onWrite: func(n int) {
		if n == 2 {
			cancel()
		}
	}}
	e := New(cfg, testRunner(), display, testLogger(),
		WithClock(fixedNow), WithReloads(reloads), WithPreflight(lookPathAll))

	require.NoError(t, e.Run(ctx))
	assert.Equal(t, []string{
		stockLine,
		"[V: 37%] [B: 42%] [C: 100%] [00:00]",
	}, display.Lines())
	assert.Equal(t, "10ms", e.Config().Interval)
}

func TestRunIgnoresReloadWithMissingHelper(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig(t)
	cfg.Interval = "1h"

	reloaded := *cfg
	reloaded.Interval = "10ms"
	reloaded.Mixer.Command = "pamixer"

	reloads := make(chan *config.Config, 1)
	reloads <- &reloaded

	lookPath := func(name string) (string, error) {
		if name == "pamixer" {
			return "", exec.ErrNotFound
		}
		return "/usr/bin/" + name, nil
	}

	display := &recordingDisplay{onWrite: func(n int) {
		if n == 1 {
			go func() {
				// Wait for the reload to be consumed, then stop.
				for len(reloads) > 0 {
					time.Sleep(time.Millisecond)
				}
				time.Sleep(10 * time.Millisecond)
				cancel()
			}()
		}
	}}
	e := New(cfg, testRunner(), display, testLogger(),
		WithClock(fixedNow), WithReloads(reloads), WithPreflight(lookPath))

	require.NoError(t, e.Run(ctx))
	assert.Equal(t, "1h", e.Config().Interval)
	require.NotEmpty(t, display.Lines())
	for _, line := range display.Lines() {
		assert.Equal(t, stockLine, line)
	}
}

func TestLaunchMissingHelper(t *testing.T) {
	opened := false
	deps := Deps{
		LookPath: func(name string) (string, error) {
			if name == "xbacklight" {
				return "", exec.ErrNotFound
			}
			return "/usr/bin/" + name, nil
		},
		Open: func(string) (Display, error) {
			opened = true
			return &recordingDisplay{}, nil
		},
		Runner: testRunner(),
		Logger: testLogger(),
	}

	err := Launch(context.Background(), testConfig(t), deps)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeHelperMissing, errors.GetCode(err))
	statusErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "`xbacklight` and `amixer` commands are required", statusErr.Message)
	assert.False(t, opened)
}

func TestLaunchDisplayUnavailable(t *testing.T) {
	deps := Deps{
		LookPath: lookPathAll,
		Open: func(name string) (Display, error) {
			return nil, errors.DisplayUnavailable(name)
		},
		Runner: testRunner(),
		Logger: testLogger(),
	}

	err := Launch(context.Background(), testConfig(t), deps)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDisplayUnavailable, errors.GetCode(err))
}

func TestLaunchClosesDisplay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	display := &recordingDisplay{onWrite: func(int) { cancel() }}
	var openedName string
	deps := Deps{
		LookPath: lookPathAll,
		Open: func(name string) (Display, error) {
			openedName = name
			return display, nil
		},
		Runner: testRunner(),
		Logger: testLogger(),
		Now:    fixedNow,
	}

	cfg := testConfig(t)
	cfg.Display = ":1"
	require.NoError(t, Launch(ctx, cfg, deps))
	assert.Equal(t, ":1", openedName)
	assert.Equal(t, []string{stockLine}, display.Lines())
	assert.True(t, display.closed)
}

func TestLaunchClosesDisplayOnError(t *testing.T) {
	display := &recordingDisplay{}
	cfg := testConfig(t)
	cfg.Batteries = []int{9}

	deps := Deps{
		LookPath: lookPathAll,
		Open:     func(string) (Display, error) { return display, nil },
		Runner:   testRunner(),
		Logger:   testLogger(),
	}

	err := Launch(context.Background(), cfg, deps)
	require.Error(t, err)
	assert.True(t, display.closed)
	assert.Empty(t, display.Lines())
}

var _ command.Runner = (*testutil.FakeRunner)(nil)
