// Package testutil provides sysfs fixtures and helper fakes for tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// AmixerOutput returns `amixer get Master` output whose control line carries
// the given volume and mute flag.
func AmixerOutput(volume, flag string) string {
	return "Simple mixer control 'Master',0\n" +
		"  Capabilities: pvolume pvolume-joined pswitch pswitch-joined\n" +
		"  Playback channels: Mono\n" +
		"  Limits: Playback 0 - 87\n" +
		fmt.Sprintf("  Mono: Playback 32 [%s] [-41.25dB] [%s]\n", volume, flag)
}

// CreatePowerSupply creates a fake power supply class directory and returns it.
// Each unit is keyed by id with its status and capacity contents.
func CreatePowerSupply(t *testing.T, units map[int][2]string) string {
	t.Helper()

	dir := t.TempDir()
	for id, u := range units {
		unit := filepath.Join(dir, fmt.Sprintf("BAT%d", id))
		require.NoError(t, os.MkdirAll(unit, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(unit, "status"), []byte(u[0]+"\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(unit, "capacity"), []byte(u[1]+"\n"), 0o600))
	}
	return dir
}

// CreateBacklight creates a fake backlight class directory with one device.
func CreateBacklight(t *testing.T, device string, brightness, maxBrightness int) string {
	t.Helper()

	dir := t.TempDir()
	dev := filepath.Join(dir, device)
	require.NoError(t, os.MkdirAll(dev, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dev, "brightness"), []byte(fmt.Sprintf("%d\n", brightness)), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dev, "max_brightness"), []byte(fmt.Sprintf("%d\n", maxBrightness)), 0o600))
	return dir
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// FakeRunner answers helper invocations from a table keyed by the command line.
type FakeRunner struct {
	mu      sync.Mutex
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		outputs: make(map[string]string),
		errs:    make(map[string]error),
	}
}

// Set registers the output for a command line such as "amixer get Master".
func (f *FakeRunner) Set(cmdline, output string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outputs[cmdline] = output
	delete(f.errs, cmdline)
	return f
}

// Fail registers an error for a command line.
func (f *FakeRunner) Fail(cmdline string, err error) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[cmdline] = err
	return f
}

// Output implements command.Runner.
func (f *FakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmdline := strings.TrimSpace(name + " " + strings.Join(args, " "))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmdline)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.errs[cmdline]; ok {
		return nil, err
	}
	out, ok := f.outputs[cmdline]
	if !ok {
		return nil, fmt.Errorf("unexpected command: %s", cmdline)
	}
	return []byte(out), nil
}

// Calls returns the command lines run so far.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
