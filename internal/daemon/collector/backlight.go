package collector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/grovetools/xstatus/command"
	"github.com/grovetools/xstatus/errors"
)

// BacklightCollector reports brightness from the backlight helper.
type BacklightCollector struct {
	runner command.Runner
	cmd    string
	args   []string
}

// NewBacklightCollector creates a BacklightCollector running cmd with args.
func NewBacklightCollector(runner command.Runner, cmd string, args []string) *BacklightCollector {
	return &BacklightCollector{runner: runner, cmd: cmd, args: args}
}

// Name returns the collector's name.
func (c *BacklightCollector) Name() string { return "backlight" }

// Read runs the helper and parses its output.
func (c *BacklightCollector) Read(ctx context.Context) (string, error) {
	out, err := c.runner.Output(ctx, c.cmd, c.args...)
	if err != nil {
		return "", err
	}
	return ParseBacklight(out)
}

// ParseBacklight keeps the integer part of the helper's output: "42.500000\n" is "42%".
func ParseBacklight(out []byte) (string, error) {
	if !utf8.Valid(out) {
		return "", errors.Parse("backlight", "output is not valid UTF-8")
	}
	s := string(out)
	if strings.TrimSpace(s) == "" {
		return "", errors.Parse("backlight", "empty output")
	}
	whole, _, _ := strings.Cut(s, ".")
	return strings.TrimSpace(whole) + "%", nil
}

// SysfsBacklightCollector reads the first device under the backlight class directory.
type SysfsBacklightCollector struct {
	dir string
}

// NewSysfsBacklightCollector creates a collector over dir, usually /sys/class/backlight.
func NewSysfsBacklightCollector(dir string) *SysfsBacklightCollector {
	return &SysfsBacklightCollector{dir: dir}
}

// Name returns the collector's name.
func (c *SysfsBacklightCollector) Name() string { return "backlight" }

// Read returns brightness as a whole percentage of max_brightness.
func (c *SysfsBacklightCollector) Read(ctx context.Context) (string, error) {
	device, err := c.discover()
	if err != nil {
		return "", err
	}

	brightness, err := readSysfsInt(filepath.Join(device, "brightness"))
	if err != nil {
		return "", err
	}
	maxBrightness, err := readSysfsInt(filepath.Join(device, "max_brightness"))
	if err != nil {
		return "", err
	}
	if maxBrightness <= 0 {
		return "", errors.Parse("backlight", fmt.Sprintf("invalid max_brightness %d", maxBrightness)).
			WithDetail("device", device)
	}
	return fmt.Sprintf("%d%%", brightness*100/maxBrightness), nil
}

func (c *SysfsBacklightCollector) discover() (string, error) {
	entries, _ := filepath.Glob(filepath.Join(c.dir, "*"))
	for _, d := range entries {
		if _, err := os.Stat(filepath.Join(d, "brightness")); err != nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(d, "max_brightness")); err != nil {
			continue
		}
		return d, nil
	}
	return "", errors.SysfsRead(c.dir, os.ErrNotExist).
		WithDetail("reason", "no device with brightness and max_brightness")
}

func readSysfsInt(path string) (int64, error) {
	s, err := readSysfs(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Parse("backlight", fmt.Sprintf("%s is not an integer", path)).
			WithDetail("path", path)
	}
	return v, nil
}
