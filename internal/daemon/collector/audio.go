package collector

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/grovetools/xstatus/command"
	"github.com/grovetools/xstatus/errors"
)

// Positions within `amixer get Master` output.
const (
	mixerLine        = 4
	mixerVolumeToken = 3
	mixerMuteToken   = 5
)

// AudioCollector reports master volume or MUTED.
type AudioCollector struct {
	runner command.Runner
	cmd    string
	args   []string
}

// NewAudioCollector creates an AudioCollector running cmd with args.
func NewAudioCollector(runner command.Runner, cmd string, args []string) *AudioCollector {
	return &AudioCollector{runner: runner, cmd: cmd, args: args}
}

// Name returns the collector's name.
func (c *AudioCollector) Name() string { return "audio" }

// Read runs the mixer and parses its output.
func (c *AudioCollector) Read(ctx context.Context) (string, error) {
	out, err := c.runner.Output(ctx, c.cmd, c.args...)
	if err != nil {
		return "", err
	}
	return ParseMixer(out)
}

// ParseMixer extracts the volume from the fifth line of mixer output.
// A mute flag of "off" yields "MUTED".
func ParseMixer(out []byte) (string, error) {
	if !utf8.Valid(out) {
		return "", errors.Parse("mixer", "output is not valid UTF-8")
	}

	lines := strings.Split(string(out), "\n")
	if len(lines) <= mixerLine {
		return "", errors.Parse("mixer", "too few lines").WithDetail("lines", len(lines))
	}

	tokens := strings.Fields(lines[mixerLine])
	if len(tokens) <= mixerMuteToken {
		return "", errors.Parse("mixer", "too few fields on control line").
			WithDetail("line", lines[mixerLine])
	}

	volume := stripBrackets(tokens[mixerVolumeToken])
	if stripBrackets(tokens[mixerMuteToken]) == "off" {
		return "MUTED", nil
	}
	return volume, nil
}

func stripBrackets(s string) string {
	return strings.NewReplacer("[", "", "]", "").Replace(s)
}
