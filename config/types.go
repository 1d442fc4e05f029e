package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

const (
	// BacklightSourceCommand reads brightness from the backlight helper command.
	BacklightSourceCommand = "command"
	// BacklightSourceSysfs reads brightness from /sys/class/backlight.
	BacklightSourceSysfs = "sysfs"
)

// Defaults reproduce the stock ThinkPad T480 status line.
const (
	DefaultInterval         = "1s"
	DefaultTimeFormat       = "2006-01-02 15:04:05"
	DefaultPowerSupplyDir   = "/sys/class/power_supply"
	DefaultBacklightSysfs   = "/sys/class/backlight"
	DefaultMixerCommand     = "amixer"
	DefaultBacklightCommand = "xbacklight"
)

// MixerConfig describes the audio mixer helper.
type MixerConfig struct {
	Command string   `yaml:"command,omitempty" toml:"command,omitempty" json:"command,omitempty" jsonschema:"description=Mixer executable (default: amixer)"`
	Args    []string `yaml:"args,omitempty" toml:"args,omitempty" json:"args,omitempty" jsonschema:"description=Arguments passed to the mixer (default: get Master)"`
}

// BacklightConfig describes where screen brightness is read from.
type BacklightConfig struct {
	Source   string   `yaml:"source,omitempty" toml:"source,omitempty" json:"source,omitempty" jsonschema:"description=Brightness source: command or sysfs,enum=command,enum=sysfs"`
	Command  string   `yaml:"command,omitempty" toml:"command,omitempty" json:"command,omitempty" jsonschema:"description=Backlight executable used when source is command (default: xbacklight)"`
	Args     []string `yaml:"args,omitempty" toml:"args,omitempty" json:"args,omitempty" jsonschema:"description=Arguments passed to the backlight command"`
	SysfsDir string   `yaml:"sysfs_dir,omitempty" toml:"sysfs_dir,omitempty" json:"sysfs_dir,omitempty" jsonschema:"description=Backlight class directory used when source is sysfs"`
}

// Config is the xstatus configuration. Every field is optional; SetDefaults
// fills in the values of the stock status line.
type Config struct {
	Interval       string          `yaml:"interval,omitempty" toml:"interval,omitempty" json:"interval,omitempty" jsonschema:"description=Delay between status updates as a Go duration (default: 1s)"`
	Display        string          `yaml:"display,omitempty" toml:"display,omitempty" json:"display,omitempty" jsonschema:"description=X display name; empty uses $DISPLAY"`
	CommandTimeout string          `yaml:"command_timeout,omitempty" toml:"command_timeout,omitempty" json:"command_timeout,omitempty" jsonschema:"description=Upper bound for a helper command run; 0 waits forever"`
	TimeFormat     string          `yaml:"time_format,omitempty" toml:"time_format,omitempty" json:"time_format,omitempty" jsonschema:"description=Go time layout for the clock reading"`
	PowerSupplyDir string          `yaml:"power_supply_dir,omitempty" toml:"power_supply_dir,omitempty" json:"power_supply_dir,omitempty" jsonschema:"description=Power supply class directory holding BAT<id> entries"`
	Batteries      []int           `yaml:"batteries,omitempty" toml:"batteries,omitempty" json:"batteries,omitempty" jsonschema:"description=Battery unit ids read in order (default: 0 and 1)"`
	Mixer          MixerConfig     `yaml:"mixer,omitempty" toml:"mixer,omitempty" json:"mixer,omitempty" jsonschema:"description=Audio mixer helper"`
	Backlight      BacklightConfig `yaml:"backlight,omitempty" toml:"backlight,omitempty" json:"backlight,omitempty" jsonschema:"description=Screen brightness source"`

	// Extensions captures all other top-level keys, such as logging.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills every unset field.
func (c *Config) SetDefaults() {
	if c.Interval == "" {
		c.Interval = DefaultInterval
	}
	if c.CommandTimeout == "" {
		c.CommandTimeout = "0"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = DefaultTimeFormat
	}
	if c.PowerSupplyDir == "" {
		c.PowerSupplyDir = DefaultPowerSupplyDir
	}
	if c.Batteries == nil {
		c.Batteries = []int{0, 1}
	}
	if c.Mixer.Command == "" {
		c.Mixer.Command = DefaultMixerCommand
	}
	if c.Mixer.Args == nil && filepath.Base(c.Mixer.Command) == DefaultMixerCommand {
		c.Mixer.Args = []string{"get", "Master"}
	}
	if c.Backlight.Source == "" {
		c.Backlight.Source = BacklightSourceCommand
	}
	if c.Backlight.Command == "" {
		c.Backlight.Command = DefaultBacklightCommand
	}
	if c.Backlight.SysfsDir == "" {
		c.Backlight.SysfsDir = DefaultBacklightSysfs
	}
}

// PollInterval returns the parsed update interval.
func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Interval)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// HelperTimeout returns the parsed helper timeout; zero means no timeout.
func (c *Config) HelperTimeout() time.Duration {
	if c.CommandTimeout == "" || c.CommandTimeout == "0" {
		return 0
	}
	d, err := time.ParseDuration(c.CommandTimeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// RequiredHelpers lists the helper commands that must be on PATH before
// the status loop starts.
func (c *Config) RequiredHelpers() []string {
	var helpers []string
	if c.Backlight.Source == BacklightSourceCommand {
		helpers = append(helpers, c.Backlight.Command)
	}
	return append(helpers, c.Mixer.Command)
}

// UnmarshalExtension decodes a specific extension's configuration into a target struct.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// A missing key leaves the target zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
