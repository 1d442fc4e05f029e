package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/grovetools/xstatus/errors"
)

// Helper names are run directly, never through a shell.
var helperNameRegex = regexp.MustCompile(`^[A-Za-z0-9_./+-]+$`)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validateDuration("interval", c.Interval, false); err != nil {
		return err
	}
	if c.CommandTimeout != "0" {
		if err := validateDuration("command_timeout", c.CommandTimeout, true); err != nil {
			return err
		}
	}

	if c.TimeFormat == "" {
		return errors.New(errors.ErrCodeConfigValidation, "time_format cannot be empty")
	}

	if len(c.Batteries) == 0 {
		return errors.New(errors.ErrCodeConfigValidation, "batteries must list at least one unit id")
	}
	seen := make(map[int]bool, len(c.Batteries))
	for _, id := range c.Batteries {
		if id < 0 {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("invalid battery id %d", id)).
				WithDetail("battery", id)
		}
		if seen[id] {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("battery id %d listed twice", id)).
				WithDetail("battery", id)
		}
		seen[id] = true
	}

	if err := validateHelperName("mixer.command", c.Mixer.Command); err != nil {
		return err
	}

	switch c.Backlight.Source {
	case BacklightSourceCommand:
		if err := validateHelperName("backlight.command", c.Backlight.Command); err != nil {
			return err
		}
	case BacklightSourceSysfs:
		if c.Backlight.SysfsDir == "" {
			return errors.New(errors.ErrCodeConfigValidation, "backlight.sysfs_dir cannot be empty when source is sysfs")
		}
	default:
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("invalid backlight.source '%s' (must be command or sysfs)", c.Backlight.Source)).
			WithDetail("source", c.Backlight.Source)
	}

	return nil
}

func validateDuration(field, value string, allowZero bool) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, fmt.Sprintf("%s is not a valid duration: %q", field, value)).
			WithDetail("field", field)
	}
	if d < 0 || (d == 0 && !allowZero) {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("%s must be positive, got %s", field, value)).
			WithDetail("field", field)
	}
	return nil
}

func validateHelperName(field, name string) error {
	if name == "" {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("%s cannot be empty", field))
	}
	if !helperNameRegex.MatchString(name) {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("%s contains invalid characters: %s", field, name)).
			WithDetail("field", field).
			WithDetail("name", name)
	}
	return nil
}
