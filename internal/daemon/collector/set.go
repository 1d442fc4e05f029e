package collector

import (
	"time"

	"github.com/grovetools/xstatus/command"
	"github.com/grovetools/xstatus/config"
)

// FromConfig builds the collector set described by cfg.
func FromConfig(cfg *config.Config, runner command.Runner, now func() time.Time) Set {
	var backlight Collector
	if cfg.Backlight.Source == config.BacklightSourceSysfs {
		backlight = NewSysfsBacklightCollector(cfg.Backlight.SysfsDir)
	} else {
		backlight = NewBacklightCollector(runner, cfg.Backlight.Command, cfg.Backlight.Args)
	}

	return Set{
		Time:      NewClockCollector(cfg.TimeFormat, now),
		Battery:   NewBatteryCollector(cfg.PowerSupplyDir, cfg.Batteries),
		Audio:     NewAudioCollector(runner, cfg.Mixer.Command, cfg.Mixer.Args),
		Backlight: backlight,
	}
}
