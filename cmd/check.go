package cmd

import (
	"fmt"
	"os"

	"github.com/grovetools/xstatus/cli"
	"github.com/grovetools/xstatus/command"
	"github.com/grovetools/xstatus/config"
	"github.com/grovetools/xstatus/internal/daemon/collector"
	"github.com/grovetools/xstatus/internal/daemon/pidfile"
	"github.com/grovetools/xstatus/logging"
	"github.com/grovetools/xstatus/pkg/paths"
	"github.com/spf13/cobra"
)

// NewCheckCmd returns the environment report command.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report helper, battery and backlight availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			cfg, cfgPath, err := config.Resolve(opts.ConfigFile, cli.GetLogger(cmd, "xstatus-cli"))
			if err != nil {
				return err
			}
			return runCheck(cmd, cfg, cfgPath, command.DefaultLookPath)
		},
	}
}

func runCheck(cmd *cobra.Command, cfg *config.Config, cfgPath string, lookPath command.LookPathFunc) error {
	pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())

	if cfgPath == "" {
		pretty.Field("config", "(built-in defaults)")
	} else {
		pretty.Path("config", cfgPath)
	}

	display := cfg.Display
	if display == "" {
		display = os.Getenv("DISPLAY")
	}
	if display == "" {
		pretty.WarnPretty("DISPLAY is not set")
	} else {
		pretty.Field("display", display)
	}

	for _, helper := range cfg.RequiredHelpers() {
		if path, err := lookPath(helper); err == nil {
			pretty.Success(fmt.Sprintf("%s: %s", helper, path))
		} else {
			pretty.ErrorPretty(helper+" not found", nil)
		}
	}

	for _, id := range cfg.Batteries {
		if reading, err := collector.ReadBattery(cfg.PowerSupplyDir, id); err == nil {
			pretty.Success(fmt.Sprintf("BAT%d: %s", id, reading))
		} else {
			pretty.WarnPretty(fmt.Sprintf("BAT%d unreadable: %v", id, err))
		}
	}

	if cfg.Backlight.Source == config.BacklightSourceSysfs {
		if reading, err := collector.NewSysfsBacklightCollector(cfg.Backlight.SysfsDir).Read(cmd.Context()); err == nil {
			pretty.Success("backlight: " + reading)
		} else {
			pretty.WarnPretty(fmt.Sprintf("backlight unreadable: %v", err))
		}
	}

	if running, pid, err := pidfile.IsRunning(paths.PidFilePath()); err == nil && running {
		pretty.Field("running", fmt.Sprintf("PID %d", pid))
	}

	return command.Preflight(lookPath, cfg.RequiredHelpers())
}
