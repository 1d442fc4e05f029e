package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/xstatus/cli"
	"github.com/grovetools/xstatus/command"
	"github.com/grovetools/xstatus/config"
	"github.com/grovetools/xstatus/internal/daemon/engine"
	"github.com/spf13/cobra"
)

// NewOnceCmd returns the command printing a single status line.
func NewOnceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Print one status line to stdout",
		Long: `Collect every reading once and print the status line without
touching the X display.

Examples:
  xstatus once
  xstatus once --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			logger := cli.GetLogger(cmd, "xstatus-cli")

			cfg, _, err := config.Resolve(opts.ConfigFile, logger)
			if err != nil {
				return err
			}
			return runOnce(cmd, cfg, command.DefaultLookPath, command.NewExecRunner(cfg.HelperTimeout()))
		},
	}
}

func runOnce(cmd *cobra.Command, cfg *config.Config, lookPath command.LookPathFunc, runner command.Runner) error {
	if err := command.Preflight(lookPath, cfg.RequiredHelpers()); err != nil {
		return err
	}

	logger := cli.GetLogger(cmd, "xstatus-cli")
	line, err := engine.New(cfg, runner, nil, logger).Collect(cmd.Context())
	if err != nil {
		return err
	}

	if cli.GetOptions(cmd).JSONOutput {
		data, err := json.MarshalIndent(line, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), line.String())
	return nil
}
