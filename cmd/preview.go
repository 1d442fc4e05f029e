package cmd

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/xstatus/cli"
	"github.com/grovetools/xstatus/command"
	"github.com/grovetools/xstatus/config"
	"github.com/grovetools/xstatus/internal/daemon/engine"
	"github.com/grovetools/xstatus/logging"
	"github.com/grovetools/xstatus/tui/preview"
	"github.com/spf13/cobra"
)

// NewPreviewCmd returns the live terminal preview command.
func NewPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show the live status line in the terminal",
		Long:  "Refresh the status line every interval in a terminal view. Press q to quit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			logger := cli.GetLogger(cmd, "xstatus-preview")

			cfg, _, err := config.Resolve(opts.ConfigFile, logger)
			if err != nil {
				return err
			}
			if err := command.Preflight(command.DefaultLookPath, cfg.RequiredHelpers()); err != nil {
				return err
			}

			e := engine.New(cfg, command.NewExecRunner(cfg.HelperTimeout()), nil, logger)
			model := preview.New(cmd.Context(), e, cfg.PollInterval())

			var final tea.Model
			err = withMutedLogs(func() error {
				var runErr error
				final, runErr = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
				return runErr
			})
			if err != nil {
				return err
			}
			if m, ok := final.(preview.Model); ok {
				return m.Err()
			}
			return nil
		},
	}
}

// withMutedLogs discards stderr log output while fn owns the terminal.
func withMutedLogs(fn func() error) error {
	prev := logging.SetGlobalOutput(io.Discard)
	defer logging.SetGlobalOutput(prev)
	return fn()
}
