// Package cmd holds the xstatus subcommands.
package cmd

import (
	"github.com/grovetools/xstatus/cli"
	"github.com/grovetools/xstatus/version"
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the xstatus command tree. The bare command runs the
// status loop.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"xstatus",
		"Publish battery, volume, backlight and time to the X root window name",
	)
	root.Long = `xstatus polls battery charge, mixer volume, screen backlight and the
local time once per interval and stores the result as the name of the
X root window, where dwm and similar window managers display it.

Examples:
  # Run the status loop in the foreground
  xstatus

  # Print one status line without touching X
  xstatus once

  # Check that the helper commands and batteries are present
  xstatus check`
	root.RunE = runDaemon
	addRunFlags(root)

	root.AddCommand(NewRunCmd())
	root.AddCommand(NewOnceCmd())
	root.AddCommand(NewCheckCmd())
	root.AddCommand(NewPreviewCmd())
	root.AddCommand(NewConfigCmd())
	root.AddCommand(NewLogsCmd())
	root.AddCommand(NewStopCmd())
	root.AddCommand(cli.NewVersionCommand("xstatus"))

	cli.SetVersionTemplate(root, version.GetInfo())
	cli.ApplyStyledHelpRecursive(root)

	return root
}
