package main

import (
	"os"

	"github.com/grovetools/xstatus/cli"
	"github.com/grovetools/xstatus/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	executed, err := rootCmd.ExecuteC()
	if err != nil {
		if executed == nil {
			executed = rootCmd
		}
		cli.NewErrorHandler(cli.GetOptions(executed).Verbose).Handle(err)
	}
	os.Exit(cli.ExitCode(err))
}
