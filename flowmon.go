package main

import (
	"os"

	"github.com/activecm/flowmon/commands"
	"github.com/activecm/flowmon/config"
	"github.com/urfave/cli"
)

// Entry point of flowmon
func main() {
	app := cli.NewApp()
	app.Name = "flowmon"
	app.Usage = "Summarize ad-hoc network simulation FlowMonitor results."

	// Change the version string with updates so that a quick help command will
	// let the testers know what version of flowmon they're on
	app.Version = config.Version

	// Define commands used with this application
	app.Commands = commands.Commands()

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
