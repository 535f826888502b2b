package commands

import (
	"fmt"

	"github.com/activecm/flowmon/resources"
	"github.com/urfave/cli"
)

var (
	allCommands []cli.Command

	// below are some prebuilt flags that get used often in various commands

	// configFlag allows users to specify an alternate config file to use
	configFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "load configuration from `FILE`",
		Value: "",
	}

	// humanFlag prints aligned tables instead of CSV
	humanFlag = cli.BoolFlag{
		Name:  "human-readable, H",
		Usage: "print a report instead of csv",
	}

	// patternFlag overrides the configured input glob
	patternFlag = cli.StringFlag{
		Name:  "pattern, p",
		Usage: "analyze the FlowMonitor files matching `GLOB` instead of the configured pattern",
		Value: "",
	}

	// sinkPortFlag overrides the configured server port of client flows
	sinkPortFlag = cli.IntFlag{
		Name:  "sink-port",
		Usage: "count flows towards `PORT` as client flows (default from config)",
		Value: -1,
	}

	// jsonFlag prints JSON documents instead of CSV
	jsonFlag = cli.BoolFlag{
		Name:  "json",
		Usage: "print results as JSON",
	}
)

// bootstrapCommands simply adds a given command to the allCommands array
func bootstrapCommands(commands ...cli.Command) {
	allCommands = append(allCommands, commands...)
}

// Commands provides all of the defined commands to the front end
func Commands() []cli.Command {
	return allCommands
}

// initResources loads the resources named by the config flag, reporting
// failures the way every command exits
func initResources(c *cli.Context) (*resources.Resources, error) {
	res, err := resources.InitResources(c.String("config"))
	if err != nil {
		return nil, cli.NewExitError(fmt.Sprintf("Failed to config: %s", err.Error()), -1)
	}
	return res, nil
}

// inputPattern prefers the pattern flag over the configured pattern
func inputPattern(c *cli.Context, res *resources.Resources) string {
	if c.String("pattern") != "" {
		return c.String("pattern")
	}
	return res.Config.S.Input.Pattern
}

// sinkPort prefers the sink-port flag over the configured port
func sinkPort(c *cli.Context, res *resources.Resources) (int, error) {
	port := c.Int("sink-port")
	if port < 0 {
		return res.Config.S.Analysis.SinkPort, nil
	}
	if port > 65535 {
		return 0, cli.NewExitError(fmt.Sprintf("invalid sink port %d", port), -1)
	}
	return port, nil
}
