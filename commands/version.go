package commands

import (
	"fmt"

	"github.com/activecm/flowmon/config"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:   "version",
		Usage:  "Show flowmon version",
		Action: showVersion,
		Flags: []cli.Flag{
			configFlag,
		},
	}

	bootstrapCommands(command)
}

func showVersion(c *cli.Context) error {
	conf, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("Failed to config: %s", err.Error()), -1)
	}
	fmt.Printf("%s (%s)\n", conf.R.Version.String(), conf.S.ExactVersion)
	return nil
}
