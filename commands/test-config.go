package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/activecm/flowmon/config"
	"github.com/urfave/cli"
	yaml "gopkg.in/yaml.v2"
)

func init() {
	command := cli.Command{
		Flags: []cli.Flag{
			configFlag,
		},
		Name:   "test-config",
		Usage:  "Check the configuration file for validity",
		Action: testConfiguration,
	}

	bootstrapCommands(command)
}

// testConfiguration prints out the result of parsing the config file
func testConfiguration(c *cli.Context) error {
	conf, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("Failed to config: %s", err.Error()), -1)
	}

	if err := printConfig(os.Stdout, conf); err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	// Then test initializing the log hooks
	if _, err := initResources(c); err != nil {
		return err
	}
	return nil
}

func printConfig(w io.Writer, conf *config.Config) error {
	staticConfig, err := yaml.Marshal(conf.S)
	if err != nil {
		return err
	}

	source := conf.R.ConfigPath
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Fprintf(w, "# loaded from %s\n", source)
	fmt.Fprintf(w, "\n%s\n", string(staticConfig))
	return nil
}
