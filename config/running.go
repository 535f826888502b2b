package config

import (
	"fmt"

	"github.com/blang/semver"
)

type (
	//RunningCfg holds configuration options that are parsed at run time
	RunningCfg struct {
		// ConfigPath is the file the static config was read from, if any
		ConfigPath string
		Version    semver.Version
	}
)

// initRunningConfig uses data in the static config initialize the passed in running config
func initRunningConfig(static *StaticCfg, running *RunningCfg) error {
	if static.Analysis.SinkPort < 0 || static.Analysis.SinkPort > 65535 {
		return fmt.Errorf("invalid sink port %d", static.Analysis.SinkPort)
	}

	var err error
	running.Version, err = semver.ParseTolerant(static.Version)
	return err
}
