package config

import (
	"path/filepath"
	"reflect"

	yaml "gopkg.in/yaml.v2"
)

type (
	//StaticCfg is the container for other static config sections
	StaticCfg struct {
		Log          LogStaticCfg      `yaml:"LogConfig"`
		Input        InputStaticCfg    `yaml:"Input"`
		Analysis     AnalysisStaticCfg `yaml:"Analysis"`
		Output       OutputStaticCfg   `yaml:"Output"`
		Version      string            `yaml:"Version"`
		ExactVersion string            `yaml:"ExactVersion"`
	}

	//LogStaticCfg contains the configuration for logging
	LogStaticCfg struct {
		LogLevel    int    `yaml:"LogLevel" default:"2"`
		LogPath     string `yaml:"LogPath" default:"$HOME/.flowmon/logs"`
		LogToFile   bool   `yaml:"LogToFile" default:"false"`
		LogToStderr bool   `yaml:"LogToStderr" default:"false"`
	}

	//InputStaticCfg controls how FlowMonitor files are discovered
	InputStaticCfg struct {
		Pattern string `yaml:"Pattern" default:"final-*-nodes.xml"`
	}

	//AnalysisStaticCfg controls the flow metrics extraction
	AnalysisStaticCfg struct {
		// SinkPort is the destination port which marks client to server flows
		SinkPort int `yaml:"SinkPort" default:"9"`
	}

	//OutputStaticCfg names the generated artifacts
	OutputStaticCfg struct {
		ChartFile   string  `yaml:"ChartFile" default:"network_analysis_results.png"`
		CSVFile     string  `yaml:"CSVFile" default:"analysis_results.csv"`
		HTMLDir     string  `yaml:"HTMLDir"`
		MetricsFile string  `yaml:"MetricsFile"`
		ChartTitle  string  `yaml:"ChartTitle" default:"Ad-hoc network performance (RTS/CTS disabled)"`
		ChartWidth  float64 `yaml:"ChartWidth" default:"14"`
		ChartHeight float64 `yaml:"ChartHeight" default:"10"`
		ChartDPI    int     `yaml:"ChartDPI" default:"300"`
	}
)

// parseStaticConfig parses the yaml contents of a config file on top of
// the values already held by config
func parseStaticConfig(cfgFile []byte, config *StaticCfg) error {
	err := yaml.Unmarshal(cfgFile, config)
	if err != nil {
		return err
	}

	// expand env variables, config is a pointer
	// so we have to call elem on the reflect value
	expandConfig(reflect.ValueOf(config).Elem())

	// clean all filepaths
	config.Log.LogPath = cleanPath(config.Log.LogPath)
	config.Output.ChartFile = cleanPath(config.Output.ChartFile)
	config.Output.CSVFile = cleanPath(config.Output.CSVFile)
	config.Output.HTMLDir = cleanPath(config.Output.HTMLDir)
	config.Output.MetricsFile = cleanPath(config.Output.MetricsFile)

	return nil
}

// cleanPath cleans non empty paths, filepath.Clean would turn "" into "."
func cleanPath(path string) string {
	if path == "" {
		return path
	}
	return filepath.Clean(path)
}
