package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"reflect"

	"github.com/creasty/defaults"
)

//Version is filled at compile time with the git version of flowmon
var Version = "v0.0.0+dev"

//ExactVersion is filled at compile time with the git commit of flowmon
var ExactVersion = "undefined"

const (
	userConfigPath   = ".flowmon/config.yaml"
	globalConfigPath = "/etc/flowmon/config.yaml"
)

type (
	//Config holds the configuration for the running system
	Config struct {
		R RunningCfg
		S StaticCfg
	}
)

// LoadConfig retrieves a configuration in order of precedence: the given
// path, the user's ~/.flowmon/config.yaml, then /etc/flowmon/config.yaml.
// A given path must exist; when no config file is found at all the built
// in defaults are used.
func LoadConfig(cfgPath string) (*Config, error) {
	config := &Config{}

	path, err := findConfigFile(cfgPath)
	if err != nil {
		return nil, err
	}

	config.S, err = loadStaticConfig(path)
	if err != nil {
		return nil, err
	}

	// grab the version constants set by the build process
	config.S.Version = Version
	config.S.ExactVersion = ExactVersion

	config.R.ConfigPath = path
	if err := initRunningConfig(&config.S, &config.R); err != nil {
		return nil, err
	}
	return config, nil
}

// loadStaticConfig layers the config file at path over the default values.
// With an empty path only the defaults are used, but they are expanded and
// cleaned the same way as values read from a file.
func loadStaticConfig(path string) (StaticCfg, error) {
	var static StaticCfg

	// Initialize static config to the default values
	if err := defaults.Set(&static); err != nil {
		return static, err
	}

	var cfgFile []byte
	source := "built-in defaults"
	if path != "" {
		var err error
		cfgFile, err = os.ReadFile(path)
		if err != nil {
			return static, err
		}
		source = path
	}

	if err := parseStaticConfig(cfgFile, &static); err != nil {
		return static, fmt.Errorf("failed to read config %s: %w", source, err)
	}
	return static, nil
}

// findConfigFile returns the first config file which exists, or "" when
// neither the user nor the global config is present
func findConfigFile(cfgPath string) (string, error) {
	if cfgPath != "" {
		if _, err := os.Stat(cfgPath); err != nil {
			return "", err
		}
		return cfgPath, nil
	}

	candidates := []string{globalConfigPath}
	if u, err := user.Current(); err == nil {
		candidates = append([]string{filepath.Join(u.HomeDir, userConfigPath)}, candidates...)
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// expandConfig expands environment variables in config strings
func expandConfig(reflected reflect.Value) {
	for i := 0; i < reflected.NumField(); i++ {
		f := reflected.Field(i)
		// process sub configs
		if f.Kind() == reflect.Struct {
			expandConfig(f)
		} else if f.Kind() == reflect.String {
			f.SetString(os.ExpandEnv(f.String()))
		} else if f.Kind() == reflect.Slice && f.Type().Elem().Kind() == reflect.String {
			strs := f.Interface().([]string)
			for i, str := range strs {
				strs[i] = os.ExpandEnv(str)
			}
			f.Set(reflect.ValueOf(strs))
		}
	}
}
