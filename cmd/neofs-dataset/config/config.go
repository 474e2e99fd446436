package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents a group of named values structured
// by tree type.
//
// Sub-trees are named configuration sub-sections,
// leaves are named configuration values.
// Names are of string type.
type Config struct {
	v *viper.Viper

	path []string
}

const separator = "."

// EnvPrefix is a prefix of ENV variables related to the tool
// configuration.
const EnvPrefix = "neofs_dataset"

// EnvSeparator is a section separator in ENV variables.
const EnvSeparator = "_"

// New creates a new Config instance. Values are read from the file if
// the path is not empty, and from NEOFS_DATASET_* environment variables.
// File format is selected by the extension.
func New(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(separator, EnvSeparator))

	if path != "" {
		v.SetConfigFile(path)

		err := v.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return &Config{
		v: v,
	}, nil
}

// BindFlag makes the command line flag override the configuration value with
// the given name of the current section if the flag is set.
func (x *Config) BindFlag(name string, f *pflag.Flag) error {
	if f == nil {
		return fmt.Errorf("missing flag for %s", name)
	}

	return x.v.BindPFlag(x.key(name), f)
}

func (x *Config) key(name string) string {
	return strings.Join(append(x.path[:len(x.path):len(x.path)], name), separator)
}
