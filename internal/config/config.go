// Package config manages application configuration from files and environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	OutputDir string `mapstructure:"output_dir"`
	Report    struct {
		JSON bool `mapstructure:"json"`
		Text bool `mapstructure:"text"`
	} `mapstructure:"report"`
	Output struct {
		Format string `mapstructure:"format"`
		Color  bool   `mapstructure:"color"`
	} `mapstructure:"output"`
	Watch struct {
		DebounceMs int `mapstructure:"debounce_ms"`
	} `mapstructure:"watch"`
}

// Load reads the configuration from ~/.xlcompare/config.yaml and
// environment variables prefixed XLC.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(Dir())

	// Defaults
	viper.SetDefault("output_dir", "comparison_results")
	viper.SetDefault("report.json", true)
	viper.SetDefault("report.text", true)
	viper.SetDefault("output.format", "text")
	viper.SetDefault("output.color", true)
	viper.SetDefault("watch.debounce_ms", 500)

	// Environment variable overrides
	viper.SetEnvPrefix("XLC")
	viper.AutomaticEnv()

	// Read config file (non-fatal if missing)
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Dir returns the configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".xlcompare"
	}
	return filepath.Join(home, ".xlcompare")
}

// Path returns the configuration file path.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}
