// Package config loads flowdeck configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Workflow WorkflowConfig
	Env      EnvConfig
	UI       UIConfig
	Log      LogConfig
}

// WorkflowConfig selects the workflow source: a YAML definition file
// takes precedence over the sqlite database when both are set.
type WorkflowConfig struct {
	File         string
	DatabasePath string `mapstructure:"database_path"`
}

// EnvConfig holds the environment gates the settings menu filters on.
type EnvConfig struct {
	DevMode bool `mapstructure:"dev_mode"`
	Team    bool
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Placeholder string
}

// LogConfig holds debug log settings. Logging is off unless a path is set.
type LogConfig struct {
	Path  string
	Level string
}

// Load reads configuration from file and env. Env var overrides use
// prefix FLOWDECK_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("workflow.file", "")
	v.SetDefault("workflow.database_path", filepath.Join(os.Getenv("HOME"), ".local", "share", "flowdeck", "flowdeck.db"))
	v.SetDefault("env.dev_mode", false)
	v.SetDefault("env.team", false)
	v.SetDefault("ui.placeholder", "Select output")
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FLOWDECK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "flowdeck"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FLOWDECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
