// Package config loads the client configuration from an optional
// ~/.llmbeing/config.yaml plus LLMBEING_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds everything the client needs to talk to the API and log.
type Config struct {
	APIURL   string `mapstructure:"api_url"`
	Token    string `mapstructure:"token"`
	PageSize int    `mapstructure:"page_size"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

// DefaultAPIURL is used when no config file or env override is present.
const DefaultAPIURL = "https://api.llmbeing.com/api/v1"

// Dir returns the client's config directory (~/.llmbeing).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config.Dir: %w", err)
	}
	return filepath.Join(home, ".llmbeing"), nil
}

// Load reads configuration. Missing config file is not an error; env
// variables always win over the file.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return load(dir)
}

func load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("llmbeing")
	v.AutomaticEnv()

	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("page_size", 20)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", filepath.Join(dir, "llmbeing.log"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 20
	}
	return &cfg, nil
}
