// Package config loads the embeddable store's configuration via viper,
// following the same layered defaults/env/file precedence as the
// originating server config.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the embedded dictionary engine.
type Config struct {
	Store StoreConfig `mapstructure:"store"`
	Log   LogConfig   `mapstructure:"log"`
}

// StoreConfig holds the embedded store location.
type StoreConfig struct {
	// Path is the sqlite database file. "file::memory:?cache=shared" is
	// accepted for in-process, ephemeral stores.
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	if err := bindEnvAliases(); err != nil {
		return nil, fmt.Errorf("bind env aliases: %w", err)
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if strings.TrimSpace(cfg.Store.Path) == "" {
		return nil, fmt.Errorf("store path is required")
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("store.path", "./data/yomidict.db")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

func bindEnvAliases() error {
	bindings := map[string][]string{
		"store.path": {"YOMIDICT_STORE_PATH", "YOMIDICT_DB"},
		"log.level":  {"YOMIDICT_LOG_LEVEL"},
	}

	for key, envs := range bindings {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			return err
		}
	}
	return nil
}
