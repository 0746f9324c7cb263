package main

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config is the CLI configuration, read from the config file,
// LOCALSTORE_* environment variables and flags.
type Config struct {
	Backend  string
	Encoding string
	LogLevel string
	// Options are decoded into the backend's Options struct.
	Options map[string]any
	// Get is passed to localstore.ParseGetOptions.
	Get map[string]any
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", "gomap")
	v.SetDefault("encoding", "json")
	v.SetDefault("log-level", "warn")
}

// readConfig reads the config file at path. Without a path it looks for
// localstore.{yaml,toml,json} in the working directory, which may be missing.
func readConfig(v *viper.Viper, path string) (*Config, error) {
	if len(path) > 0 {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("localstore")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("localstore")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if len(path) > 0 || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		Backend:  v.GetString("backend"),
		Encoding: v.GetString("encoding"),
		LogLevel: v.GetString("log-level"),
		Options:  v.GetStringMap("options"),
		Get:      v.GetStringMap("get"),
	}, nil
}
