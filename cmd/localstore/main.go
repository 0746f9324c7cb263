// Command localstore reads and writes typed entries in a localstore backend.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/localstore/localstore"
)

type app struct {
	v          *viper.Viper
	configPath string
	config     *Config
	logger     *log.Logger
	storage    *localstore.Storage
}

func newRootCmd() *cobra.Command {
	a := &app{
		v:      viper.New(),
		logger: log.New(),
	}

	rootCmd := &cobra.Command{
		Use:           "localstore",
		Short:         "A cli tool for reading and writing typed entries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to config (default ./localstore.{yaml,toml,json})")
	flags.String("backend", "gomap", fmt.Sprintf("backend, one of %v", backendNames))
	flags.String("encoding", "json", "encoding, one of [json toml msgpack]")
	flags.String("log-level", "warn", "log level")
	for _, name := range []string{"backend", "encoding", "log-level"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(
		newGetCmd(a),
		newSetCmd(a),
		newExistsCmd(a),
		newRemoveCmd(a),
		newClearCmd(a),
		newImportCmd(a),
	)
	return rootCmd
}

// open reads the config and opens the storage for the command.
func (a *app) open(cmd *cobra.Command) error {
	config, err := readConfig(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.config = config

	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		return err
	}
	a.logger.SetLevel(level)
	a.logger.SetOutput(cmd.ErrOrStderr())

	codec, err := newCodec(config.Encoding)
	if err != nil {
		return err
	}
	backend, err := newBackend(config.Backend, config.Options)
	if err != nil {
		return err
	}
	a.logger.WithFields(log.Fields{
		"backend":  config.Backend,
		"encoding": config.Encoding,
	}).Debug("Opened storage")

	a.storage = localstore.New(backend, localstore.Options{
		Codec:  codec,
		Logger: a.logger,
	})
	return nil
}

// withStorage wraps a command function so that the storage is open while it runs.
func (a *app) withStorage(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := a.open(cmd); err != nil {
			return err
		}
		defer func() {
			if closeErr := a.storage.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
			a.storage = nil
		}()
		return run(cmd, args)
	}
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
