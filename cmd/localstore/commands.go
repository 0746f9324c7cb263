package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localstore/localstore"
	"github.com/localstore/localstore/encoding"
)

func newGetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <KEY>",
		Short: "Get the value for a key",
		Long: `Get the value for a key.
Prints the value as JSON, "undefined" for entries holding the undefined marker,
or "not found" if there's no entry.`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().Bool("destroy", false, "delete the entry after reading it")
	cmd.Flags().Bool("destroy-on-error", false, "delete the entry if it can't be decoded")

	cmd.RunE = a.withStorage(func(cmd *cobra.Command, args []string) error {
		options := getOptions(cmd, a.config)
		v, found, err := a.storage.Get(args[0], options)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case !found:
			fmt.Fprintln(out, "not found")
		case localstore.IsUndefined(v):
			fmt.Fprintln(out, localstore.UndefinedToken)
		default:
			data, err := encoding.JSON.Marshal(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		}
		return nil
	})
	return cmd
}

// getOptions starts from the "get" config section.
// Flags only override it when they're set explicitly.
func getOptions(cmd *cobra.Command, config *Config) localstore.GetOptions {
	options := localstore.ParseGetOptions(config.Get)
	flags := cmd.Flags()
	if flags.Changed("destroy") {
		options.Destroy, _ = flags.GetBool("destroy")
	}
	if flags.Changed("destroy-on-error") {
		options.DestroyOnError, _ = flags.GetBool("destroy-on-error")
	}
	return options
}

func newSetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <KEY> [VALUE]",
		Short: "Set the value for a key",
		Long: `Set the value for a key.
The value is parsed as JSON. If that fails, it's stored as a string.
With --undefined the undefined marker is stored and no value must be given.`,
		Args: cobra.RangeArgs(1, 2),
	}
	cmd.Flags().Bool("undefined", false, "store the undefined marker")

	cmd.RunE = a.withStorage(func(cmd *cobra.Command, args []string) error {
		undefined, _ := cmd.Flags().GetBool("undefined")
		if undefined != (len(args) == 1) {
			return errors.New("set needs either a value or --undefined")
		}

		var v any = localstore.Undefined
		if !undefined {
			v = parseValue(args[1])
		}
		return a.storage.Set(args[0], v)
	})
	return cmd
}

func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

func newExistsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exists <KEY>",
		Short: "Print whether an entry exists for a key",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = a.withStorage(func(cmd *cobra.Command, args []string) error {
		exists, err := a.storage.Exists(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), exists)
		return nil
	})
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <KEY>",
		Short: "Remove the entry for a key and print whether it existed",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = a.withStorage(func(cmd *cobra.Command, args []string) error {
		removed, err := a.storage.Remove(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), removed)
		return nil
	})
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all entries and print whether there were any",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.withStorage(func(cmd *cobra.Command, args []string) error {
		cleared, err := a.storage.Clear()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cleared)
		return nil
	})
	return cmd
}
