package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/localstore/localstore"
)

// importEntry is one element of the imported JSON array.
// Key isn't typed as string, so wrong key types are reported like any other invalid key.
type importEntry struct {
	Key   any             `json:"key"`
	Value json.RawMessage `json:"value"`
}

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <FILE|->",
		Short: "Import entries from a JSON file",
		Long: `Import entries from a JSON file, or from stdin with "-".
The file must contain an array of {"key": ..., "value": ...} objects.
Entries without a value store the undefined marker.
Importing stops at the first invalid entry.`,
		Args: cobra.ExactArgs(1),
	}
	cmd.RunE = a.withStorage(func(cmd *cobra.Command, args []string) error {
		var r io.Reader
		if args[0] == "-" {
			r = cmd.InOrStdin()
		} else {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}

		n, err := importEntries(a.storage, r)
		a.logger.WithFields(log.Fields{
			"count": n,
			"file":  args[0],
		}).Debug("Imported entries")
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries\n", n)
		return err
	})
	return cmd
}

// importEntries stores the entries read from r and returns how many were stored.
func importEntries(s *localstore.Storage, r io.Reader) (int, error) {
	var entries []importEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return 0, fmt.Errorf("invalid import file: %w", err)
	}

	for i, e := range entries {
		if err := localstore.CheckKey(e.Key); err != nil {
			return i, fmt.Errorf("entry %d: %w", i, err)
		}

		v := localstore.Undefined
		if e.Value != nil {
			var decoded any
			if err := json.Unmarshal(e.Value, &decoded); err != nil {
				return i, fmt.Errorf("entry %d: %w", i, err)
			}
			v = decoded
		}
		if err := s.Set(e.Key.(string), v); err != nil {
			return i, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return len(entries), nil
}
