// Package util contains helpers shared by the file based backends.
package util

import (
	"os"
	"path/filepath"
)

// CreateAllDirs creates the missing parent directories of the file f.
// Nothing happens if f already exists or if it's in the working directory.
func CreateAllDirs(f string, dirMode os.FileMode) error {
	_, err := os.Stat(f)
	if err != nil {
		if os.IsNotExist(err) {
			if filepath.Dir(f) != "." {
				err = os.MkdirAll(filepath.Dir(f), dirMode)
				if err != nil {
					return err
				}
			}
		} else {
			return err
		}
	}
	return nil
}
