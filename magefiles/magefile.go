//go:build mage

package main

import (
	"errors"

	"github.com/bitfield/script"
	"github.com/magefile/mage/sh"
)

var packages = []string{".", "encoding/...", "gomap", "file", "bbolt", "buntdb", "leveldb", "redis", "sqlite", "nop", "util", "cmd/..."}

// Build builds all packages and the localstore command.
func Build() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-o", "./bin/localstore", "./cmd/localstore")
}

// Test tests the given package. Pass "all" to test all packages.
// The redis package needs a Redis server, which is started with Docker.
func Test(pkg string) error {
	if pkg == "all" {
		for _, p := range packages {
			if err := testPackage(p); err != nil {
				return err
			}
		}
		return nil
	}

	for _, p := range packages {
		if p == pkg {
			return testPackage(pkg)
		}
	}
	return errors.New("package from parameter not found")
}

// Clean cleans the build/test output, like coverage.txt files
func Clean() error {
	p := script.FindFiles(".").
		Match("coverage.txt").
		ExecForEach("rm ./{{.}}") // On Windows `rm` works as it's an alias for Remove-Item
	p.Wait()
	return p.Error()
}
