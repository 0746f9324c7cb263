//go:build mage

package main

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/bitfield/script"
)

func testPackage(pkg string) (err error) {
	fmt.Println("Testing", pkg)

	coverprofile := "coverage.txt"
	if pkg != "." {
		coverprofile = strings.TrimSuffix(pkg, "/...") + "/coverage.txt"
	}
	testCmd := "go test -v -race -coverprofile=" + coverprofile + " -covermode=atomic ./" + pkg

	// Packages that don't require a separate service
	if pkg != "redis" {
		var out string
		out, err = script.Exec(testCmd).String()
		fmt.Println(out)
		return err
	}

	// The tests skip on connection errors, so without Docker they still run, but skip.
	if runtime.GOOS == "windows" {
		out, err := script.Exec(testCmd).String()
		fmt.Println(out)
		return err
	}

	dockerImage := "redis"
	dockerCmd := `docker run -d --rm --name localstore-redis -p 6379:6379 --health-cmd='redis-cli ping' ` + dockerImage

	// Pull Docker image
	var out string
	out, err = script.Exec("docker pull " + dockerImage + ":latest").String()
	if err != nil {
		// Depending on the error, printing the output could be interesting, as it could be more info than what's in err.
		fmt.Println(out)
		return err
	}
	// Start Docker container
	out, err = script.Exec(dockerCmd).String()
	if err != nil {
		fmt.Println(out)
		return err
	}
	// Thanks to separate pull and run, the output of the run is only the container ID
	containerID := strings.ReplaceAll(out, "\n", "")
	defer func() {
		out, err2 := script.Exec("docker stop " + containerID).String()
		if err2 != nil {
			// Only set err if it's not set yet
			if err == nil {
				err = err2
			}
			fmt.Println(out)
		}
	}()

	// Wait for container to be healthy
	for i := 0; i < 10; i++ {
		out, err = script.Exec("docker inspect --format='{{.State.Health.Status}}' " + containerID).String()
		if err != nil {
			fmt.Println(out)
			return err
		}
		if strings.ReplaceAll(out, "\n", "") == "healthy" {
			break
		}
		fmt.Printf("Waiting for container to be healthy... (%d/10)\n", i+1)
		time.Sleep(time.Second)
	}

	out, err = script.Exec(testCmd).String()
	fmt.Println(out)

	// If err is nil, the above deferred function might set it
	return err
}
