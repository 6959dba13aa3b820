//go:build mage

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build the binary.
var Default = Build

const binPath = "bin/dw"

// Build builds the dw binary with version metadata.
func Build() error {
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binPath, "./cmd/dw")
}

// Test runs the test suite with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Install installs dw into GOBIN.
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/dw")
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll("bin")
}

func ldflags() string {
	hash, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		hash = "unknown"
	}
	ver, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		ver = "dev"
	}
	return fmt.Sprintf(
		"-X github.com/dkoosis/dw/internal/version.Version=%s "+
			"-X github.com/dkoosis/dw/internal/version.CommitHash=%s "+
			"-X github.com/dkoosis/dw/internal/version.BuildDate=%s",
		ver, hash, time.Now().UTC().Format(time.RFC3339))
}
