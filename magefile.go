//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "bin/dough"

// Default target - build the binary
var Default = Build

// Build builds the dough binary
func Build() error {
	if err := os.MkdirAll("bin", 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-o", binary, "./cmd/dough")
}

// Test runs the unit tests with the race detector
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs go vet and, when installed, staticcheck
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return fmt.Errorf("vet failed: %w", err)
	}
	if err := sh.RunV("staticcheck", "./..."); err != nil {
		if !sh.CmdRan(err) {
			fmt.Println("staticcheck not found (install: go install honnef.co/go/tools/cmd/staticcheck@latest)")
			return nil
		}
		return fmt.Errorf("staticcheck failed: %w", err)
	}
	return nil
}

// QA runs lint and tests
func QA() {
	mg.SerialDeps(Lint, Test)
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}
