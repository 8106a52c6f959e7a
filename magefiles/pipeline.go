//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// runBinary executes the built deckfix binary with the given arguments.
func runBinary(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Rebuild builds the CLI and applies the fix table to the working deck.
func Rebuild() error {
	mg.Deps(Build)
	return runBinary("rebuild")
}

// Verify builds the CLI and runs the render-and-compare pipeline.
func Verify() error {
	mg.Deps(Build)
	return runBinary("verify")
}

// Analyze builds the CLI and dumps shape geometry for the problem slides.
func Analyze() error {
	mg.Deps(Build)
	return runBinary("analyze")
}

// Test runs the module's test suite.
func Test() error {
	cmd := exec.Command("go", "test", "./...")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
