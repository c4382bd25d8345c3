//go:build mage

// Package main provides build targets for pixmem using Mage.
//
// Usage:
//
//	mage build      Compile the pixmem and topng binaries to bin/
//	mage test       Run all tests
//	mage testDebug  Run all tests with bounds assertions enabled
//	mage vet        Run go vet
//	mage lint       Run golangci-lint
//	mage bench      Run the profiling harness
//	mage clean      Remove build artifacts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo     = "go"
	binLint   = "golangci-lint"
	binaryDir = "bin"
	debugTag  = "pixmemdebug"
)

var binaries = map[string]string{
	"pixmem": "./cmd/pixmem",
	"topng":  "./tools/topng",
}

// Build compiles the binaries to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	for name, dir := range binaries {
		if err := sh.RunV(binGo, "build", "-o", filepath.Join(binaryDir, name), dir); err != nil {
			return err
		}
	}
	return nil
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// TestDebug runs all tests with row and pixel bounds assertions compiled in.
func TestDebug() error {
	return sh.RunV(binGo, "test", "-tags", debugTag, "./...")
}

// Vet runs go vet with and without the debug tag.
func Vet() error {
	if err := sh.RunV(binGo, "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "vet", "-tags", debugTag, "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	mg.Deps(Vet)
	return sh.RunV(binLint, "run", "./...")
}

// Bench runs the profiling harness, leaving cpu.pprof in the working directory.
func Bench() error {
	return sh.RunV(binGo, "run", "./benchtesting")
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll(binaryDir)
}
