//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"codeberg.org/snonux/lenslate/internal"
)

const binary = "lenslate"

var Default = Build

// Build compiles the lenslate binary
func Build() error {
	fmt.Printf("Building %s %s\n", binary, internal.Version)
	return sh.RunV("go", "build", "-o", binary, "./cmd/lenslate")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install copies the binary to ~/go/bin
func Install() error {
	mg.Deps(Build)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	target := filepath.Join(home, "go", "bin", binary)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	return sh.Copy(target, binary)
}

// Clean removes the built binary
func Clean() error {
	return sh.Rm(binary)
}
