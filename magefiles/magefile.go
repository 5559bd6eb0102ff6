// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the scribe project using Mage.
//
// Usage:
//
//	mage build          Compile scribe binary to bin/
//	mage test           Run all tests
//	mage testRace       Run all tests with the race detector
//	mage cover          Write coverage.out and print per-function coverage
//	mage smoke          Build, then regenerate and verify in a scratch root
//	mage lint           Run gofmt, go vet, and golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install scribe to GOPATH/bin
//	mage stats          Print Go LOC and template line counts
//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const coverProfile = "coverage.out"

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// TestRace runs all tests with the race detector.
func TestRace() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover runs the tests with a coverage profile.
func Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverProfile)
}

// Smoke builds the binary and exercises regenerate, verify, and backups
// against a throwaway project root.
func Smoke() error {
	mg.Deps(Build)

	root, err := os.MkdirTemp("", "scribe-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(root)

	bin, err := filepath.Abs(filepath.Join(binaryDir, binaryName))
	if err != nil {
		return err
	}
	for _, args := range [][]string{
		{"init"},
		{"regenerate"},
		{"regenerate"},
		{"verify"},
		{"backups"},
		{"history"},
	} {
		fmt.Printf("--- scribe %v\n", args)
		if err := sh.RunV(bin, append([]string{"--root", root}, args...)...); err != nil {
			return fmt.Errorf("scribe %v: %w", args, err)
		}
	}
	return nil
}
