// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for padlib using Mage.
//
// Usage:
//
//	mage build           Compile the padlib binary to bin/
//	mage test:all        Run all tests
//	mage test:unit       Run tests without the CLI package
//	mage test:cli        Run the CLI end-to-end tests
//	mage lint            Run golangci-lint
//	mage web             Regenerate the web front-end module
//	mage clean           Remove build artifacts
//	mage install         Install padlib to GOPATH/bin
//	mage stats           Print Go LOC and documentation word counts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "padlib"
	binaryDir  = "bin"
	cmdDir     = "./cmd/padlib"
	modulePath = "github.com/mesh-intelligence/padlib"
)

// ldflags stamps the release version from $PADLIB_VERSION when set.
func ldflags() string {
	v := os.Getenv("PADLIB_VERSION")
	if v == "" {
		return ""
	}
	return "-X " + modulePath + "/internal/cli.Version=" + v
}

// Build compiles the padlib binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Web regenerates the front-end library module from the workspace library.
// The output path comes from web_path in config.yaml.
func Web() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, binaryName), "export", "web")
}
