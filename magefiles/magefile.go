//go:build mage

// Package main provides build targets for the taskdesk project using Mage.
//
// Usage:
//
//	mage build     Compile the taskdesk binary to bin/
//	mage test      Run all tests with the race detector
//	mage cover     Run tests and write coverage.out
//	mage lint      Run golangci-lint
//	mage serve     Run the HTTP API against the mock backend
//	mage clean     Remove build artifacts
//	mage install   Install taskdesk to GOPATH/bin
//	mage stats     Print Go lines of code per package
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo        = "go"
	binLint      = "golangci-lint"
	binaryName   = "taskdesk"
	binaryDir    = "bin"
	cmdDir       = "./cmd/taskdesk"
	coverProfile = "coverage.out"
	versionVar   = "github.com/mesh-intelligence/taskdesk/pkg/taskdesk.Version"
)

// Build compiles the taskdesk binary to bin/. TASKDESK_VERSION, when set,
// is stamped into the binary.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if v := os.Getenv("TASKDESK_VERSION"); v != "" {
		args = append(args, "-ldflags", fmt.Sprintf("-X %s=%s", versionVar, v))
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Test runs all tests with the race detector.
func Test() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover runs all tests and writes a coverage profile.
func Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverProfile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Serve builds the binary and serves the API against the mock backend.
func Serve() error {
	mg.Deps(Build)
	return sh.RunWithV(map[string]string{"TASKDESK_BACKEND": "mock"},
		filepath.Join(binaryDir, binaryName), "serve", "--verbose")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	if err := sh.Rm(coverProfile); err != nil {
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

// Stats prints Go lines of code per package directory, split into
// production and test code.
func Stats() error {
	type counts struct{ prod, test int }
	byDir := map[string]*counts{}

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			switch path {
			case "vendor", ".git", binaryDir, "magefiles", "_examples":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return nil
		}
		dir := filepath.Dir(path)
		if byDir[dir] == nil {
			byDir[dir] = &counts{}
		}
		if strings.HasSuffix(path, "_test.go") {
			byDir[dir].test += n
		} else {
			byDir[dir].prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(byDir))
	for d := range byDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	var total counts
	for _, d := range dirs {
		c := byDir[d]
		fmt.Printf("%-24s %6d prod %6d test\n", d, c.prod, c.test)
		total.prod += c.prod
		total.test += c.test
	}
	fmt.Printf("%-24s %6d prod %6d test\n", "total", total.prod, total.test)
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
