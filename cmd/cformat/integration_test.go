// Package main provides integration tests for the cformat CLI.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/cformat/internal/app"
)

var binaryPath string

var (
	errBuild  error
	buildOnce sync.Once
)

func ensureBinary() error {
	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "cformat-integration-test-*")
		if err != nil {
			errBuild = fmt.Errorf("failed to create temp dir: %w", err)
			return
		}

		binaryName := "cformat"
		if runtime.GOOS == "windows" {
			binaryName += ".exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		cmd := exec.CommandContext(context.Background(), "go", "build", "-o", binaryPath, ".")
		if bOutput, bErr := cmd.CombinedOutput(); bErr != nil {
			errBuild = fmt.Errorf("failed to build binary: %w\nOutput: %s", bErr, string(bOutput))
		}
	})
	return errBuild
}

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"cformat": func() {
			if err := app.Run(context.Background(), os.Args, os.Stdout, os.Stderr, nil); err != nil {
				os.Exit(1)
			}
		},
	})
}

func TestScripts(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("scripts use a POSIX shell formatter stand-in")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			env.Setenv("HOME", env.WorkDir)
			env.Setenv("NO_COLOR", "1")
			env.Setenv("PATH", filepath.Join(env.WorkDir, "bin")+string(os.PathListSeparator)+env.Getenv("PATH"))
			return nil
		},
	})
}

func TestBinary_Help(t *testing.T) {
	t.Parallel()
	if err := ensureBinary(); err != nil {
		t.Fatal(err)
	}
	cmd := exec.CommandContext(context.Background(), binaryPath, "--help")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "cformat keeps C sources consistently formatted")
}

func TestBinary_NoArguments(t *testing.T) {
	t.Parallel()
	if err := ensureBinary(); err != nil {
		t.Fatal(err)
	}
	cmd := exec.CommandContext(context.Background(), binaryPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Usage:")
}
