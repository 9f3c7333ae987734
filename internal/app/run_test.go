package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/cformat/internal/fs"
)

// runWithMock drives run with an injected manager so exit handling can be
// checked without git or a formatter.
func runWithMock(t *testing.T, mgr *MockManager, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	lazy := &LazyManager{inner: mgr}
	err = run(context.Background(), lazy, &slog.LevelVar{}, append([]string{"cformat"}, args...),
		&out, &errOut, fs.MapEnvProvider{})
	return out.String(), errOut.String(), err
}

func TestRun_ErrorMapping(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints help and fails", func(t *testing.T) {
		t.Parallel()
		stdout, stderr, err := runWithMock(t, &MockManager{})
		require.ErrorAs(t, err, new(*UsageError))
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "Usage:")
		assert.Contains(t, stderr, "--check")
	})

	t.Run("missing mode prints guidance and help", func(t *testing.T) {
		t.Parallel()
		stdout, stderr, err := runWithMock(t, &MockManager{}, "-v")
		require.ErrorAs(t, err, new(*UsageError))
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "Error: "+MissingModeMessage)
		assert.Contains(t, stderr, "Usage:")
	})

	t.Run("violations are silent", func(t *testing.T) {
		t.Parallel()
		mgr := &MockManager{}
		mgr.On("Check", mock.Anything, mock.Anything).Return(&ViolationsFoundError{Count: 1})

		_, stderr, err := runWithMock(t, mgr, "-c")
		require.ErrorAs(t, err, new(*ViolationsFoundError))
		assert.Empty(t, stderr)
	})

	t.Run("unexpected errors get the apology", func(t *testing.T) {
		t.Parallel()
		mgr := &MockManager{}
		mgr.On("Format", mock.Anything, mock.Anything).Return(errors.New("disk on fire"))

		_, stderr, err := runWithMock(t, mgr, "--source-path", "x")
		require.Error(t, err)
		assert.Equal(t,
			"Ooops... This is kind of embarrassing. We have an exception:\n\n>>> disk on fire <<<\n",
			stderr)
	})

	t.Run("interrupt", func(t *testing.T) {
		t.Parallel()
		mgr := &MockManager{}
		mgr.On("Check", mock.Anything, mock.Anything).Return(context.Canceled)

		_, stderr, err := runWithMock(t, mgr, "-c")
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, "Interrupted by user\n", stderr)
	})

	t.Run("legacy spellings", func(t *testing.T) {
		t.Parallel()
		mgr := &MockManager{}
		mgr.On("Check", mock.Anything, mock.MatchedBy(func(o Options) bool { return o.Fix })).Return(nil)
		mgr.On("Format", mock.Anything, mock.MatchedBy(func(o Options) bool { return o.SourcePath == "lib" })).
			Return(nil)

		_, _, err := runWithMock(t, mgr, "-c", "-fv")
		require.NoError(t, err)
		_, _, err = runWithMock(t, mgr, "-src-path", "lib")
		require.NoError(t, err)
		mgr.AssertExpectations(t)
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	binDir := filepath.Join(dir, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))

	// The fake formatter records each invocation.
	callLog := filepath.Join(dir, "calls.log")
	fake := filepath.Join(binDir, "fake-format")
	script := "#!/bin/sh\necho \"$@\" >> " + callLog + "\n"
	require.NoError(t, os.WriteFile(fake, []byte(script), 0o755)) //nolint:gosec // must be executable

	cfgPath := filepath.Join(dir, "cformat.yml")
	cfgData := "formatter: " + fake + "\nstyle: LLVM\nexclusions: [\"/third_party/\"]\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgData), 0o600))

	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "main.c"))
	writeFile(t, filepath.Join(src, "main.h"))
	writeFile(t, filepath.Join(src, "notes.txt"))

	t.Run("format a directory", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := Run(context.Background(),
			[]string{"cformat", "--config", cfgPath, "--source-path", src}, &stdout, &stderr, fs.MapEnvProvider{})
		require.NoError(t, err)

		data, err := os.ReadFile(callLog)
		require.NoError(t, err)
		assert.Equal(t,
			"--style=LLVM -i "+filepath.Join(src, "main.c")+"\n--style=LLVM -i "+filepath.Join(src, "main.h")+"\n",
			string(data))
	})

	t.Run("missing source path", func(t *testing.T) {
		var stderr bytes.Buffer
		err := Run(context.Background(),
			[]string{"cformat", "--config", cfgPath, "--source-path", filepath.Join(dir, "nope")},
			&bytes.Buffer{}, &stderr, fs.MapEnvProvider{})
		require.ErrorAs(t, err, new(*SourcePathNotFoundError))
		assert.Contains(t, stderr.String(), "Ooops...")
	})

	t.Run("config from environment", func(t *testing.T) {
		var stderr bytes.Buffer
		env := fs.MapEnvProvider{"CFORMAT_CONFIG": filepath.Join(dir, "missing.yml")}
		err := Run(context.Background(), []string{"cformat", "--source-path", src}, &bytes.Buffer{}, &stderr, env)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "configuration file not found")
	})

	t.Run("unwritable log file only warns", func(t *testing.T) {
		var stderr bytes.Buffer
		env := fs.MapEnvProvider{LogEnvVar: dir} // a directory cannot be opened for writing
		err := Run(context.Background(),
			[]string{"cformat", "--config", cfgPath, "-n", "--source-path", filepath.Join(src, "main.c")},
			&bytes.Buffer{}, &stderr, env)
		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "Warning: logging to file disabled")
	})

	t.Run("log file receives debug records", func(t *testing.T) {
		var stderr bytes.Buffer
		logFile := filepath.Join(dir, "cformat.log")
		env := fs.MapEnvProvider{LogEnvVar: logFile}
		err := Run(context.Background(),
			[]string{"cformat", "--config", cfgPath, "-n", "--source-path", filepath.Join(src, "main.c")},
			&bytes.Buffer{}, &stderr, env)
		require.NoError(t, err)

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "formatting file")
		assert.Contains(t, string(data), `"msg":"using configuration"`)
		assert.Contains(t, string(data), `"exclusions":["/third_party/"]`)
		assert.NotContains(t, stderr.String(), "formatting file")
	})
}
