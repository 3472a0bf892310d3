package shell

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipUnlessUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("requires a POSIX /bin/sh")
	}
}

// writeScript creates a shell script in a temporary directory.
func writeScript(t *testing.T, name, body string, mode os.FileMode) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), mode))
	require.NoError(t, os.Chmod(path, mode))
	return path
}

func TestProcessExecutor(t *testing.T) {
	skipUnlessUnix(t)

	cases := map[string]struct {
		body   string
		mode   os.FileMode
		args   []string
		env    []string
		status int
		stdout string
	}{
		"success":   {"echo hello \"$1\"", 0755, []string{"greet", "world"}, nil, 0, "hello world\n"},
		"exit-code": {"exit 3", 0755, []string{"fail"}, nil, 3, ""},
		"env":       {"echo \"$FOO\"", 0755, []string{"env"}, []string{"FOO=bar"}, 0, "bar\n"},
		"signal":    {"kill -9 $$", 0755, []string{"killed"}, nil, 128 + 9, ""},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			path := writeScript(t, tn, tc.body, tc.mode)
			stdout := &bytes.Buffer{}
			executor := &ProcessExecutor{Stdout: stdout, Stderr: stdout}

			res := executor.Execute(path, tc.args, tc.env)

			assert.NoError(t, res.Err)
			assert.Equal(t, tc.status, res.Status)
			assert.Equal(t, tc.stdout, stdout.String())
		})
	}
}

func TestProcessExecutor_ReplacementFailed(t *testing.T) {
	skipUnlessUnix(t)

	notExecutable := writeScript(t, "data", "echo never", 0644)

	cases := map[string]struct {
		path   string
		status int
		is     error
	}{
		"not-executable": {notExecutable, StatusCannotExecute, fs.ErrPermission},
		"directory":      {t.TempDir(), StatusCannotExecute, fs.ErrPermission},
		"missing":        {filepath.Join(t.TempDir(), "gone"), StatusNotFound, fs.ErrNotExist},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			executor := &ProcessExecutor{}

			res := executor.Execute(tc.path, []string{tn}, nil)

			assert.Equal(t, tc.status, res.Status)
			assert.ErrorIs(t, res.Err, ErrProcessReplacementFailed)
			assert.ErrorIs(t, res.Err, tc.is)
		})
	}
}

func TestEngine_PermissionPolicy(t *testing.T) {
	skipUnlessUnix(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tool"), []byte("#!/bin/sh\necho ran\n"), 0644))
	require.NoError(t, os.Chmod(filepath.Join(dir, "tool"), 0644))

	newEngine := func(requireExecutable bool) (*Engine, *bytes.Buffer) {
		out := &bytes.Buffer{}
		return NewEngine(Options{
			Env:               NewEnviron([]string{"PATH=" + dir}),
			Fs:                afero.NewOsFs(),
			RequireExecutable: requireExecutable,
			Stdout:            out,
			Stderr:            out,
		}), out
	}

	t.Run("presence-is-enough", func(t *testing.T) {
		e, out := newEngine(false)

		res := e.Dispatch(NewCommand("tool"))

		assert.Equal(t, StatusCannotExecute, res.Status)
		assert.ErrorIs(t, res.Err, ErrProcessReplacementFailed)
		assert.Equal(t, filepath.Join(dir, "tool")+": permission denied\n", out.String())
	})

	t.Run("require-executable", func(t *testing.T) {
		e, out := newEngine(true)

		res := e.Dispatch(NewCommand("tool"))

		assert.ErrorIs(t, res.Err, ErrCommandNotFound)
		assert.Equal(t, "command not found: 'tool'\n", out.String())
	})

	t.Run("executable-runs", func(t *testing.T) {
		require.NoError(t, os.Chmod(filepath.Join(dir, "tool"), 0755))
		e, out := newEngine(true)

		res := e.Dispatch(NewCommand("tool"))

		assert.NoError(t, res.Err)
		assert.Equal(t, 0, res.Status)
		assert.Equal(t, "ran\n", out.String())
	})
}
