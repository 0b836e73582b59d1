package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequirePOSIXShell skips tests that stand in a shell script for the solver
// binary. The scripts carry a shebang, which only an exec on a POSIX system
// honors.
func RequirePOSIXShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake solver scripts need a POSIX shell")
	}
}

// WriteFakeSolver creates an executable stand-in for the solver binary in a
// fresh temp directory and returns that directory. The script body runs with
// the runner's working directory as its own, exactly like the real solver.
func WriteFakeSolver(t *testing.T, script string) string {
	t.Helper()
	RequirePOSIXShell(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "ccx.exe")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return dir
}
