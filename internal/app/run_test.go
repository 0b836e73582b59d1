package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/simforge/ccxkit/internal/model"
	"github.com/simforge/ccxkit/internal/solver"
	"github.com/simforge/ccxkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// protectThreadEnv restores the solver thread variables after a test. Run
// exports them into the real process environment, so tests that reach the
// runner must not be parallel.
func protectThreadEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{solver.EnvStiffnessThreads, solver.EnvEquationThreads, solver.EnvOMPThreads} {
		t.Setenv(name, os.Getenv(name))
	}
}

// newRunApp builds an App around a fake solver script and a minimal job.
func newRunApp(t *testing.T, script string, opts solver.RunnerOptions) (*App, *testutil.SafeBuffer, string) {
	t.Helper()

	installDir := testutil.WriteFakeSolver(t, script)
	workDir := t.TempDir()
	jobPath := writeJob(t, minimalJobHCL)

	cfg, err := NewConfig(Config{
		JobPath:   jobPath,
		SolverDir: installDir,
		WorkDir:   workDir,
	})
	require.NoError(t, err)

	logBuf := &testutil.SafeBuffer{}
	a := NewApp(logBuf, cfg)
	if opts.GOOS == "" {
		opts.GOOS = "windows"
	}
	a.SetRunnerOptions(opts)
	return a, logBuf, workDir
}

func TestRun_SolveSuccess(t *testing.T) {
	protectThreadEnv(t)

	var lines []string
	a, logBuf, workDir := newRunApp(t, `echo "solving bracket"; touch input.frd`, solver.RunnerOptions{
		Output: func(line string) { lines = append(lines, line) },
	})

	err := a.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"solving bracket"}, lines)
	assert.Contains(t, logBuf.String(), "Solver run finished.")
	assert.Contains(t, logBuf.String(), "Result artifact.")

	deck, err := os.ReadFile(filepath.Join(workDir, "input.inp"))
	require.NoError(t, err)
	assert.Contains(t, string(deck), "*MATERIAL, NAME=steel")
}

func TestRun_DefaultOutputGoesToAppWriter(t *testing.T) {
	protectThreadEnv(t)

	a, logBuf, _ := newRunApp(t, `echo "ccx says hello"`, solver.RunnerOptions{})

	err := a.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, logBuf.String(), "ccx says hello")
}

func TestRun_VersionQuery(t *testing.T) {
	t.Parallel()

	installDir := testutil.WriteFakeSolver(t, `echo "CalculiX Version 2.17"`)
	cfg, err := NewConfig(Config{ShowVersion: true, SolverDir: installDir})
	require.NoError(t, err)

	logBuf := &testutil.SafeBuffer{}
	a := NewApp(logBuf, cfg)
	a.SetRunnerOptions(solver.RunnerOptions{GOOS: "windows"})

	err = a.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, logBuf.String(), "CalculiX ccx 2.17.0")
}

func TestRun_SolverFailure(t *testing.T) {
	protectThreadEnv(t)

	a, _, _ := newRunApp(t, `echo "singular stiffness matrix"; exit 7`, solver.RunnerOptions{})

	err := a.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "solver run failed")

	var execErr *solver.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 7, execErr.ExitCode)
	assert.Contains(t, execErr.Tail, "singular stiffness matrix")
}

func TestRun_ConfigError(t *testing.T) {
	t.Parallel()

	jobPath := writeJob(t, minimalJobHCL)
	cfg, err := NewConfig(Config{
		JobPath:   jobPath,
		SolverDir: filepath.Join(t.TempDir(), "does-not-exist"),
	})
	require.NoError(t, err)

	a := NewApp(io.Discard, cfg)

	err = a.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuring solver")
}

func TestRun_ValidationFailure(t *testing.T) {
	t.Parallel()

	installDir := testutil.WriteFakeSolver(t, `echo "never runs"`)
	workDir := t.TempDir()
	jobPath := writeJob(t, `
element_set "body" { elements = [1] }
`)
	cfg, err := NewConfig(Config{JobPath: jobPath, SolverDir: installDir, WorkDir: workDir})
	require.NoError(t, err)

	a := NewApp(io.Discard, cfg)
	a.SetRunnerOptions(solver.RunnerOptions{GOOS: "windows"})

	err = a.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation")
	assert.ErrorIs(t, err, model.ErrNoMaterials)

	_, statErr := os.Stat(filepath.Join(workDir, "input.inp"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "validation failures must not write a deck")
}
