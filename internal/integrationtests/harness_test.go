package integration_tests

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simforge/ccxkit/internal/app"
	"github.com/simforge/ccxkit/internal/solver"
	"github.com/simforge/ccxkit/internal/testutil"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration solve.
type HarnessResult struct {
	LogOutput    string
	SolverOutput []string
	Err          error
	App          *app.App
	WorkDir      string
}

// DeckContent reads back the deck the run persisted into the working
// directory. It fails the test when no deck exists.
func (r *HarnessResult) DeckContent(t *testing.T) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(r.WorkDir, solver.DeckFileName))
	require.NoError(t, err, "expected a persisted deck in the working directory")
	return string(content)
}

// runSolve provides a standardized harness for end-to-end tests. It writes
// the given files under a fresh temp root (replacing the __ROOT__ marker in
// their contents with that root), stands up a fake solver from script,
// builds the application against the job/ subdirectory and runs one solve.
//
// Startup panics are recovered into HarnessResult.Err, mirroring what the
// real entrypoint does. The mutate hook adjusts the configuration before the
// app is built; tests pass nil when the defaults fit.
func runSolve(t *testing.T, files map[string]string, script string, mutate func(*app.Config)) *HarnessResult {
	t.Helper()
	protectThreadEnv(t)

	tmpDir := t.TempDir()
	jobDir := filepath.Join(tmpDir, "job")
	workDir := filepath.Join(tmpDir, "work")
	require.NoError(t, os.Mkdir(jobDir, 0755))
	require.NoError(t, os.Mkdir(workDir, 0755))

	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		content = strings.ReplaceAll(content, "__ROOT__", tmpDir)
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	installDir := testutil.WriteFakeSolver(t, script)

	appConfig := app.Config{
		JobPath:   jobDir,
		SolverDir: installDir,
		WorkDir:   workDir,
		LogLevel:  "debug",
		LogFormat: "text",
	}
	if _, ok := files["materials.yaml"]; ok {
		appConfig.MaterialsPath = filepath.Join(tmpDir, "materials.yaml")
	}
	if mutate != nil {
		mutate(&appConfig)
	}

	cfg, err := app.NewConfig(appConfig)
	require.NoError(t, err)

	logBuffer := &testutil.SafeBuffer{}
	result := &HarnessResult{WorkDir: workDir}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, cfg)
	}()

	if panicErr != nil {
		result.LogOutput = logBuffer.String()
		result.Err = fmt.Errorf("application startup panicked | %v", panicErr)
		return result
	}

	testApp.SetRunnerOptions(solver.RunnerOptions{
		GOOS:   "windows",
		Output: func(line string) { result.SolverOutput = append(result.SolverOutput, line) },
		Stderr: logBuffer,
	})

	result.App = testApp
	result.Err = testApp.Run(context.Background())
	result.LogOutput = logBuffer.String()
	return result
}

// protectThreadEnv restores the solver thread variables a run exports. Tests
// going through the harness must therefore not run in parallel.
func protectThreadEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{solver.EnvStiffnessThreads, solver.EnvEquationThreads, solver.EnvOMPThreads} {
		t.Setenv(name, os.Getenv(name))
	}
}
