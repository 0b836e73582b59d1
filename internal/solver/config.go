package solver

import (
	"fmt"
	"os"
)

// DefaultThreads is the thread count used when none is configured.
const DefaultThreads = 1

// Environment variables the solver reads its thread controls from.
const (
	EnvStiffnessThreads = "CCX_NPROC_STIFFNESS"
	EnvEquationThreads  = "CCX_NPROC_EQUATION_SOLVER"
	EnvOMPThreads       = "OMP_NUM_THREADS"
)

// Config holds the user facing knobs of a solver run.
type Config struct {
	// Threads is the number of solver threads, exported through the
	// CCX_NPROC_* and OMP_NUM_THREADS variables before every spawn.
	Threads int
	// InstallDir is the directory holding the solver executable.
	InstallDir string
	// WorkDir is where the deck, the mesh and the result files live.
	WorkDir string
}

// NewConfig validates the knobs and applies defaults: one thread, and the
// current directory as working directory. The install directory must exist
// when the configuration is created, not first at run time, so a typo
// surfaces before a long assembly.
func NewConfig(threads int, installDir, workDir string) (*Config, error) {
	if threads == 0 {
		threads = DefaultThreads
	}
	if threads < 0 {
		return nil, fmt.Errorf("thread count must be positive, got %d", threads)
	}
	if installDir == "" {
		return nil, fmt.Errorf("solver install directory is required")
	}
	info, err := os.Stat(installDir)
	if err != nil {
		return nil, fmt.Errorf("solver install directory %q: %w", installDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("solver install directory %q is not a directory", installDir)
	}
	if workDir == "" {
		workDir = "."
	}
	return &Config{Threads: threads, InstallDir: installDir, WorkDir: workDir}, nil
}
