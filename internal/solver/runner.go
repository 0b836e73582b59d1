// This file holds the Runner, the supervisor for one solver configuration.
//
// The run protocol is strictly ordered: validation and the platform gate come
// before anything is persisted, so a refused run leaves no files behind. The
// thread environment is exported immediately before the spawn; the variables
// land on the engine's own environment and reach the solver by inheritance,
// which means concurrent runners with different thread counts would race on
// them.
package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/armon/circbuf"
	"github.com/google/uuid"
	"github.com/simforge/ccxkit/internal/ctxlog"
	"github.com/simforge/ccxkit/internal/deck"
	"github.com/simforge/ccxkit/internal/model"
	"github.com/spf13/afero"
)

// ExecutableName is the solver binary the runner spawns from the install
// directory.
const ExecutableName = "ccx.exe"

// DeckFileName is the input deck file the runner persists into the working
// directory. The solver derives every result file name from its stem.
const DeckFileName = "input.inp"

// outputTailSize bounds how much combined solver output is retained for
// error reports.
const outputTailSize = 8 * 1024

// artifactExtensions are the result file extensions the runner looks for
// after a successful solve.
var artifactExtensions = []string{".frd", ".dat", ".sta", ".cvg"}

// RunnerOptions carries the optional collaborators of a Runner. Zero values
// select the production defaults.
type RunnerOptions struct {
	// Fs is the filesystem decks and meshes are written to. Defaults to the
	// OS filesystem. The solver process itself always runs against the real
	// OS regardless of this setting.
	Fs afero.Fs
	// GOOS overrides the platform the gate checks. Defaults to runtime.GOOS.
	GOOS string
	// Output receives each line of solver stdout as it arrives. Defaults to
	// printing on os.Stdout.
	Output func(string)
	// Stderr receives the solver's stderr stream. Defaults to os.Stderr.
	Stderr io.Writer
}

// Runner executes the solver for one configuration.
type Runner struct {
	cfg    *Config
	fs     afero.Fs
	goos   string
	output func(string)
	stderr io.Writer
}

// NewRunner returns a Runner for cfg with the given options.
func NewRunner(cfg *Config, opts RunnerOptions) *Runner {
	r := &Runner{
		cfg:    cfg,
		fs:     opts.Fs,
		goos:   opts.GOOS,
		output: opts.Output,
		stderr: opts.Stderr,
	}
	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}
	if r.goos == "" {
		r.goos = runtime.GOOS
	}
	if r.output == nil {
		r.output = func(line string) { fmt.Fprintln(os.Stdout, line) }
	}
	if r.stderr == nil {
		r.stderr = os.Stderr
	}
	return r
}

// Result describes a completed solver run.
type Result struct {
	RunID     string
	DeckPath  string
	ExitCode  int
	Artifacts []string
	Duration  time.Duration
}

// Run validates the analysis, persists the deck and supervises one solver
// invocation. A non-zero solver exit surfaces as *ExecutionError; running on
// a platform without solver support surfaces as *UnsupportedPlatformError
// before anything is written.
func (r *Runner) Run(ctx context.Context, a *model.Analysis) (*Result, error) {
	runID := uuid.NewString()
	logger := ctxlog.FromContext(ctx).With("run_id", runID, "analysis", a.Name)

	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("analysis %q failed validation: %w", a.Name, err)
	}

	exePath, err := r.executable()
	if err != nil {
		return nil, err
	}

	deckPath, err := r.writeDeck(ctx, a)
	if err != nil {
		return nil, err
	}
	logger.Debug("Persisted input deck.", "path", deckPath)

	if err := r.setThreadEnvironment(); err != nil {
		return nil, err
	}

	jobName := strings.TrimSuffix(DeckFileName, filepath.Ext(DeckFileName))
	cmd := exec.CommandContext(ctx, exePath, "-i", jobName)
	cmd.Dir = r.cfg.WorkDir
	cmd.Env = os.Environ()

	tail, _ := circbuf.NewBuffer(outputTailSize)
	pr, pw := io.Pipe()
	copyDoneCh := make(chan struct{})
	go copyOutput(r.output, pr, copyDoneCh)

	cmd.Stdout = io.MultiWriter(pw, tail)
	cmd.Stderr = io.MultiWriter(r.stderr, tail)

	logger.Info("🚀 Launching solver.", "path", exePath, "job", jobName, "threads", r.cfg.Threads)
	start := time.Now()
	err = cmd.Start()
	if err == nil {
		err = cmd.Wait()
	}

	// Unblock the line copier and wait for it to drain before returning, so
	// callers never see output after Run.
	pw.Close()
	select {
	case <-copyDoneCh:
	case <-ctx.Done():
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExecutionError{ExitCode: exitErr.ExitCode(), Tail: strings.TrimSpace(tail.String())}
		}
		return nil, fmt.Errorf("running solver: %w", err)
	}

	result := &Result{
		RunID:     runID,
		DeckPath:  deckPath,
		ExitCode:  cmd.ProcessState.ExitCode(),
		Artifacts: r.artifacts(jobName),
		Duration:  time.Since(start),
	}
	logger.Info("🏁 Solver finished.", "duration", result.Duration, "artifacts", len(result.Artifacts))
	return result, nil
}

// executable resolves the solver binary path, gating on the platform first.
func (r *Runner) executable() (string, error) {
	if r.goos != "windows" {
		return "", &UnsupportedPlatformError{GOOS: r.goos}
	}
	return filepath.Join(r.cfg.InstallDir, ExecutableName), nil
}

// writeDeck assembles the deck and streams it into the working directory.
func (r *Runner) writeDeck(ctx context.Context, a *model.Analysis) (string, error) {
	if err := r.fs.MkdirAll(r.cfg.WorkDir, 0o755); err != nil {
		return "", fmt.Errorf("creating working directory %q: %w", r.cfg.WorkDir, err)
	}

	d, err := deck.NewBuilder(r.fs, r.cfg.WorkDir).Build(ctx, a)
	if err != nil {
		return "", fmt.Errorf("assembling deck: %w", err)
	}

	path := filepath.Join(r.cfg.WorkDir, DeckFileName)
	f, err := r.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// setThreadEnvironment exports the solver's thread controls.
func (r *Runner) setThreadEnvironment() error {
	threads := strconv.Itoa(r.cfg.Threads)
	for _, name := range []string{EnvStiffnessThreads, EnvEquationThreads, EnvOMPThreads} {
		if err := os.Setenv(name, threads); err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
	}
	return nil
}

// artifacts lists the result files the solver left next to the deck.
func (r *Runner) artifacts(jobName string) []string {
	var found []string
	for _, ext := range artifactExtensions {
		path := filepath.Join(r.cfg.WorkDir, jobName+ext)
		if ok, err := afero.Exists(r.fs, path); err == nil && ok {
			found = append(found, path)
		}
	}
	return found
}
