package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/simforge/ccxkit/internal/ctxlog"
	"github.com/simforge/ccxkit/internal/jobfile"
	"github.com/simforge/ccxkit/internal/matlib"
	"github.com/simforge/ccxkit/internal/model"
	"github.com/simforge/ccxkit/internal/registry"
	"github.com/simforge/ccxkit/internal/solver"
	"github.com/spf13/afero"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	registry   *registry.Registry
	analysis   *model.Analysis
	library    *matlib.Library
	runnerOpts solver.RunnerOptions
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry,
// with the job and material library already loaded. A failure to load either
// is a fatal startup error and panics; the entrypoint recovers it into a
// clean exit.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All kind modules registered.", "count", len(modules))

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
	}

	fs := afero.NewOsFs()

	if cfg.MaterialsPath != "" {
		lib, err := matlib.Load(ctx, fs, reg, cfg.MaterialsPath)
		if err != nil {
			panic(fmt.Errorf("failed to load material library: %w", err))
		}
		a.library = lib
		logger.Debug("Material library ready.", "materials", lib.Len())
	}

	if cfg.JobPath != "" {
		analysis, err := jobfile.NewLoader(fs, reg).Load(ctx, cfg.JobPath)
		if err != nil {
			panic(fmt.Errorf("failed to load job: %w", err))
		}
		a.analysis = analysis

		merged, err := a.mergeLibraryMaterials()
		if err != nil {
			panic(fmt.Errorf("failed to merge library materials: %w", err))
		}
		if err := a.checkMaterialRefs(); err != nil {
			panic(fmt.Errorf("failed to resolve job materials: %w", err))
		}
		logger.Debug("Job loaded.", "analysis", analysis.Name, "library_materials_merged", merged)
	}

	return a
}

// mergeLibraryMaterials copies library definitions into the analysis for
// materials that assignments reference but the job never defines. Job
// definitions always win, and library materials nothing refers to stay out
// of the deck.
func (a *App) mergeLibraryMaterials() (int, error) {
	if a.library == nil || a.analysis == nil {
		return 0, nil
	}

	defined := make(map[string]bool, len(a.analysis.Materials))
	for _, m := range a.analysis.Materials {
		defined[m.Name()] = true
	}

	merged := 0
	for _, as := range a.analysis.Assignments {
		if defined[as.Material] {
			continue
		}
		m, ok := a.library.Lookup(as.Material)
		if !ok {
			// Reported by checkMaterialRefs after the merge.
			continue
		}
		if err := a.analysis.AddMaterial(m); err != nil {
			return merged, err
		}
		defined[as.Material] = true
		merged++
	}
	return merged, nil
}

// checkMaterialRefs reports assignments whose material has no definition left
// after the library merge. The deck would render them as-is, but the solver
// only rejects such input after the job is already queued, so an unresolved
// name fails at load instead. All unresolved names are reported together.
func (a *App) checkMaterialRefs() error {
	defined := make(map[string]bool, len(a.analysis.Materials))
	for _, m := range a.analysis.Materials {
		defined[m.Name()] = true
	}

	var result *multierror.Error
	for _, as := range a.analysis.Assignments {
		if !defined[as.Material] {
			result = multierror.Append(result, fmt.Errorf("element set %q is assigned undefined material %q", as.ElementSet, as.Material))
		}
	}
	return result.ErrorOrNil()
}

// Analysis returns the loaded analysis. This is primarily for testing.
func (a *App) Analysis() *model.Analysis {
	return a.analysis
}

// Registry returns the application's kind registry. This is primarily for
// testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// SetRunnerOptions overrides the solver runner collaborators, letting tests
// redirect output, filesystems and the platform gate.
func (a *App) SetRunnerOptions(opts solver.RunnerOptions) {
	a.runnerOpts = opts
}
