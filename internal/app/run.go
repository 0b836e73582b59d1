package app

import (
	"context"
	"fmt"

	"github.com/simforge/ccxkit/internal/ctxlog"
	"github.com/simforge/ccxkit/internal/solver"
)

// Run executes the configured operation: a solver version query when
// requested, otherwise one full solve of the loaded analysis.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	solverCfg, err := solver.NewConfig(a.config.Threads, a.config.SolverDir, a.config.WorkDir)
	if err != nil {
		return fmt.Errorf("configuring solver: %w", err)
	}

	opts := a.runnerOpts
	if opts.Output == nil {
		outW := a.outW
		opts.Output = func(line string) { fmt.Fprintln(outW, line) }
	}
	runner := solver.NewRunner(solverCfg, opts)

	if a.config.ShowVersion {
		v, err := runner.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "CalculiX ccx %s\n", v)
		return nil
	}

	if a.config.StatusPort > 0 {
		a.startStatusServer(a.config.StatusPort)
	}

	a.logger.Info("🚀 Starting solver run.", "analysis", a.analysis.Name, "type", a.analysis.Type.String())
	result, err := runner.Run(ctx, a.analysis)
	if err != nil {
		return fmt.Errorf("solver run failed: %w", err)
	}

	a.logger.Info("🏁 Solver run finished.", "duration", result.Duration, "deck", result.DeckPath)
	for _, artifact := range result.Artifacts {
		a.logger.Info("📄 Result artifact.", "path", artifact)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
