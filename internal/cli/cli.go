package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/simforge/ccxkit/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("ccxkit", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
ccxkit - A declarative deck builder and run supervisor for the CalculiX solver.

Usage:
  ccxkit [options] [JOB_PATH]

Arguments:
  JOB_PATH
    Path to a single .hcl job file or a directory containing .hcl job files.

Options:
`)
		flagSet.PrintDefaults()
	}

	jobFlag := flagSet.String("job", "", "Path to the job file or directory.")
	jFlag := flagSet.String("j", "", "Path to the job file or directory (shorthand).")
	materialsFlag := flagSet.String("materials", "", "Path to a YAML material library file.")
	threadsFlag := flagSet.Int("threads", 0, "Number of solver threads. 0 uses the solver default.")
	solverDirFlag := flagSet.String("solver-dir", "", "Directory containing the ccx.exe solver executable.")
	workDirFlag := flagSet.String("workdir", ".", "Directory the deck and result files are written to.")
	statusPortFlag := flagSet.Int("status-port", 0, "Port for the HTTP status server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	versionFlag := flagSet.Bool("version", false, "Print the solver version and exit.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *jobFlag != "" {
		path = *jobFlag
	} else if *jFlag != "" {
		path = *jFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Job path determined.", "path", path)

	if path == "" && !*versionFlag {
		slog.Debug("No job path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if *threadsFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid threads: must not be negative"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		JobPath:       path,
		MaterialsPath: *materialsFlag,
		Threads:       *threadsFlag,
		SolverDir:     *solverDirFlag,
		WorkDir:       *workDirFlag,
		StatusPort:    *statusPortFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		ShowVersion:   *versionFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
