package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	JobPath       string // hcl job file or directory
	MaterialsPath string // yaml material library, optional

	Threads    int
	SolverDir  string
	WorkDir    string
	LogFormat  string
	LogLevel   string
	StatusPort int

	// ShowVersion selects the solver version query instead of a solve.
	ShowVersion bool
}

// NewConfig validates the raw configuration. Thread counts, the working
// directory and the install directory contents are checked later by the
// solver configuration; this gate only rejects combinations no run mode can
// use.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.JobPath == "" && !cfg.ShowVersion {
		return nil, errors.New("JobPath is a required configuration field and cannot be empty")
	}
	if cfg.SolverDir == "" {
		return nil, errors.New("SolverDir is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
