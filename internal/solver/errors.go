package solver

import "fmt"

// UnsupportedPlatformError is returned when a run is attempted on a platform
// the solver invocation is not defined for.
type UnsupportedPlatformError struct {
	GOOS string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("solver execution is only supported on windows, not %s", e.GOOS)
}

// ExecutionError is returned when the solver process exits with a non-zero
// status. Tail carries the last few kilobytes of combined output so the
// failure reason survives without re-running.
type ExecutionError struct {
	ExitCode int
	Tail     string
}

func (e *ExecutionError) Error() string {
	if e.Tail == "" {
		return fmt.Sprintf("solver exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("solver exited with code %d, last output:\n%s", e.ExitCode, e.Tail)
}
