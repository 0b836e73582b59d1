package solver

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/hashicorp/go-version"
)

var versionPattern = regexp.MustCompile(`[Vv]ersion\s+(\d+(?:\.\d+)+)`)

// Version asks the installed solver binary for its version. The solver
// prints it as part of its usage banner and is careless about the exit
// status, so the status is ignored whenever a version number can be found in
// the output.
func (r *Runner) Version(ctx context.Context) (*version.Version, error) {
	exePath, err := r.executable()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, exePath, "-v")
	cmd.Env = os.Environ()
	out, runErr := cmd.CombinedOutput()

	m := versionPattern.FindSubmatch(out)
	if m == nil {
		if runErr != nil {
			return nil, fmt.Errorf("querying solver version: %w", runErr)
		}
		return nil, fmt.Errorf("no version number in solver output %q", strings.TrimSpace(string(out)))
	}

	v, err := version.NewVersion(string(m[1]))
	if err != nil {
		return nil, fmt.Errorf("parsing solver version %q: %w", m[1], err)
	}
	return v, nil
}
