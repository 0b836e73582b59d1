package solver

import (
	"io"

	"github.com/mitchellh/go-linereader"
)

// copyOutput feeds every completed line of r to output, then closes doneCh.
// Lines arrive without their trailing newline, matching how the solver's
// progress output is read interactively.
func copyOutput(output func(string), r io.Reader, doneCh chan<- struct{}) {
	defer close(doneCh)
	lr := linereader.New(r)
	for line := range lr.Ch {
		output(line)
	}
}
