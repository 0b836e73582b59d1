// Package heattransfer provides the heat transfer load step kind: prescribed
// temperatures, concentrated heat fluxes, and the result requests for one
// steady-state or transient thermal solution.
package heattransfer

import (
	"fmt"
	"strings"

	"github.com/simforge/ccxkit/internal/model"
	"github.com/simforge/ccxkit/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// temperatureDOF is the degree of freedom the solver reserves for the
// temperature field in boundary directives.
const temperatureDOF = 11

// Boundary prescribes a temperature on a node set.
type Boundary struct {
	Set         string  `hcl:"set"`
	Temperature float64 `hcl:"temperature"`
}

// CFlux applies a concentrated heat flux to every node of a node set.
type CFlux struct {
	Set       string  `hcl:"set"`
	Magnitude float64 `hcl:"magnitude"`
}

// Input defines the content of a 'heat_transfer' step block.
type Input struct {
	// SteadyState selects the equilibrium solution. Left unset it defaults
	// to true; transient solutions must opt in explicitly.
	SteadyState   *bool      `hcl:"steady_state,optional"`
	Boundaries    []Boundary `hcl:"boundary,block"`
	CFluxes       []CFlux    `hcl:"cflux,block"`
	NodeOutput    []string   `hcl:"node_output,optional"`
	ElementOutput []string   `hcl:"element_output,optional"`
}

// Step is one heat transfer load step.
type Step struct {
	name   string
	input  Input
	steady bool
}

// NewStep checks the block structure and returns the step.
func NewStep(name string, input Input) (*Step, error) {
	for i, b := range input.Boundaries {
		if b.Set == "" {
			return nil, fmt.Errorf("step %q: boundary %d names no set", name, i+1)
		}
	}
	for i, c := range input.CFluxes {
		if c.Set == "" {
			return nil, fmt.Errorf("step %q: cflux %d names no set", name, i+1)
		}
	}
	steady := true
	if input.SteadyState != nil {
		steady = *input.SteadyState
	}
	return &Step{name: name, input: input, steady: steady}, nil
}

// Name returns the label the step was declared under.
func (s *Step) Name() string {
	return s.name
}

// SteadyState reports whether the step solves for equilibrium rather than a
// time history.
func (s *Step) SteadyState() bool {
	return s.steady
}

// DeckLines renders the step block.
func (s *Step) DeckLines() []string {
	opening := "*HEAT TRANSFER"
	if s.steady {
		opening += ", STEADY STATE"
	}
	lines := []string{"*STEP", opening}

	if len(s.input.Boundaries) > 0 {
		lines = append(lines, "*BOUNDARY")
		for _, b := range s.input.Boundaries {
			lines = append(lines, fmt.Sprintf("%s,%d,%d,%e", b.Set, temperatureDOF, temperatureDOF, b.Temperature))
		}
	}
	if len(s.input.CFluxes) > 0 {
		lines = append(lines, "*CFLUX")
		for _, c := range s.input.CFluxes {
			lines = append(lines, fmt.Sprintf("%s,%d,%e", c.Set, temperatureDOF, c.Magnitude))
		}
	}
	if len(s.input.NodeOutput) > 0 {
		lines = append(lines, "*NODE FILE", strings.Join(s.input.NodeOutput, ", "))
	}
	if len(s.input.ElementOutput) > 0 {
		lines = append(lines, "*EL FILE", strings.Join(s.input.ElementOutput, ", "))
	}

	return append(lines, "*END STEP")
}

// Register registers the step kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStepKind("heat_transfer", &registry.StepKind{
		NewInput: func() any { return new(Input) },
		Build: func(name string, input any) (model.LoadStep, error) {
			in, ok := input.(*Input)
			if !ok {
				return nil, fmt.Errorf("heat_transfer step input has unexpected type %T", input)
			}
			return NewStep(name, *in)
		},
	})
}
