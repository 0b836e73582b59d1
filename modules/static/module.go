// Package static provides the static structural load step kind: prescribed
// displacements, concentrated and distributed loads, and the result requests
// for one equilibrium solution.
package static

import (
	"fmt"
	"strings"

	"github.com/simforge/ccxkit/internal/model"
	"github.com/simforge/ccxkit/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Boundary prescribes a displacement value on a contiguous range of degrees
// of freedom of a node set. A zero value with LastDOF covering 1..3 is the
// common fixed support.
type Boundary struct {
	Set      string  `hcl:"set"`
	FirstDOF int     `hcl:"first_dof"`
	LastDOF  int     `hcl:"last_dof,optional"`
	Value    float64 `hcl:"value,optional"`
}

// CLoad applies a concentrated force component to every node of a node set.
type CLoad struct {
	Set       string  `hcl:"set"`
	DOF       int     `hcl:"dof"`
	Magnitude float64 `hcl:"magnitude"`
}

// DLoad applies a distributed load to an element set. Label selects the load
// variant the solver applies, for example a face pressure label.
type DLoad struct {
	Set       string  `hcl:"set"`
	Label     string  `hcl:"label"`
	Magnitude float64 `hcl:"magnitude"`
}

// Input defines the content of a 'static' step block.
type Input struct {
	Boundaries    []Boundary `hcl:"boundary,block"`
	CLoads        []CLoad    `hcl:"cload,block"`
	DLoads        []DLoad    `hcl:"dload,block"`
	NodeOutput    []string   `hcl:"node_output,optional"`
	ElementOutput []string   `hcl:"element_output,optional"`
}

// Step is one static structural load step.
type Step struct {
	name  string
	input Input
}

// NewStep checks the block structure and returns the step. Unlike materials,
// steps have no later validation gate, so structural mistakes are rejected
// here at load time.
func NewStep(name string, input Input) (*Step, error) {
	for i := range input.Boundaries {
		b := &input.Boundaries[i]
		if b.Set == "" {
			return nil, fmt.Errorf("step %q: boundary %d names no set", name, i+1)
		}
		if b.FirstDOF < 1 || b.FirstDOF > 6 {
			return nil, fmt.Errorf("step %q: boundary on %q has first_dof %d outside 1..6", name, b.Set, b.FirstDOF)
		}
		if b.LastDOF == 0 {
			b.LastDOF = b.FirstDOF
		}
		if b.LastDOF < b.FirstDOF || b.LastDOF > 6 {
			return nil, fmt.Errorf("step %q: boundary on %q has last_dof %d outside %d..6", name, b.Set, b.LastDOF, b.FirstDOF)
		}
	}
	for i, c := range input.CLoads {
		if c.Set == "" {
			return nil, fmt.Errorf("step %q: cload %d names no set", name, i+1)
		}
		if c.DOF < 1 || c.DOF > 6 {
			return nil, fmt.Errorf("step %q: cload on %q has dof %d outside 1..6", name, c.Set, c.DOF)
		}
	}
	for i, d := range input.DLoads {
		if d.Set == "" {
			return nil, fmt.Errorf("step %q: dload %d names no set", name, i+1)
		}
		if d.Label == "" {
			return nil, fmt.Errorf("step %q: dload on %q has no load label", name, d.Set)
		}
	}
	return &Step{name: name, input: input}, nil
}

// Name returns the label the step was declared under.
func (s *Step) Name() string {
	return s.name
}

// DeckLines renders the step block. Homogeneous boundaries omit their zero
// value, the conventional spelling for a fixed support.
func (s *Step) DeckLines() []string {
	lines := []string{"*STEP", "*STATIC"}

	if len(s.input.Boundaries) > 0 {
		lines = append(lines, "*BOUNDARY")
		for _, b := range s.input.Boundaries {
			if b.Value == 0 {
				lines = append(lines, fmt.Sprintf("%s,%d,%d", b.Set, b.FirstDOF, b.LastDOF))
			} else {
				lines = append(lines, fmt.Sprintf("%s,%d,%d,%e", b.Set, b.FirstDOF, b.LastDOF, b.Value))
			}
		}
	}
	if len(s.input.CLoads) > 0 {
		lines = append(lines, "*CLOAD")
		for _, c := range s.input.CLoads {
			lines = append(lines, fmt.Sprintf("%s,%d,%e", c.Set, c.DOF, c.Magnitude))
		}
	}
	if len(s.input.DLoads) > 0 {
		lines = append(lines, "*DLOAD")
		for _, d := range s.input.DLoads {
			lines = append(lines, fmt.Sprintf("%s,%s,%e", d.Set, d.Label, d.Magnitude))
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
	r.RegisterStepKind("static", &registry.StepKind{
		NewInput: func() any { return new(Input) },
		Build: func(name string, input any) (model.LoadStep, error) {
			in, ok := input.(*Input)
			if !ok {
				return nil, fmt.Errorf("static step input has unexpected type %T", input)
			}
			return NewStep(name, *in)
		},
	})
}
