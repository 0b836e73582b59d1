// This file defines the Analysis structure, the root container for a single
// finite element study.
//
// Why one container?
//
// A solver run needs the mesh, the sets, the constraints, the materials and
// the load history to agree with each other. Aggregating them in one place
// gives the deck builder a single input and gives the run supervisor a single
// pre-flight gate before anything touches the filesystem.
package model

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Default physical constants stamped into every assembled deck. Each analysis
// carries its own copy, so jobs in other unit systems can override them.
const (
	// DefaultAbsoluteZero is the offset of the Celsius scale from absolute
	// zero.
	DefaultAbsoluteZero = -273.15
	// DefaultStefanBoltzmann is the radiation constant in W/(m^2 K^4).
	DefaultStefanBoltzmann = 5.669e-8
)

// Default stepping parameters for the solution.
const (
	DefaultInitialTimeStep = 0.1
	DefaultTimeStep        = 0.1
	DefaultTotalTime       = 1.0
)

// Analysis aggregates everything one solver input deck is assembled from.
type Analysis struct {
	Name string
	Type AnalysisType

	Mesh     MeshSource
	Includes []string

	NodeSets    []NodeSet
	ElementSets []ElementSet
	Connectors  []Connector
	MPCSets     []MPCSet

	Materials         []Material
	Assignments       []Assignment
	InitialConditions []InitialCondition

	Steps []LoadStep

	InitialTimeStep float64
	TimeStep        float64
	TotalTime       float64
	SteadyState     bool

	AbsoluteZero    float64
	StefanBoltzmann float64
}

// NewAnalysis returns an Analysis with the default stepping parameters, the
// default physical constants and a steady-state structural setup. The mesh
// source may be nil for set-only or include-driven models.
func NewAnalysis(mesh MeshSource) *Analysis {
	return &Analysis{
		Type:            Structural,
		Mesh:            mesh,
		InitialTimeStep: DefaultInitialTimeStep,
		TimeStep:        DefaultTimeStep,
		TotalTime:       DefaultTotalTime,
		SteadyState:     true,
		AbsoluteZero:    DefaultAbsoluteZero,
		StefanBoltzmann: DefaultStefanBoltzmann,
	}
}

// AddNodeSet registers a named node set. Names must be unique across the
// analysis because deck directives address sets by name.
func (a *Analysis) AddNodeSet(s NodeSet) error {
	if s.Name == "" {
		return fmt.Errorf("node set name must not be empty")
	}
	for _, existing := range a.NodeSets {
		if existing.Name == s.Name {
			return fmt.Errorf("duplicate node set %q", s.Name)
		}
	}
	a.NodeSets = append(a.NodeSets, s)
	return nil
}

// AddElementSet registers a named element set, enforcing name uniqueness.
func (a *Analysis) AddElementSet(s ElementSet) error {
	if s.Name == "" {
		return fmt.Errorf("element set name must not be empty")
	}
	for _, existing := range a.ElementSets {
		if existing.Name == s.Name {
			return fmt.Errorf("duplicate element set %q", s.Name)
		}
	}
	a.ElementSets = append(a.ElementSets, s)
	return nil
}

// AddConnector registers a kinematic connector, enforcing name uniqueness.
func (a *Analysis) AddConnector(c Connector) error {
	if c.Name == "" {
		return fmt.Errorf("connector name must not be empty")
	}
	for _, existing := range a.Connectors {
		if existing.Name == c.Name {
			return fmt.Errorf("duplicate connector %q", c.Name)
		}
	}
	a.Connectors = append(a.Connectors, c)
	return nil
}

// AddMaterial registers a material definition, enforcing name uniqueness.
// Physical validity is deferred to Validate so that partially built models
// can be assembled incrementally.
func (a *Analysis) AddMaterial(m Material) error {
	if m == nil || m.Name() == "" {
		return fmt.Errorf("material name must not be empty")
	}
	for _, existing := range a.Materials {
		if existing.Name() == m.Name() {
			return fmt.Errorf("duplicate material %q", m.Name())
		}
	}
	a.Materials = append(a.Materials, m)
	return nil
}

// Validate reports whether the analysis can be assembled and solved. All
// failures are collected so a user sees every problem at once. The gate
// covers the material list only: it fails when no materials are defined or
// when a material reports itself invalid. Referential integrity between
// assignments, sets and constraints is the solver's concern, not checked
// here.
func (a *Analysis) Validate() error {
	var result *multierror.Error

	if len(a.Materials) == 0 {
		result = multierror.Append(result, ErrNoMaterials)
	}
	for _, m := range a.Materials {
		if err := m.Validate(); err != nil {
			result = multierror.Append(result, &InvalidMaterialError{Material: m.Name(), Err: err})
		}
	}

	return result.ErrorOrNil()
}
