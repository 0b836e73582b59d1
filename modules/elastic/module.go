// Package elastic provides the linear elastic solid material kind, the
// default for structural analyses.
package elastic

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/simforge/ccxkit/internal/model"
	"github.com/simforge/ccxkit/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the properties of an 'elastic' material block. The tags keep
// job-file blocks and material-library entries decoding into the same struct.
type Input struct {
	// ElasticModulus is Young's modulus in the model's stress units.
	ElasticModulus float64 `hcl:"elastic_modulus" yaml:"elastic_modulus"`
	// PoissonRatio is the lateral contraction ratio, below 0.5.
	PoissonRatio float64 `hcl:"poisson_ratio" yaml:"poisson_ratio"`
	// Density is optional; it only matters under gravity or inertia loads.
	Density float64 `hcl:"density,optional" yaml:"density"`
	// Expansion is the optional thermal expansion coefficient.
	Expansion float64 `hcl:"expansion,optional" yaml:"expansion"`
}

// Material is a named linear elastic material definition.
type Material struct {
	name  string
	input Input
}

// NewMaterial returns the elastic material called name with the given
// properties. Physical validity is checked by Validate, not here, so
// incomplete definitions can be held while a model is assembled.
func NewMaterial(name string, input Input) *Material {
	return &Material{name: name, input: input}
}

// Name returns the identifier material assignments refer to.
func (m *Material) Name() string {
	return m.name
}

// Validate reports whether the definition is physically usable. All problems
// are collected so a bad material is fixed in one pass.
func (m *Material) Validate() error {
	var result *multierror.Error
	if m.input.ElasticModulus <= 0 {
		result = multierror.Append(result, fmt.Errorf("elastic modulus must be positive, got %g", m.input.ElasticModulus))
	}
	if m.input.PoissonRatio < 0 || m.input.PoissonRatio >= 0.5 {
		result = multierror.Append(result, fmt.Errorf("poisson ratio must be in [0, 0.5), got %g", m.input.PoissonRatio))
	}
	if m.input.Density < 0 {
		result = multierror.Append(result, fmt.Errorf("density must not be negative, got %g", m.input.Density))
	}
	if m.input.Expansion < 0 {
		result = multierror.Append(result, fmt.Errorf("expansion coefficient must not be negative, got %g", m.input.Expansion))
	}
	return result.ErrorOrNil()
}

// DeckLines renders the material card with its property cards. Optional
// properties are omitted entirely rather than written as zeros.
func (m *Material) DeckLines() []string {
	lines := []string{
		fmt.Sprintf("*MATERIAL, NAME=%s", m.name),
		"*ELASTIC",
		fmt.Sprintf("%e, %e", m.input.ElasticModulus, m.input.PoissonRatio),
	}
	if m.input.Density > 0 {
		lines = append(lines, "*DENSITY", fmt.Sprintf("%e", m.input.Density))
	}
	if m.input.Expansion > 0 {
		lines = append(lines, "*EXPANSION", fmt.Sprintf("%e", m.input.Expansion))
	}
	return lines
}

// Register registers the material kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterMaterialKind("elastic", &registry.MaterialKind{
		NewInput: func() any { return new(Input) },
		Build: func(name string, input any) (model.Material, error) {
			in, ok := input.(*Input)
			if !ok {
				return nil, fmt.Errorf("elastic material input has unexpected type %T", input)
			}
			return NewMaterial(name, *in), nil
		},
	})
}
