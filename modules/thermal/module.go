// Package thermal provides the conductive solid material kind used by heat
// transfer analyses.
package thermal

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/simforge/ccxkit/internal/model"
	"github.com/simforge/ccxkit/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the properties of a 'thermal' material block. All three
// properties are required; a transient solution needs the full heat capacity
// and leaving one at zero silently degenerates the physics.
type Input struct {
	Conductivity float64 `hcl:"conductivity" yaml:"conductivity"`
	SpecificHeat float64 `hcl:"specific_heat" yaml:"specific_heat"`
	Density      float64 `hcl:"density" yaml:"density"`
}

// Material is a named conductive material definition.
type Material struct {
	name  string
	input Input
}

// NewMaterial returns the thermal material called name with the given
// properties.
func NewMaterial(name string, input Input) *Material {
	return &Material{name: name, input: input}
}

// Name returns the identifier material assignments refer to.
func (m *Material) Name() string {
	return m.name
}

// Validate reports whether the definition is physically usable.
func (m *Material) Validate() error {
	var result *multierror.Error
	if m.input.Conductivity <= 0 {
		result = multierror.Append(result, fmt.Errorf("conductivity must be positive, got %g", m.input.Conductivity))
	}
	if m.input.SpecificHeat <= 0 {
		result = multierror.Append(result, fmt.Errorf("specific heat must be positive, got %g", m.input.SpecificHeat))
	}
	if m.input.Density <= 0 {
		result = multierror.Append(result, fmt.Errorf("density must be positive, got %g", m.input.Density))
	}
	return result.ErrorOrNil()
}

// DeckLines renders the material card with its property cards.
func (m *Material) DeckLines() []string {
	return []string{
		fmt.Sprintf("*MATERIAL, NAME=%s", m.name),
		"*CONDUCTIVITY",
		fmt.Sprintf("%e", m.input.Conductivity),
		"*SPECIFIC HEAT",
		fmt.Sprintf("%e", m.input.SpecificHeat),
		"*DENSITY",
		fmt.Sprintf("%e", m.input.Density),
	}
}

// Register registers the material kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterMaterialKind("thermal", &registry.MaterialKind{
		NewInput: func() any { return new(Input) },
		Build: func(name string, input any) (model.Material, error) {
			in, ok := input.(*Input)
			if !ok {
				return nil, fmt.Errorf("thermal material input has unexpected type %T", input)
			}
			return NewMaterial(name, *in), nil
		},
	})
}
