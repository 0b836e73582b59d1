package registry

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/simforge/ccxkit/internal/model"
)

// Module is the interface all material and step packages implement to hook
// their kinds into an application instance.
type Module interface {
	Register(r *Registry)
}

// MaterialKind binds a job-file material kind name to the Go code behind it.
type MaterialKind struct {
	// NewInput returns a fresh pointer to the kind's input struct, ready to
	// be decoded from a job-file block or a material-library entry.
	NewInput func() any
	// Build turns a decoded input into a named material.
	Build func(name string, input any) (model.Material, error)
}

// StepKind binds a job-file step kind name to the Go code behind it.
type StepKind struct {
	// NewInput returns a fresh pointer to the kind's input struct, ready to
	// be decoded from a job-file block.
	NewInput func() any
	// Build turns a decoded input into a named load step.
	Build func(name string, input any) (model.LoadStep, error)
}

// Registry holds the material and step kinds available to a single
// application instance. Job files and material libraries can only use kinds
// registered here, so the physics available at load time is exactly the set
// of modules compiled in.
type Registry struct {
	MaterialKinds map[string]*MaterialKind
	StepKinds     map[string]*StepKind
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		MaterialKinds: make(map[string]*MaterialKind),
		StepKinds:     make(map[string]*StepKind),
	}
}

// RegisterMaterialKind registers the material kind under name. Registering
// the same name twice is a programmer error and panics.
func (r *Registry) RegisterMaterialKind(name string, kind *MaterialKind) {
	if _, exists := r.MaterialKinds[name]; exists {
		panic(fmt.Sprintf("material kind '%s' already registered", name))
	}
	slog.Debug("Registering material kind.", "name", name)
	r.MaterialKinds[name] = kind
}

// RegisterStepKind registers the step kind under name. Registering the same
// name twice is a programmer error and panics.
func (r *Registry) RegisterStepKind(name string, kind *StepKind) {
	if _, exists := r.StepKinds[name]; exists {
		panic(fmt.Sprintf("step kind '%s' already registered", name))
	}
	slog.Debug("Registering step kind.", "name", name)
	r.StepKinds[name] = kind
}

// MaterialKindNames returns the registered material kind names, sorted for
// stable error messages.
func (r *Registry) MaterialKindNames() []string {
	names := make([]string, 0, len(r.MaterialKinds))
	for name := range r.MaterialKinds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// StepKindNames returns the registered step kind names, sorted for stable
// error messages.
func (r *Registry) StepKindNames() []string {
	names := make([]string, 0, len(r.StepKinds))
	for name := range r.StepKinds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
