// This file translates decoded job-file schema structs into the model types
// the deck builder and solver consume.

package jobfile

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/simforge/ccxkit/internal/ctxlog"
	"github.com/simforge/ccxkit/internal/model"
)

// translate merges the decoded file roots into one Analysis. Exactly one
// settings block is allowed across the whole job; everything else accumulates
// in file order.
func (l *Loader) translate(ctx context.Context, path string, files []string, roots []*fileRoot, evalCtx *hcl.EvalContext) (*model.Analysis, error) {
	var settings *settingsBlock
	for i, root := range roots {
		for _, s := range root.Settings {
			if settings != nil {
				return nil, fmt.Errorf("job defines more than one settings block (second one in %s)", files[i])
			}
			settings = s
		}
	}

	analysis := model.NewAnalysis(l.meshSource(settings))
	analysis.Name = jobName(path, settings)
	if err := applySettings(analysis, settings); err != nil {
		return nil, err
	}

	for i, root := range roots {
		if err := l.translateRoot(ctx, analysis, root, evalCtx); err != nil {
			return nil, fmt.Errorf("in job file %s: %w", files[i], err)
		}
	}

	if err := checkDerivedSetNames(analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

// checkDerivedSetNames rejects jobs where a connector's derived node set
// would shadow an explicit one. The deck would render two sets under one name
// and the solver would silently merge them. Checked across the whole job, not
// per file, because sets and connectors accumulate over all files.
func checkDerivedSetNames(a *model.Analysis) error {
	names := make(map[string]bool, len(a.NodeSets))
	for _, s := range a.NodeSets {
		names[s.Name] = true
	}
	for _, c := range a.Connectors {
		if names[c.SetName()] {
			return fmt.Errorf("connector %q derives node set %q which collides with an explicit node set", c.Name, c.SetName())
		}
	}
	return nil
}

// applySettings copies the declared scalars over the analysis defaults.
func applySettings(a *model.Analysis, s *settingsBlock) error {
	if s == nil {
		return nil
	}
	if s.Type != "" {
		t, err := model.ParseAnalysisType(s.Type)
		if err != nil {
			return err
		}
		a.Type = t
	}
	a.Includes = append(a.Includes, s.Includes...)
	if s.InitialTimeStep != nil {
		a.InitialTimeStep = *s.InitialTimeStep
	}
	if s.TimeStep != nil {
		a.TimeStep = *s.TimeStep
	}
	if s.TotalTime != nil {
		a.TotalTime = *s.TotalTime
	}
	if s.SteadyState != nil {
		a.SteadyState = *s.SteadyState
	}
	if s.AbsoluteZero != nil {
		a.AbsoluteZero = *s.AbsoluteZero
	}
	if s.StefanBoltzmann != nil {
		a.StefanBoltzmann = *s.StefanBoltzmann
	}
	return nil
}

// translateRoot appends every block of one decoded file to the analysis.
func (l *Loader) translateRoot(ctx context.Context, a *model.Analysis, root *fileRoot, evalCtx *hcl.EvalContext) error {
	for _, b := range root.NodeSets {
		if err := a.AddNodeSet(model.NodeSet{Name: b.Name, Nodes: b.Nodes}); err != nil {
			return err
		}
	}
	for _, b := range root.ElementSets {
		if err := a.AddElementSet(model.ElementSet{Name: b.Name, Elements: b.Elements}); err != nil {
			return err
		}
	}
	for _, b := range root.Connectors {
		if err := a.AddConnector(model.Connector{Name: b.Name, Nodes: b.Nodes, RefNode: b.RefNode}); err != nil {
			return err
		}
	}
	for _, b := range root.MPCs {
		a.MPCSets = append(a.MPCSets, translateMPC(b))
	}
	for _, b := range root.Materials {
		m, err := l.translateMaterial(ctx, b, evalCtx)
		if err != nil {
			return err
		}
		if err := a.AddMaterial(m); err != nil {
			return err
		}
	}
	for _, b := range root.Sections {
		a.Assignments = append(a.Assignments, model.Assignment{ElementSet: b.ElementSet, Material: b.Material})
	}
	for _, b := range root.InitialConditions {
		a.InitialConditions = append(a.InitialConditions, model.InitialCondition{Type: b.Type, Set: b.Set, Value: b.Value})
	}
	for _, b := range root.Steps {
		s, err := l.translateStep(ctx, b, evalCtx)
		if err != nil {
			return err
		}
		a.Steps = append(a.Steps, s)
	}
	return nil
}

// translateMPC converts an mpc block into a model constraint set.
func translateMPC(b *mpcBlock) model.MPCSet {
	set := model.MPCSet{Name: b.Name}
	for _, eq := range b.Equations {
		equation := make(model.MPCEquation, 0, len(eq.Terms))
		for _, t := range eq.Terms {
			equation = append(equation, model.MPCTerm{Node: t.Node, DOF: t.DOF, Coefficient: t.Coefficient})
		}
		set.Equations = append(set.Equations, equation)
	}
	return set
}

// translateMaterial decodes the block body against the registered kind's
// input schema and builds the material from it.
func (l *Loader) translateMaterial(ctx context.Context, b *materialBlock, evalCtx *hcl.EvalContext) (model.Material, error) {
	logger := ctxlog.FromContext(ctx).With("material_kind", b.Kind, "material_name", b.Name)
	logger.Debug("Translating material block.")

	kind, ok := l.reg.MaterialKinds[b.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown material kind %q (available: %s)", b.Kind, strings.Join(l.reg.MaterialKindNames(), ", "))
	}

	input := kind.NewInput()
	if diags := gohcl.DecodeBody(b.Body, evalCtx, input); diags.HasErrors() {
		return nil, fmt.Errorf("decoding material %q: %w", b.Name, diags)
	}
	return kind.Build(b.Name, input)
}

// translateStep decodes the block body against the registered kind's input
// schema and builds the load step from it.
func (l *Loader) translateStep(ctx context.Context, b *stepBlock, evalCtx *hcl.EvalContext) (model.LoadStep, error) {
	logger := ctxlog.FromContext(ctx).With("step_kind", b.Kind, "step_name", b.Name)
	logger.Debug("Translating step block.")

	kind, ok := l.reg.StepKinds[b.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown step kind %q (available: %s)", b.Kind, strings.Join(l.reg.StepKindNames(), ", "))
	}

	input := kind.NewInput()
	if diags := gohcl.DecodeBody(b.Body, evalCtx, input); diags.HasErrors() {
		return nil, fmt.Errorf("decoding step %q: %w", b.Name, diags)
	}
	return kind.Build(b.Name, input)
}
