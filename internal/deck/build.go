// This file holds the Builder, which turns an Analysis into a Deck.
//
// Derived artifacts stay build-scoped on purpose: the node sets a connector
// needs are computed inside Build and never written back into the analysis,
// so assembling the same model twice yields byte-identical decks.
package deck

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/simforge/ccxkit/internal/ctxlog"
	"github.com/simforge/ccxkit/internal/model"
	"github.com/spf13/afero"
)

// MeshFileName is the file the builder persists the mesh into, next to the
// deck, so the rendered include can reference it by relative path.
const MeshFileName = "mesh.inp"

// Builder assembles decks for one working directory.
type Builder struct {
	fs  afero.Fs
	dir string
}

// NewBuilder returns a Builder that persists mesh content into dir on fs.
func NewBuilder(fs afero.Fs, dir string) *Builder {
	return &Builder{fs: fs, dir: dir}
}

// Build assembles the deck for the analysis. When the analysis carries a mesh
// source its content is streamed to MeshFileName in the builder's directory;
// nothing else touches the filesystem.
func (b *Builder) Build(ctx context.Context, a *model.Analysis) (*Deck, error) {
	logger := ctxlog.FromContext(ctx)

	d := &Deck{}
	add := func(kind SectionKind, lines []string) {
		d.Sections = append(d.Sections, Section{Kind: kind, Lines: lines})
	}

	add(SectionIncludes, includeLines(a.Includes))

	if a.Mesh != nil {
		if err := b.persistMesh(a.Mesh); err != nil {
			return nil, fmt.Errorf("persisting mesh: %w", err)
		}
		add(SectionMesh, []string{includeLine(MeshFileName)})
	}

	if lines := nodeSetLines(a.NodeSets, a.Connectors); len(lines) > 0 {
		add(SectionNodeSets, lines)
	}
	if lines := elementSetLines(a.ElementSets); len(lines) > 0 {
		add(SectionElementSets, lines)
	}
	if lines := connectorLines(a.Connectors); len(lines) > 0 {
		add(SectionConnectors, lines)
	}
	if lines := mpcLines(a.MPCSets); len(lines) > 0 {
		add(SectionMPCs, lines)
	}

	add(SectionMaterials, materialLines(a.Materials))
	add(SectionAssignments, assignmentLines(a.Assignments))
	add(SectionInitialConditions, initialConditionLines(a))
	add(SectionAnalysisConditions, analysisConditionLines(a))

	if lines := loadStepLines(a.Steps); len(lines) > 0 {
		add(SectionLoadSteps, lines)
	}

	logger.Debug("Assembled input deck.",
		"analysis", a.Name,
		"sections", len(d.Sections),
		"materials", len(a.Materials),
		"steps", len(a.Steps),
	)
	return d, nil
}

// persistMesh streams the mesh source into the builder's directory.
func (b *Builder) persistMesh(src model.MeshSource) error {
	path := filepath.Join(b.dir, MeshFileName)
	f, err := b.fs.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := src.WriteMesh(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func includeLine(filename string) string {
	return fmt.Sprintf("*include,input=%s", filename)
}

func includeLines(includes []string) []string {
	lines := make([]string, 0, len(includes))
	for _, filename := range includes {
		lines = append(lines, includeLine(filename))
	}
	return lines
}

// nodeSetLines renders the explicit node sets followed by the sets derived
// for connectors.
func nodeSetLines(sets []model.NodeSet, connectors []model.Connector) []string {
	var lines []string
	emit := func(name string, nodes []int) {
		lines = append(lines, fmt.Sprintf("*NSET,NSET=%s", name))
		lines = append(lines, idLines(nodes)...)
	}
	for _, s := range sets {
		emit(s.Name, s.Nodes)
	}
	for _, c := range connectors {
		emit(c.SetName(), c.Nodes)
	}
	return lines
}

func elementSetLines(sets []model.ElementSet) []string {
	var lines []string
	for _, s := range sets {
		lines = append(lines, fmt.Sprintf("*ELSET,ELSET=%s", s.Name))
		lines = append(lines, idLines(s.Elements)...)
	}
	return lines
}

// connectorLines renders one rigid body directive per connector, addressing
// the node set derived for it.
func connectorLines(connectors []model.Connector) []string {
	lines := make([]string, 0, len(connectors))
	for _, c := range connectors {
		line := fmt.Sprintf("*RIGIDBODY, NSET=%s", c.SetName())
		if c.RefNode != nil {
			line += fmt.Sprintf(",REF NODE=%d", *c.RefNode)
		}
		lines = append(lines, line)
	}
	return lines
}

// mpcLines renders each group as an *EQUATION block: every equation opens
// with its term count, then the node, dof, coefficient triples follow.
func mpcLines(sets []model.MPCSet) []string {
	var lines []string
	for _, set := range sets {
		lines = append(lines, "*EQUATION")
		for _, eq := range set.Equations {
			lines = append(lines, strconv.Itoa(len(eq)))
			for start := 0; start < len(eq); start += termsPerLine {
				end := min(start+termsPerLine, len(eq))
				parts := make([]string, 0, (end-start)*3)
				for _, term := range eq[start:end] {
					parts = append(parts,
						strconv.Itoa(term.Node),
						strconv.Itoa(term.DOF),
						formatCoefficient(term.Coefficient),
					)
				}
				lines = append(lines, strings.Join(parts, ","))
			}
		}
	}
	return lines
}

func materialLines(materials []model.Material) []string {
	var lines []string
	for _, m := range materials {
		lines = append(lines, m.DeckLines()...)
	}
	return lines
}

func assignmentLines(assignments []model.Assignment) []string {
	lines := make([]string, 0, len(assignments))
	for _, as := range assignments {
		lines = append(lines, fmt.Sprintf("*solid section, elset=%s, material=%s", as.ElementSet, as.Material))
	}
	return lines
}

// initialConditionLines renders the initial conditions and closes with the
// analysis's physical constants, which are stamped into every deck.
func initialConditionLines(a *model.Analysis) []string {
	lines := make([]string, 0, len(a.InitialConditions)*2+1)
	for _, ic := range a.InitialConditions {
		lines = append(lines, fmt.Sprintf("*INITIAL CONDITIONS,TYPE=%s", strings.ToUpper(ic.Type)))
		lines = append(lines, fmt.Sprintf("%s,%e", ic.Set, ic.Value))
	}
	lines = append(lines, fmt.Sprintf("*PHYSICAL CONSTANTS,ABSOLUTE ZERO=%e,STEFAN BOLTZMANN=%e",
		a.AbsoluteZero, a.StefanBoltzmann))
	return lines
}

func analysisConditionLines(a *model.Analysis) []string {
	return []string{fmt.Sprintf("%.3f, %.3f", a.InitialTimeStep, a.TimeStep)}
}

func loadStepLines(steps []model.LoadStep) []string {
	var lines []string
	for _, s := range steps {
		lines = append(lines, s.DeckLines()...)
	}
	return lines
}
