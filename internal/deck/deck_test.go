package deck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/simforge/ccxkit/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMaterial struct {
	name  string
	lines []string
}

func (m fakeMaterial) Name() string        { return m.name }
func (m fakeMaterial) Validate() error     { return nil }
func (m fakeMaterial) DeckLines() []string { return m.lines }

type fakeStep struct {
	name  string
	lines []string
}

func (s fakeStep) Name() string        { return s.name }
func (s fakeStep) DeckLines() []string { return s.lines }

type staticMesh string

func (m staticMesh) WriteMesh(w io.Writer) error {
	_, err := io.WriteString(w, string(m))
	return err
}

type failingMesh struct{}

func (failingMesh) WriteMesh(io.Writer) error { return errors.New("disk full") }

func buildDeck(t *testing.T, a *model.Analysis) *Deck {
	t.Helper()
	d, err := NewBuilder(afero.NewMemMapFs(), "work").Build(context.Background(), a)
	require.NoError(t, err)
	return d
}

func TestBanner(t *testing.T) {
	line := banner(" INCLUDES ")

	assert.Len(t, line, bannerWidth)
	assert.Contains(t, line, " INCLUDES ")
	// Odd padding puts the extra asterisk on the right.
	assert.Equal(t, strings.Repeat("*", 57)+" INCLUDES "+strings.Repeat("*", 58), line)
}

func TestBuildSectionOrder(t *testing.T) {
	refNode := 99
	a := model.NewAnalysis(staticMesh("*NODE\n1, 0, 0, 0\n"))
	a.Includes = []string{"fixtures.inp"}
	require.NoError(t, a.AddNodeSet(model.NodeSet{Name: "fixed", Nodes: []int{1, 2}}))
	require.NoError(t, a.AddElementSet(model.ElementSet{Name: "body", Elements: []int{1}}))
	require.NoError(t, a.AddConnector(model.Connector{Name: "pin", Nodes: []int{5, 6}, RefNode: &refNode}))
	a.MPCSets = append(a.MPCSets, model.MPCSet{Name: "tie", Equations: []model.MPCEquation{
		{{Node: 28, DOF: 2, Coefficient: 1}, {Node: 22, DOF: 2, Coefficient: -1}},
	}})
	require.NoError(t, a.AddMaterial(fakeMaterial{name: "steel", lines: []string{"*MATERIAL, NAME=steel"}}))
	a.Assignments = append(a.Assignments, model.Assignment{ElementSet: "body", Material: "steel"})
	a.InitialConditions = append(a.InitialConditions, model.InitialCondition{Type: "temperature", Set: "fixed", Value: 293.15})
	a.Steps = append(a.Steps, fakeStep{name: "preload", lines: []string{"*STEP", "*END STEP"}})

	d := buildDeck(t, a)

	expected := []SectionKind{
		SectionIncludes,
		SectionMesh,
		SectionNodeSets,
		SectionElementSets,
		SectionConnectors,
		SectionMPCs,
		SectionMaterials,
		SectionAssignments,
		SectionInitialConditions,
		SectionAnalysisConditions,
		SectionLoadSteps,
	}
	assert.Equal(t, expected, d.Kinds())
}

func TestBuildEmptyAnalysisKeepsMandatorySections(t *testing.T) {
	d := buildDeck(t, model.NewAnalysis(nil))

	expected := []SectionKind{
		SectionIncludes,
		SectionMaterials,
		SectionAssignments,
		SectionInitialConditions,
		SectionAnalysisConditions,
	}
	assert.Equal(t, expected, d.Kinds())
}

func TestBuildIncludes(t *testing.T) {
	a := model.NewAnalysis(nil)
	a.Includes = []string{"common.inp", "fixtures.inp"}

	d := buildDeck(t, a)

	s, ok := d.Section(SectionIncludes)
	require.True(t, ok)
	assert.Equal(t, []string{"*include,input=common.inp", "*include,input=fixtures.inp"}, s.Lines)
}

func TestBuildPersistsMesh(t *testing.T) {
	fs := afero.NewMemMapFs()
	a := model.NewAnalysis(staticMesh("*NODE\n1, 0, 0, 0\n"))

	d, err := NewBuilder(fs, "work").Build(context.Background(), a)
	require.NoError(t, err)

	s, ok := d.Section(SectionMesh)
	require.True(t, ok)
	assert.Equal(t, []string{"*include,input=mesh.inp"}, s.Lines)

	content, err := afero.ReadFile(fs, "work/mesh.inp")
	require.NoError(t, err)
	assert.Equal(t, "*NODE\n1, 0, 0, 0\n", string(content))
}

func TestBuildMeshFailure(t *testing.T) {
	a := model.NewAnalysis(failingMesh{})

	_, err := NewBuilder(afero.NewMemMapFs(), "work").Build(context.Background(), a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestBuildWithoutMeshOmitsSection(t *testing.T) {
	d := buildDeck(t, model.NewAnalysis(nil))

	_, ok := d.Section(SectionMesh)
	assert.False(t, ok)
}

func TestNodeSetLinesChunking(t *testing.T) {
	nodes := make([]int, 20)
	for i := range nodes {
		nodes[i] = i + 1
	}
	a := model.NewAnalysis(nil)
	require.NoError(t, a.AddNodeSet(model.NodeSet{Name: "surface", Nodes: nodes}))

	d := buildDeck(t, a)

	s, ok := d.Section(SectionNodeSets)
	require.True(t, ok)
	require.Len(t, s.Lines, 3)
	assert.Equal(t, "*NSET,NSET=surface", s.Lines[0])
	assert.Equal(t, "1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16", s.Lines[1])
	assert.Equal(t, "17, 18, 19, 20", s.Lines[2])
}

func TestConnectorsDeriveNodeSets(t *testing.T) {
	refNode := 99
	a := model.NewAnalysis(nil)
	require.NoError(t, a.AddNodeSet(model.NodeSet{Name: "fixed", Nodes: []int{1}}))
	require.NoError(t, a.AddConnector(model.Connector{Name: "pin", Nodes: []int{5, 6}, RefNode: &refNode}))
	require.NoError(t, a.AddConnector(model.Connector{Name: "hinge", Nodes: []int{7}}))

	d := buildDeck(t, a)

	nodeSets, ok := d.Section(SectionNodeSets)
	require.True(t, ok)
	assert.Equal(t, []string{
		"*NSET,NSET=fixed",
		"1",
		"*NSET,NSET=connector_pin",
		"5, 6",
		"*NSET,NSET=connector_hinge",
		"7",
	}, nodeSets.Lines)

	connectors, ok := d.Section(SectionConnectors)
	require.True(t, ok)
	assert.Equal(t, []string{
		"*RIGIDBODY, NSET=connector_pin,REF NODE=99",
		"*RIGIDBODY, NSET=connector_hinge",
	}, connectors.Lines)
}

func TestMPCLines(t *testing.T) {
	a := model.NewAnalysis(nil)
	longEq := make(model.MPCEquation, 5)
	for i := range longEq {
		longEq[i] = model.MPCTerm{Node: 100 + i, DOF: 1, Coefficient: 0.5}
	}
	a.MPCSets = append(a.MPCSets, model.MPCSet{Name: "tie", Equations: []model.MPCEquation{
		{{Node: 28, DOF: 2, Coefficient: 1}, {Node: 22, DOF: 2, Coefficient: -1}},
		longEq,
	}})

	d := buildDeck(t, a)

	s, ok := d.Section(SectionMPCs)
	require.True(t, ok)
	assert.Equal(t, []string{
		"*EQUATION",
		"2",
		"28,2,1,22,2,-1",
		"5",
		"100,1,0.5,101,1,0.5,102,1,0.5,103,1,0.5",
		"104,1,0.5",
	}, s.Lines)
}

func TestMaterialAndAssignmentLines(t *testing.T) {
	a := model.NewAnalysis(nil)
	require.NoError(t, a.AddMaterial(fakeMaterial{name: "steel", lines: []string{"*MATERIAL, NAME=steel", "*ELASTIC", "2.100000e+11, 3.000000e-01"}}))
	a.Assignments = append(a.Assignments, model.Assignment{ElementSet: "body", Material: "steel"})

	d := buildDeck(t, a)

	materials, ok := d.Section(SectionMaterials)
	require.True(t, ok)
	assert.Equal(t, []string{"*MATERIAL, NAME=steel", "*ELASTIC", "2.100000e+11, 3.000000e-01"}, materials.Lines)

	assignments, ok := d.Section(SectionAssignments)
	require.True(t, ok)
	assert.Equal(t, []string{"*solid section, elset=body, material=steel"}, assignments.Lines)
}

func TestInitialConditionsAndPhysicalConstants(t *testing.T) {
	a := model.NewAnalysis(nil)
	a.InitialConditions = append(a.InitialConditions, model.InitialCondition{Type: "temperature", Set: "interior", Value: 293.15})

	d := buildDeck(t, a)

	s, ok := d.Section(SectionInitialConditions)
	require.True(t, ok)
	assert.Equal(t, []string{
		"*INITIAL CONDITIONS,TYPE=TEMPERATURE",
		"interior,2.931500e+02",
		"*PHYSICAL CONSTANTS,ABSOLUTE ZERO=-2.731500e+02,STEFAN BOLTZMANN=5.669000e-08",
	}, s.Lines)
}

func TestPhysicalConstantsAlwaysPresent(t *testing.T) {
	d := buildDeck(t, model.NewAnalysis(nil))

	s, ok := d.Section(SectionInitialConditions)
	require.True(t, ok)
	assert.Equal(t, []string{
		"*PHYSICAL CONSTANTS,ABSOLUTE ZERO=-2.731500e+02,STEFAN BOLTZMANN=5.669000e-08",
	}, s.Lines)
}

func TestPhysicalConstantsOverride(t *testing.T) {
	// An imperial-unit model: Rankine absolute zero in degF and the
	// Stefan-Boltzmann constant in BTU/(h ft^2 R^4).
	a := model.NewAnalysis(nil)
	a.AbsoluteZero = -459.67
	a.StefanBoltzmann = 1.714e-9

	d := buildDeck(t, a)

	s, ok := d.Section(SectionInitialConditions)
	require.True(t, ok)
	assert.Equal(t, []string{
		"*PHYSICAL CONSTANTS,ABSOLUTE ZERO=-4.596700e+02,STEFAN BOLTZMANN=1.714000e-09",
	}, s.Lines)
}

func TestAnalysisConditionLines(t *testing.T) {
	a := model.NewAnalysis(nil)

	d := buildDeck(t, a)

	s, ok := d.Section(SectionAnalysisConditions)
	require.True(t, ok)
	assert.Equal(t, []string{"0.100, 0.100"}, s.Lines)
}

func TestBuildIsRepeatable(t *testing.T) {
	refNode := 7
	a := model.NewAnalysis(nil)
	require.NoError(t, a.AddNodeSet(model.NodeSet{Name: "fixed", Nodes: []int{1, 2, 3}}))
	require.NoError(t, a.AddConnector(model.Connector{Name: "pin", Nodes: []int{4, 5}, RefNode: &refNode}))
	require.NoError(t, a.AddMaterial(fakeMaterial{name: "steel", lines: []string{"*MATERIAL, NAME=steel"}}))

	builder := NewBuilder(afero.NewMemMapFs(), "work")
	first, err := builder.Build(context.Background(), a)
	require.NoError(t, err)
	second, err := builder.Build(context.Background(), a)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first.Render(), second.Render()))
	// Derived connector sets never leak back into the analysis.
	assert.Len(t, a.NodeSets, 1)
}

func TestRenderLayout(t *testing.T) {
	a := model.NewAnalysis(nil)
	a.Includes = []string{"common.inp"}
	require.NoError(t, a.AddMaterial(fakeMaterial{name: "steel", lines: []string{"*MATERIAL, NAME=steel"}}))

	text := buildDeck(t, a).Render()

	require.True(t, strings.HasSuffix(text, "\n"))
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	assert.Equal(t, banner(" INCLUDES "), lines[0])
	assert.Equal(t, "*include,input=common.inp", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, banner(" MATERIALS "), lines[3])
	assert.Equal(t, "*MATERIAL, NAME=steel", lines[4])

	for _, title := range []string{" MATERIALS ", " MATERIAL ASSIGNMENTS ", " INITIAL CONDITIONS ", " ANALYSIS CONDITIONS "} {
		assert.Contains(t, text, banner(title), "missing banner for %s", title)
	}
	for _, title := range []string{" NODE SETS ", " ELEMENT SETS ", " KINEMATIC CONNECTORS ", " MPCS ", " LOAD STEPS "} {
		assert.NotContains(t, text, banner(title), "unexpected banner for %s", title)
	}
}

func TestWriteToMatchesRender(t *testing.T) {
	a := model.NewAnalysis(nil)
	require.NoError(t, a.AddMaterial(fakeMaterial{name: "steel", lines: []string{"*MATERIAL, NAME=steel"}}))
	d := buildDeck(t, a)

	var sb strings.Builder
	n, err := d.WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, d.Render(), sb.String())
	assert.Equal(t, int64(len(sb.String())), n)
}

func TestSectionKindString(t *testing.T) {
	assert.Equal(t, "node_sets", SectionNodeSets.String())
	assert.Equal(t, fmt.Sprintf("SectionKind(%d)", 42), SectionKind(42).String())
}
