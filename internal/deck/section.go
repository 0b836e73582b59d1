package deck

import "fmt"

// SectionKind identifies one concern of the assembled deck. The declaration
// order below is the order sections appear in the rendered output.
type SectionKind int

const (
	SectionIncludes SectionKind = iota
	SectionMesh
	SectionNodeSets
	SectionElementSets
	SectionConnectors
	SectionMPCs
	SectionMaterials
	SectionAssignments
	SectionInitialConditions
	SectionAnalysisConditions
	SectionLoadSteps
)

var sectionNames = map[SectionKind]string{
	SectionIncludes:           "includes",
	SectionMesh:               "mesh",
	SectionNodeSets:           "node_sets",
	SectionElementSets:        "element_sets",
	SectionConnectors:         "connectors",
	SectionMPCs:               "mpcs",
	SectionMaterials:          "materials",
	SectionAssignments:        "assignments",
	SectionInitialConditions:  "initial_conditions",
	SectionAnalysisConditions: "analysis_conditions",
	SectionLoadSteps:          "load_steps",
}

// sectionTitles carries the human readable banner for each section. The mesh
// section has no banner; its include directive follows the includes block
// directly.
var sectionTitles = map[SectionKind]string{
	SectionIncludes:           " INCLUDES ",
	SectionNodeSets:           " NODE SETS ",
	SectionElementSets:        " ELEMENT SETS ",
	SectionConnectors:         " KINEMATIC CONNECTORS ",
	SectionMPCs:               " MPCS ",
	SectionMaterials:          " MATERIALS ",
	SectionAssignments:        " MATERIAL ASSIGNMENTS ",
	SectionInitialConditions:  " INITIAL CONDITIONS ",
	SectionAnalysisConditions: " ANALYSIS CONDITIONS ",
	SectionLoadSteps:          " LOAD STEPS ",
}

func (k SectionKind) String() string {
	if name, ok := sectionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SectionKind(%d)", int(k))
}

// Section is one assembled concern: its kind and the final text lines, in
// order, without trailing newlines.
type Section struct {
	Kind  SectionKind
	Lines []string
}
