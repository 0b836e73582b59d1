package jobfile

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is the schema every job file is decoded against. There is no
// remain body at the top level: a block kind the schema does not know is a
// load error, not silent noise.
type fileRoot struct {
	Settings          []*settingsBlock         `hcl:"settings,block"`
	NodeSets          []*nodeSetBlock          `hcl:"node_set,block"`
	ElementSets       []*elementSetBlock       `hcl:"element_set,block"`
	Connectors        []*connectorBlock        `hcl:"connector,block"`
	MPCs              []*mpcBlock              `hcl:"mpc,block"`
	Materials         []*materialBlock         `hcl:"material,block"`
	Sections          []*sectionBlock          `hcl:"section,block"`
	InitialConditions []*initialConditionBlock `hcl:"initial_condition,block"`
	Steps             []*stepBlock             `hcl:"step,block"`
}

// settingsBlock carries the per-analysis scalars. A job may define at most
// one, regardless of how many files it is split across.
type settingsBlock struct {
	Name            string   `hcl:"name,optional"`
	Type            string   `hcl:"type,optional"`
	Mesh            string   `hcl:"mesh,optional"`
	Includes        []string `hcl:"includes,optional"`
	InitialTimeStep *float64 `hcl:"initial_time_step,optional"`
	TimeStep        *float64 `hcl:"time_step,optional"`
	TotalTime       *float64 `hcl:"total_time,optional"`
	SteadyState     *bool    `hcl:"steady_state,optional"`
	AbsoluteZero    *float64 `hcl:"absolute_zero,optional"`
	StefanBoltzmann *float64 `hcl:"stefan_boltzmann,optional"`
}

// nodeSetBlock represents a `node_set "<name>"` block.
type nodeSetBlock struct {
	Name  string `hcl:"name,label"`
	Nodes []int  `hcl:"nodes"`
}

// elementSetBlock represents an `element_set "<name>"` block.
type elementSetBlock struct {
	Name     string `hcl:"name,label"`
	Elements []int  `hcl:"elements"`
}

// connectorBlock represents a `connector "<name>"` block.
type connectorBlock struct {
	Name    string `hcl:"name,label"`
	Nodes   []int  `hcl:"nodes"`
	RefNode *int   `hcl:"ref_node,optional"`
}

// mpcTerm is one node/degree-of-freedom entry of a constraint equation. The
// cty tags bind the object keys users write in term lists.
type mpcTerm struct {
	Node        int     `cty:"node"`
	DOF         int     `cty:"dof"`
	Coefficient float64 `cty:"coefficient"`
}

// equationBlock represents one `equation` block inside an mpc block.
type equationBlock struct {
	Terms []mpcTerm `hcl:"terms"`
}

// mpcBlock represents an `mpc "<name>"` block grouping constraint equations.
type mpcBlock struct {
	Name      string           `hcl:"name,label"`
	Equations []*equationBlock `hcl:"equation,block"`
}

// materialBlock represents a `material "<kind>" "<name>"` block. The body is
// kept opaque here and decoded later against the input schema of the
// registered kind.
type materialBlock struct {
	Kind string   `hcl:"kind,label"`
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// sectionBlock represents a `section "<element_set>"` block assigning a
// material to the elements of the labelled set.
type sectionBlock struct {
	ElementSet string `hcl:"element_set,label"`
	Material   string `hcl:"material"`
}

// initialConditionBlock represents an `initial_condition` block.
type initialConditionBlock struct {
	Type  string  `hcl:"type"`
	Set   string  `hcl:"set"`
	Value float64 `hcl:"value"`
}

// stepBlock represents a `step "<kind>" "<name>"` block. Like materials, the
// body is decoded against the registered kind's input schema.
type stepBlock struct {
	Kind string   `hcl:"kind,label"`
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}
