package model

import (
	"fmt"
	"strings"
)

// AnalysisType identifies the physics family a model is solved for.
type AnalysisType int

const (
	// Structural resolves displacements and stresses.
	Structural AnalysisType = iota + 1
	// Thermal resolves temperature fields.
	Thermal
	// Fluid resolves flow fields.
	Fluid
)

var analysisTypeNames = map[AnalysisType]string{
	Structural: "structural",
	Thermal:    "thermal",
	Fluid:      "fluid",
}

func (t AnalysisType) String() string {
	if name, ok := analysisTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("AnalysisType(%d)", int(t))
}

// ParseAnalysisType maps a case-insensitive name onto an AnalysisType.
func ParseAnalysisType(s string) (AnalysisType, error) {
	for t, name := range analysisTypeNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown analysis type %q", s)
}
