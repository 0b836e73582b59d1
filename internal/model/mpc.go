package model

// MPCTerm is one node and degree-of-freedom entry of a linear constraint
// equation, scaled by its coefficient.
type MPCTerm struct {
	Node        int
	DOF         int
	Coefficient float64
}

// MPCEquation is an ordered list of terms constrained to sum to zero. The
// first term's degree of freedom is the one eliminated by the solver.
type MPCEquation []MPCTerm

// MPCSet groups related constraint equations under one name.
type MPCSet struct {
	Name      string
	Equations []MPCEquation
}
