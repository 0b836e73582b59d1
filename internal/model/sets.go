package model

// NodeSet names a group of mesh node ids so that boundary conditions and
// constraints can address them together.
type NodeSet struct {
	Name  string
	Nodes []int
}

// ElementSet names a group of mesh element ids, typically the target of a
// material assignment or a distributed load.
type ElementSet struct {
	Name     string
	Elements []int
}
