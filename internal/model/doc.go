// Package model provides the in-memory representation of a finite element
// analysis: the mesh reference, named node and element sets, constraints,
// materials, initial conditions and the ordered load history.
//
// # Core Concepts
//
//   - Analysis: The root container. It aggregates everything a solver input
//     deck is assembled from and owns the stepping parameters and physical
//     constants of the solution.
//
//   - Material and LoadStep: Interfaces rather than structs. Concrete physics
//     live in the modules tree; the model only requires that a material can
//     name itself, validate itself and render its own deck lines.
//
//   - MeshSource: The mesh is never parsed or held in memory. The model keeps
//     a source that can stream the mesh file content on demand, and the deck
//     references it with an include directive.
//
// Why a separate model package?
//
// The model is deliberately ignorant of input formats and of the solver
// binary. Job files are decoded into it by the jobfile package, material
// libraries by the matlib package, and the deck and solver packages consume
// it. Keeping the model free of decoding and process concerns means the
// assembly rules can be validated and tested without touching the filesystem
// or spawning anything.
package model
