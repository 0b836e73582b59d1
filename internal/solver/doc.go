// Package solver supervises the external CalculiX executable. It owns the
// run protocol: validate the analysis, gate on the platform, persist the deck
// and mesh into the working directory, export the thread environment and
// spawn the solver, streaming its output line by line while keeping a bounded
// tail for error reports.
//
// The solver binary itself is only ever invoked on Windows; on every other
// platform a run stops at the gate with an UnsupportedPlatformError before
// anything is written. Deck assembly stays testable everywhere because it
// lives in the deck package, beneath the gate.
package solver
