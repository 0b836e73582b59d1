// Package registry provides the central "glue" for the module system.
//
// The Registry stores mappings between the kind labels used in job files and
// material libraries (e.g., "elastic", "static") and the compiled Go code
// that decodes and builds them. Modules register their kinds during
// application startup; loaders resolve labels through the registry and fail
// with the list of available kinds when a label has no registration.
package registry
