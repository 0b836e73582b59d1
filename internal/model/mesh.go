package model

import "io"

// MeshSource supplies the mesh definition that the assembled deck pulls in by
// include reference. Sources stream rather than buffer because production
// meshes routinely run to hundreds of megabytes.
type MeshSource interface {
	WriteMesh(w io.Writer) error
}
