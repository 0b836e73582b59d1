package model

import (
	"errors"
	"fmt"
)

// ErrNoMaterials is returned by Validate when an analysis reaches assembly
// with no material definitions at all.
var ErrNoMaterials = errors.New("analysis defines no materials")

// InvalidMaterialError reports a material that failed its own validation.
type InvalidMaterialError struct {
	Material string
	Err      error
}

func (e *InvalidMaterialError) Error() string {
	return fmt.Sprintf("material %q is invalid: %v", e.Material, e.Err)
}

func (e *InvalidMaterialError) Unwrap() error {
	return e.Err
}
