// This file defines the Material contract and the assignment that binds a
// material to an element set.
//
// Why an interface?
//
// The model does not know which physical properties a material carries; an
// elastic solid and a thermal conductor share nothing but a name and the
// ability to render themselves. Concrete material kinds live in the modules
// tree and register themselves with the kind registry, so new physics can be
// added without touching the model or the deck builder.
package model

// Material is a named physical material that renders its own deck lines.
type Material interface {
	// Name returns the identifier material assignments refer to.
	Name() string
	// Validate reports whether the definition is physically usable.
	Validate() error
	// DeckLines renders the material card sequence, one directive or data
	// line per entry.
	DeckLines() []string
}

// Assignment binds a material to the elements of one element set.
type Assignment struct {
	ElementSet string
	Material   string
}
