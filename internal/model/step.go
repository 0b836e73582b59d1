package model

// LoadStep is one entry of the ordered load history. Implementations render
// a complete step block, from the opening directive to *END STEP.
type LoadStep interface {
	// Name returns the label the step was declared under.
	Name() string
	// DeckLines renders the step block, one line per entry.
	DeckLines() []string
}
