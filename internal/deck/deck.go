package deck

import (
	"io"
	"strings"
)

// Deck is an assembled solver input deck: the ordered sections ready to be
// rendered into the input file.
type Deck struct {
	Sections []Section
}

// Section returns the section of the given kind if the deck contains it.
func (d *Deck) Section(kind SectionKind) (Section, bool) {
	for _, s := range d.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// Kinds returns the section kinds present, in deck order.
func (d *Deck) Kinds() []SectionKind {
	kinds := make([]SectionKind, 0, len(d.Sections))
	for _, s := range d.Sections {
		kinds = append(kinds, s.Kind)
	}
	return kinds
}

// WriteTo streams the rendered deck to w line by line. Sections are separated
// by a blank line and open with their banner when they have one.
func (d *Deck) WriteTo(w io.Writer) (int64, error) {
	var written int64
	writeLine := func(line string) error {
		n, err := io.WriteString(w, line)
		written += int64(n)
		if err != nil {
			return err
		}
		n, err = io.WriteString(w, "\n")
		written += int64(n)
		return err
	}

	for i, s := range d.Sections {
		if i > 0 {
			if err := writeLine(""); err != nil {
				return written, err
			}
		}
		if title, ok := sectionTitles[s.Kind]; ok {
			if err := writeLine(banner(title)); err != nil {
				return written, err
			}
		}
		for _, line := range s.Lines {
			if err := writeLine(line); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

// Render returns the full deck text. Large decks are better streamed with
// WriteTo; Render exists for tests and logging.
func (d *Deck) Render() string {
	var sb strings.Builder
	_, _ = d.WriteTo(&sb)
	return sb.String()
}
