package deck

import (
	"strconv"
	"strings"
)

// bannerWidth is the full width of a section banner line.
const bannerWidth = 125

// idsPerLine bounds how many set ids one data line carries. The solver
// accepts at most sixteen entries per input line.
const idsPerLine = 16

// termsPerLine bounds how many equation terms one data line carries, three
// entries each, within the same sixteen-entry line limit.
const termsPerLine = 4

// banner centers title in a full width line of asterisks. Odd padding puts
// the extra character on the right.
func banner(title string) string {
	pad := bannerWidth - len(title)
	if pad <= 0 {
		return title
	}
	left := pad / 2
	return strings.Repeat("*", left) + title + strings.Repeat("*", pad-left)
}

// idLines renders ids as comma separated data lines.
func idLines(ids []int) []string {
	if len(ids) == 0 {
		return nil
	}
	lines := make([]string, 0, (len(ids)+idsPerLine-1)/idsPerLine)
	for start := 0; start < len(ids); start += idsPerLine {
		end := min(start+idsPerLine, len(ids))
		parts := make([]string, 0, end-start)
		for _, id := range ids[start:end] {
			parts = append(parts, strconv.Itoa(id))
		}
		lines = append(lines, strings.Join(parts, ", "))
	}
	return lines
}

// formatCoefficient renders an equation coefficient in the shortest exact
// decimal form.
func formatCoefficient(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
