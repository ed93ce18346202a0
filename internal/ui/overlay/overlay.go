// Package overlay draws popup content on top of an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Anchor is the top-left cell the popup is drawn at.
type Anchor struct {
	X int
	Y int
}

// Below anchors a popup under the last line of view, indented by x cells.
func Below(view string, x int) Anchor {
	return Anchor{X: x, Y: lipgloss.Height(view)}
}

// Place renders fg on top of bg with its top-left corner at a.
// ANSI styling in both layers is preserved. The background grows with
// blank lines when the popup extends past its last line.
func Place(a Anchor, fg, bg string) string {
	x, y := max(a.X, 0), max(a.Y, 0)
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for len(bgLines) < y+len(fgLines) {
		bgLines = append(bgLines, "")
	}

	for i, fgLine := range fgLines {
		bgLine := bgLines[y+i]

		left := ansi.Truncate(bgLine, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		var right string
		if end := x + ansi.StringWidth(fgLine); end < ansi.StringWidth(bgLine) {
			right = ansi.TruncateLeft(bgLine, end, "")
		}

		bgLines[y+i] = left + fgLine + right
	}

	return strings.Join(bgLines, "\n")
}
