package numberbox

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// splitGraphemes returns the grapheme clusters of s. Caret offsets reported
// by the controller index into this slice.
func splitGraphemes(s string) []string {
	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		out = append(out, cluster)
		s = rest
		state = newState
	}
	return out
}

// graphemeAtCell converts a display column to the grapheme index whose
// cells cover it. Columns past the end of s map to the grapheme count.
func graphemeAtCell(s string, col int) int {
	if col <= 0 {
		return 0
	}

	idx := 0
	x := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		w := runewidth.StringWidth(cluster)
		if col < x+w {
			return idx
		}
		x += w
		idx++
		s = rest
		state = newState
	}
	return idx
}

// displayWidth returns the width of s in terminal cells.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}
