package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlace_PreservesBackgroundOnSides(t *testing.T) {
	bg := "ABCDE\nFGHIJ\nKLMNO"

	result := Place(Anchor{X: 2, Y: 1}, "X", bg)

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ABCDE", lines[0])
	assert.Equal(t, "FGXIJ", lines[1])
	assert.Equal(t, "KLMNO", lines[2])
}

func TestPlace_GrowsBackground(t *testing.T) {
	bg := "AAAAA\nAAAAA"

	result := Place(Anchor{X: 1, Y: 1}, "XX\nYY\nZZ", bg)

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "AAAAA", lines[0])
	assert.Equal(t, "AXXAA", lines[1])
	assert.Equal(t, " YY", lines[2])
	assert.Equal(t, " ZZ", lines[3])
}

func TestPlace_ShortBackgroundLine(t *testing.T) {
	result := Place(Anchor{X: 4, Y: 0}, "XX", "AB")

	assert.Equal(t, "AB  XX", result)
}

func TestPlace_EmptyBackground(t *testing.T) {
	result := Place(Anchor{X: 0, Y: 2}, "XX", "")

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "XX", lines[2])
}

func TestPlace_NegativeAnchor(t *testing.T) {
	result := Place(Anchor{X: -3, Y: -1}, "X", "ABC")

	assert.Equal(t, "XBC", result)
}

func TestPlace_PreservesANSI(t *testing.T) {
	bg := "\x1b[31mREDRED\x1b[0m"

	result := Place(Anchor{X: 1, Y: 0}, "\x1b[7mX\x1b[27m", bg)

	assert.Contains(t, result, "\x1b[31m")
	assert.Contains(t, result, "\x1b[7mX\x1b[27m")
	assert.Equal(t, "RXDRED", ansi.Strip(result))
}

func TestBelow(t *testing.T) {
	view := "╭──╮\n│ 1│\n╰──╯"

	a := Below(view, 2)

	assert.Equal(t, Anchor{X: 2, Y: 3}, a)
	lines := strings.Split(Place(a, "pop", view+"\nstatus"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "stpops", lines[3])
}
