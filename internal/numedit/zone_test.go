package numedit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultZone(t *testing.T) {
	require.Equal(t, ZoneDecimal, DefaultZone(ModeSimplified, c2))
	require.Equal(t, ZoneInteger, DefaultZone(ModeSimplified, n0))
	require.Equal(t, ZoneInteger, DefaultZone(ModeExtended, c2))
	require.Equal(t, ZoneInteger, DefaultZone(ModeSegmented, c2))
}

func TestParseInputMode(t *testing.T) {
	for _, m := range []InputMode{ModeSimplified, ModeExtended, ModeSegmented} {
		got, err := ParseInputMode(m.String())
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
	_, err := ParseInputMode("vim")
	require.ErrorIs(t, err, ErrValidation)
}

func TestCaretFor(t *testing.T) {
	tests := []struct {
		name string
		text string
		sep  string
		mode InputMode
		zone Zone
		want int
	}{
		{"integer zone parks on separator", "¤1,234.50", ".", ModeExtended, ZoneInteger, 6},
		{"decimal zone after last digit", "¤1,234.50", ".", ModeExtended, ZoneDecimal, 9},
		{"simplified ignores zone", "¤1,234.50", ".", ModeSimplified, ZoneInteger, 9},
		{"no separator", "1,234", ".", ModeExtended, ZoneInteger, 5},
		{"trailing symbol", "1.234,50 €", ",", ModeExtended, ZoneDecimal, 8},
		{"trailing symbol integer", "1.234,50 €", ",", ModeExtended, ZoneInteger, 5},
		{"percent", "12.50 %", ".", ModeExtended, ZoneDecimal, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CaretFor(tt.text, tt.sep, tt.mode, tt.zone))
		})
	}
}

func TestZoneAt(t *testing.T) {
	text := "¤1,234.50"
	require.Equal(t, ZoneInteger, ZoneAt(text, ".", 0))
	require.Equal(t, ZoneInteger, ZoneAt(text, ".", 6))
	require.Equal(t, ZoneDecimal, ZoneAt(text, ".", 7))
	require.Equal(t, ZoneDecimal, ZoneAt(text, ".", 9))
	require.Equal(t, ZoneInteger, ZoneAt("1,234", ".", 5))
}

func TestGraphemes_CountsClusters(t *testing.T) {
	require.Len(t, graphemes("CHF 1’234"), 9)
	require.Equal(t, 4, separatorIndex("R$ 5,00", ","))
}
