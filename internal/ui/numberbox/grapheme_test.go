package numberbox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitGraphemes(t *testing.T) {
	require.Equal(t, []string{"$", "1", ".", "5", "0"}, splitGraphemes("$1.50"))
	require.Equal(t, []string{"1", " ", "2"}, splitGraphemes("1 2"))
	require.Empty(t, splitGraphemes(""))
}

func TestGraphemeAtCell(t *testing.T) {
	tests := []struct {
		name string
		text string
		col  int
		want int
	}{
		{"negative column", "$1.50", -3, 0},
		{"first cell", "$1.50", 0, 0},
		{"separator", "$1.50", 2, 2},
		{"last digit", "$1.50", 4, 4},
		{"past end", "$1.50", 12, 5},
		{"wide symbol first cell", "￥100", 0, 0},
		{"wide symbol second cell", "￥100", 1, 0},
		{"after wide symbol", "￥100", 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, graphemeAtCell(tt.text, tt.col))
		})
	}
}

func TestDisplayWidth(t *testing.T) {
	require.Equal(t, 5, displayWidth("$1.50"))
	require.Equal(t, 5, displayWidth("￥100"))
}
