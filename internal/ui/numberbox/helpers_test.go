package numberbox

import (
	"strings"
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/require"
)

func splitLines(s string) []string { return strings.Split(s, "\n") }

func trimRight(s string) string { return strings.TrimRight(s, " ") }

// requireValue compares numerically, so 1.5 equals 1.50.
func requireValue(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Zerof(t, decimal.MustParse(want).Cmp(got), "want %s, got %s", want, got)
}
