package numedit

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.MustParse(s) }

// requireValue compares numerically, so 1.5 equals 1.50.
func requireValue(t require.TestingT, want string, got decimal.Decimal, msgAndArgs ...any) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	require.Zerof(t, dec(want).Cmp(got), "want %s, got %s %v", want, got, msgAndArgs)
}

func mustLocale(t testing.TB, tag string) Locale {
	t.Helper()
	loc, err := LookupLocale(tag)
	require.NoError(t, err)
	return loc
}

func newTestController(t testing.TB, cfg Config) *Controller {
	t.Helper()
	c, err := New(cfg)
	require.NoError(t, err)
	return c
}

// typeDigits applies each digit of s as a digit command.
func typeDigits(c *Controller, s string) {
	for _, r := range s {
		c.Apply(Digit(int(r - '0')))
	}
}

// memClipboard is an in-memory Clipboard.
type memClipboard struct {
	text    string
	cleared int
	err     error
}

func (m *memClipboard) Text() (string, error) { return m.text, m.err }

func (m *memClipboard) SetText(text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

func (m *memClipboard) Clear() error {
	m.cleared++
	m.text = ""
	return nil
}
