package numedit

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/govalues/decimal"
)

// ParseClipboard reads pasted text as a value. Group separators of the
// locale are ignored and either of its decimal separators is accepted.
// Non-percent formats round to the format's fraction digits; percent
// formats keep the pasted value as is.
func ParseClipboard(text string, f FormatSpec, loc Locale) (decimal.Decimal, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	for _, g := range []string{loc.NumberGroupSeparator, loc.CurrencyGroupSeparator} {
		if g != "" && !isDecimalSeparator(g, loc) {
			s = strings.ReplaceAll(s, g, "")
		}
	}
	for _, d := range []string{loc.NumberDecimalSeparator, loc.CurrencyDecimalSeparator} {
		if d != "" && d != "." {
			s = strings.ReplaceAll(s, d, ".")
		}
	}
	if s == "" {
		return zero, fmt.Errorf("empty clipboard text: %w", ErrParse)
	}

	v, err := decimal.Parse(s)
	if err != nil {
		return zero, fmt.Errorf("clipboard text %q: %v: %w", text, err, ErrParse)
	}
	if f.IsPercent() {
		return v, nil
	}
	v, err = roundHalfAway(v, f.FractionDigits)
	if err != nil {
		return zero, fmt.Errorf("clipboard text %q: %v: %w", text, err, ErrParse)
	}
	return v, nil
}

// isDecimalSeparator guards locales whose currency group separator is the
// number decimal separator or the reverse.
func isDecimalSeparator(s string, loc Locale) bool {
	return s == loc.NumberDecimalSeparator || s == loc.CurrencyDecimalSeparator
}

// RenderClipboard is the text placed on the clipboard by copy: full
// precision, the locale's number decimal separator, no grouping.
func RenderClipboard(v decimal.Decimal, loc Locale) string {
	return canonical(v, loc.NumberDecimalSeparator)
}
