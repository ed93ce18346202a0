package numedit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/govalues/decimal"
)

// NumberParts is a working value split into sign and digit groups.
// FractionPart is always below 10^DigitCount and is read as left-padded
// with zeros to DigitCount digits.
type NumberParts struct {
	IsNegative   bool
	DigitCount   int
	IntegerPart  uint64
	FractionPart uint64
}

// Decompose splits v, scaled ×100 for percent formats, into NumberParts.
// The magnitude is rounded to the format's fraction digits first.
func Decompose(v decimal.Decimal, f FormatSpec, loc Locale) (NumberParts, error) {
	w, err := toWorking(v, f)
	if err != nil {
		return NumberParts{}, err
	}
	return decomposeWorking(w, f, loc)
}

func decomposeWorking(w decimal.Decimal, f FormatSpec, loc Locale) (NumberParts, error) {
	p := NumberParts{
		IsNegative: w.Sign() < 0,
		DigitCount: f.FractionDigits,
	}

	mag, err := roundHalfAway(w.Abs(), f.FractionDigits)
	if err != nil {
		return NumberParts{}, err
	}

	sep := f.DecimalSeparator(loc)
	text := canonical(mag, sep)
	segments := strings.Split(text, sep)

	switch len(segments) {
	case 1, 2:
	default:
		return NumberParts{}, fmt.Errorf("splitting %q on %q gave %d segments, at most 2 allowed: %w",
			text, sep, len(segments), ErrDecomposition)
	}

	p.IntegerPart, err = strconv.ParseUint(segments[0], 10, 64)
	if err != nil {
		return NumberParts{}, fmt.Errorf("integer part %q: %v: %w", segments[0], err, ErrDecomposition)
	}

	if len(segments) == 2 && f.FractionDigits > 0 {
		frac := padRight(segments[1], f.FractionDigits)
		p.FractionPart, err = strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return NumberParts{}, fmt.Errorf("fraction part %q: %v: %w", frac, err, ErrDecomposition)
		}
	}
	return p, nil
}

// integerDigits renders the integer group.
func (p NumberParts) integerDigits() string {
	return strconv.FormatUint(p.IntegerPart, 10)
}

// fractionDigits renders the fraction group, zero-padded to DigitCount.
func (p NumberParts) fractionDigits() string {
	if p.DigitCount == 0 {
		return ""
	}
	return padLeft(strconv.FormatUint(p.FractionPart, 10), p.DigitCount)
}

// assemble parses integer and fraction digit groups back into a stored
// value, reapplying sign and percent scaling.
func assemble(op string, negative bool, intDigits, fracDigits string, f FormatSpec) (decimal.Decimal, error) {
	if intDigits == "" {
		intDigits = "0"
	}
	s := intDigits
	if fracDigits != "" {
		s += "." + fracDigits
	}

	// decimal.Parse rounds away digits beyond MaxPrec as long as the
	// integer part fits; a typed digit must never vanish that way.
	significant := strings.TrimLeft(intDigits+strings.TrimRight(fracDigits, "0"), "0")
	if len(significant) > decimal.MaxPrec {
		return zero, overflow(op, negative)
	}

	w, err := decimal.Parse(s)
	if err != nil {
		// Digit strings are always well-formed; the only failure is size.
		return zero, overflow(op, negative)
	}
	if negative {
		w = w.Neg()
	}
	return fromWorking(w, f)
}

func padLeft(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat("0", n-len(s))
}

// right returns the last n bytes of an ASCII digit string.
func right(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// dropLast removes the last byte of an ASCII digit string.
func dropLast(s string) string {
	if s == "" {
		return ""
	}
	return s[:len(s)-1]
}
