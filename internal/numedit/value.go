package numedit

import (
	"fmt"
	"strings"

	"github.com/govalues/decimal"
)

var (
	// MaxValue is the largest representable magnitude: nineteen nines.
	MaxValue = decimal.MustParse("9999999999999999999")
	// MinValue is the most negative representable value.
	MinValue = MaxValue.Neg()

	// BoundLimit is the largest magnitude accepted for Minimum or Maximum,
	// half the representable extreme, so doubling or negating a bounded
	// value cannot overflow.
	BoundLimit = decimal.MustParse("4999999999999999999")
)

var (
	zero    = decimal.Decimal{}
	hundred = decimal.MustNew(100, 0)
)

// maxIntegerPart is MaxValue's integer part as a machine word.
const maxIntegerPart uint64 = 9_999_999_999_999_999_999

// OverflowError reports an arithmetic result beyond MaxValue. Negative
// carries the sign the result would have had, which decides which
// extreme the value is clamped to.
type OverflowError struct {
	Negative bool
	Op       string
}

func (e *OverflowError) Error() string {
	sign := "+"
	if e.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s: result exceeds %s%s", e.Op, sign, MaxValue)
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }

func overflow(op string, negative bool) error {
	return &OverflowError{Op: op, Negative: negative}
}

// extreme returns MinValue or MaxValue.
func extreme(negative bool) decimal.Decimal {
	if negative {
		return MinValue
	}
	return MaxValue
}

// roundHalfAway rounds d to scale digits, ties away from zero, which is how
// formatted output and pasted values are rounded.
func roundHalfAway(d decimal.Decimal, scale int) (decimal.Decimal, error) {
	if d.Scale() <= scale {
		return d, nil
	}
	t := d.Trunc(scale)
	rem, err := d.Sub(t)
	if err != nil {
		return d, overflow("round", d.IsNeg())
	}
	if rem.Abs().Cmp(decimal.MustNew(5, scale+1)) < 0 {
		return t, nil
	}

	ulp := decimal.MustNew(1, scale)
	var r decimal.Decimal
	if d.IsNeg() {
		r, err = t.Sub(ulp)
	} else {
		r, err = t.Add(ulp)
	}
	if err != nil {
		return d, overflow("round", d.IsNeg())
	}
	return r, nil
}

// toWorking converts a stored value to the value the user edits: ×100 for
// percent formats, unchanged otherwise.
func toWorking(v decimal.Decimal, f FormatSpec) (decimal.Decimal, error) {
	if !f.IsPercent() {
		return v, nil
	}
	w, err := v.Mul(hundred)
	if err != nil {
		return v, overflow("percent scale", v.IsNeg())
	}
	return w, nil
}

// fromWorking undoes toWorking.
func fromWorking(w decimal.Decimal, f FormatSpec) (decimal.Decimal, error) {
	if !f.IsPercent() {
		return w, nil
	}
	v, err := w.Quo(hundred)
	if err != nil {
		return w, overflow("percent unscale", w.IsNeg())
	}
	return v, nil
}

// canonical renders d with sep as the decimal separator, full precision,
// no grouping.
func canonical(d decimal.Decimal, sep string) string {
	return strings.Replace(d.String(), ".", sep, 1)
}
