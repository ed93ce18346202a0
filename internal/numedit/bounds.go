package numedit

import (
	"fmt"

	"github.com/govalues/decimal"
)

// Bounds holds the optional minimum and maximum. A bound of exactly zero
// is inactive.
type Bounds struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Clamp forces v into the active bounds. Max is applied first and then
// Min, so an inverted pair resolves to Min and repeated clamping is
// stable.
func (b Bounds) Clamp(v decimal.Decimal) decimal.Decimal {
	if !b.Max.IsZero() && v.Cmp(b.Max) > 0 {
		v = b.Max
	}
	if !b.Min.IsZero() && v.Cmp(b.Min) < 0 {
		v = b.Min
	}
	return v
}

// ValidateBound rejects bounds whose magnitude exceeds BoundLimit.
func ValidateBound(d decimal.Decimal) error {
	if d.Abs().Cmp(BoundLimit) > 0 {
		return fmt.Errorf("bound %s outside ±%s: %w", d, BoundLimit, ErrValidation)
	}
	return nil
}
