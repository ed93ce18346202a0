package numedit

import (
	"math"

	"github.com/govalues/decimal"
)

// InsertDigit computes the value after typing digit d. On an
// *OverflowError the caller clamps to the extreme matching the original
// sign.
func InsertDigit(v decimal.Decimal, d int, m InputMode, z Zone, f FormatSpec, loc Locale) (decimal.Decimal, error) {
	p, err := Decompose(v, f, loc)
	if err != nil {
		return v, err
	}

	digit := string(rune('0' + d))
	intDigits, fracDigits := p.integerDigits(), p.fractionDigits()
	n := p.DigitCount

	switch {
	case !m.zoned():
		stream := intDigits + fracDigits + digit
		intDigits, fracDigits = stream[:len(stream)-n], stream[len(stream)-n:]
	case z == ZoneInteger:
		intDigits += digit
	default:
		fracDigits = right(padLeft(fracDigits+digit, n), n)
	}
	return assemble("insert", p.IsNegative, intDigits, fracDigits, f)
}

// RemoveDigit computes the value after backspace: the rightmost digit of
// the active group is dropped.
func RemoveDigit(v decimal.Decimal, m InputMode, z Zone, f FormatSpec, loc Locale) (decimal.Decimal, error) {
	p, err := Decompose(v, f, loc)
	if err != nil {
		return v, err
	}

	intDigits, fracDigits := p.integerDigits(), p.fractionDigits()
	n := p.DigitCount

	switch {
	case !m.zoned():
		stream := padLeft(dropLast(intDigits+fracDigits), n+1)
		intDigits, fracDigits = stream[:len(stream)-n], stream[len(stream)-n:]
	case z == ZoneInteger:
		intDigits = dropLast(intDigits)
	default:
		if fracDigits != "" {
			fracDigits = padLeft(dropLast(fracDigits), n)
		}
	}
	return assemble("remove", p.IsNegative, intDigits, fracDigits, f)
}

// Step adds amount units to the active group. Integer steps are signed
// and may cross zero. Decimal steps in simplified mode stay inside the
// fraction group without carrying; zoned modes add amount × 10^-digits to
// the whole value.
func Step(v decimal.Decimal, amount int, m InputMode, z Zone, f FormatSpec, loc Locale) (decimal.Decimal, error) {
	if m.zoned() && z == ZoneDecimal {
		return stepFraction(v, amount, f)
	}

	p, err := Decompose(v, f, loc)
	if err != nil {
		return v, err
	}

	if z == ZoneDecimal {
		hi := int64(math.Pow10(p.DigitCount)) - 1
		frac := int64(p.FractionPart) + int64(amount)
		frac = max(0, min(frac, hi))
		p.FractionPart = uint64(frac)
		return assemble("step", p.IsNegative, p.integerDigits(), p.fractionDigits(), f)
	}

	neg, mag, ok := addSigned(p.IsNegative, p.IntegerPart, amount)
	if !ok {
		return v, overflow("step", neg)
	}
	p.IsNegative, p.IntegerPart = neg, mag
	return assemble("step", p.IsNegative, p.integerDigits(), p.fractionDigits(), f)
}

func stepFraction(v decimal.Decimal, amount int, f FormatSpec) (decimal.Decimal, error) {
	w, err := toWorking(v, f)
	if err != nil {
		return v, err
	}
	delta, err := decimal.New(int64(amount), f.FractionDigits)
	if err != nil {
		return v, overflow("step", amount < 0)
	}
	sum, err := w.Add(delta)
	if err != nil {
		return v, overflow("step", w.Sign() < 0 || (w.IsZero() && amount < 0))
	}
	sum, err = roundHalfAway(sum, f.FractionDigits)
	if err != nil {
		return v, err
	}
	return fromWorking(sum, f)
}

// addSigned adds amount to the signed magnitude (neg, mag). A result of
// exactly zero keeps the original sign, so the fraction digits of -0.50
// stay negative after stepping -1.50 up.
func addSigned(neg bool, mag uint64, amount int) (bool, uint64, bool) {
	if amount == 0 {
		return neg, mag, true
	}
	a := absInt(amount)
	// Moving away from zero grows the magnitude.
	if (amount > 0) != neg {
		if a > maxIntegerPart-mag {
			return neg, mag, false
		}
		return neg, mag + a, true
	}
	if a <= mag {
		return neg, mag - a, true
	}
	return !neg, a - mag, true
}

func absInt(n int) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}
