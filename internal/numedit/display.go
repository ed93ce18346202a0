package numedit

import (
	"strings"

	"github.com/govalues/decimal"
)

// Display renders v as the field shows it: grouped digits, the format's
// fraction digits, the currency or percent symbol, and a '-' for negative
// values. The minus leads unless the locale puts it after a leading
// currency symbol. Percent formats show the value ×100.
func Display(v decimal.Decimal, f FormatSpec, loc Locale) string {
	w, err := toWorking(v, f)
	if err != nil {
		return canonical(v, f.DecimalSeparator(loc))
	}
	mag, err := roundHalfAway(w.Abs(), f.FractionDigits)
	if err != nil {
		return canonical(v, f.DecimalSeparator(loc))
	}

	intDigits, fracDigits, _ := strings.Cut(mag.String(), ".")
	number := group(intDigits, f.GroupSeparator(loc))
	if f.FractionDigits > 0 {
		number += f.DecimalSeparator(loc) + padRight(fracDigits, f.FractionDigits)
	}

	negative := w.Sign() < 0 && !mag.IsZero()

	var b strings.Builder
	switch f.Kind {
	case KindCurrency:
		space := ""
		if loc.CurrencySymbolSpace {
			space = " "
		}
		switch {
		case negative && loc.CurrencyMinusAfterSymbol && !loc.CurrencySymbolAfter:
			// The minus takes the place of the space: "CHF-1’234.50".
			b.WriteString(loc.CurrencySymbol + "-" + number)
		case loc.CurrencySymbolAfter:
			writeMinus(&b, negative)
			b.WriteString(number + space + loc.CurrencySymbol)
		default:
			writeMinus(&b, negative)
			b.WriteString(loc.CurrencySymbol + space + number)
		}
	case KindPercent:
		writeMinus(&b, negative)
		b.WriteString(number)
		if loc.PercentSymbolSpace {
			b.WriteString(" ")
		}
		b.WriteString(loc.PercentSymbol)
	default:
		writeMinus(&b, negative)
		b.WriteString(number)
	}
	return b.String()
}

func writeMinus(b *strings.Builder, negative bool) {
	if negative {
		b.WriteByte('-')
	}
}

// group inserts sep between every three integer digits.
func group(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
