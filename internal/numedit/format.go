package numedit

import (
	"fmt"
	"strings"
)

// Kind is the display family of a format specifier.
type Kind int

const (
	// KindCurrency renders with the locale's currency symbol and separators.
	KindCurrency Kind = iota
	// KindNumber renders a plain grouped number.
	KindNumber
	// KindPercent renders the value scaled by 100 with a percent symbol.
	KindPercent
)

// String returns the specifier letter for the kind.
func (k Kind) String() string {
	switch k {
	case KindCurrency:
		return "C"
	case KindNumber:
		return "N"
	case KindPercent:
		return "P"
	default:
		return "?"
	}
}

// MaxFractionDigits is the largest fraction digit count a specifier may carry.
const MaxFractionDigits = 6

// defaultFractionDigits applies to letter-only specifiers ("C", "N", "P").
const defaultFractionDigits = 2

// FormatSpec is a resolved format specifier.
type FormatSpec struct {
	Kind           Kind
	FractionDigits int
}

// DefaultFormat is the specifier a new Controller starts with.
var DefaultFormat = FormatSpec{Kind: KindCurrency, FractionDigits: 2}

// ParseFormat resolves a specifier such as "C2", "n", or "P1".
// Letters are case-insensitive; the optional digit must be 0-6.
func ParseFormat(spec string) (FormatSpec, error) {
	s := strings.ToUpper(strings.TrimSpace(spec))
	if len(s) == 0 || len(s) > 2 {
		return FormatSpec{}, fmt.Errorf("format %q: must be C, N or P optionally followed by 0-%d: %w",
			spec, MaxFractionDigits, ErrValidation)
	}

	var f FormatSpec
	switch s[0] {
	case 'C':
		f.Kind = KindCurrency
	case 'N':
		f.Kind = KindNumber
	case 'P':
		f.Kind = KindPercent
	default:
		return FormatSpec{}, fmt.Errorf("format %q: unknown kind %q: %w", spec, s[0], ErrValidation)
	}

	if len(s) == 1 {
		f.FractionDigits = defaultFractionDigits
		return f, nil
	}

	d := s[1]
	if d < '0' || d > '0'+MaxFractionDigits {
		return FormatSpec{}, fmt.Errorf("format %q: fraction digits must be 0-%d: %w",
			spec, MaxFractionDigits, ErrValidation)
	}
	f.FractionDigits = int(d - '0')
	return f, nil
}

// MustParseFormat is like ParseFormat but panics on an invalid specifier.
func MustParseFormat(spec string) FormatSpec {
	f, err := ParseFormat(spec)
	if err != nil {
		panic(fmt.Sprintf("MustParseFormat(%q) failed: %v", spec, err))
	}
	return f
}

// String returns the canonical two-character specifier.
func (f FormatSpec) String() string {
	return fmt.Sprintf("%s%d", f.Kind, f.FractionDigits)
}

// IsPercent reports whether the value is edited ×100.
func (f FormatSpec) IsPercent() bool {
	return f.Kind == KindPercent
}

// DecimalSeparator picks the separator used for parsing and rendering:
// the currency separator for currency formats, the numeric one otherwise.
func (f FormatSpec) DecimalSeparator(loc Locale) string {
	if f.Kind == KindCurrency {
		return loc.CurrencyDecimalSeparator
	}
	return loc.NumberDecimalSeparator
}

// GroupSeparator mirrors DecimalSeparator for digit grouping.
func (f FormatSpec) GroupSeparator(loc Locale) string {
	if f.Kind == KindCurrency {
		return loc.CurrencyGroupSeparator
	}
	return loc.NumberGroupSeparator
}
