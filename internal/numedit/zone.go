package numedit

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// InputMode selects how typed digits flow into the value.
type InputMode int

const (
	// ModeSimplified streams digits through the whole number, cash-register
	// style: typing 1 2 3 into a C2 field gives 1.23.
	ModeSimplified InputMode = iota
	// ModeExtended edits the integer and fraction groups independently.
	ModeExtended
	// ModeSegmented behaves as ModeExtended.
	ModeSegmented
)

func (m InputMode) String() string {
	switch m {
	case ModeSimplified:
		return "simplified"
	case ModeExtended:
		return "extended"
	case ModeSegmented:
		return "segmented"
	default:
		return fmt.Sprintf("InputMode(%d)", int(m))
	}
}

// ParseInputMode parses the names produced by InputMode.String.
func ParseInputMode(s string) (InputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simplified", "":
		return ModeSimplified, nil
	case "extended":
		return ModeExtended, nil
	case "segmented":
		return ModeSegmented, nil
	}
	return ModeSimplified, fmt.Errorf("unknown input mode %q: %w", s, ErrValidation)
}

func (m InputMode) zoned() bool { return m != ModeSimplified }

// Zone is the digit group the next edit targets.
type Zone int

const (
	ZoneInteger Zone = iota
	ZoneDecimal
)

func (z Zone) String() string {
	if z == ZoneDecimal {
		return "decimal"
	}
	return "integer"
}

// DefaultZone is the zone selected on focus and after format or mode
// changes.
func DefaultZone(m InputMode, f FormatSpec) Zone {
	if !m.zoned() && f.FractionDigits > 0 {
		return ZoneDecimal
	}
	return ZoneInteger
}

// graphemes splits display text into grapheme clusters. Caret offsets
// count clusters, not bytes.
func graphemes(text string) []string {
	out := make([]string, 0, len(text))
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// separatorIndex is the grapheme index of the last occurrence of sep in
// text, or -1.
func separatorIndex(text, sep string) int {
	if sep == "" {
		return -1
	}
	i := strings.LastIndex(text, sep)
	if i < 0 {
		return -1
	}
	return uniseg.GraphemeClusterCount(text[:i])
}

// afterLastDigit is the grapheme index just past the last digit in text,
// or the text length when there is none.
func afterLastDigit(text string) int {
	clusters := graphemes(text)
	for i := len(clusters) - 1; i >= 0; i-- {
		r := []rune(clusters[i])[0]
		if unicode.IsDigit(r) {
			return i + 1
		}
	}
	return len(clusters)
}

// ZoneAt reports the zone a caret offset falls in: integer up to and
// including the separator, decimal after it.
func ZoneAt(text, sep string, caret int) Zone {
	i := separatorIndex(text, sep)
	if i < 0 || caret <= i {
		return ZoneInteger
	}
	return ZoneDecimal
}

// CaretFor computes the caret offset for a zone. Simplified mode and the
// decimal zone park the caret after the last digit; the integer zone parks
// it on the decimal separator.
func CaretFor(text, sep string, m InputMode, z Zone) int {
	if m.zoned() && z == ZoneInteger {
		if i := separatorIndex(text, sep); i >= 0 {
			return i
		}
	}
	return afterLastDigit(text)
}
