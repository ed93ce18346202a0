package numedit

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// Locale supplies the separators and symbols used to parse and render values.
type Locale struct {
	Tag string

	NumberDecimalSeparator string
	NumberGroupSeparator   string

	CurrencyDecimalSeparator string
	CurrencyGroupSeparator   string
	CurrencySymbol           string
	CurrencySymbolAfter      bool // "12,34 €" rather than "$12.34"
	CurrencySymbolSpace      bool // space between symbol and digits
	// CurrencyMinusAfterSymbol puts the minus sign between a leading symbol
	// and the digits of a negative amount: "CHF-1’234.50".
	CurrencyMinusAfterSymbol bool

	PercentSymbol      string
	PercentSymbolSpace bool
}

// Invariant culture, used when no locale is configured.
var InvariantLocale = Locale{
	Tag:                      "und",
	NumberDecimalSeparator:   ".",
	NumberGroupSeparator:     ",",
	CurrencyDecimalSeparator: ".",
	CurrencyGroupSeparator:   ",",
	CurrencySymbol:           "¤",
	PercentSymbol:            "%",
	PercentSymbolSpace:       true,
}

var supportedLocales = []Locale{
	{
		Tag:                      "en-US",
		NumberDecimalSeparator:   ".",
		NumberGroupSeparator:     ",",
		CurrencyDecimalSeparator: ".",
		CurrencyGroupSeparator:   ",",
		CurrencySymbol:           "$",
		PercentSymbol:            "%",
	},
	{
		Tag:                      "en-GB",
		NumberDecimalSeparator:   ".",
		NumberGroupSeparator:     ",",
		CurrencyDecimalSeparator: ".",
		CurrencyGroupSeparator:   ",",
		CurrencySymbol:           "£",
		PercentSymbol:            "%",
	},
	{
		Tag:                      "fr-FR",
		NumberDecimalSeparator:   ",",
		NumberGroupSeparator:     "\u202f",
		CurrencyDecimalSeparator: ",",
		CurrencyGroupSeparator:   "\u202f",
		CurrencySymbol:           "€",
		CurrencySymbolAfter:      true,
		CurrencySymbolSpace:      true,
		PercentSymbol:            "%",
		PercentSymbolSpace:       true,
	},
	{
		Tag:                      "de-DE",
		NumberDecimalSeparator:   ",",
		NumberGroupSeparator:     ".",
		CurrencyDecimalSeparator: ",",
		CurrencyGroupSeparator:   ".",
		CurrencySymbol:           "€",
		CurrencySymbolAfter:      true,
		CurrencySymbolSpace:      true,
		PercentSymbol:            "%",
		PercentSymbolSpace:       true,
	},
	{
		Tag:                      "de-CH",
		NumberDecimalSeparator:   ".",
		NumberGroupSeparator:     "’",
		CurrencyDecimalSeparator: ".",
		CurrencyGroupSeparator:   "’",
		CurrencySymbol:           "CHF",
		CurrencySymbolSpace:      true,
		CurrencyMinusAfterSymbol: true,
		PercentSymbol:            "%",
	},
	{
		Tag:                      "es-ES",
		NumberDecimalSeparator:   ",",
		NumberGroupSeparator:     ".",
		CurrencyDecimalSeparator: ",",
		CurrencyGroupSeparator:   ".",
		CurrencySymbol:           "€",
		CurrencySymbolAfter:      true,
		CurrencySymbolSpace:      true,
		PercentSymbol:            "%",
		PercentSymbolSpace:       true,
	},
	{
		Tag:                      "pt-BR",
		NumberDecimalSeparator:   ",",
		NumberGroupSeparator:     ".",
		CurrencyDecimalSeparator: ",",
		CurrencyGroupSeparator:   ".",
		CurrencySymbol:           "R$",
		CurrencySymbolSpace:      true,
		PercentSymbol:            "%",
	},
	{
		Tag:                      "sv-SE",
		NumberDecimalSeparator:   ",",
		NumberGroupSeparator:     "\u00a0",
		CurrencyDecimalSeparator: ",",
		CurrencyGroupSeparator:   "\u00a0",
		CurrencySymbol:           "kr",
		CurrencySymbolAfter:      true,
		CurrencySymbolSpace:      true,
		PercentSymbol:            "%",
		PercentSymbolSpace:       true,
	},
	{
		Tag:                      "ja-JP",
		NumberDecimalSeparator:   ".",
		NumberGroupSeparator:     ",",
		CurrencyDecimalSeparator: ".",
		CurrencyGroupSeparator:   ",",
		CurrencySymbol:           "￥",
		PercentSymbol:            "%",
	},
}

var localeMatcher = newLocaleMatcher()

func newLocaleMatcher() language.Matcher {
	tags := make([]language.Tag, len(supportedLocales))
	for i, loc := range supportedLocales {
		tags[i] = language.MustParse(loc.Tag)
	}
	return language.NewMatcher(tags)
}

// LookupLocale returns the supported locale closest to a BCP 47 tag.
// An empty tag or "und" yields InvariantLocale.
func LookupLocale(tag string) (Locale, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" || strings.EqualFold(tag, "und") || strings.EqualFold(tag, "invariant") {
		return InvariantLocale, nil
	}

	t, err := language.Parse(tag)
	if err != nil {
		return Locale{}, fmt.Errorf("locale %q: %v: %w", tag, err, ErrValidation)
	}

	_, idx, conf := localeMatcher.Match(t)
	if conf == language.No {
		return Locale{}, fmt.Errorf("locale %q: no supported match: %w", tag, ErrValidation)
	}
	return supportedLocales[idx], nil
}

// SupportedLocales lists the tags LookupLocale can resolve to.
func SupportedLocales() []string {
	tags := make([]string, len(supportedLocales))
	for i, loc := range supportedLocales {
		tags[i] = loc.Tag
	}
	return tags
}

// Validate rejects locales whose separators would make rendered text
// ambiguous: empty separators, separators containing digits or '-', and
// decimal separators equal to their group separator.
func (l Locale) Validate() error {
	check := func(name, sep string) error {
		if sep == "" {
			return fmt.Errorf("locale %q: %s is empty: %w", l.Tag, name, ErrValidation)
		}
		for _, r := range sep {
			if unicode.IsDigit(r) || r == '-' {
				return fmt.Errorf("locale %q: %s %q contains %q: %w", l.Tag, name, sep, r, ErrValidation)
			}
		}
		return nil
	}

	if err := check("number decimal separator", l.NumberDecimalSeparator); err != nil {
		return err
	}
	if err := check("number group separator", l.NumberGroupSeparator); err != nil {
		return err
	}
	if err := check("currency decimal separator", l.CurrencyDecimalSeparator); err != nil {
		return err
	}
	if err := check("currency group separator", l.CurrencyGroupSeparator); err != nil {
		return err
	}
	if l.NumberDecimalSeparator == l.NumberGroupSeparator {
		return fmt.Errorf("locale %q: number separators are identical: %w", l.Tag, ErrValidation)
	}
	if l.CurrencyDecimalSeparator == l.CurrencyGroupSeparator {
		return fmt.Errorf("locale %q: currency separators are identical: %w", l.Tag, ErrValidation)
	}
	return nil
}
