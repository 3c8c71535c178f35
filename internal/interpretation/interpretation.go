// Package interpretation looks up the localized meaning of derived numbers.
//
// Texts come from an injected Source keyed by
// "interpretation.<category>.<number>", so the table can be replaced without
// touching the calculation core. A number with no entry is described by the
// generic fallback text and flagged as such.
package interpretation

import (
	"strconv"

	"github.com/louisbranch/mysticnumbers/internal/numerology"
	platformi18n "github.com/louisbranch/mysticnumbers/internal/platform/i18n"
	"github.com/louisbranch/mysticnumbers/internal/platform/i18n/catalog"
)

const (
	fallbackKey = "core.interpretation.fallback"

	// defaultFallbackText is used when the source lacks even the fallback entry.
	defaultFallbackText = "A unique and special energy surrounds this number"
)

// Source resolves one message for a locale. Implementations fall back to
// their base locale themselves; *catalog.Bundle and *catalog.Holder qualify.
type Source interface {
	Message(locale string, key string) (string, bool)
}

// Interpretation is the localized description of one derived number.
type Interpretation struct {
	Category numerology.Category `json:"category"`
	Number   int                 `json:"number"`
	Locale   string              `json:"locale"`
	Title    string              `json:"title"`
	Text     string              `json:"text"`
	// Fallback is set when no entry exists for the number and the generic
	// text was used instead.
	Fallback bool `json:"fallback"`
}

// Describer renders interpretations from a Source.
type Describer struct {
	source Source
}

// NewDescriber returns a describer backed by source, or by the embedded
// catalogs when source is nil.
func NewDescriber(source Source) *Describer {
	if source == nil {
		source = catalog.Default()
	}
	return &Describer{source: source}
}

// Key returns the catalog key for the interpretation of number in category.
func Key(category numerology.Category, number int) string {
	return "interpretation." + string(category) + "." + strconv.Itoa(number)
}

// TitleKey returns the catalog key for the display title of category.
func TitleKey(category numerology.Category) string {
	return "core.category." + string(category)
}

// Describe returns the interpretation of number in category for locale.
// Unsupported locales resolve to the default locale; the result reports the
// locale actually used.
func (d *Describer) Describe(number int, category numerology.Category, locale string) Interpretation {
	resolved, _ := platformi18n.ResolveLocale(locale)
	out := Interpretation{
		Category: category,
		Number:   number,
		Locale:   resolved,
		Title:    d.Text(resolved, TitleKey(category)),
	}
	if text, ok := d.source.Message(resolved, Key(category, number)); ok {
		out.Text = text
		return out
	}
	out.Fallback = true
	out.Text = d.fallbackText(resolved)
	return out
}

// DescribeProfile returns the interpretation of every profile number in
// display order.
func (d *Describer) DescribeProfile(profile numerology.Profile, locale string) []Interpretation {
	categories := numerology.Categories()
	out := make([]Interpretation, 0, len(categories))
	for _, category := range categories {
		number, _ := profile.Number(category)
		out = append(out, d.Describe(number, category, locale))
	}
	return out
}

// Text returns the message for key in locale, or key itself when missing.
func (d *Describer) Text(locale string, key string) string {
	if text, ok := d.source.Message(locale, key); ok {
		return text
	}
	return key
}

func (d *Describer) fallbackText(locale string) string {
	if text, ok := d.source.Message(locale, fallbackKey); ok {
		return text
	}
	return defaultFallbackText
}
