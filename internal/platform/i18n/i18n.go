// Package i18n holds the supported language set and the matching rules used
// by every transport to resolve a caller's locale.
package i18n

import (
	"strings"

	"github.com/louisbranch/mysticnumbers/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
)

var supportedTags = []language.Tag{
	language.MustParse("en-US"),
	language.MustParse("vi-VN"),
	language.MustParse("it-IT"),
	language.MustParse("ja-JP"),
}

var tagMatcher = language.NewMatcher(supportedTags)

var supportedTagSet = make(map[string]language.Tag, len(supportedTags))

func init() {
	for _, tag := range supportedTags {
		supportedTagSet[tag.String()] = tag
	}
}

// SupportedTags returns the supported language tags, default first.
func SupportedTags() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// SupportedLocales returns the supported tags as locale strings.
func SupportedLocales() []string {
	out := make([]string, 0, len(supportedTags))
	for _, tag := range supportedTags {
		out = append(out, tag.String())
	}
	return out
}

// DefaultTag returns the default language tag.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// DefaultLocale is the locale used when nothing better matches.
func DefaultLocale() string {
	return catalog.BaseLocale
}

// ParseTag returns the supported tag equal to value.
func ParseTag(value string) (language.Tag, bool) {
	parsed, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Tag{}, false
	}
	tag, ok := supportedTagSet[parsed.String()]
	return tag, ok
}

// MatchTags returns the supported tag closest to the preferred list, or the
// default tag when none is a reasonable match.
func MatchTags(preferred []language.Tag) language.Tag {
	if len(preferred) == 0 {
		return DefaultTag()
	}
	_, index, confidence := tagMatcher.Match(preferred...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supportedTags[index]
}

// ResolveLocale maps a locale or Accept-Language value to a supported locale.
// The bool reports whether the value matched; on false the default is returned.
func ResolveLocale(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultLocale(), false
	}
	if tag, ok := ParseTag(value); ok {
		return tag.String(), true
	}
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(tags) == 0 {
		return DefaultLocale(), false
	}
	_, index, confidence := tagMatcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale(), false
	}
	return supportedTags[index].String(), true
}
