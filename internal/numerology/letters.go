package numerology

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LetterFilter selects which letters of a name are scored.
type LetterFilter int

const (
	AllLetters LetterFilter = iota
	Vowels
	Consonants
)

func (f LetterFilter) String() string {
	switch f {
	case AllLetters:
		return "all letters"
	case Vowels:
		return "vowels"
	case Consonants:
		return "consonants"
	default:
		return "unknown"
	}
}

func (f LetterFilter) matches(letter rune) bool {
	switch f {
	case Vowels:
		return IsVowel(letter)
	case Consonants:
		return !IsVowel(letter)
	default:
		return true
	}
}

// ScoredLetter is one letter of a name with its chart value.
type ScoredLetter struct {
	Letter rune
	Value  int
}

// Label renders the letter as "J=1".
func (l ScoredLetter) Label() string {
	return fmt.Sprintf("%c=%d", l.Letter, l.Value)
}

// NameScore is the letter-value sum of a normalized name under a filter.
type NameScore struct {
	Name    string
	Filter  LetterFilter
	Letters []ScoredLetter
	Total   int
}

// Empty reports whether no letter matched the filter.
func (s NameScore) Empty() bool {
	return len(s.Letters) == 0
}

// Labels returns the "L=v" label of every scored letter.
func (s NameScore) Labels() []string {
	out := make([]string, len(s.Letters))
	for i, letter := range s.Letters {
		out[i] = letter.Label()
	}
	return out
}

// LetterValue maps a Latin letter to its Pythagorean value in 1..9.
// The lookup is case-insensitive; any other rune returns false.
func LetterValue(r rune) (int, bool) {
	upper := unicode.ToUpper(r)
	if upper < 'A' || upper > 'Z' {
		return 0, false
	}
	return int(upper-'A')%9 + 1, true
}

// MustLetterValue is LetterValue for callers that already filtered the input.
// It panics on a non-letter.
func MustLetterValue(r rune) int {
	value, ok := LetterValue(r)
	if !ok {
		panic(fmt.Sprintf("numerology: %q is not a Latin letter", r))
	}
	return value
}

// IsVowel reports whether r is one of A, E, I, O, U (any case).
func IsVowel(r rune) bool {
	switch unicode.ToUpper(r) {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	default:
		return false
	}
}

// NormalizeName upper-cases name, folds diacritics and drops every rune
// that is not A-Z, so "Nguyễn Văn Đức" becomes "NGUYENVANDUC".
func NormalizeName(name string) string {
	// Chains keep state between calls, so one is built per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(fold, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch r {
		case 'đ', 'Đ':
			r = 'D'
		}
		r = unicode.ToUpper(r)
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ScoreName normalizes name and sums the values of the letters selected by filter.
func ScoreName(name string, filter LetterFilter) NameScore {
	normalized := NormalizeName(name)
	score := NameScore{
		Name:    normalized,
		Filter:  filter,
		Letters: make([]ScoredLetter, 0, len(normalized)),
	}
	for _, letter := range normalized {
		if !filter.matches(letter) {
			continue
		}
		value := MustLetterValue(letter)
		score.Letters = append(score.Letters, ScoredLetter{Letter: letter, Value: value})
		score.Total += value
	}
	return score
}
