package numerology

import (
	"fmt"
	"strings"
	"time"
)

// birthDateLayouts are the accepted textual birth date layouts.
var birthDateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	"2006.01.02",
}

// BirthDate is a calendar date decomposed into integers.
type BirthDate struct {
	Year  int
	Month int
	Day   int
}

// NewBirthDate validates the components and returns a BirthDate.
// It fails with ErrInvalidBirthDate for dates such as 2023-02-30 instead of
// normalizing them.
func NewBirthDate(year, month, day int) (BirthDate, error) {
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return BirthDate{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidBirthDate, year, month, day)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return BirthDate{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidBirthDate, year, month, day)
	}
	return BirthDate{Year: year, Month: month, Day: day}, nil
}

// ParseBirthDate parses a "YYYY-MM-DD" date (slashes and dots are also accepted).
// An empty value fails with ErrMissingBirthDate.
func ParseBirthDate(value string) (BirthDate, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return BirthDate{}, ErrMissingBirthDate
	}
	for _, layout := range birthDateLayouts {
		t, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		return NewBirthDate(t.Year(), int(t.Month()), t.Day())
	}
	return BirthDate{}, fmt.Errorf("%w: %q", ErrInvalidBirthDate, trimmed)
}

// BirthDateFromTime takes the calendar date of t in its own location.
func BirthDateFromTime(t time.Time) BirthDate {
	return BirthDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// String renders the date as YYYY-MM-DD.
func (d BirthDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Digits returns the digits of day, month and year, in that order.
func (d BirthDate) Digits() []int {
	out := make([]int, 0, 8)
	out = append(out, Digits(d.Day)...)
	out = append(out, Digits(d.Month)...)
	out = append(out, Digits(d.Year)...)
	return out
}
