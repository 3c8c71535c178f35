package numerology

import (
	"errors"
	"strings"
)

// Category identifies one of the derived numbers of a profile.
type Category string

const (
	CategoryLifePath    Category = "lifePath"
	CategoryBirthday    Category = "birthday"
	CategoryAttitude    Category = "attitude"
	CategoryExpression  Category = "expression"
	CategorySoulUrge    Category = "soulUrge"
	CategoryPersonality Category = "personality"
)

// categories is the display order of profile numbers.
var categories = []Category{
	CategoryLifePath,
	CategoryBirthday,
	CategoryAttitude,
	CategoryExpression,
	CategorySoulUrge,
	CategoryPersonality,
}

// Categories returns all categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory resolves a category from its identifier. Matching ignores
// case and accepts snake_case and kebab-case spellings ("soul_urge").
func ParseCategory(value string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("_", "", "-", "", " ", "").Replace(normalized)
	for _, category := range categories {
		if strings.ToLower(string(category)) == normalized {
			return category, nil
		}
	}
	return "", ErrUnknownCategory
}

// String returns the category identifier.
func (c Category) String() string {
	return string(c)
}

// Master numbers are never reduced when they are the input of a reduction.
const (
	MasterEleven      = 11
	MasterTwentyTwo   = 22
	MasterThirtyThree = 33
)

// DefaultNumber is used for name-derived numbers when there are no letters to score.
const DefaultNumber = 1

// ErrMissingBirthDate indicates a profile request had no birth date.
var ErrMissingBirthDate = errors.New("birth date is required")

// ErrInvalidBirthDate indicates a birth date that is not a real calendar date.
var ErrInvalidBirthDate = errors.New("birth date is not a valid calendar date")

// ErrNegativeNumber indicates a reduction was requested for a negative number.
var ErrNegativeNumber = errors.New("number must be non-negative")

// ErrUnknownCategory indicates a category identifier that is not recognised.
var ErrUnknownCategory = errors.New("unknown numerology category")

// IsMaster reports whether n is one of the master numbers.
func IsMaster(n int) bool {
	return n == MasterEleven || n == MasterTwentyTwo || n == MasterThirtyThree
}
