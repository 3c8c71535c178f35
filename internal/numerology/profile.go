package numerology

// ProfileRequest carries the inputs of a profile calculation.
type ProfileRequest struct {
	// BirthDate is required.
	BirthDate *BirthDate
	// Name is optional free text; non-letters are ignored.
	Name string
	// Reduce tunes every reduction of the profile.
	Reduce ReduceOptions
}

// Profile is the complete result of a calculation.
type Profile struct {
	BirthDate BirthDate
	// Name is the name as supplied; NormalizedName is what was scored.
	Name           string
	NormalizedName string

	LifePath    int
	Birthday    int
	Attitude    int
	Expression  int
	SoulUrge    int
	Personality int

	// Traces holds one entry per category in display order.
	Traces []Trace
}

// Number returns the derived number for category.
func (p Profile) Number(category Category) (int, bool) {
	switch category {
	case CategoryLifePath:
		return p.LifePath, true
	case CategoryBirthday:
		return p.Birthday, true
	case CategoryAttitude:
		return p.Attitude, true
	case CategoryExpression:
		return p.Expression, true
	case CategorySoulUrge:
		return p.SoulUrge, true
	case CategoryPersonality:
		return p.Personality, true
	default:
		return 0, false
	}
}

// Trace returns the derivation trace for category.
func (p Profile) Trace(category Category) (Trace, bool) {
	for _, trace := range p.Traces {
		if trace.Category == category {
			return trace, true
		}
	}
	return Trace{}, false
}

// ComputeProfile derives every number of a profile.
//
// # Errors
//
//   - A nil BirthDate returns ErrMissingBirthDate.
//   - A BirthDate that is not a real calendar date returns ErrInvalidBirthDate.
//
// Name-derived numbers (Expression, Soul Urge, Personality) default to 1
// when the name has no letters of the relevant kind.
//
// Example:
//
//	date, _ := NewBirthDate(1990, 5, 15)
//	profile, err := ComputeProfile(ProfileRequest{BirthDate: &date, Name: "John"})
//	// profile.LifePath == 3, profile.Expression == 2
func ComputeProfile(request ProfileRequest) (Profile, error) {
	if request.BirthDate == nil {
		return Profile{}, ErrMissingBirthDate
	}
	date, err := NewBirthDate(request.BirthDate.Year, request.BirthDate.Month, request.BirthDate.Day)
	if err != nil {
		return Profile{}, err
	}
	opts := request.Reduce

	lifePath := traceFromDigits(CategoryLifePath, date.Digits(), opts)
	birthday := traceFromNumbers(CategoryBirthday, opts, date.Day)
	attitude := traceFromNumbers(CategoryAttitude, opts, date.Day, date.Month)
	expression := traceFromName(CategoryExpression, ScoreName(request.Name, AllLetters), opts)
	soulUrge := traceFromName(CategorySoulUrge, ScoreName(request.Name, Vowels), opts)
	personality := traceFromName(CategoryPersonality, ScoreName(request.Name, Consonants), opts)

	return Profile{
		BirthDate:      date,
		Name:           request.Name,
		NormalizedName: NormalizeName(request.Name),
		LifePath:       lifePath.Result,
		Birthday:       birthday.Result,
		Attitude:       attitude.Result,
		Expression:     expression.Result,
		SoulUrge:       soulUrge.Result,
		Personality:    personality.Result,
		Traces:         []Trace{lifePath, birthday, attitude, expression, soulUrge, personality},
	}, nil
}
