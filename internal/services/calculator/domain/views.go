package domain

import (
	"github.com/louisbranch/mysticnumbers/internal/interpretation"
	"github.com/louisbranch/mysticnumbers/internal/numerology"
)

// ReductionView is the wire form of a digit reduction.
type ReductionView struct {
	Input  int      `json:"input" jsonschema:"number that was reduced"`
	Result int      `json:"result" jsonschema:"single digit or master number"`
	Steps  []string `json:"steps" jsonschema:"one summation per entry, e.g. 9 + 8 + 7 + 6 = 30"`
	Master bool     `json:"master" jsonschema:"whether the result is a master number"`
}

// TraceView is the wire form of one derivation trace.
type TraceView struct {
	Category  string   `json:"category" jsonschema:"profile number category"`
	Title     string   `json:"title" jsonschema:"localized category title"`
	Terms     []string `json:"terms" jsonschema:"summed inputs, digits or letter=value pairs"`
	Total     int      `json:"total" jsonschema:"sum of the terms before reduction"`
	Steps     []string `json:"steps" jsonschema:"summations performed"`
	Result    int      `json:"result" jsonschema:"derived number"`
	Defaulted bool     `json:"defaulted" jsonschema:"whether the default value 1 was used"`
	Note      string   `json:"note,omitempty" jsonschema:"localized note for defaulted traces"`
}

// ProfileView is the wire form of a computed profile with interpretations.
type ProfileView struct {
	Locale          string                          `json:"locale" jsonschema:"locale used for texts"`
	BirthDate       string                          `json:"birth_date" jsonschema:"birth date as YYYY-MM-DD"`
	Name            string                          `json:"name,omitempty" jsonschema:"name as supplied"`
	NormalizedName  string                          `json:"normalized_name,omitempty" jsonschema:"letters A-Z that were scored"`
	LifePath        int                             `json:"life_path"`
	Birthday        int                             `json:"birthday"`
	Attitude        int                             `json:"attitude"`
	Expression      int                             `json:"expression"`
	SoulUrge        int                             `json:"soul_urge"`
	Personality     int                             `json:"personality"`
	Traces          []TraceView                     `json:"traces"`
	Interpretations []interpretation.Interpretation `json:"interpretations"`
}

// LocaleView describes one supported locale.
type LocaleView struct {
	Tag     string `json:"tag" jsonschema:"BCP 47 tag"`
	Name    string `json:"name" jsonschema:"language name in that language"`
	Default bool   `json:"default" jsonschema:"whether this is the fallback locale"`
}

// NewReductionView converts a reduction to its wire form.
func NewReductionView(r numerology.DigitReduction) ReductionView {
	steps := r.Steps
	if steps == nil {
		steps = []string{}
	}
	return ReductionView{
		Input:  r.Input,
		Result: r.Result,
		Steps:  steps,
		Master: numerology.IsMaster(r.Result),
	}
}

// Number returns the profile number for a category identifier.
func (p ProfileView) Number(category numerology.Category) int {
	switch category {
	case numerology.CategoryLifePath:
		return p.LifePath
	case numerology.CategoryBirthday:
		return p.Birthday
	case numerology.CategoryAttitude:
		return p.Attitude
	case numerology.CategoryExpression:
		return p.Expression
	case numerology.CategorySoulUrge:
		return p.SoulUrge
	case numerology.CategoryPersonality:
		return p.Personality
	default:
		return 0
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
