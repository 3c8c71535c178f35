package numerology

import "strconv"

// Trace explains how one profile number was derived.
type Trace struct {
	Category Category
	// Terms are the summed inputs, digits ("1") or scored letters ("J=1").
	Terms []string
	// Total is the sum of Terms before reduction.
	Total int
	// Steps lists every summation, starting with the sum of Terms when
	// there is more than one term, followed by the reduction steps.
	Steps  []string
	Result int
	// Defaulted is set when there was nothing to sum and Result is DefaultNumber.
	Defaulted bool
}

func traceFromTerms(category Category, terms []string, total int, opts ReduceOptions) Trace {
	steps := make([]string, 0, 4)
	if len(terms) > 1 {
		steps = append(steps, FormatLabeledSum(terms, total))
	}
	reduction := ReduceWith(total, opts)
	steps = append(steps, reduction.Steps...)
	return Trace{
		Category: category,
		Terms:    terms,
		Total:    total,
		Steps:    steps,
		Result:   reduction.Result,
	}
}

func traceFromDigits(category Category, digits []int, opts ReduceOptions) Trace {
	terms := make([]string, len(digits))
	total := 0
	for i, d := range digits {
		terms[i] = strconv.Itoa(d)
		total += d
	}
	return traceFromTerms(category, terms, total, opts)
}

func traceFromNumbers(category Category, opts ReduceOptions, numbers ...int) Trace {
	terms := make([]string, len(numbers))
	total := 0
	for i, n := range numbers {
		terms[i] = strconv.Itoa(n)
		total += n
	}
	return traceFromTerms(category, terms, total, opts)
}

func traceFromName(category Category, score NameScore, opts ReduceOptions) Trace {
	if score.Empty() {
		return Trace{
			Category:  category,
			Terms:     make([]string, 0),
			Steps:     make([]string, 0),
			Result:    DefaultNumber,
			Defaulted: true,
		}
	}
	return traceFromTerms(category, score.Labels(), score.Total, opts)
}
