package numerology

import (
	"strconv"
	"strings"
)

// DigitReduction captures the result of reducing a number and the summations
// performed along the way.
type DigitReduction struct {
	Input  int
	Result int
	// Steps holds one "d1 + d2 + ... = sum" entry per summation, in order.
	Steps []string
}

// ReduceOptions tunes the reduction loop.
type ReduceOptions struct {
	// KeepMasters stops the loop when a summation produces 11, 22 or 33.
	// Without it only the initial input is checked for a master number.
	KeepMasters bool
}

// Reduce sums the decimal digits of n until a single digit remains.
//
// A master number given as input is returned unchanged with no steps. A
// master number produced by a summation is reduced further; use ReduceWith
// to keep it. Values in 0..9 are returned unchanged. Negative values are
// returned unchanged; use ReduceChecked to reject them.
//
// Example:
//
//	r := Reduce(9876)
//	// r.Result == 3
//	// r.Steps == []string{"9 + 8 + 7 + 6 = 30", "3 + 0 = 3"}
func Reduce(n int) DigitReduction {
	return ReduceWith(n, ReduceOptions{})
}

// ReduceChecked reduces n and rejects negative input with ErrNegativeNumber.
func ReduceChecked(n int, opts ReduceOptions) (DigitReduction, error) {
	if n < 0 {
		return DigitReduction{}, ErrNegativeNumber
	}
	return ReduceWith(n, opts), nil
}

// ReduceWith reduces n using the provided options.
func ReduceWith(n int, opts ReduceOptions) DigitReduction {
	reduction := DigitReduction{
		Input:  n,
		Result: n,
		Steps:  make([]string, 0),
	}
	if n < 0 || IsMaster(n) {
		return reduction
	}

	current := n
	for current > 9 {
		parts := Digits(current)
		sum := 0
		for _, d := range parts {
			sum += d
		}
		reduction.Steps = append(reduction.Steps, FormatSum(parts, sum))
		current = sum
		if opts.KeepMasters && IsMaster(current) {
			break
		}
	}
	reduction.Result = current
	return reduction
}

// Digits returns the decimal digits of n, most significant first.
// Negative values are treated by their absolute value.
func Digits(n int) []int {
	if n < 0 {
		n = -n
	}
	if n == 0 {
		return []int{0}
	}
	var reversed []int
	for n > 0 {
		reversed = append(reversed, n%10)
		n /= 10
	}
	out := make([]int, len(reversed))
	for i, d := range reversed {
		out[len(reversed)-1-i] = d
	}
	return out
}

// DigitSum returns the sum of the decimal digits of n.
func DigitSum(n int) int {
	sum := 0
	for _, d := range Digits(n) {
		sum += d
	}
	return sum
}

// FormatSum renders terms and their sum as "t1 + t2 + ... = sum".
func FormatSum(terms []int, sum int) string {
	labels := make([]string, len(terms))
	for i, term := range terms {
		labels[i] = strconv.Itoa(term)
	}
	return FormatLabeledSum(labels, sum)
}

// FormatLabeledSum renders pre-formatted terms and their sum.
func FormatLabeledSum(labels []string, sum int) string {
	var b strings.Builder
	b.WriteString(strings.Join(labels, " + "))
	b.WriteString(" = ")
	b.WriteString(strconv.Itoa(sum))
	return b.String()
}
