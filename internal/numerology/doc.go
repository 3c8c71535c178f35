// Package numerology implements the calculation core for Mystic Numbers.
//
// Everything in this package is a pure function over value types. A profile
// is derived from a birth date and an optional full name:
//
//   - Life Path: every decimal digit of day, month and year summed, then reduced.
//   - Birthday: the day of month, reduced.
//   - Attitude: day plus month, reduced.
//   - Expression: the letter values of the whole name, reduced.
//   - Soul Urge: the letter values of the vowels, reduced.
//   - Personality: the letter values of the consonants, reduced.
//
// # Reduction
//
// Reduction repeatedly sums decimal digits until a single digit remains.
// The master numbers 11, 22 and 33 are returned unchanged when they are the
// input. Whether a master number produced mid-reduction also stops the loop
// is controlled by ReduceOptions.KeepMasters; profiles use the default,
// which keeps reducing.
//
// # Letters
//
// Letters map to 1..9 with the Pythagorean chart (A=1 ... I=9, J=1 ... R=9,
// S=1 ... Z=8). Names are normalized before scoring: diacritics are folded,
// non-letters dropped and the result upper-cased. A, E, I, O and U are
// vowels; every other letter, Y included, is a consonant.
//
// Every derived number carries a Trace describing how it was obtained so
// presentation layers can display the arithmetic.
package numerology
