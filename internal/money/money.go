// Package money provides safe numeric coercion and fixed-precision rounding
// for currency values. All stored and derived monetary quantities pass through
// Round before comparison or display so that float drift cannot accumulate
// across many small transactions.
package money

import (
	"math"
	"strconv"
	"strings"
)

// precision is the scale used for monetary rounding: eight decimal places,
// enough to keep satoshi-level quantities exact.
const precision = 1e8

// Round rounds v to eight decimal places.
func Round(v float64) float64 {
	return math.Round(v*precision) / precision
}

// Parse converts free-form numeric text to a float64. The input is trimmed
// and a comma decimal separator is normalized to a dot before parsing, so
// both "0.5" and "0,5" are accepted.
func Parse(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}

// SafeNumber coerces arbitrary numeric text to a float64, treating anything
// unparsable (including the empty string) as zero. The zero-coercion is
// deliberate fail-closed behavior for optional numeric fields; callers in
// financial contexts must validate with Parse before trusting a zero.
func SafeNumber(s string) float64 {
	v, err := Parse(s)
	if err != nil {
		return 0
	}
	return v
}
