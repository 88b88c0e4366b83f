package mathutil

import (
	"golang.org/x/exp/constraints"
)

// Digits returns the number of decimal digits of n. Negative values count
// digits of the absolute value.
func Digits[T constraints.Integer](n T) int {
	if n < 0 {
		n = -n
	}

	d := 1
	for n >= 10 {
		n /= 10
		d++
	}

	return d
}
