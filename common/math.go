package common

import "math"

// Wrap normalizes x into [0, m). Go's math.Mod keeps the sign of x, so the
// result is shifted back into range before the second reduction.
func Wrap(x, m float64) float64 {
	if m <= 0 {
		return 0
	}
	r := math.Mod(math.Mod(x, m)+m, m)
	// math.Mod can hand back m itself when x is a tiny negative number.
	if r >= m {
		r = 0
	}
	return r
}

// WrapInt is Wrap for integers.
func WrapInt(x, m int) int {
	if m <= 0 {
		return 0
	}
	return ((x % m) + m) % m
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
