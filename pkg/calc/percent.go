package calc

import "math"

// PercentOf returns x percent of y.
func PercentOf(x, y float64) float64 {
	return x / 100 * y
}

// PercentOfWhat answers "a is what percent of b". Undefined for b = 0.
func PercentOfWhat(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrNotComputable
	}
	return a / b * 100, nil
}

// PercentChange returns the percent change from a to b, using |a| as the
// base so a negative starting value keeps the sign of the move.
// Undefined for a = 0.
func PercentChange(a, b float64) (float64, error) {
	if a == 0 {
		return 0, ErrNotComputable
	}
	return (b - a) / math.Abs(a) * 100, nil
}
