// Package calc implements the deterministic finance, trading, date and
// percentage formulas behind the calculator tools. Every function is pure:
// identical inputs always produce identical outputs, and domain-undefined
// inputs return a sentinel error instead of propagating NaN or Inf.
package calc

import "errors"

// ErrNotComputable marks inputs outside a formula's domain, such as a zero
// denominator.
var ErrNotComputable = errors.New("result not computable for given inputs")

// ErrInvertedDates is returned when a date range is given in reverse order.
var ErrInvertedDates = errors.New("start date is after end date")
