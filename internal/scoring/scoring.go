// Package scoring holds the arithmetic and rule-cascade helpers shared by the
// analyzers and orchestrators.
package scoring

import "math"

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Mean returns the arithmetic mean of values, or 0 for none.
func Mean(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Composite is the rounded mean of a set of bounded sub-scores.
func Composite(places int, values ...float64) float64 {
	return Round(Mean(values...), places)
}

// Percent returns part/whole*100, or 0 when whole is zero.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Named is one entry of an ordered set of named sub-scores.
type Named struct {
	Name  string
	Score float64
}

// CompositeNamed is Composite over named scores.
func CompositeNamed(places int, scores ...Named) float64 {
	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = s.Score
	}
	return Composite(places, values...)
}
