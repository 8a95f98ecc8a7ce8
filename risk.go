package finmath

import (
	"fmt"
	"math"
	"sort"
)

// SharpeRatio returns the excess return of a sample of returns per unit of
// volatility. The standard deviation is the population form.
func SharpeRatio(returns []float64, riskFreeRate float64) (float64, error) {
	if len(returns) == 0 {
		return 0, fmt.Errorf("%w: returns must not be empty", ErrInvalidInput)
	}
	if riskFreeRate < 0 {
		return 0, fmt.Errorf("%w: risk-free rate cannot be negative", ErrInvalidRate)
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	sd := math.Sqrt(variance / float64(len(returns)))
	if sd == 0 {
		return 0, fmt.Errorf("%w: standard deviation of returns is zero", ErrInvalidInput)
	}
	return (mean - riskFreeRate) / sd, nil
}

// ValueAtRisk returns the loss magnitude at the given confidence level using
// the historical order statistic of the sample.
func ValueAtRisk(returns []float64, confidenceLevel float64) (float64, error) {
	if len(returns) == 0 {
		return 0, fmt.Errorf("%w: returns must not be empty", ErrInvalidInput)
	}
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		return 0, fmt.Errorf("%w: confidence level must be between 0 and 1", ErrInvalidParameter)
	}

	sorted := append([]float64(nil), returns...)
	sort.Float64s(sorted)
	idx := int((1 - confidenceLevel) * float64(len(sorted)))
	return math.Abs(sorted[idx]), nil
}
