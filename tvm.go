package finmath

import (
	"fmt"
	"math"
)

// PresentValue discounts a single future amount back over the given number of
// compounding periods.
func PresentValue(rate, futureValue, periods float64) (float64, error) {
	if periods < 0 {
		return 0, fmt.Errorf("%w: periods cannot be negative", ErrInvalidParameter)
	}
	if rate < 0 {
		return 0, fmt.Errorf("%w: rate cannot be negative", ErrInvalidRate)
	}
	return futureValue / math.Pow(1+rate, periods), nil
}

// FutureValue compounds a present amount forward over the given number of
// periods.
func FutureValue(rate, presentValue, periods float64) (float64, error) {
	if periods < 0 {
		return 0, fmt.Errorf("%w: periods cannot be negative", ErrInvalidParameter)
	}
	if rate < 0 {
		return 0, fmt.Errorf("%w: rate cannot be negative", ErrInvalidRate)
	}

	fv := presentValue * math.Pow(1+rate, periods)
	if math.IsInf(fv, 0) {
		return 0, fmt.Errorf("%w: result is too large", ErrInvalidParameter)
	}
	return fv, nil
}
