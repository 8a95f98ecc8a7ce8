package finmath

import "fmt"

// DividendDiscountModel prices a stock under the Gordon growth model:
// next year's dividend divided by the spread between the required return and
// the dividend growth rate.
func DividendDiscountModel(dividend, growthRate, discountRate float64) (float64, error) {
	if dividend <= 0 {
		return 0, fmt.Errorf("%w: dividend must be positive", ErrInvalidParameter)
	}
	if discountRate <= 0 {
		return 0, fmt.Errorf("%w: discount rate must be positive", ErrInvalidRate)
	}
	if growthRate < 0 || growthRate >= discountRate {
		return 0, fmt.Errorf("%w: growth rate must be non-negative and less than the discount rate", ErrInvalidParameter)
	}
	return dividend / (discountRate - growthRate), nil
}
