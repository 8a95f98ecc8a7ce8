package finmath

import (
	"fmt"
	"math"
)

// Yield-to-maturity solver settings. The search shares the step-size
// convergence criterion of the IRR solver but runs it tighter, close to what
// a residual-based library solver would deliver.
const (
	ytmGuess         = 0.05
	ytmTolerance     = 1e-8
	ytmMaxIterations = 100
)

func checkBondTerms(faceValue, couponRate float64, periods int) error {
	if faceValue <= 0 {
		return fmt.Errorf("%w: face value must be positive", ErrInvalidParameter)
	}
	if couponRate < 0 {
		return fmt.Errorf("%w: coupon rate cannot be negative", ErrInvalidParameter)
	}
	if periods <= 0 {
		return fmt.Errorf("%w: periods must be positive", ErrInvalidParameter)
	}
	return nil
}

// BondPrice returns the price of a coupon bond: the discounted coupon stream
// plus the discounted face value over the given number of periods.
func BondPrice(faceValue, couponRate float64, periods int, discountRate float64) (float64, error) {
	if err := checkBondTerms(faceValue, couponRate, periods); err != nil {
		return 0, err
	}
	if discountRate < 0 {
		return 0, fmt.Errorf("%w: discount rate cannot be negative", ErrInvalidRate)
	}
	return bondPriceAt(faceValue, couponRate, periods, discountRate)
}

// bondPriceAt prices without the non-negative rate check so the yield solver
// can probe trial rates. Rates at or below -1 are still rejected.
func bondPriceAt(faceValue, couponRate float64, periods int, rate float64) (float64, error) {
	if rate <= -1 {
		return 0, fmt.Errorf("%w: rate cannot be -1 or below", ErrInvalidRate)
	}

	coupon := faceValue * couponRate
	price := 0.0
	for t := 1; t <= periods; t++ {
		price += coupon / math.Pow(1+rate, float64(t))
	}
	price += faceValue / math.Pow(1+rate, float64(periods))
	return price, nil
}

// YieldToMaturity finds the rate at which BondPrice equals the given market
// price, using the derivative-free form of the Newton engine seeded at 5%.
func YieldToMaturity(faceValue, couponRate float64, periods int, price float64) (float64, error) {
	if err := checkBondTerms(faceValue, couponRate, periods); err != nil {
		return 0, err
	}
	if price <= 0 {
		return 0, fmt.Errorf("%w: price must be positive", ErrInvalidParameter)
	}

	f := func(rate float64) (float64, error) {
		p, err := bondPriceAt(faceValue, couponRate, periods, rate)
		if err != nil {
			return 0, err
		}
		return p - price, nil
	}
	return Newton(f, nil, SolverConfig{
		InitialGuess:  ytmGuess,
		Tolerance:     ytmTolerance,
		MaxIterations: ytmMaxIterations,
	})
}
