package finmath

import (
	"fmt"
	"math"
)

// BlackScholesCall returns the Black-Scholes price of a European call option.
// maturity is in years, rate and sigma are decimal fractions.
func BlackScholesCall(spot, strike, maturity, rate, sigma float64) (float64, error) {
	if spot <= 0 || strike <= 0 {
		return 0, fmt.Errorf("%w: spot and strike prices must be positive", ErrInvalidParameter)
	}
	if maturity <= 0 {
		return 0, fmt.Errorf("%w: time to maturity must be positive", ErrInvalidParameter)
	}
	if rate < 0 {
		return 0, fmt.Errorf("%w: risk-free rate cannot be negative", ErrInvalidRate)
	}
	if sigma <= 0 {
		return 0, fmt.Errorf("%w: volatility must be positive", ErrInvalidParameter)
	}

	d1 := (math.Log(spot/strike) + (rate+0.5*sigma*sigma)*maturity) / (sigma * math.Sqrt(maturity))
	d2 := d1 - sigma*math.Sqrt(maturity)
	return spot*normCDF(d1) - strike*math.Exp(-rate*maturity)*normCDF(d2), nil
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}
