package finmath

import (
	"fmt"
	"math"
)

// Default solver settings for InternalRateOfReturn.
const (
	DefaultIRRGuess = 0.1
	// DefaultIRRTolerance determines how small the rate step must get before
	// the Newton-Raphson algorithm stops.
	DefaultIRRTolerance = 1e-6
	// DefaultIRRIterations caps the number of iterations performed.
	DefaultIRRIterations = 1000
)

// checkRate rejects rates at or below -1, where the discount base (1+rate)
// stops being positive.
func checkRate(rate float64) error {
	if rate < -1 {
		return fmt.Errorf("%w: rate must be greater than or equal to -1", ErrInvalidRate)
	}
	if rate == -1 {
		return fmt.Errorf("%w: rate cannot be -1", ErrInvalidRate)
	}
	return nil
}

// NetPresentValue returns the present value of a cash flow series discounted
// at the given rate. Index = period number; period 0 is the immediate flow,
// typically the initial outlay.
// Excel equivalent: NPV, with the period-0 flow included undiscounted.
func NetPresentValue(rate float64, cashFlows []float64) (float64, error) {
	if len(cashFlows) == 0 {
		return 0, fmt.Errorf("%w: cash flows must not be empty", ErrInvalidInput)
	}
	if err := checkRate(rate); err != nil {
		return 0, err
	}

	npv := 0.0
	for t, cf := range cashFlows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv, nil
}

// NetPresentValueDerivative returns the analytic first derivative of
// NetPresentValue with respect to the rate:
//
//	sum over t of -t*cf[t] / (1+rate)^(t+1)
func NetPresentValueDerivative(rate float64, cashFlows []float64) (float64, error) {
	if len(cashFlows) == 0 {
		return 0, fmt.Errorf("%w: cash flows must not be empty", ErrInvalidInput)
	}
	if err := checkRate(rate); err != nil {
		return 0, err
	}

	deriv := 0.0
	for t, cf := range cashFlows {
		deriv -= float64(t) * cf / math.Pow(1+rate, float64(t+1))
	}
	return deriv, nil
}

// InternalRateOfReturn returns the discount rate that makes the net present
// value of the cash flow series zero, found by Newton-Raphson with the
// default guess, tolerance and iteration cap.
// Excel equivalent: IRR
func InternalRateOfReturn(cashFlows []float64) (float64, error) {
	return InternalRateOfReturnWithConfig(cashFlows, SolverConfig{
		InitialGuess:  DefaultIRRGuess,
		Tolerance:     DefaultIRRTolerance,
		MaxIterations: DefaultIRRIterations,
	})
}

// InternalRateOfReturnWithConfig is InternalRateOfReturn with caller-supplied
// solver settings. Config violations fail before any iteration starts.
func InternalRateOfReturnWithConfig(cashFlows []float64, cfg SolverConfig) (float64, error) {
	if len(cashFlows) == 0 {
		return 0, fmt.Errorf("%w: cash flows must not be empty", ErrInvalidInput)
	}

	f := func(rate float64) (float64, error) {
		return NetPresentValue(rate, cashFlows)
	}
	derivative := func(rate float64) (float64, error) {
		return NetPresentValueDerivative(rate, cashFlows)
	}
	return Newton(f, derivative, cfg)
}
