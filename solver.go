package finmath

import (
	"fmt"
	"math"
)

// Objective is a scalar function of the rate. It may fail when the trial rate
// leaves the function's domain, which aborts the search.
type Objective func(rate float64) (float64, error)

// SolverConfig bundles the knobs of a Newton-Raphson search. It is created
// per call and never shared.
type SolverConfig struct {
	InitialGuess  float64
	Tolerance     float64
	MaxIterations int
}

func (c SolverConfig) validate() error {
	if c.InitialGuess <= -1 {
		return fmt.Errorf("%w: initial guess must be greater than -1", ErrInvalidParameter)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be a positive number", ErrInvalidParameter)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: maximum iterations must be a positive integer", ErrInvalidParameter)
	}
	return nil
}

// numericStep is the half-width of the central difference used when no
// analytic derivative is supplied.
const numericStep = 1e-6

// Newton finds rate such that f(rate) = 0, starting from cfg.InitialGuess.
// derivative may be nil, in which case a central-difference approximation of
// f is used in its place.
//
// Convergence is declared when the step size drops below cfg.Tolerance; the
// residual is never checked. There is no fallback bracketing: a zero
// derivative or an exhausted iteration cap is terminal for the call.
func Newton(f, derivative Objective, cfg SolverConfig) (float64, error) {
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	if derivative == nil {
		derivative = func(rate float64) (float64, error) {
			hi, err := f(rate + numericStep)
			if err != nil {
				return 0, err
			}
			lo, err := f(rate - numericStep)
			if err != nil {
				return 0, err
			}
			return (hi - lo) / (2 * numericStep), nil
		}
	}

	rate := cfg.InitialGuess
	for i := 0; i < cfg.MaxIterations; i++ {
		value, err := f(rate)
		if err != nil {
			return 0, err
		}
		deriv, err := derivative(rate)
		if err != nil {
			return 0, err
		}
		if deriv == 0 {
			return 0, fmt.Errorf("%w: unable to continue iteration at rate %g", ErrZeroDerivative, rate)
		}

		next := rate - value/deriv
		if math.Abs(next-rate) < cfg.Tolerance {
			return next, nil
		}
		rate = next
	}
	return 0, &ConvergenceError{Iterations: cfg.MaxIterations}
}
