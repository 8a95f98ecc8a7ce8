package finmath

import (
	"errors"
	"fmt"
)

// Sentinel errors for the calculation domain. Callers match them with
// errors.Is; every public function wraps one of these with detail.
var (
	// ErrInvalidInput flags a malformed sequence argument, e.g. an empty
	// cash flow series or mismatched values/dates lengths.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidRate flags a rate outside its documented domain.
	ErrInvalidRate = errors.New("invalid rate")
	// ErrInvalidParameter flags any other numeric argument outside its domain.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrZeroDerivative is returned when the Newton-Raphson iteration hits a
	// flat spot and cannot continue.
	ErrZeroDerivative = errors.New("zero derivative")
	// ErrDidNotConverge is returned when the iteration cap is exhausted.
	ErrDidNotConverge = errors.New("did not converge")
)

// ConvergenceError reports a root search that exhausted its iteration cap.
// It unwraps to ErrDidNotConverge.
type ConvergenceError struct {
	// Iterations is the number of iterations attempted before giving up.
	Iterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("did not converge after %d iterations", e.Iterations)
}

func (e *ConvergenceError) Unwrap() error { return ErrDidNotConverge }
