package finmath

import (
	"fmt"
	"math"
	"time"
)

// Solver settings for the scheduled (dated) variants.
const (
	scheduledGuess         = 0.001
	scheduledMaxIterations = 30
)

// CouponFlow is one dated payment of a bond schedule.
type CouponFlow struct {
	Date     time.Time
	Rate     float64
	Amort    float64
	Residual float64
	Amount   float64
}

// Bond is a bond identity plus its full cash-flow schedule. Index names an
// adjustment index (e.g. "CER") when the face value is inflation-linked.
type Bond struct {
	ID           string
	Ticker       string
	IssueDate    time.Time
	Maturity     time.Time
	Coupon       float64
	Cashflow     []CouponFlow
	Index        string
	Offset       int
	DayCountConv int
}

func checkSchedule(values []float64, dates []time.Time) error {
	if len(values) == 0 {
		return fmt.Errorf("%w: cash flows must not be empty", ErrInvalidInput)
	}
	if len(values) != len(dates) {
		return fmt.Errorf("%w: values and dates must have the same length", ErrInvalidInput)
	}
	return nil
}

// ScheduledNetPresentValue returns the net present value of a dated cash flow
// series, discounting each flow by its actual/365 distance from the first
// date. The price is calculated as of the first element's date; prepend a
// zero-amount flow at the settlement date to value on any other date.
// Excel equivalent: XNPV
func ScheduledNetPresentValue(rate float64, values []float64, dates []time.Time) (float64, error) {
	if err := checkSchedule(values, dates); err != nil {
		return 0, err
	}
	if err := checkRate(rate); err != nil {
		return 0, err
	}

	xnpv := 0.0
	for i, v := range values {
		exp := dates[i].Sub(dates[0]).Hours() / 24.0 / 365.0
		xnpv += v / math.Pow(1+rate, exp)
	}
	return xnpv, nil
}

// ScheduledNetPresentValueDerivative is the analytic derivative of
// ScheduledNetPresentValue with respect to the rate.
func ScheduledNetPresentValueDerivative(rate float64, values []float64, dates []time.Time) (float64, error) {
	if err := checkSchedule(values, dates); err != nil {
		return 0, err
	}
	if err := checkRate(rate); err != nil {
		return 0, err
	}

	dxnpv := 0.0
	for i, v := range values {
		exp := dates[i].Sub(dates[0]).Hours() / 24.0 / 365.0
		dxnpv -= v * exp / math.Pow(1+rate, exp+1)
	}
	return dxnpv, nil
}

// ScheduledInternalRateOfReturn returns the internal rate of return of a
// dated cash flow series. guess is the starting point for the iteration.
// The series must contain at least one positive and one negative value.
// Excel equivalent: XIRR
func ScheduledInternalRateOfReturn(values []float64, dates []time.Time, guess float64) (float64, error) {
	if err := checkSchedule(values, dates); err != nil {
		return 0, err
	}
	min, max := minMaxSlice(values)
	if min*max >= 0 {
		return 0, fmt.Errorf("%w: the cash flow must contain at least one positive and one negative value", ErrInvalidInput)
	}

	f := func(rate float64) (float64, error) {
		return ScheduledNetPresentValue(rate, values, dates)
	}
	derivative := func(rate float64) (float64, error) {
		return ScheduledNetPresentValueDerivative(rate, values, dates)
	}
	return Newton(f, derivative, SolverConfig{
		InitialGuess:  guess,
		Tolerance:     DefaultIRRTolerance,
		MaxIterations: scheduledMaxIterations,
	})
}

func minMaxSlice(values []float64) (float64, float64) {
	min := math.MaxFloat64
	max := -min
	for _, value := range values {
		if value > max {
			max = value
		}
		if value < min {
			min = value
		}
	}
	return min, max
}

// remainingFlows returns the schedule strictly after the settlement date.
func (b *Bond) remainingFlows(settlement time.Time) []CouponFlow {
	var flows []CouponFlow
	for _, cf := range b.Cashflow {
		if cf.Date.After(settlement) {
			flows = append(flows, cf)
		}
	}
	return flows
}

// Scaled returns a copy of the bond with every flow amount multiplied by
// ratio, used to apply an adjustment-index coefficient to indexed bonds.
func (b *Bond) Scaled(ratio float64) *Bond {
	scaled := *b
	scaled.Cashflow = make([]CouponFlow, len(b.Cashflow))
	for i, cf := range b.Cashflow {
		cf.Amount *= ratio
		scaled.Cashflow[i] = cf
	}
	return &scaled
}

// PriceAtSettlement values the remaining schedule at the given rate as of the
// settlement date. Flows on or before settlement are dropped.
func (b *Bond) PriceAtSettlement(rate float64, settlement time.Time) (float64, error) {
	flows := b.remainingFlows(settlement)
	if len(flows) == 0 {
		return 0, fmt.Errorf("%w: no cash flows after settlement", ErrInvalidInput)
	}

	values := make([]float64, len(flows)+1)
	dates := make([]time.Time, len(flows)+1)
	values[0] = 0
	dates[0] = settlement
	for i, cf := range flows {
		values[i+1] = cf.Amount
		dates[i+1] = cf.Date
	}
	return ScheduledNetPresentValue(rate, values, dates)
}

// YieldAtSettlement returns the yield implied by a market price as of the
// settlement date, treating the price as the outlay on that date.
func (b *Bond) YieldAtSettlement(price float64, settlement time.Time) (float64, error) {
	if price <= 0 {
		return 0, fmt.Errorf("%w: price must be positive", ErrInvalidParameter)
	}
	flows := b.remainingFlows(settlement)
	if len(flows) == 0 {
		return 0, fmt.Errorf("%w: no cash flows after settlement", ErrInvalidInput)
	}

	values := make([]float64, len(flows)+1)
	dates := make([]time.Time, len(flows)+1)
	values[0] = -price
	dates[0] = settlement
	for i, cf := range flows {
		values[i+1] = cf.Amount
		dates[i+1] = cf.Date
	}
	return ScheduledInternalRateOfReturn(values, dates, scheduledGuess)
}

// AccruedAt returns the coupon interest accrued from the last payment (or the
// issue date) up to settlement, under the bond's day count convention.
func (b *Bond) AccruedAt(settlement time.Time, ratio float64) float64 {
	prev := b.IssueDate
	var next *CouponFlow
	for i := range b.Cashflow {
		if b.Cashflow[i].Date.After(settlement) {
			next = &b.Cashflow[i]
			break
		}
		prev = b.Cashflow[i].Date
	}
	if next == nil {
		return 0
	}
	days := settlement.Sub(prev).Hours() / 24
	return AccruedInterest(b.DayCountConv, days, next.Rate, next.Residual, ratio)
}
