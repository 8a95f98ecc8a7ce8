package finmath

import (
	"errors"
	"math"
	"testing"
	"time"
)

// annualDates builds dates exactly 365 days apart so the scheduled exponents
// land on whole periods and match the unscheduled formulas.
func annualDates(n int) []time.Time {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = base.AddDate(0, 0, 365*i)
	}
	return dates
}

func TestScheduledNetPresentValue_MatchesUnscheduled(t *testing.T) {
	values := []float64{-1000, 300, 400, 500, 600}
	dates := annualDates(len(values))

	xnpv, err := ScheduledNetPresentValue(0.1, values, dates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	npv, err := NetPresentValue(0.1, values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(xnpv-npv) > 1e-9 {
		t.Errorf("scheduled npv %v should match unscheduled %v on annual dates", xnpv, npv)
	}
}

func TestScheduledNetPresentValue_Invalid(t *testing.T) {
	values := []float64{-1000, 500}
	dates := annualDates(3)

	if _, err := ScheduledNetPresentValue(0.1, values, dates); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for mismatched lengths, got %v", err)
	}
	if _, err := ScheduledNetPresentValue(-1, values, dates[:2]); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("expected ErrInvalidRate, got %v", err)
	}
	if _, err := ScheduledNetPresentValue(0.1, nil, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty series, got %v", err)
	}
}

func TestScheduledInternalRateOfReturn(t *testing.T) {
	values := []float64{-1000, 300, 400, 500, 600}
	dates := annualDates(len(values))

	irr, err := ScheduledInternalRateOfReturn(values, dates, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(irr-0.2489) > 1e-3 {
		t.Errorf("expected irr ~0.2489, got %.6f", irr)
	}
}

func TestScheduledInternalRateOfReturn_RequiresSignChange(t *testing.T) {
	values := []float64{1000, 300, 400}
	dates := annualDates(len(values))

	if _, err := ScheduledInternalRateOfReturn(values, dates, 0.1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for all-positive flows, got %v", err)
	}
}

func testBond() *Bond {
	issue := time.Date(2023, 7, 9, 0, 0, 0, 0, time.UTC)
	return &Bond{
		ID:           "1",
		Ticker:       "TB27",
		IssueDate:    issue,
		Maturity:     time.Date(2027, 7, 9, 0, 0, 0, 0, time.UTC),
		Coupon:       0.05,
		DayCountConv: DayCountActual365,
		Cashflow: []CouponFlow{
			{Date: time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC), Rate: 0.05, Amort: 0, Residual: 100, Amount: 5},
			{Date: time.Date(2026, 7, 9, 0, 0, 0, 0, time.UTC), Rate: 0.05, Amort: 0, Residual: 100, Amount: 5},
			{Date: time.Date(2027, 7, 9, 0, 0, 0, 0, time.UTC), Rate: 0.05, Amort: 100, Residual: 100, Amount: 105},
		},
	}
}

func TestBond_PriceYieldRoundTrip(t *testing.T) {
	bond := testBond()
	settlement := time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC)

	price, err := bond.PriceAtSettlement(0.06, settlement)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	yield, err := bond.YieldAtSettlement(price, settlement)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(yield-0.06) > 1e-4 {
		t.Errorf("expected the pricing rate back, got %.6f", yield)
	}
}

func TestBond_SettlementCutsOffPastFlows(t *testing.T) {
	bond := testBond()
	// past the first two coupons, only the final flow remains
	settlement := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)

	price, err := bond.PriceAtSettlement(0, settlement)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(price-105) > 1e-9 {
		t.Errorf("expected only the final flow at a zero rate, got %v", price)
	}

	// a settlement past maturity leaves nothing to value
	settlement = time.Date(2027, 7, 10, 0, 0, 0, 0, time.UTC)
	if _, err := bond.PriceAtSettlement(0.05, settlement); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput past maturity, got %v", err)
	}
}

func TestBond_Scaled(t *testing.T) {
	bond := testBond()
	scaled := bond.Scaled(2)

	if scaled.Cashflow[0].Amount != 10 || scaled.Cashflow[2].Amount != 210 {
		t.Errorf("expected doubled amounts, got %v and %v", scaled.Cashflow[0].Amount, scaled.Cashflow[2].Amount)
	}
	if bond.Cashflow[0].Amount != 5 {
		t.Errorf("original bond must stay untouched, got %v", bond.Cashflow[0].Amount)
	}
}

func TestBond_AccruedAt(t *testing.T) {
	bond := testBond()
	// 73 days into the coupon period that started 2025-07-09
	settlement := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)

	accrued := bond.AccruedAt(settlement, 1)
	want := 73.0 / 365.0 * 0.05 * 100
	if math.Abs(accrued-want) > 1e-9 {
		t.Errorf("expected accrued %v, got %v", want, accrued)
	}

	// nothing accrues after the final flow
	if got := bond.AccruedAt(time.Date(2027, 8, 1, 0, 0, 0, 0, time.UTC), 1); got != 0 {
		t.Errorf("expected zero accrued past maturity, got %v", got)
	}
}
