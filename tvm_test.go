package finmath

import (
	"errors"
	"math"
	"testing"
)

func TestPresentValue(t *testing.T) {
	pv, err := PresentValue(0.05, 1000, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(pv-613.91) > 0.01 {
		t.Errorf("expected pv ~613.91, got %.4f", pv)
	}
}

func TestPresentValue_InvalidArguments(t *testing.T) {
	if _, err := PresentValue(-0.05, 1000, 10); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("expected ErrInvalidRate for negative rate, got %v", err)
	}
	if _, err := PresentValue(0.05, 1000, -10); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for negative periods, got %v", err)
	}
}

func TestFutureValue(t *testing.T) {
	fv, err := FutureValue(0.05, 1000, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(fv-1628.89) > 0.01 {
		t.Errorf("expected fv ~1628.89, got %.4f", fv)
	}
}

func TestFutureValue_InvalidArguments(t *testing.T) {
	if _, err := FutureValue(-0.05, 1000, 10); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("expected ErrInvalidRate for negative rate, got %v", err)
	}
	if _, err := FutureValue(0.05, 1000, -10); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for negative periods, got %v", err)
	}
}

func TestFutureValue_Overflow(t *testing.T) {
	if _, err := FutureValue(1e6, 1e300, 1e6); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter on overflow, got %v", err)
	}
}

// Discounting a compounded amount must return the original value.
func TestPresentValueFutureValue_RoundTrip(t *testing.T) {
	cases := []struct {
		rate    float64
		amount  float64
		periods float64
	}{
		{0, 500, 3},
		{0.05, 1000, 10},
		{0.12, 250, 0},
		{0.3, 42, 25},
	}
	for _, tc := range cases {
		fv, err := FutureValue(tc.rate, tc.amount, tc.periods)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pv, err := PresentValue(tc.rate, fv, tc.periods)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(pv-tc.amount) > 1e-9*math.Abs(tc.amount) {
			t.Errorf("round trip at rate %v over %v periods: got %v, want %v", tc.rate, tc.periods, pv, tc.amount)
		}
	}
}
