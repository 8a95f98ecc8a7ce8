package finmath

import (
	"errors"
	"math"
	"testing"
)

func TestBondPrice(t *testing.T) {
	price, err := BondPrice(1000, 0.05, 10, 0.03)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(price-1170.60) > 0.01 {
		t.Errorf("expected price ~1170.60, got %.4f", price)
	}
}

func TestBondPrice_InvalidArguments(t *testing.T) {
	cases := []struct {
		name     string
		face     float64
		coupon   float64
		periods  int
		rate     float64
		sentinel error
	}{
		{"negative face", -1000, 0.05, 10, 0.03, ErrInvalidParameter},
		{"zero face", 0, 0.05, 10, 0.03, ErrInvalidParameter},
		{"negative coupon", 1000, -0.05, 10, 0.03, ErrInvalidParameter},
		{"negative periods", 1000, 0.05, -10, 0.03, ErrInvalidParameter},
		{"negative rate", 1000, 0.05, 10, -0.03, ErrInvalidRate},
		{"rate of -1", 1000, 0.05, 10, -1, ErrInvalidRate},
	}
	for _, tc := range cases {
		if _, err := BondPrice(tc.face, tc.coupon, tc.periods, tc.rate); !errors.Is(err, tc.sentinel) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.sentinel, err)
		}
	}
}

func TestYieldToMaturity(t *testing.T) {
	ytm, err := YieldToMaturity(1000, 0.05, 10, 900)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(ytm-0.0638) > 1e-4 {
		t.Errorf("expected ytm ~0.0638, got %.6f", ytm)
	}
}

// Pricing at the solved yield must recover the market price.
func TestYieldToMaturity_RoundTrip(t *testing.T) {
	for _, price := range []float64{900.0, 1000.0, 1170.60} {
		ytm, err := YieldToMaturity(1000, 0.05, 10, price)
		if err != nil {
			t.Fatalf("price %v: unexpected error: %v", price, err)
		}
		back, err := BondPrice(1000, 0.05, 10, ytm)
		if err != nil {
			t.Fatalf("price %v: unexpected error: %v", price, err)
		}
		if math.Abs(back-price) > 1e-4 {
			t.Errorf("price %v: round trip through the yield gave %v", price, back)
		}
	}
}

func TestYieldToMaturity_InvalidArguments(t *testing.T) {
	cases := []struct {
		name     string
		face     float64
		coupon   float64
		periods  int
		price    float64
		sentinel error
	}{
		{"negative face", -1000, 0.05, 10, 900, ErrInvalidParameter},
		{"negative coupon", 1000, -0.05, 10, 900, ErrInvalidParameter},
		{"negative periods", 1000, 0.05, -10, 900, ErrInvalidParameter},
		{"negative price", 1000, 0.05, 10, -900, ErrInvalidParameter},
		{"zero price", 1000, 0.05, 10, 0, ErrInvalidParameter},
	}
	for _, tc := range cases {
		if _, err := YieldToMaturity(tc.face, tc.coupon, tc.periods, tc.price); !errors.Is(err, tc.sentinel) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.sentinel, err)
		}
	}
}
