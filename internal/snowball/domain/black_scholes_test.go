package domain

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCalculateBlackScholesCallBenchmark(t *testing.T) {
	// S=100, K=100, T=1, r=5%, q=0, sigma=20% 的教科书基准
	input := BlackScholesInput{S: 100, K: 100, T: 1, R: 0.05, Q: 0, Sigma: 0.2}

	result, err := CalculateBlackScholes(OptionTypeCall, input)
	if err != nil {
		t.Fatalf("CalculateBlackScholes failed: %v", err)
	}

	price := result.Price.InexactFloat64()
	if !almostEqual(price, 10.450583572185565, 1e-9) {
		t.Fatalf("call price = %v, want 10.450583572185565", price)
	}
	if delta := result.Delta.InexactFloat64(); delta <= 0.5 || delta >= 1 {
		t.Fatalf("ATM call delta = %v, want in (0.5, 1)", delta)
	}
	if vega := result.Vega.InexactFloat64(); vega <= 0 {
		t.Fatalf("vega = %v, want > 0", vega)
	}
	if gamma := result.Gamma.InexactFloat64(); gamma <= 0 {
		t.Fatalf("gamma = %v, want > 0", gamma)
	}
}

func TestCalculateBlackScholesPutCallParity(t *testing.T) {
	input := BlackScholesInput{S: 105, K: 100, T: 0.5, R: 0.03, Q: 0.01, Sigma: 0.25}

	call, err := CalculateBlackScholes(OptionTypeCall, input)
	if err != nil {
		t.Fatalf("call pricing failed: %v", err)
	}
	put, err := CalculateBlackScholes(OptionTypePut, input)
	if err != nil {
		t.Fatalf("put pricing failed: %v", err)
	}

	// C - P = S*e^(-qT) - K*e^(-rT)
	lhs := call.Price.InexactFloat64() - put.Price.InexactFloat64()
	rhs := input.S*math.Exp(-input.Q*input.T) - input.K*math.Exp(-input.R*input.T)
	if !almostEqual(lhs, rhs, 1e-9) {
		t.Fatalf("put-call parity violated: C-P = %v, want %v", lhs, rhs)
	}
}

func TestCalculateBlackScholesCallPriceIncreasesWithVolatility(t *testing.T) {
	prev := 0.0
	for _, sigma := range []float64{0.1, 0.2, 0.3, 0.5, 0.8} {
		input := BlackScholesInput{S: 100, K: 100, T: 1, R: 0.05, Sigma: sigma}
		result, err := CalculateBlackScholes(OptionTypeCall, input)
		if err != nil {
			t.Fatalf("pricing failed at sigma=%v: %v", sigma, err)
		}
		price := result.Price.InexactFloat64()
		if price <= prev {
			t.Fatalf("call price not increasing in sigma: price(%v) = %v, previous = %v", sigma, price, prev)
		}
		prev = price
	}
}

func TestCalculateBlackScholesInvalidInputs(t *testing.T) {
	cases := []struct {
		name    string
		input   BlackScholesInput
		wantErr error
	}{
		{"zero spot", BlackScholesInput{S: 0, K: 100, T: 1, Sigma: 0.2}, ErrInvalidParameter},
		{"negative strike", BlackScholesInput{S: 100, K: -1, T: 1, Sigma: 0.2}, ErrInvalidParameter},
		{"zero volatility", BlackScholesInput{S: 100, K: 100, T: 1, Sigma: 0}, ErrInvalidParameter},
		{"zero maturity", BlackScholesInput{S: 100, K: 100, T: 0, Sigma: 0.2}, ErrNonPositiveMaturity},
		{"negative maturity", BlackScholesInput{S: 100, K: 100, T: -0.5, Sigma: 0.2}, ErrNonPositiveMaturity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateBlackScholes(OptionTypeCall, tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestBsCallMatchesGreeksPrice(t *testing.T) {
	input := BlackScholesInput{S: 95, K: 110, T: 2, R: 0.04, Q: 0.015, Sigma: 0.3}

	result, err := CalculateBlackScholes(OptionTypeCall, input)
	if err != nil {
		t.Fatalf("CalculateBlackScholes failed: %v", err)
	}

	direct := bsCall(input.S, input.K, input.T, input.R, input.Q, input.Sigma)
	if !almostEqual(result.Price.InexactFloat64(), direct, 1e-12) {
		t.Fatalf("bsCall = %v, CalculateBlackScholes price = %v", direct, result.Price.InexactFloat64())
	}
}
