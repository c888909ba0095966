package domain

import (
	"errors"
	"math"
	"testing"
)

var baseInput = SnowballInput{
	S:     100,
	X:     100,
	T:     1,
	R:     0.05,
	Q:     0,
	Sigma: 0.2,
	K:     0.5,
	P:     0.5,
}

func TestPriceZeroExecutionProbEqualsVanilla(t *testing.T) {
	in := baseInput
	in.P = 0

	pricer := NewSnowballPricer(ModeSingleShot, NewGaussianSource(42))
	result, err := pricer.Price(in, 1000)
	if err != nil {
		t.Fatalf("Price failed: %v", err)
	}

	// p=0 时模拟部分权重为零，估值应精确等于闭式看涨价
	if result.OptionPrice != result.VanillaPrice {
		t.Fatalf("option price = %v, want vanilla price %v", result.OptionPrice, result.VanillaPrice)
	}
	if !almostEqual(result.VanillaPrice, 10.450583572185565, 1e-9) {
		t.Fatalf("vanilla price = %v, want 10.450583572185565", result.VanillaPrice)
	}
}

func TestPriceFullExecutionProbEqualsMeanPayoff(t *testing.T) {
	in := baseInput
	in.K = 1
	in.P = 1

	const seed = 7
	const n = 500

	pricer := NewSnowballPricer(ModeSingleShot, NewGaussianSource(seed))
	result, err := pricer.Price(in, n)
	if err != nil {
		t.Fatalf("Price failed: %v", err)
	}

	if result.OptionPrice != result.MeanPayoff {
		t.Fatalf("option price = %v, want mean payoff %v", result.OptionPrice, result.MeanPayoff)
	}

	// k=1 时支付退化为 max(S_i, 0)，用同一种子重放抽样验证
	src := NewGaussianSource(seed)
	mean := (in.R - 0.5*in.Sigma*in.Sigma) * in.T / 365
	std := in.Sigma * math.Sqrt(in.T/365)
	sum := 0.0
	for i := 0; i < n; i++ {
		ri := mean + std*src.NormFloat64()
		sum += math.Max(in.S*(1+ri), 0)
	}
	want := sum / n
	if !almostEqual(result.MeanPayoff, want, 1e-12) {
		t.Fatalf("mean payoff = %v, want replayed %v", result.MeanPayoff, want)
	}
}

func TestPriceSeedReproducibility(t *testing.T) {
	first, err := NewSnowballPricer(ModeSingleShot, NewGaussianSource(123)).Price(baseInput, 2000)
	if err != nil {
		t.Fatalf("first pricing failed: %v", err)
	}
	second, err := NewSnowballPricer(ModeSingleShot, NewGaussianSource(123)).Price(baseInput, 2000)
	if err != nil {
		t.Fatalf("second pricing failed: %v", err)
	}

	if first.OptionPrice != second.OptionPrice {
		t.Fatalf("same seed produced different prices: %v vs %v", first.OptionPrice, second.OptionPrice)
	}
	if first.MeanPayoff != second.MeanPayoff || first.MinPayoff != second.MinPayoff || first.MaxPayoff != second.MaxPayoff {
		t.Fatalf("same seed produced different payoff stats: %+v vs %+v", first, second)
	}
}

func TestPriceConvexCombinationBounds(t *testing.T) {
	pricer := NewSnowballPricer(ModeSingleShot, NewGaussianSource(99))
	result, err := pricer.Price(baseInput, 5000)
	if err != nil {
		t.Fatalf("Price failed: %v", err)
	}

	if result.MinPayoff > result.MeanPayoff || result.MeanPayoff > result.MaxPayoff {
		t.Fatalf("payoff stats out of order: min=%v mean=%v max=%v",
			result.MinPayoff, result.MeanPayoff, result.MaxPayoff)
	}

	lower := (1-baseInput.P)*result.VanillaPrice + baseInput.P*result.MinPayoff
	upper := (1-baseInput.P)*result.VanillaPrice + baseInput.P*result.MaxPayoff
	if result.OptionPrice < lower || result.OptionPrice > upper {
		t.Fatalf("option price %v outside convex bounds [%v, %v]", result.OptionPrice, lower, upper)
	}
	if result.MinPayoff < 0 {
		t.Fatalf("payoff floor violated: min payoff = %v", result.MinPayoff)
	}
}

func TestPriceSingleSimulationUsesFullMaturity(t *testing.T) {
	in := baseInput
	in.P = 1

	result, err := NewSnowballPricer(ModeSingleShot, NewGaussianSource(5)).Price(in, 1)
	if err != nil {
		t.Fatalf("Price failed: %v", err)
	}
	if result.Simulations != 1 {
		t.Fatalf("simulations = %d, want 1", result.Simulations)
	}
	// 单次抽样时剩余期限为完整的 T，支付即该次抽样的支付
	if result.MeanPayoff != result.MinPayoff || result.MeanPayoff != result.MaxPayoff {
		t.Fatalf("single simulation stats inconsistent: %+v", result)
	}
	if math.IsNaN(result.OptionPrice) || math.IsInf(result.OptionPrice, 0) {
		t.Fatalf("option price not finite: %v", result.OptionPrice)
	}
}

func TestPriceZeroParticipationIsDeterministic(t *testing.T) {
	in := baseInput
	in.K = 0
	in.P = 1

	// k=0 时 S_i 恒等于 S，支付与随机源无关
	first, err := NewSnowballPricer(ModeSingleShot, NewGaussianSource(1)).Price(in, 100)
	if err != nil {
		t.Fatalf("first pricing failed: %v", err)
	}
	second, err := NewSnowballPricer(ModeSingleShot, NewGaussianSource(2)).Price(in, 100)
	if err != nil {
		t.Fatalf("second pricing failed: %v", err)
	}
	if first.OptionPrice != second.OptionPrice {
		t.Fatalf("k=0 pricing depends on seed: %v vs %v", first.OptionPrice, second.OptionPrice)
	}
}

func TestPriceInvalidInputs(t *testing.T) {
	cases := []struct {
		name string
		in   SnowballInput
		n    int
	}{
		{"zero maturity", SnowballInput{S: 100, X: 100, T: 0, R: 0.05, Sigma: 0.2, K: 0.5, P: 0.5}, 100},
		{"negative spot", SnowballInput{S: -100, X: 100, T: 1, R: 0.05, Sigma: 0.2, K: 0.5, P: 0.5}, 100},
		{"zero strike", SnowballInput{S: 100, X: 0, T: 1, R: 0.05, Sigma: 0.2, K: 0.5, P: 0.5}, 100},
		{"zero volatility", SnowballInput{S: 100, X: 100, T: 1, R: 0.05, Sigma: 0, K: 0.5, P: 0.5}, 100},
		{"zero simulations", baseInput, 0},
		{"negative simulations", baseInput, -5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSnowballPricer(ModeSingleShot, NewGaussianSource(1)).Price(tc.in, tc.n)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestPricePathSimMode(t *testing.T) {
	pricer := NewSnowballPricer(ModePathSim, NewGaussianSource(11))
	if pricer.Mode() != ModePathSim {
		t.Fatalf("mode = %v, want %v", pricer.Mode(), ModePathSim)
	}

	result, err := pricer.Price(baseInput, 500)
	if err != nil {
		t.Fatalf("Price failed: %v", err)
	}
	if math.IsNaN(result.OptionPrice) || math.IsInf(result.OptionPrice, 0) {
		t.Fatalf("option price not finite: %v", result.OptionPrice)
	}
	if result.MinPayoff < 0 {
		t.Fatalf("payoff floor violated: min payoff = %v", result.MinPayoff)
	}
	if result.Simulations != 500 {
		t.Fatalf("simulations = %d, want 500", result.Simulations)
	}
}

func TestNewSnowballPricerDefaults(t *testing.T) {
	pricer := NewSnowballPricer("", nil)
	if pricer.Mode() != ModeSingleShot {
		t.Fatalf("default mode = %v, want %v", pricer.Mode(), ModeSingleShot)
	}
	if _, err := pricer.Price(baseInput, 10); err != nil {
		t.Fatalf("Price with defaults failed: %v", err)
	}
}
