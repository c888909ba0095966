package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wyfcoding/snowballpricing/internal/snowball/domain"
)

type memoryRepo struct {
	results []*domain.PricingResult
	saveErr error
}

func (m *memoryRepo) Save(_ context.Context, result *domain.PricingResult) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.results = append(m.results, result)
	return nil
}

func (m *memoryRepo) GetLatest(_ context.Context, symbol string) (*domain.PricingResult, error) {
	for i := len(m.results) - 1; i >= 0; i-- {
		if m.results[i].Symbol == symbol {
			return m.results[i], nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) GetHistory(_ context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	var out []*domain.PricingResult
	for i := len(m.results) - 1; i >= 0 && len(out) < limit; i-- {
		if m.results[i].Symbol == symbol {
			out = append(out, m.results[i])
		}
	}
	return out, nil
}

type recordingPublisher struct {
	priced []domain.SnowballPricedEvent
	errs   []domain.PricingErrorEvent
	batch  []domain.BatchPricingCompletedEvent
}

func (p *recordingPublisher) PublishSnowballPriced(_ context.Context, event domain.SnowballPricedEvent) error {
	p.priced = append(p.priced, event)
	return nil
}

func (p *recordingPublisher) PublishPricingError(_ context.Context, event domain.PricingErrorEvent) error {
	p.errs = append(p.errs, event)
	return nil
}

func (p *recordingPublisher) PublishBatchPricingCompleted(_ context.Context, event domain.BatchPricingCompletedEvent) error {
	p.batch = append(p.batch, event)
	return nil
}

func validCommand(symbol string) PriceSnowballCommand {
	return PriceSnowballCommand{
		Symbol:          symbol,
		StrikePrice:     100,
		ExpiryDate:      time.Now().Add(365 * 24 * time.Hour).UnixMilli(),
		UnderlyingPrice: 100,
		Volatility:      0.2,
		RiskFreeRate:    0.05,
		SnowballRatio:   0.5,
		ExecutionProb:   0.5,
		Simulations:     500,
		Seed:            42,
	}
}

func TestPriceSnowballSavesAndPublishes(t *testing.T) {
	repo := &memoryRepo{}
	pub := &recordingPublisher{}
	svc := NewPricingService(repo, pub, PricerConfig{DefaultSimulations: 1000, MaxSimulations: 10000})

	result, err := svc.PriceSnowball(context.Background(), validCommand("AAPL"))
	if err != nil {
		t.Fatalf("PriceSnowball failed: %v", err)
	}

	if result.Symbol != "AAPL" {
		t.Fatalf("symbol = %q, want AAPL", result.Symbol)
	}
	if result.Simulations != 500 {
		t.Fatalf("simulations = %d, want 500", result.Simulations)
	}
	if result.SimulationMode != string(domain.ModeSingleShot) {
		t.Fatalf("simulation mode = %q, want %q", result.SimulationMode, domain.ModeSingleShot)
	}
	if price := result.OptionPrice.InexactFloat64(); price <= 0 {
		t.Fatalf("option price = %v, want > 0", price)
	}

	if len(repo.results) != 1 {
		t.Fatalf("saved results = %d, want 1", len(repo.results))
	}
	if len(pub.priced) != 1 {
		t.Fatalf("published events = %d, want 1", len(pub.priced))
	}
	if pub.priced[0].Symbol != "AAPL" {
		t.Fatalf("event symbol = %q, want AAPL", pub.priced[0].Symbol)
	}
}

func TestPriceSnowballDefaultsAndLimits(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewPricingService(repo, nil, PricerConfig{DefaultSimulations: 200, MaxSimulations: 1000})

	cmd := validCommand("TSLA")
	cmd.Simulations = 0
	result, err := svc.PriceSnowball(context.Background(), cmd)
	if err != nil {
		t.Fatalf("PriceSnowball failed: %v", err)
	}
	if result.Simulations != 200 {
		t.Fatalf("simulations = %d, want default 200", result.Simulations)
	}

	cmd.Simulations = 5000
	if _, err := svc.PriceSnowball(context.Background(), cmd); err == nil {
		t.Fatal("expected error for simulations above limit")
	}
}

func TestPriceSnowballRejectsMissingSymbol(t *testing.T) {
	svc := NewPricingService(&memoryRepo{}, nil, PricerConfig{})

	cmd := validCommand("")
	if _, err := svc.PriceSnowball(context.Background(), cmd); err == nil {
		t.Fatal("expected error for missing symbol")
	}
}

func TestPriceSnowballPublishesErrorEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewPricingService(&memoryRepo{}, pub, PricerConfig{})

	cmd := validCommand("AAPL")
	cmd.ExpiryDate = time.Now().Add(-24 * time.Hour).UnixMilli() // 已到期

	_, err := svc.PriceSnowball(context.Background(), cmd)
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
	if len(pub.errs) != 1 {
		t.Fatalf("error events = %d, want 1", len(pub.errs))
	}
}

func TestBatchPriceSnowballsMixedOutcome(t *testing.T) {
	repo := &memoryRepo{}
	pub := &recordingPublisher{}
	svc := NewPricingService(repo, pub, PricerConfig{DefaultSimulations: 100})

	bad := validCommand("BAD")
	bad.Volatility = 0

	result, err := svc.BatchPriceSnowballs(context.Background(), BatchPriceSnowballsCommand{
		BatchID:   "batch-1",
		Contracts: []PriceSnowballCommand{validCommand("AAPL"), bad, validCommand("MSFT")},
	})
	if err != nil {
		t.Fatalf("BatchPriceSnowballs failed: %v", err)
	}

	if result.SuccessCount != 2 || result.FailureCount != 1 {
		t.Fatalf("success=%d failure=%d, want 2/1", result.SuccessCount, result.FailureCount)
	}
	if len(result.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(result.Results))
	}
	if len(pub.batch) != 1 {
		t.Fatalf("batch events = %d, want 1", len(pub.batch))
	}
	if got := pub.batch[0].TotalContracts; got != 3 {
		t.Fatalf("total contracts = %d, want 3", got)
	}
}

func TestGetGreeksDefaultsToCall(t *testing.T) {
	svc := NewPricingService(&memoryRepo{}, nil, PricerConfig{})

	greeks, err := svc.GetGreeks(context.Background(), GreeksQuery{
		Symbol:          "AAPL",
		StrikePrice:     100,
		ExpiryDate:      time.Now().Add(365 * 24 * time.Hour).UnixMilli(),
		UnderlyingPrice: 100,
		Volatility:      0.2,
		RiskFreeRate:    0.05,
	})
	if err != nil {
		t.Fatalf("GetGreeks failed: %v", err)
	}
	if delta := greeks.Delta.InexactFloat64(); delta <= 0 || delta >= 1 {
		t.Fatalf("call delta = %v, want in (0, 1)", delta)
	}
}

func TestGetHistoryAppliesDefaultLimit(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewPricingService(repo, nil, PricerConfig{DefaultSimulations: 50})

	for i := 0; i < 25; i++ {
		if _, err := svc.PriceSnowball(context.Background(), validCommand("AAPL")); err != nil {
			t.Fatalf("PriceSnowball failed: %v", err)
		}
	}

	results, err := svc.GetHistory(context.Background(), "AAPL", 0)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(results) != 20 {
		t.Fatalf("history length = %d, want default limit 20", len(results))
	}
}
