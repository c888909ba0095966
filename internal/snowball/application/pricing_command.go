package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/snowballpricing/internal/snowball/domain"
	"github.com/wyfcoding/snowballpricing/pkg/logger"
	"github.com/wyfcoding/snowballpricing/pkg/metrics"
)

// PricingCommandService 处理定价相关的命令操作
type PricingCommandService struct {
	repo      domain.PricingRepository
	publisher domain.EventPublisher
	cfg       PricerConfig
	metrics   *metrics.Metrics
}

// NewPricingCommandService 创建新的 PricingCommandService 实例
// publisher 可以为 nil（不发布事件）
func NewPricingCommandService(repo domain.PricingRepository, publisher domain.EventPublisher, cfg PricerConfig) *PricingCommandService {
	if cfg.DefaultSimulations <= 0 {
		cfg.DefaultSimulations = 10000
	}
	return &PricingCommandService{
		repo:      repo,
		publisher: publisher,
		cfg:       cfg,
	}
}

// WithMetrics 挂载业务指标，m 为 nil 时不记录
func (c *PricingCommandService) WithMetrics(m *metrics.Metrics) *PricingCommandService {
	c.metrics = m
	return c
}

// PriceSnowball 雪球期权定价：估值、落库并发布领域事件
func (c *PricingCommandService) PriceSnowball(ctx context.Context, cmd PriceSnowballCommand) (*domain.PricingResult, error) {
	if cmd.Symbol == "" {
		return nil, errors.New("symbol is required")
	}
	if cmd.Simulations == 0 {
		cmd.Simulations = c.cfg.DefaultSimulations
	}
	if c.cfg.MaxSimulations > 0 && cmd.Simulations > c.cfg.MaxSimulations {
		return nil, fmt.Errorf("simulations %d exceeds limit %d", cmd.Simulations, c.cfg.MaxSimulations)
	}

	timeToExpiry := float64(cmd.ExpiryDate-time.Now().UnixMilli()) / 1000 / 24 / 3600 / 365
	startedAt := time.Now()

	pricer := domain.NewSnowballPricer(domain.SimulationMode(cmd.SimulationMode), domain.NewGaussianSource(cmd.Seed))
	priced, err := pricer.Price(domain.SnowballInput{
		S:     cmd.UnderlyingPrice,
		X:     cmd.StrikePrice,
		T:     timeToExpiry,
		R:     cmd.RiskFreeRate,
		Q:     cmd.DividendYield,
		Sigma: cmd.Volatility,
		K:     cmd.SnowballRatio,
		P:     cmd.ExecutionProb,
	}, cmd.Simulations)
	if err != nil {
		if c.metrics != nil {
			c.metrics.PricingFailures.Inc()
		}
		c.publishError(ctx, cmd, err)
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.PricingsTotal.Inc()
		c.metrics.PricingDuration.Observe(time.Since(startedAt).Seconds())
		c.metrics.SimulationDraws.Add(float64(priced.Simulations))
	}

	result := &domain.PricingResult{
		Symbol:          cmd.Symbol,
		OptionPrice:     decimal.NewFromFloat(priced.OptionPrice),
		VanillaPrice:    decimal.NewFromFloat(priced.VanillaPrice),
		UnderlyingPrice: decimal.NewFromFloat(cmd.UnderlyingPrice),
		Volatility:      cmd.Volatility,
		RiskFreeRate:    cmd.RiskFreeRate,
		DividendYield:   cmd.DividendYield,
		SnowballRatio:   cmd.SnowballRatio,
		ExecutionProb:   cmd.ExecutionProb,
		Simulations:     priced.Simulations,
		Seed:            cmd.Seed,
		SimulationMode:  string(pricer.Mode()),
		CalculatedAt:    time.Now().UnixMilli(),
	}
	if err := c.repo.Save(ctx, result); err != nil {
		return nil, fmt.Errorf("save pricing result: %w", err)
	}

	if c.publisher != nil {
		event := domain.SnowballPricedEvent{
			Symbol:          cmd.Symbol,
			StrikePrice:     cmd.StrikePrice,
			ExpiryDate:      cmd.ExpiryDate,
			OptionPrice:     priced.OptionPrice,
			VanillaPrice:    priced.VanillaPrice,
			UnderlyingPrice: cmd.UnderlyingPrice,
			Volatility:      cmd.Volatility,
			RiskFreeRate:    cmd.RiskFreeRate,
			DividendYield:   cmd.DividendYield,
			SnowballRatio:   cmd.SnowballRatio,
			ExecutionProb:   cmd.ExecutionProb,
			Simulations:     priced.Simulations,
			SimulationMode:  string(pricer.Mode()),
			CalculatedAt:    result.CalculatedAt,
			OccurredOn:      time.Now(),
		}
		if err := c.publisher.PublishSnowballPriced(ctx, event); err != nil {
			// 事件发布失败不影响定价结果
			logger.Warn(ctx, "Failed to publish SnowballPriced event", "symbol", cmd.Symbol, "error", err)
		}
	}

	return result, nil
}

// BatchPriceSnowballs 批量定价
func (c *PricingCommandService) BatchPriceSnowballs(ctx context.Context, cmd BatchPriceSnowballsCommand) (*BatchPricingResult, error) {
	if c.metrics != nil {
		c.metrics.BatchPricingsTotal.Inc()
	}
	results := make([]*domain.PricingResult, 0, len(cmd.Contracts))
	successCount := 0
	failureCount := 0
	totalTime := 0.0

	for _, contract := range cmd.Contracts {
		startTime := time.Now()
		result, err := c.PriceSnowball(ctx, contract)
		totalTime += time.Since(startTime).Seconds()

		if err != nil {
			failureCount++
			continue
		}
		results = append(results, result)
		successCount++
	}

	avg := 0.0
	if len(cmd.Contracts) > 0 {
		avg = totalTime / float64(len(cmd.Contracts))
	}

	if c.publisher != nil {
		event := domain.BatchPricingCompletedEvent{
			BatchID:        cmd.BatchID,
			Symbols:        extractSymbols(cmd.Contracts),
			TotalContracts: len(cmd.Contracts),
			SuccessCount:   successCount,
			FailureCount:   failureCount,
			AverageTime:    avg,
			CompletedAt:    time.Now().Unix(),
			OccurredOn:     time.Now(),
		}
		if err := c.publisher.PublishBatchPricingCompleted(ctx, event); err != nil {
			logger.Warn(ctx, "Failed to publish BatchPricingCompleted event", "batch_id", cmd.BatchID, "error", err)
		}
	}

	return &BatchPricingResult{
		BatchID:      cmd.BatchID,
		Results:      results,
		SuccessCount: successCount,
		FailureCount: failureCount,
		AverageTime:  avg,
	}, nil
}

func (c *PricingCommandService) publishError(ctx context.Context, cmd PriceSnowballCommand, cause error) {
	if c.publisher == nil {
		return
	}
	event := domain.PricingErrorEvent{
		Symbol:      cmd.Symbol,
		StrikePrice: cmd.StrikePrice,
		ExpiryDate:  cmd.ExpiryDate,
		Error:       cause.Error(),
		OccurredAt:  time.Now().Unix(),
		OccurredOn:  time.Now(),
	}
	if err := c.publisher.PublishPricingError(ctx, event); err != nil {
		logger.Warn(ctx, "Failed to publish PricingError event", "symbol", cmd.Symbol, "error", err)
	}
}

// 辅助函数：提取合约符号
func extractSymbols(contracts []PriceSnowballCommand) []string {
	symbols := make([]string, 0, len(contracts))
	seen := make(map[string]bool)
	for _, contract := range contracts {
		if !seen[contract.Symbol] {
			symbols = append(symbols, contract.Symbol)
			seen[contract.Symbol] = true
		}
	}
	return symbols
}
