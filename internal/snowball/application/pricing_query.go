package application

import (
	"context"
	"time"

	"github.com/wyfcoding/snowballpricing/internal/snowball/domain"
)

// PricingQueryService 处理所有定价相关的查询操作（Queries）。
type PricingQueryService struct {
	repo domain.PricingRepository
}

// NewPricingQueryService 构造函数。
func NewPricingQueryService(repo domain.PricingRepository) *PricingQueryService {
	return &PricingQueryService{repo: repo}
}

// GetGreeks 计算希腊字母（欧式闭式）
func (s *PricingQueryService) GetGreeks(ctx context.Context, q GreeksQuery) (*domain.Greeks, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	optionType := domain.OptionType(q.OptionType)
	if optionType == "" {
		optionType = domain.OptionTypeCall
	}
	timeToExpiry := float64(q.ExpiryDate-time.Now().UnixMilli()) / 1000 / 24 / 3600 / 365

	result, err := domain.CalculateBlackScholes(optionType, domain.BlackScholesInput{
		S:     q.UnderlyingPrice,
		K:     q.StrikePrice,
		T:     timeToExpiry,
		R:     q.RiskFreeRate,
		Q:     q.DividendYield,
		Sigma: q.Volatility,
	})
	if err != nil {
		return nil, err
	}

	return &domain.Greeks{
		Delta: result.Delta,
		Gamma: result.Gamma,
		Theta: result.Theta,
		Vega:  result.Vega,
		Rho:   result.Rho,
	}, nil
}

// GetLatestResult 获取最新定价结果
func (s *PricingQueryService) GetLatestResult(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	return s.repo.GetLatest(ctx, symbol)
}

// GetHistory 获取定价历史
func (s *PricingQueryService) GetHistory(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.GetHistory(ctx, symbol, limit)
}
