package application

import (
	"context"

	"github.com/wyfcoding/snowballpricing/internal/snowball/domain"
	"github.com/wyfcoding/snowballpricing/pkg/metrics"
)

// PricingService 定价门面服务。
type PricingService struct {
	Command *PricingCommandService
	Query   *PricingQueryService
}

// NewPricingService 构造函数。
func NewPricingService(repo domain.PricingRepository, publisher domain.EventPublisher, cfg PricerConfig) *PricingService {
	return &PricingService{
		Command: NewPricingCommandService(repo, publisher, cfg),
		Query:   NewPricingQueryService(repo),
	}
}

// WithMetrics 挂载业务指标。
func (s *PricingService) WithMetrics(m *metrics.Metrics) *PricingService {
	s.Command.WithMetrics(m)
	return s
}

// --- Command Facade ---

func (s *PricingService) PriceSnowball(ctx context.Context, cmd PriceSnowballCommand) (*domain.PricingResult, error) {
	return s.Command.PriceSnowball(ctx, cmd)
}

func (s *PricingService) BatchPriceSnowballs(ctx context.Context, cmd BatchPriceSnowballsCommand) (*BatchPricingResult, error) {
	return s.Command.BatchPriceSnowballs(ctx, cmd)
}

// --- Query Facade ---

func (s *PricingService) GetGreeks(ctx context.Context, q GreeksQuery) (*domain.Greeks, error) {
	return s.Query.GetGreeks(ctx, q)
}

func (s *PricingService) GetLatestResult(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	return s.Query.GetLatestResult(ctx, symbol)
}

func (s *PricingService) GetHistory(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	return s.Query.GetHistory(ctx, symbol, limit)
}
