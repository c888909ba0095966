package domain

import "context"

// PricingRepository 定价结果仓储接口
type PricingRepository interface {
	Save(ctx context.Context, result *PricingResult) error
	GetLatest(ctx context.Context, symbol string) (*PricingResult, error)
	GetHistory(ctx context.Context, symbol string, limit int) ([]*PricingResult, error)
}
