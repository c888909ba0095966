package domain

import "context"

// EventPublisher 事件发布者接口
type EventPublisher interface {
	// PublishSnowballPriced 发布雪球定价完成事件
	PublishSnowballPriced(ctx context.Context, event SnowballPricedEvent) error

	// PublishPricingError 发布定价错误事件
	PublishPricingError(ctx context.Context, event PricingErrorEvent) error

	// PublishBatchPricingCompleted 发布批量定价完成事件
	PublishBatchPricingCompleted(ctx context.Context, event BatchPricingCompletedEvent) error
}
