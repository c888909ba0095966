// Package messaging 基于 Kafka 的领域事件发布
package messaging

import (
	"context"

	"github.com/wyfcoding/snowballpricing/internal/snowball/domain"
	"github.com/wyfcoding/snowballpricing/pkg/mq"
)

// KafkaEventPublisher 实现 domain.EventPublisher，事件以 JSON 写入单一主题
type KafkaEventPublisher struct {
	producer *mq.KafkaProducer
	topic    string
}

// NewKafkaEventPublisher 创建 Kafka 事件发布者
func NewKafkaEventPublisher(producer *mq.KafkaProducer, topic string) *KafkaEventPublisher {
	if topic == "" {
		topic = "pricing-events"
	}
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

// PublishSnowballPriced 发布雪球定价完成事件
func (p *KafkaEventPublisher) PublishSnowballPriced(ctx context.Context, event domain.SnowballPricedEvent) error {
	return p.publish(ctx, domain.SnowballPricedEventType, event.Symbol, event)
}

// PublishPricingError 发布定价错误事件
func (p *KafkaEventPublisher) PublishPricingError(ctx context.Context, event domain.PricingErrorEvent) error {
	return p.publish(ctx, domain.PricingErrorEventType, event.Symbol, event)
}

// PublishBatchPricingCompleted 发布批量定价完成事件
func (p *KafkaEventPublisher) PublishBatchPricingCompleted(ctx context.Context, event domain.BatchPricingCompletedEvent) error {
	return p.publish(ctx, domain.BatchPricingCompletedEventType, event.BatchID, event)
}

type envelope struct {
	EventType string      `json:"event_type"`
	Payload   interface{} `json:"payload"`
}

func (p *KafkaEventPublisher) publish(ctx context.Context, eventType, key string, payload interface{}) error {
	return p.producer.SendMessage(ctx, p.topic, key, envelope{
		EventType: eventType,
		Payload:   payload,
	})
}
