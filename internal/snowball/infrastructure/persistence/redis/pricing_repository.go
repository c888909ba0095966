package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wyfcoding/snowballpricing/internal/snowball/domain"
)

// PricingRedisRepository 最新定价结果的 Redis 缓存
type PricingRedisRepository struct {
	client       redis.UniversalClient
	resultPrefix string
	ttl          time.Duration
}

// NewPricingRedisRepository 创建 Redis 缓存仓储
func NewPricingRedisRepository(client redis.UniversalClient) *PricingRedisRepository {
	return &PricingRedisRepository{
		client:       client,
		resultPrefix: "snowball_pricing:",
		ttl:          15 * time.Minute,
	}
}

// SavePricingResult 写入最新定价结果
func (r *PricingRedisRepository) SavePricingResult(ctx context.Context, result *domain.PricingResult) error {
	if result == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.resultKey(result.Symbol), data, r.ttl).Err()
}

// GetLatestPricingResult 获取最新定价结果，未命中时返回 nil
func (r *PricingRedisRepository) GetLatestPricingResult(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	if symbol == "" {
		return nil, nil
	}
	data, err := r.client.Get(ctx, r.resultKey(symbol)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result domain.PricingResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *PricingRedisRepository) resultKey(symbol string) string {
	return fmt.Sprintf("%s%s", r.resultPrefix, symbol)
}
