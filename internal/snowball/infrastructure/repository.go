// Package infrastructure 组合持久化实现
package infrastructure

import (
	"context"

	"github.com/wyfcoding/snowballpricing/internal/snowball/domain"
	redisrepo "github.com/wyfcoding/snowballpricing/internal/snowball/infrastructure/persistence/redis"
	"github.com/wyfcoding/snowballpricing/pkg/logger"
)

// CachedPricingRepository MySQL 仓储 + Redis 最新结果缓存的组合实现
// 写入时同步刷新缓存，读取最新结果时优先命中缓存
type CachedPricingRepository struct {
	db    domain.PricingRepository
	cache *redisrepo.PricingRedisRepository
}

// NewCachedPricingRepository 创建组合仓储，cache 可以为 nil（直连数据库）
func NewCachedPricingRepository(db domain.PricingRepository, cache *redisrepo.PricingRedisRepository) *CachedPricingRepository {
	return &CachedPricingRepository{db: db, cache: cache}
}

func (r *CachedPricingRepository) Save(ctx context.Context, result *domain.PricingResult) error {
	if err := r.db.Save(ctx, result); err != nil {
		return err
	}
	if r.cache != nil {
		if err := r.cache.SavePricingResult(ctx, result); err != nil {
			// 缓存失败不阻塞写入，下次读取回源数据库
			logger.Warn(ctx, "Failed to refresh pricing cache", "symbol", result.Symbol, "error", err)
		}
	}
	return nil
}

func (r *CachedPricingRepository) GetLatest(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	if r.cache != nil {
		cached, err := r.cache.GetLatestPricingResult(ctx, symbol)
		if err != nil {
			logger.Warn(ctx, "Failed to read pricing cache", "symbol", symbol, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}
	return r.db.GetLatest(ctx, symbol)
}

func (r *CachedPricingRepository) GetHistory(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	return r.db.GetHistory(ctx, symbol, limit)
}
