package mysql

import (
	"context"

	"github.com/wyfcoding/snowballpricing/internal/snowball/domain"
	"gorm.io/gorm"
)

type pricingRepository struct {
	db *gorm.DB
}

// NewPricingRepository 创建 MySQL 定价结果仓储
func NewPricingRepository(db *gorm.DB) domain.PricingRepository {
	return &pricingRepository{db: db}
}

func (r *pricingRepository) Save(ctx context.Context, result *domain.PricingResult) error {
	model := toModel(result)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	result.ID = model.ID
	result.CreatedAt = model.CreatedAt
	result.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *pricingRepository) GetLatest(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	var model PricingResultModel
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("calculated_at desc").
		First(&model).Error
	if err != nil {
		return nil, err
	}
	return toEntity(&model), nil
}

func (r *pricingRepository) GetHistory(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	var models []PricingResultModel
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("calculated_at desc").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	results := make([]*domain.PricingResult, 0, len(models))
	for i := range models {
		results = append(results, toEntity(&models[i]))
	}
	return results, nil
}
