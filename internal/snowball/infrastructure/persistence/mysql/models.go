package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/snowballpricing/internal/snowball/domain"
)

// PricingResultModel 定价结果数据库模型
type PricingResultModel struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
	Symbol          string    `gorm:"column:symbol;type:varchar(32);index;not null"`
	OptionPrice     string    `gorm:"column:option_price;type:decimal(32,18);not null"`
	VanillaPrice    string    `gorm:"column:vanilla_price;type:decimal(32,18);not null"`
	UnderlyingPrice string    `gorm:"column:underlying_price;type:decimal(32,18);not null"`
	Volatility      float64   `gorm:"column:volatility;type:double"`
	RiskFreeRate    float64   `gorm:"column:risk_free_rate;type:double"`
	DividendYield   float64   `gorm:"column:dividend_yield;type:double"`
	SnowballRatio   float64   `gorm:"column:snowball_ratio;type:double"`
	ExecutionProb   float64   `gorm:"column:execution_prob;type:double"`
	Simulations     int       `gorm:"column:simulations;type:int"`
	Seed            uint64    `gorm:"column:seed;type:bigint unsigned"`
	SimulationMode  string    `gorm:"column:simulation_mode;type:varchar(20)"`
	CalculatedAt    int64     `gorm:"column:calculated_at;type:bigint;not null;index"`
}

func (PricingResultModel) TableName() string { return "snowball_pricing_results" }

// mapping helpers

func toModel(res *domain.PricingResult) *PricingResultModel {
	if res == nil {
		return nil
	}
	return &PricingResultModel{
		ID:              res.ID,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
		Symbol:          res.Symbol,
		OptionPrice:     res.OptionPrice.String(),
		VanillaPrice:    res.VanillaPrice.String(),
		UnderlyingPrice: res.UnderlyingPrice.String(),
		Volatility:      res.Volatility,
		RiskFreeRate:    res.RiskFreeRate,
		DividendYield:   res.DividendYield,
		SnowballRatio:   res.SnowballRatio,
		ExecutionProb:   res.ExecutionProb,
		Simulations:     res.Simulations,
		Seed:            res.Seed,
		SimulationMode:  res.SimulationMode,
		CalculatedAt:    res.CalculatedAt,
	}
}

func toEntity(m *PricingResultModel) *domain.PricingResult {
	if m == nil {
		return nil
	}
	opPrice, _ := decimal.NewFromString(m.OptionPrice)
	vanilla, _ := decimal.NewFromString(m.VanillaPrice)
	ulPrice, _ := decimal.NewFromString(m.UnderlyingPrice)

	return &domain.PricingResult{
		ID:              m.ID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Symbol:          m.Symbol,
		OptionPrice:     opPrice,
		VanillaPrice:    vanilla,
		UnderlyingPrice: ulPrice,
		Volatility:      m.Volatility,
		RiskFreeRate:    m.RiskFreeRate,
		DividendYield:   m.DividendYield,
		SnowballRatio:   m.SnowballRatio,
		ExecutionProb:   m.ExecutionProb,
		Simulations:     m.Simulations,
		Seed:            m.Seed,
		SimulationMode:  m.SimulationMode,
		CalculatedAt:    m.CalculatedAt,
	}
}
