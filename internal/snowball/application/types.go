package application

import (
	"github.com/wyfcoding/snowballpricing/internal/snowball/domain"
)

// PriceSnowballCommand 雪球定价命令
type PriceSnowballCommand struct {
	Symbol          string
	StrikePrice     float64
	ExpiryDate      int64 // 毫秒时间戳
	UnderlyingPrice float64
	Volatility      float64
	RiskFreeRate    float64
	DividendYield   float64
	SnowballRatio   float64
	ExecutionProb   float64
	Simulations     int
	Seed            uint64
	SimulationMode  string
}

// BatchPriceSnowballsCommand 批量定价命令
type BatchPriceSnowballsCommand struct {
	BatchID   string
	Contracts []PriceSnowballCommand
}

// BatchPricingResult 批量定价结果
type BatchPricingResult struct {
	BatchID      string
	Results      []*domain.PricingResult
	SuccessCount int
	FailureCount int
	AverageTime  float64
}

// GreeksQuery 希腊字母查询
type GreeksQuery struct {
	Symbol          string
	OptionType      string
	StrikePrice     float64
	ExpiryDate      int64
	UnderlyingPrice float64
	Volatility      float64
	RiskFreeRate    float64
	DividendYield   float64
}

// PricerConfig 定价服务运行参数
type PricerConfig struct {
	// DefaultSimulations 命令未指定模拟次数时的默认值
	DefaultSimulations int
	// MaxSimulations 单次命令允许的最大模拟次数，0 表示不限制
	MaxSimulations int
}
