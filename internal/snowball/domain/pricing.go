// Package domain 雪球期权定价服务的领域模型
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OptionType 期权类型
type OptionType string

const (
	OptionTypeCall OptionType = "CALL" // 看涨期权
	OptionTypePut  OptionType = "PUT"  // 看跌期权
)

// Greeks 希腊字母
type Greeks struct {
	Delta decimal.Decimal `json:"delta"`
	Gamma decimal.Decimal `json:"gamma"`
	Theta decimal.Decimal `json:"theta"`
	Vega  decimal.Decimal `json:"vega"`
	Rho   decimal.Decimal `json:"rho"`
}

// PricingResult 定价结果实体
type PricingResult struct {
	ID              uint            `json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Symbol          string          `json:"symbol"`
	OptionPrice     decimal.Decimal `json:"option_price"`
	VanillaPrice    decimal.Decimal `json:"vanilla_price"`
	UnderlyingPrice decimal.Decimal `json:"underlying_price"`
	Volatility      float64         `json:"volatility"`
	RiskFreeRate    float64         `json:"risk_free_rate"`
	DividendYield   float64         `json:"dividend_yield"`
	SnowballRatio   float64         `json:"snowball_ratio"`
	ExecutionProb   float64         `json:"execution_prob"`
	Simulations     int             `json:"simulations"`
	Seed            uint64          `json:"seed"`
	SimulationMode  string          `json:"simulation_mode"`
	CalculatedAt    int64           `json:"calculated_at"`
}
