package domain

import "time"

const (
	SnowballPricedEventType        = "SnowballPriced"
	PricingErrorEventType          = "PricingError"
	BatchPricingCompletedEventType = "BatchPricingCompleted"
)

// SnowballPricedEvent 雪球定价完成事件
type SnowballPricedEvent struct {
	Symbol          string    `json:"symbol"`
	StrikePrice     float64   `json:"strike_price"`
	ExpiryDate      int64     `json:"expiry_date"`
	OptionPrice     float64   `json:"option_price"`
	VanillaPrice    float64   `json:"vanilla_price"`
	UnderlyingPrice float64   `json:"underlying_price"`
	Volatility      float64   `json:"volatility"`
	RiskFreeRate    float64   `json:"risk_free_rate"`
	DividendYield   float64   `json:"dividend_yield"`
	SnowballRatio   float64   `json:"snowball_ratio"`
	ExecutionProb   float64   `json:"execution_prob"`
	Simulations     int       `json:"simulations"`
	SimulationMode  string    `json:"simulation_mode"`
	CalculatedAt    int64     `json:"calculated_at"`
	OccurredOn      time.Time `json:"occurred_on"`
}

// PricingErrorEvent 定价错误事件
type PricingErrorEvent struct {
	Symbol      string    `json:"symbol"`
	StrikePrice float64   `json:"strike_price"`
	ExpiryDate  int64     `json:"expiry_date"`
	Error       string    `json:"error"`
	OccurredAt  int64     `json:"occurred_at"`
	OccurredOn  time.Time `json:"occurred_on"`
}

// BatchPricingCompletedEvent 批量定价完成事件
type BatchPricingCompletedEvent struct {
	BatchID        string    `json:"batch_id"`
	Symbols        []string  `json:"symbols"`
	TotalContracts int       `json:"total_contracts"`
	SuccessCount   int       `json:"success_count"`
	FailureCount   int       `json:"failure_count"`
	AverageTime    float64   `json:"average_time"`
	CompletedAt    int64     `json:"completed_at"`
	OccurredOn     time.Time `json:"occurred_on"`
}
