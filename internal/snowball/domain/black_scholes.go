package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat/distuv"
)

// BlackScholesInput Black-Scholes 模型输入
type BlackScholesInput struct {
	S     float64 // 标的资产价格
	K     float64 // 执行价格
	T     float64 // 到期时间 (年)
	R     float64 // 无风险利率
	Q     float64 // 股息收益率
	Sigma float64 // 波动率
}

// BlackScholesResult Black-Scholes 模型输出
type BlackScholesResult struct {
	Price decimal.Decimal
	Delta decimal.Decimal
	Gamma decimal.Decimal
	Theta decimal.Decimal
	Vega  decimal.Decimal
	Rho   decimal.Decimal
}

// CalculateBlackScholes 计算 Black-Scholes 价格和 Greeks
func CalculateBlackScholes(optionType OptionType, input BlackScholesInput) (*BlackScholesResult, error) {
	if input.S <= 0 || input.K <= 0 || input.Sigma <= 0 {
		return nil, fmt.Errorf("%w: S, K and sigma must be positive (S=%v K=%v sigma=%v)", ErrInvalidParameter, input.S, input.K, input.Sigma)
	}
	if input.T <= 0 {
		return nil, fmt.Errorf("%w: T=%v", ErrNonPositiveMaturity, input.T)
	}

	d1, d2 := dTerms(input.S, input.K, input.T, input.R, input.Q, input.Sigma)
	discQ := math.Exp(-input.Q * input.T)
	discR := math.Exp(-input.R * input.T)

	var price, delta, theta, rho float64
	gamma := discQ * normPdf(d1) / (input.S * input.Sigma * math.Sqrt(input.T))
	vega := input.S * discQ * normPdf(d1) * math.Sqrt(input.T)

	if optionType == OptionTypeCall {
		price = input.S*discQ*normCdf(d1) - input.K*discR*normCdf(d2)
		delta = discQ * normCdf(d1)
		theta = -input.S*discQ*normPdf(d1)*input.Sigma/(2*math.Sqrt(input.T)) -
			input.R*input.K*discR*normCdf(d2) + input.Q*input.S*discQ*normCdf(d1)
		rho = input.K * input.T * discR * normCdf(d2)
	} else {
		price = input.K*discR*normCdf(-d2) - input.S*discQ*normCdf(-d1)
		delta = discQ * (normCdf(d1) - 1)
		theta = -input.S*discQ*normPdf(d1)*input.Sigma/(2*math.Sqrt(input.T)) +
			input.R*input.K*discR*normCdf(-d2) - input.Q*input.S*discQ*normCdf(-d1)
		rho = -input.K * input.T * discR * normCdf(-d2)
	}

	return &BlackScholesResult{
		Price: decimal.NewFromFloat(price),
		Delta: decimal.NewFromFloat(delta),
		Gamma: decimal.NewFromFloat(gamma),
		Theta: decimal.NewFromFloat(theta),
		Vega:  decimal.NewFromFloat(vega),
		Rho:   decimal.NewFromFloat(rho),
	}, nil
}

// bsCall 欧式看涨期权闭式价格，供模拟循环内逐次调用
// 调用方保证 s, k, t, sigma > 0
func bsCall(s, k, t, r, q, sigma float64) float64 {
	d1, d2 := dTerms(s, k, t, r, q, sigma)
	return s*math.Exp(-q*t)*normCdf(d1) - k*math.Exp(-r*t)*normCdf(d2)
}

// dTerms 计算 d1/d2 中间项
func dTerms(s, k, t, r, q, sigma float64) (float64, float64) {
	sqrtT := math.Sqrt(t)
	d1 := (math.Log(s/k) + (r-q+0.5*sigma*sigma)*t) / (sigma * sqrtT)
	return d1, d1 - sigma*sqrtT
}

// normCdf 标准正态分布累积分布函数
func normCdf(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// normPdf 标准正态分布概率密度函数
func normPdf(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
