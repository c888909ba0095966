package domain

import (
	"fmt"
	"math"
)

// SimulationMode 模拟方式
type SimulationMode string

const (
	// ModeSingleShot 每次抽样只取一个日度随机收益，剩余期限按抽样序号线性衰减。
	// 与参考定价口径保持一致。
	ModeSingleShot SimulationMode = "SINGLE_SHOT"
	// ModePathSim 每次抽样模拟一条到观察点的 GBM 日度路径，剩余期限取实际已走过的路径时间。
	ModePathSim SimulationMode = "PATH_SIM"
)

const calendarDayYears = 1.0 / 365.0

// SnowballInput 雪球期权定价输入
// K、P 约定取 [0,1]，超出范围时照常计算，不做校验
type SnowballInput struct {
	S     float64 // 标的现价
	X     float64 // 行权价
	T     float64 // 到期时间（年）
	R     float64 // 无风险利率
	Q     float64 // 股息收益率
	Sigma float64 // 波动率
	K     float64 // 雪球参与率
	P     float64 // 敲出执行概率
}

// SnowballResult 雪球期权定价输出
type SnowballResult struct {
	// OptionPrice 最终混合估值 (1-p)*vanilla + p*mean(payoff)
	OptionPrice float64
	// VanillaPrice BSM 闭式欧式看涨基准价
	VanillaPrice float64
	// MeanPayoff 模拟支付均值
	MeanPayoff float64
	// MinPayoff / MaxPayoff 单次抽样支付的极值
	MinPayoff float64
	MaxPayoff float64
	// Simulations 实际抽样次数
	Simulations int
}

// SnowballPricer 雪球期权定价器
// 基准价取 BSM 闭式欧式看涨；模拟部分按抽样序号衰减剩余期限，
// 抽样收益使用 365 日历日口径（与闭式部分的年化 T 口径有意保持不一致，
// 以复现既有定价结果）。
type SnowballPricer struct {
	mode SimulationMode
	src  NormalSource
}

// NewSnowballPricer 创建定价器，src 为 nil 时使用时间播种的默认随机源
func NewSnowballPricer(mode SimulationMode, src NormalSource) *SnowballPricer {
	if mode == "" {
		mode = ModeSingleShot
	}
	if src == nil {
		src = NewGaussianSource(0)
	}
	return &SnowballPricer{mode: mode, src: src}
}

// Mode 返回当前模拟方式
func (p *SnowballPricer) Mode() SimulationMode {
	return p.mode
}

// Price 计算雪球期权估值
//
// option_price = (1-P)*vanilla + P*mean(max(K*S_i + (1-K)*value_i, 0))
//
// 其中 S_i 为第 i 次抽样的雪球标的值，value_i 为以 S_i 和剩余期限
// 重新计算的 BSM 看涨价值。剩余期限耗尽时 value_i 退化为内在价值。
func (p *SnowballPricer) Price(in SnowballInput, nSimulations int) (*SnowballResult, error) {
	if in.S <= 0 || in.X <= 0 || in.T <= 0 || in.Sigma <= 0 {
		return nil, fmt.Errorf("%w: S, X, T and sigma must be positive (S=%v X=%v T=%v sigma=%v)",
			ErrInvalidParameter, in.S, in.X, in.T, in.Sigma)
	}
	if nSimulations <= 0 {
		return nil, fmt.Errorf("%w: n_simulations must be positive, got %d", ErrInvalidParameter, nSimulations)
	}

	vanilla := bsCall(in.S, in.X, in.T, in.R, in.Q, in.Sigma)

	sum := 0.0
	minPayoff := math.Inf(1)
	maxPayoff := math.Inf(-1)
	for i := 0; i < nSimulations; i++ {
		elapsed := float64(i) * in.T / float64(nSimulations)

		var si float64
		if p.mode == ModePathSim {
			si = p.samplePathValue(in, elapsed)
		} else {
			si = p.sampleSingleShot(in)
		}

		tau := in.T - elapsed
		value := p.remainingValue(in, si, tau)

		payoff := math.Max(in.K*si+(1-in.K)*value, 0)
		sum += payoff
		minPayoff = math.Min(minPayoff, payoff)
		maxPayoff = math.Max(maxPayoff, payoff)
	}

	meanPayoff := sum / float64(nSimulations)
	return &SnowballResult{
		OptionPrice:  (1-in.P)*vanilla + in.P*meanPayoff,
		VanillaPrice: vanilla,
		MeanPayoff:   meanPayoff,
		MinPayoff:    minPayoff,
		MaxPayoff:    maxPayoff,
		Simulations:  nSimulations,
	}, nil
}

// sampleSingleShot 抽取一个日度口径的随机收益并计算雪球标的值
func (p *SnowballPricer) sampleSingleShot(in SnowballInput) float64 {
	mean := (in.R - 0.5*in.Sigma*in.Sigma) * in.T * calendarDayYears
	std := in.Sigma * math.Sqrt(in.T*calendarDayYears)
	ri := mean + std*p.src.NormFloat64()
	return in.S * (1 + in.K*ri)
}

// samplePathValue 模拟一条到观察点的 GBM 日度路径，以路径总收益代替单次抽样收益
func (p *SnowballPricer) samplePathValue(in SnowballInput, elapsed float64) float64 {
	steps := int(math.Round(elapsed / calendarDayYears))
	if steps == 0 {
		return in.S
	}

	dt := elapsed / float64(steps)
	drift := (in.R - in.Q - 0.5*in.Sigma*in.Sigma) * dt
	vol := in.Sigma * math.Sqrt(dt)

	s := in.S
	for j := 0; j < steps; j++ {
		s *= math.Exp(drift + vol*p.src.NormFloat64())
	}
	return in.S * (1 + in.K*(s-in.S)/in.S)
}

// remainingValue 第 i 次抽样的剩余价值
// tau 非正或标的被模拟到非正值时闭式公式无定义，统一退化为内在价值
func (p *SnowballPricer) remainingValue(in SnowballInput, si, tau float64) float64 {
	if tau <= 0 || si <= 0 {
		return math.Max(si-in.X, 0)
	}
	return bsCall(si, in.X, tau, in.R, in.Q, in.Sigma)
}
