package domain

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// NormalSource 标准正态随机数来源
// 抽象随机源以支持显式播种与确定性重放
type NormalSource interface {
	// NormFloat64 返回一个均值 0、标准差 1 的正态随机数
	NormFloat64() float64
}

// GaussianSource 基于 gonum distuv 的可播种正态随机源
type GaussianSource struct {
	dist distuv.Normal
}

// NewGaussianSource 创建正态随机源
// seed 为 0 时使用当前时间播种（不可重放）
func NewGaussianSource(seed uint64) *GaussianSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &GaussianSource{
		dist: distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)},
	}
}

// NormFloat64 返回下一个标准正态随机数
func (g *GaussianSource) NormFloat64() float64 {
	return g.dist.Rand()
}
