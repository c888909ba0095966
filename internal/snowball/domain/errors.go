package domain

import "errors"

var (
	// ErrInvalidParameter 定价输入非法（非正的 S/X/T/sigma 或模拟次数）
	ErrInvalidParameter = errors.New("invalid pricing parameter")

	// ErrNonPositiveMaturity 剩余期限非正，闭式公式无定义
	ErrNonPositiveMaturity = errors.New("non-positive time to maturity")
)
