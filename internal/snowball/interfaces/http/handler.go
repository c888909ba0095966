// Package http 定价服务的 HTTP 处理器
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wyfcoding/snowballpricing/internal/snowball/application"
	"github.com/wyfcoding/snowballpricing/internal/snowball/domain"
	"github.com/wyfcoding/snowballpricing/pkg/logger"
	"github.com/wyfcoding/snowballpricing/pkg/response"
	"gorm.io/gorm"
)

// PricingHandler 负责处理与雪球定价相关的 HTTP 请求
type PricingHandler struct {
	svc *application.PricingService
}

// NewPricingHandler 创建 HTTP 处理器实例
func NewPricingHandler(svc *application.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// RegisterRoutes 将处理器方法绑定到 Gin 路由引擎
func (h *PricingHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api/v1/snowball")
	{
		api.POST("/price", h.PriceSnowball)
		api.POST("/price/batch", h.BatchPriceSnowballs)
		api.POST("/greeks", h.GetGreeks)
		api.GET("/results/:symbol", h.GetLatestResult)
		api.GET("/results/:symbol/history", h.GetHistory)
	}
}

// SnowballContractRequest 雪球合约请求
type SnowballContractRequest struct {
	Symbol        string    `json:"symbol" binding:"required"`
	StrikePrice   float64   `json:"strike_price" binding:"required"`
	ExpiryDate    time.Time `json:"expiry_date" binding:"required"`
	SnowballRatio float64   `json:"snowball_ratio"`
	ExecutionProb float64   `json:"execution_prob"`
}

// PricingRequest 定价请求
type PricingRequest struct {
	Contract        SnowballContractRequest `json:"contract" binding:"required"`
	UnderlyingPrice float64                 `json:"underlying_price" binding:"required"`
	Volatility      float64                 `json:"volatility" binding:"required"`
	RiskFreeRate    float64                 `json:"risk_free_rate"`
	DividendYield   float64                 `json:"dividend_yield"`
	Simulations     int                     `json:"simulations"`
	Seed            uint64                  `json:"seed"`
	SimulationMode  string                  `json:"simulation_mode"`
}

// BatchPricingRequest 批量定价请求
type BatchPricingRequest struct {
	BatchID   string           `json:"batch_id"`
	Contracts []PricingRequest `json:"contracts" binding:"required,min=1"`
}

// GreeksRequest 希腊字母请求
type GreeksRequest struct {
	Symbol          string    `json:"symbol" binding:"required"`
	OptionType      string    `json:"option_type"`
	StrikePrice     float64   `json:"strike_price" binding:"required"`
	ExpiryDate      time.Time `json:"expiry_date" binding:"required"`
	UnderlyingPrice float64   `json:"underlying_price" binding:"required"`
	Volatility      float64   `json:"volatility" binding:"required"`
	RiskFreeRate    float64   `json:"risk_free_rate"`
	DividendYield   float64   `json:"dividend_yield"`
}

// PriceSnowball 雪球定价
func (h *PricingHandler) PriceSnowball(c *gin.Context) {
	var req PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := h.svc.PriceSnowball(c.Request.Context(), toCommand(req))
	if err != nil {
		h.writeError(c, "Failed to price snowball option", err)
		return
	}

	response.Success(c, gin.H{
		"result":           result,
		"calculation_time": time.Now(),
	})
}

// BatchPriceSnowballs 批量雪球定价
func (h *PricingHandler) BatchPriceSnowballs(c *gin.Context) {
	var req BatchPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	batchID := req.BatchID
	if batchID == "" {
		batchID = uuid.New().String()
	}

	contracts := make([]application.PriceSnowballCommand, 0, len(req.Contracts))
	for _, contract := range req.Contracts {
		contracts = append(contracts, toCommand(contract))
	}

	result, err := h.svc.BatchPriceSnowballs(c.Request.Context(), application.BatchPriceSnowballsCommand{
		BatchID:   batchID,
		Contracts: contracts,
	})
	if err != nil {
		h.writeError(c, "Failed to price snowball batch", err)
		return
	}

	response.Success(c, result)
}

// GetGreeks 获取希腊字母
func (h *PricingHandler) GetGreeks(c *gin.Context) {
	var req GreeksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	greeks, err := h.svc.GetGreeks(c.Request.Context(), application.GreeksQuery{
		Symbol:          req.Symbol,
		OptionType:      req.OptionType,
		StrikePrice:     req.StrikePrice,
		ExpiryDate:      req.ExpiryDate.UnixMilli(),
		UnderlyingPrice: req.UnderlyingPrice,
		Volatility:      req.Volatility,
		RiskFreeRate:    req.RiskFreeRate,
		DividendYield:   req.DividendYield,
	})
	if err != nil {
		h.writeError(c, "Failed to calculate Greeks", err)
		return
	}

	response.Success(c, gin.H{
		"greeks":           greeks,
		"calculation_time": time.Now(),
	})
}

// GetLatestResult 获取最新定价结果
func (h *PricingHandler) GetLatestResult(c *gin.Context) {
	symbol := c.Param("symbol")

	result, err := h.svc.GetLatestResult(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, "no pricing result for symbol", symbol)
			return
		}
		h.writeError(c, "Failed to load pricing result", err)
		return
	}
	if result == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "no pricing result for symbol", symbol)
		return
	}

	response.Success(c, result)
}

// GetHistory 获取定价历史
func (h *PricingHandler) GetHistory(c *gin.Context) {
	symbol := c.Param("symbol")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	results, err := h.svc.GetHistory(c.Request.Context(), symbol, limit)
	if err != nil {
		h.writeError(c, "Failed to load pricing history", err)
		return
	}

	response.Success(c, gin.H{
		"symbol":  symbol,
		"results": results,
	})
}

func (h *PricingHandler) writeError(c *gin.Context, msg string, err error) {
	logger.Error(c.Request.Context(), msg, "error", err)
	if errors.Is(err, domain.ErrInvalidParameter) || errors.Is(err, domain.ErrNonPositiveMaturity) {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
}

func toCommand(req PricingRequest) application.PriceSnowballCommand {
	return application.PriceSnowballCommand{
		Symbol:          req.Contract.Symbol,
		StrikePrice:     req.Contract.StrikePrice,
		ExpiryDate:      req.Contract.ExpiryDate.UnixMilli(),
		UnderlyingPrice: req.UnderlyingPrice,
		Volatility:      req.Volatility,
		RiskFreeRate:    req.RiskFreeRate,
		DividendYield:   req.DividendYield,
		SnowballRatio:   req.Contract.SnowballRatio,
		ExecutionProb:   req.Contract.ExecutionProb,
		Simulations:     req.Simulations,
		Seed:            req.Seed,
		SimulationMode:  req.SimulationMode,
	}
}
