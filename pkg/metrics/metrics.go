// Package metrics 提供 Prometheus helper，包含服务通用指标与定价业务指标
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wyfcoding/snowballpricing/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数与耗时
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration prometheus.Histogram

	// 业务指标
	PricingsTotal      prometheus.Counter
	PricingFailures    prometheus.Counter
	PricingDuration    prometheus.Histogram
	SimulationDraws    prometheus.Counter
	BatchPricingsTotal prometheus.Counter
}

// New 创建指标实例
// serviceName 中的连字符会被替换为下划线以满足 Prometheus 命名规则
func New(serviceName string) *Metrics {
	subsystem := strings.ReplaceAll(serviceName, "-", "_")
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: subsystem,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pricing",
			Subsystem: subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		PricingsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: subsystem,
			Name:      "valuations_total",
			Help:      "Total snowball valuations performed",
		}),
		PricingFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: subsystem,
			Name:      "valuation_failures_total",
			Help:      "Total snowball valuations that failed",
		}),
		PricingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pricing",
			Subsystem: subsystem,
			Name:      "valuation_duration_seconds",
			Help:      "Snowball valuation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		SimulationDraws: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: subsystem,
			Name:      "simulation_draws_total",
			Help:      "Total Monte Carlo draws consumed",
		}),
		BatchPricingsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: subsystem,
			Name:      "batch_valuations_total",
			Help:      "Total batch valuation requests",
		}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.PricingsTotal,
		m.PricingFailures,
		m.PricingDuration,
		m.SimulationDraws,
		m.BatchPricingsTotal,
	}

	for _, c := range collectors {
		if err := prometheus.DefaultRegisterer.Register(c); err != nil {
			logger.Error(context.Background(), "Failed to register metric", "error", err)
			return err
		}
	}
	logger.Info(context.Background(), "Metrics registered successfully")
	return nil
}

// StartHTTPServer 启动 Prometheus HTTP 服务器
func StartHTTPServer(port int, path string) {
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "Starting Prometheus HTTP server", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error(context.Background(), "Failed to start Prometheus HTTP server", "error", err)
		}
	}()
}
