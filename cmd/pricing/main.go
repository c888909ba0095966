package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/snowballpricing/internal/snowball/application"
	"github.com/wyfcoding/snowballpricing/internal/snowball/infrastructure"
	"github.com/wyfcoding/snowballpricing/internal/snowball/infrastructure/messaging"
	"github.com/wyfcoding/snowballpricing/internal/snowball/infrastructure/persistence/mysql"
	redisrepo "github.com/wyfcoding/snowballpricing/internal/snowball/infrastructure/persistence/redis"
	httphandler "github.com/wyfcoding/snowballpricing/internal/snowball/interfaces/http"
	"github.com/wyfcoding/snowballpricing/pkg/cache"
	"github.com/wyfcoding/snowballpricing/pkg/config"
	"github.com/wyfcoding/snowballpricing/pkg/db"
	"github.com/wyfcoding/snowballpricing/pkg/logger"
	"github.com/wyfcoding/snowballpricing/pkg/metrics"
	"github.com/wyfcoding/snowballpricing/pkg/middleware"
	"github.com/wyfcoding/snowballpricing/pkg/mq"
	"github.com/wyfcoding/snowballpricing/pkg/ratelimit"
)

const serviceName = "snowball-pricing"

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.toml", "path to config file")
	flag.Parse()

	// 1. Config
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("read config failed: %v", err))
	}

	// 2. Logger
	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}

	ctx := context.Background()
	logger.Info(ctx, "starting service", "service", serviceName, "version", cfg.Version, "env", cfg.Environment)

	// 3. Metrics
	m := metrics.New(serviceName)
	if err := m.Register(); err != nil {
		panic(fmt.Sprintf("register metrics failed: %v", err))
	}
	if cfg.Metrics.Enabled {
		metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// 4. Database
	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		panic(fmt.Sprintf("connect db failed: %v", err))
	}
	defer database.Close()

	if err := database.AutoMigrate(&mysql.PricingResultModel{}); err != nil {
		panic(fmt.Sprintf("migrate db failed: %v", err))
	}

	// 5. Redis
	redisCache, err := cache.New(cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		panic(fmt.Sprintf("connect redis failed: %v", err))
	}
	defer redisCache.Close()

	rateLimiter := ratelimit.NewRedisRateLimiter(redisCache.GetClient())

	// 6. Kafka
	producer, err := mq.NewProducer(mq.KafkaConfig{
		Brokers:      cfg.Kafka.Brokers,
		GroupID:      cfg.Kafka.GroupID,
		MaxRetries:   cfg.Kafka.MaxRetries,
		RetryBackoff: cfg.Kafka.RetryBackoff,
	})
	if err != nil {
		panic(fmt.Sprintf("connect kafka failed: %v", err))
	}
	defer producer.Close()
	publisher := messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic)

	// 7. Repository & Application
	repo := infrastructure.NewCachedPricingRepository(
		mysql.NewPricingRepository(database.DB),
		redisrepo.NewPricingRedisRepository(redisCache.GetClient()),
	)
	appService := application.NewPricingService(repo, publisher, application.PricerConfig{
		DefaultSimulations: cfg.Pricing.DefaultSimulations,
		MaxSimulations:     cfg.Pricing.MaxSimulations,
	}).WithMetrics(m)

	// 8. HTTP
	if cfg.Environment == "production" || cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.GinRecoveryMiddleware(),
		middleware.GinLoggingMiddleware(),
		middleware.GinMetricsMiddleware(m),
		middleware.GinCORSMiddleware(),
		middleware.RateLimitMiddleware(rateLimiter, cfg.RateLimit),
	)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   serviceName,
			"timestamp": time.Now().Unix(),
		})
	})
	httphandler.NewPricingHandler(appService).RegisterRoutes(router)

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info(ctx, "starting HTTP server", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	// 9. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "server forced to shutdown", "error", err)
	}

	logger.Info(ctx, "server exiting")
}
