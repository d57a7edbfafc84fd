package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/circuitbreaker"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
)

// App 组装完成的应用
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Engine *gin.Engine
}

func newApp(cfg *config.Config, lg *slog.Logger, engine *gin.Engine) *App {
	return &App{Config: cfg, Logger: lg, Engine: engine}
}

// provideLogger 从配置创建日志器，并设为slog默认日志器
func provideLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	lg, closer, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(lg)
	return lg, func() { _ = closer() }, nil
}

// provideIdempotencyStore 幂等未开启时返回nil，路由不挂幂等中间件
func provideIdempotencyStore(cfg *config.Config, client *goredis.Client, lg *slog.Logger) middleware.IdempotencyStore {
	if !cfg.Idempotency.Enabled || client == nil {
		return nil
	}
	breaker := circuitbreaker.New("redis", circuitbreaker.Config{
		FailureThreshold: cfg.Idempotency.BreakerFailures,
		OpenTimeout:      cfg.Idempotency.BreakerTimeout,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			lg.Warn("熔断器状态变化",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			metrics.RecordBreakerState(name, int(to))
		},
	})
	return redis.NewIdempotencyStore(client, breaker)
}
