package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// @title       Library API
// @version     1.0
// @description 图书馆管理服务：图书入库与查询、借书证、借阅与归还
// @BasePath    /

// main 主程序入口
// 启动流程：Wire组装依赖 → 指标/追踪 → HTTP服务 → 捕获信号优雅关闭
func main() {
	app, cleanup, err := InitializeApp()
	if err != nil {
		log.Fatalf("初始化应用失败: %v", err)
	}
	defer cleanup()

	if err := run(app); err != nil {
		app.Logger.Error("服务异常退出", slog.Any("error", err))
		cleanup()
		os.Exit(1)
	}
}

func run(app *App) error {
	cfg, lg := app.Config, app.Logger

	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	shutdownTracer, err := tracing.InitTracer(tracing.Options{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return fmt.Errorf("初始化链路追踪失败: %w", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("HTTP服务启动",
			slog.String("addr", srv.Addr),
			slog.String("mode", cfg.Server.Mode),
			slog.String("db", cfg.Database.Describe()),
			slog.Bool("idempotency", cfg.Idempotency.Enabled),
			slog.Bool("allow_reset", cfg.Server.AllowReset),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP服务启动失败: %w", err)
		}
	case sig := <-quit:
		lg.Info("收到退出信号，正在优雅关闭", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP服务关闭失败: %w", err)
	}
	if err := shutdownTracer(ctx); err != nil {
		lg.Warn("关闭链路追踪失败", slog.Any("error", err))
	}

	lg.Info("服务已关闭")
	return nil
}
