package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xiebiao/library/pkg/tracing"
)

const (
	// HeaderRequestID 请求ID头
	HeaderRequestID = "X-Request-ID"
	// RequestIDKey gin.Context中请求ID的key
	RequestIDKey = "request_id"
)

// slowRequestThreshold 超过该耗时记warn日志
const slowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
// 1. 沿用客户端传入的X-Request-ID，没有则生成uuid
// 2. 请求结束后输出一条结构化日志(方法、路由、状态码、耗时、IP、trace_id)
// 3. 不记录请求体
func Logger(lg *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(HeaderRequestID, requestID)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("route", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", latency),
			slog.String("client_ip", c.ClientIP()),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			attrs = append(attrs, slog.String("trace_id", traceID))
		}
		if code := c.GetInt(responseCodeKey); code != 0 {
			attrs = append(attrs, slog.Int("code", code))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		level := slog.LevelInfo
		switch {
		case c.Writer.Status() >= 500:
			level = slog.LevelError
		case latency > slowRequestThreshold:
			level = slog.LevelWarn
		}
		lg.LogAttrs(c.Request.Context(), level, "http request", attrs...)
	}
}
