package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/response"
)

const (
	// HeaderIdempotencyKey 客户端传入的幂等键
	HeaderIdempotencyKey = "Idempotency-Key"
	// HeaderIdempotentReplayed 标记响应来自重放
	HeaderIdempotentReplayed = "Idempotent-Replayed"

	responseCodeKey = response.CodeKey
)

// IdempotencyStore 幂等键存储(Redis实现见persistence/redis)
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string, lockTTL time.Duration) (bool, *redis.StoredResponse, error)
	Complete(ctx context.Context, key string, resp *redis.StoredResponse, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

// bodyRecorder 在写出响应的同时保留一份
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency 写请求去重
// 流程：
// 1. 没有Idempotency-Key头或是只读方法，直接放行
// 2. SET NX占位成功，执行请求并保存响应
// 3. 已有完成的响应，原样重放
// 4. 第一个请求仍在处理，返回409 + 40010
// 结果为5xxxx(写冲突、数据库不可用等)时删除占位，允许客户端用同一个键重试；
// Redis故障时降级为不去重
func Idempotency(store IdempotencyStore, cfg config.IdempotencyConfig, lg *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		idemKey := c.GetHeader(HeaderIdempotencyKey)
		if idemKey == "" || !isWriteMethod(c.Request.Method) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := redis.Key(c.Request.Method, c.Request.URL.Path, idemKey)

		reserved, stored, err := store.Reserve(ctx, key, cfg.LockTTL)
		if err != nil {
			lg.WarnContext(ctx, "幂等键检查失败，按普通请求处理",
				slog.String("key", key),
				slog.Any("error", err),
			)
			c.Next()
			return
		}

		if !reserved {
			if stored == nil {
				response.AbortWithError(c, http.StatusConflict, apperrors.ErrRequestInFlight)
				return
			}
			metrics.RecordReplay()
			c.Header(HeaderIdempotentReplayed, "true")
			c.Data(stored.Status, stored.ContentType, stored.Body)
			c.Abort()
			return
		}

		// 请求结束后ctx可能已取消，保存结果不跟随请求ctx
		saveCtx := context.WithoutCancel(ctx)

		// handler panic时删除占位，否则重试会一直收到409直到占位过期
		defer func() {
			if r := recover(); r != nil {
				if err := store.Release(saveCtx, key); err != nil {
					lg.WarnContext(ctx, "删除幂等键失败", slog.String("key", key), slog.Any("error", err))
				}
				panic(r)
			}
		}()

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		if recorder.Status() >= http.StatusInternalServerError || c.GetInt(responseCodeKey) >= apperrors.ErrCodeInternal {
			if err := store.Release(saveCtx, key); err != nil {
				lg.WarnContext(ctx, "删除幂等键失败", slog.String("key", key), slog.Any("error", err))
			}
			return
		}

		resp := &redis.StoredResponse{
			Status:      recorder.Status(),
			ContentType: recorder.Header().Get("Content-Type"),
			Body:        recorder.body.Bytes(),
		}
		if err := store.Complete(saveCtx, key, resp, cfg.TTL); err != nil {
			lg.WarnContext(ctx, "保存幂等响应失败", slog.String("key", key), slog.Any("error", err))
		}
	}
}

func isWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
