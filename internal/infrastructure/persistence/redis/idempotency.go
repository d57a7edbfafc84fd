package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// pendingMarker 请求处理中的占位值
const pendingMarker = "pending"

// StoredResponse 已完成请求的响应快照
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore 幂等键存储
// Key设计：idem:{method}:{path}:{Idempotency-Key}
// 值为pending表示第一个请求仍在处理，否则为StoredResponse的JSON
// Redis持续故障时熔断器打开，请求不再等待Redis超时，直接按不去重处理
type IdempotencyStore struct {
	client  *redis.Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewIdempotencyStore 创建幂等键存储，breaker可以为nil
func NewIdempotencyStore(client *redis.Client, breaker *circuitbreaker.CircuitBreaker) *IdempotencyStore {
	return &IdempotencyStore{client: client, breaker: breaker}
}

// do 经熔断器访问Redis
func (s *IdempotencyStore) do(fn func() error) error {
	if s.breaker == nil {
		return fn()
	}
	return s.breaker.Execute(fn)
}

// Key 拼装Redis key
func Key(method, path, idemKey string) string {
	return fmt.Sprintf("idem:%s:%s:%s", method, path, idemKey)
}

// Reserve 尝试占位
// 返回true表示当前请求获得处理权；
// 返回false时若resp非nil为已完成请求的响应，nil表示仍在处理
func (s *IdempotencyStore) Reserve(ctx context.Context, key string, lockTTL time.Duration) (bool, *StoredResponse, error) {
	var (
		reserved bool
		val      []byte
	)
	err := s.do(func() error {
		ok, err := s.client.SetNX(ctx, key, pendingMarker, lockTTL).Result()
		if err != nil || ok {
			reserved = ok
			return err
		}
		val, err = s.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			// 占位恰好过期，按处理中返回，客户端重试即可
			return nil
		}
		return err
	})
	if err != nil {
		return false, nil, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "幂等键占位失败")
	}
	if reserved || val == nil || string(val) == pendingMarker {
		return reserved, nil, nil
	}

	var resp StoredResponse
	if err := json.Unmarshal(val, &resp); err != nil {
		return false, nil, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "幂等响应解析失败")
	}
	return false, &resp, nil
}

// Complete 保存响应，覆盖占位
func (s *IdempotencyStore) Complete(ctx context.Context, key string, resp *StoredResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return apperrors.Wrap(err, "幂等响应序列化失败")
	}
	err = s.do(func() error {
		return s.client.Set(ctx, key, data, ttl).Err()
	})
	if err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "保存幂等响应失败")
	}
	return nil
}

// Release 删除占位（请求未产生可重放的响应时）
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	err := s.do(func() error {
		return s.client.Del(ctx, key).Err()
	})
	if err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "删除幂等键失败")
	}
	return nil
}
