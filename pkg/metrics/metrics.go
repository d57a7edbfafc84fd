// Package metrics 提供基于Prometheus的指标收集
//
// # 指标类型
//
//   - Counter（计数器）: 只增不减，如请求总数、操作失败次数
//   - Gauge（仪表盘）: 可增可减，如正在处理的请求数
//   - Histogram（直方图）: 观测值分布，如请求耗时、事务耗时
//
// # 指标分组
//
//	HTTP层:    http_requests_total / http_request_duration_seconds / http_requests_in_progress
//	业务层:    library_operations_total{operation,result} / library_operation_duration_seconds{operation}
//	存储层:    library_tx_rollbacks_total
//	依赖:      library_circuit_breaker_state{name}
//
// 使用方式：main中调用InitMetrics()，/metrics端点由promhttp.Handler()暴露。
// 未初始化时Record*系列函数为空操作（单元测试无需注册指标）。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initOnce 防止重复注册（promauto重复注册会panic）
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/api/v1/books/:id）、status（200/409）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// OperationsTotal 业务操作总数（Counter）
	// 标签：operation（store_book/borrow_book...）、result（success或错误分类）
	OperationsTotal *prometheus.CounterVec

	// OperationDuration 业务操作耗时（Histogram，包含整个事务）
	OperationDuration *prometheus.HistogramVec

	// TxRollbacksTotal 事务回滚次数（Counter）
	TxRollbacksTotal prometheus.Counter

	// IdempotentReplaysTotal 幂等重放次数（Counter）
	IdempotentReplaysTotal prometheus.Counter

	// CircuitBreakerState 熔断器状态（Gauge，0关闭 1打开 2半开）
	CircuitBreakerState *prometheus.GaugeVec
)

// InitMetrics 注册所有指标，可重复调用
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		OperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_operations_total",
				Help: "图书馆业务操作总数",
			},
			[]string{"operation", "result"},
		)

		OperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "library_operation_duration_seconds",
				Help: "图书馆业务操作耗时（秒）",
				// 串行化事务在争用时会明显变慢
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"operation"},
		)

		TxRollbacksTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "library_tx_rollbacks_total",
				Help: "事务回滚次数",
			},
		)

		IdempotentReplaysTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "library_idempotent_replays_total",
				Help: "幂等键命中后直接重放响应的次数",
			},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "library_circuit_breaker_state",
				Help: "熔断器状态（0关闭 1打开 2半开）",
			},
			[]string{"name"},
		)
	})
}

// RecordOperation 记录一次业务操作的结果与耗时
func RecordOperation(operation, result string, seconds float64) {
	if OperationsTotal == nil {
		return
	}
	OperationsTotal.WithLabelValues(operation, result).Inc()
	OperationDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordRollback 记录一次事务回滚
func RecordRollback() {
	if TxRollbacksTotal == nil {
		return
	}
	TxRollbacksTotal.Inc()
}

// RecordReplay 记录一次幂等重放
func RecordReplay() {
	if IdempotentReplaysTotal == nil {
		return
	}
	IdempotentReplaysTotal.Inc()
}

// RecordBreakerState 记录熔断器状态
func RecordBreakerState(name string, state int) {
	if CircuitBreakerState == nil {
		return
	}
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// IncCounterVec 按标签递增计数器
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge / DecGauge 调整仪表盘
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogramVec 按标签记录观测值
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
