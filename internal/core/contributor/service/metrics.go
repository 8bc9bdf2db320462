package service

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/weisyn/contributor/pkg/types"
)

// ============================================================================
//                          Prometheus 监控指标
// ============================================================================

var (
	// operationTotal 边界操作次数（按操作与结果分类）
	operationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contributor",
			Subsystem: "core",
			Name:      "operations_total",
			Help:      "Total number of boundary operations by operation and result",
		},
		[]string{"operation", "result"}, // result: ok 或错误码
	)

	// operationDuration 边界操作耗时
	operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "contributor",
			Subsystem: "core",
			Name:      "operation_duration_seconds",
			Help:      "Duration of boundary operations in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"operation"},
	)

	// salesByStatus 状态迁移次数
	salesByStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contributor",
			Subsystem: "sale",
			Name:      "transitions_total",
			Help:      "Total number of sale status transitions",
		},
		[]string{"status"},
	)

	// vaultFailures 已记账但金库划转失败的次数
	vaultFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contributor",
			Subsystem: "vault",
			Name:      "transfer_failures_total",
			Help:      "Total number of vault transfers that failed after the ledger was updated",
		},
		[]string{"operation"},
	)
)

// ============================================================================
//                          指标注册
// ============================================================================

func init() {
	prometheus.MustRegister(
		operationTotal,
		operationDuration,
		salesByStatus,
		vaultFailures,
	)
}

// observe 记录一次边界操作
func observe(operation string, start time.Time, err error) {
	operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	operationTotal.WithLabelValues(operation, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var ce *types.ContributorError
	if errors.As(err, &ce) {
		return string(ce.Code)
	}
	return "internal"
}
