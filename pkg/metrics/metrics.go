package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fosms"

var (
	// HTTPRequests 按路由模板与状态码统计请求数
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP 请求总数",
	}, []string{"method", "route", "status"})

	// HTTPDuration 请求耗时分布
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP 请求耗时",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// AuthFailures 登录/鉴权失败次数
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "认证或授权失败次数",
	}, []string{"reason"})

	// ShiftAssignments 排班创建结果
	ShiftAssignments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shift_assignments_total",
		Help:      "排班创建次数（按结果）",
	}, []string{"result"})

	// SwapRequests 换班申请的创建与处理
	SwapRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "swap_requests_total",
		Help:      "换班申请事件（created / APPROVED / REJECTED）",
	}, []string{"event"})
)
