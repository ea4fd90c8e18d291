// Package metrics 提供 Prometheus 指标：HTTP 请求统计与业务计数。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager 持有全部指标，使用独立 Registry 注册
type Manager struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	personsCreated   prometheus.Counter
	recordsSubmitted prometheus.Counter
	duplicates       *prometheus.CounterVec
	reportRows       prometheus.Histogram
	exports          prometheus.Counter
}

// Option Manager 配置项
type Option func(*options)

type options struct {
	namespace string
	buckets   []float64
	runtime   bool
}

// WithNamespace 设置指标命名空间
func WithNamespace(ns string) Option {
	return func(o *options) {
		if ns != "" {
			o.namespace = ns
		}
	}
}

// WithHistogramBuckets 设置请求耗时直方图分桶
func WithHistogramBuckets(buckets []float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// WithRuntimeCollectors 注册 Go 运行时与进程指标
func WithRuntimeCollectors() Option {
	return func(o *options) { o.runtime = true }
}

// NewManager 创建并注册全部指标
func NewManager(opts ...Option) *Manager {
	o := options{namespace: "prodtrack", buckets: prometheus.DefBuckets}
	for _, opt := range opts {
		opt(&o)
	}

	reg := prometheus.NewRegistry()
	if o.runtime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m := &Manager{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP 请求总数",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP 请求耗时",
			Buckets:   o.buckets,
		}, []string{"method", "route"}),
		personsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "persons_created_total",
			Help:      "创建的人员数",
		}),
		recordsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "records_submitted_total",
			Help:      "提交的生产率记录数",
		}),
		duplicates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "duplicates_rejected_total",
			Help:      "因唯一约束被拒绝的写入",
		}, []string{"entity"}),
		reportRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "report_rows",
			Help:      "单次查询返回的记录数",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "exports_total",
			Help:      "生成的报表文件数",
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpRequestDuration,
		m.personsCreated,
		m.recordsSubmitted,
		m.duplicates,
		m.reportRows,
		m.exports,
	)
	return m
}

// Handler 返回 /metrics 处理器
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry 返回底层 Registry（测试用）
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// ObserveHTTP 记录一次 HTTP 请求
func (m *Manager) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// PersonCreated 人员创建成功
func (m *Manager) PersonCreated() {
	if m == nil {
		return
	}
	m.personsCreated.Inc()
}

// RecordSubmitted 生产率记录提交成功
func (m *Manager) RecordSubmitted() {
	if m == nil {
		return
	}
	m.recordsSubmitted.Inc()
}

// DuplicateRejected 唯一约束冲突，entity 取 "person" 或 "record"
func (m *Manager) DuplicateRejected(entity string) {
	if m == nil {
		return
	}
	m.duplicates.WithLabelValues(entity).Inc()
}

// ReportServed 记录一次查询返回的行数
func (m *Manager) ReportServed(rows int) {
	if m == nil {
		return
	}
	m.reportRows.Observe(float64(rows))
}

// ExportGenerated 报表文件生成成功
func (m *Manager) ExportGenerated() {
	if m == nil {
		return
	}
	m.exports.Inc()
}
