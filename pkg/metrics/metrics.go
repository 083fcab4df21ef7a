// Package metrics 提供监控指标功能.
// 支持Prometheus标准，收集 HTTP 与文件接收流程的指标.
//
// Example:
//
//	import "github.com/yeisme/genomeinsight/pkg/metrics"
//
//	if err := metrics.InitMetrics(cfg.Metrics); err != nil {
//		log.Fatal(err)
//	}
//
//	metrics.RecordIntake(metrics.IntakeStored, size, len(verdict.Warnings))
//	metrics.Register(engine, cfg.Metrics)
package metrics

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yeisme/genomeinsight/pkg/configs"
)

const namespace = "genomeinsight"

// IntakeResult 文件接收结果标签.
type IntakeResult string

const (
	IntakeStored          IntakeResult = "stored"
	IntakeRejected        IntakeResult = "rejected"
	IntakeStorageFailed   IntakeResult = "storage_error"
	IntakeMetadataFailed  IntakeResult = "metadata_error"
	CompensationSucceeded              = "ok"
	CompensationFailed                 = "failed"
)

var (
	// RequestCounter HTTP请求计数器.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration HTTP请求持续时间.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// ActiveConnections 处理中的请求数.
	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_connections",
			Help:      "Number of in-flight HTTP requests",
		},
	)

	// IntakeTotal 文件接收次数，按结果区分.
	IntakeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intake_total",
			Help:      "Number of upload intake attempts by result",
		},
		[]string{"result"},
	)

	// IntakeBytes 成功保存的文件大小分布.
	IntakeBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "intake_bytes",
			Help:      "Size of stored uploads in bytes",
			// 1KiB .. 16GiB
			Buckets: prometheus.ExponentialBuckets(1024, 4, 13),
		},
	)

	// ValidationWarnings 校验警告数量.
	ValidationWarnings = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_warnings_total",
			Help:      "Number of validation warnings emitted",
		},
	)

	// Compensations 补偿删除次数，按结果区分.
	Compensations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compensations_total",
			Help:      "Number of compensating blob deletions by result",
		},
		[]string{"result"},
	)

	// JanitorRemoved 清理任务删除的孤儿文件数.
	JanitorRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "janitor_removed_total",
			Help:      "Number of orphan blobs removed by the janitor",
		},
	)

	// registry Prometheus注册表.
	registry = prometheus.NewRegistry()
	initOnce sync.Once
	initErr  error
)

// InitMetrics 初始化Metrics，重复调用只生效一次.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	initOnce.Do(func() {
		cs := []prometheus.Collector{
			RequestCounter, RequestDuration, ActiveConnections,
			IntakeTotal, IntakeBytes, ValidationWarnings, Compensations, JanitorRemoved,
		}

		// 默认注册表已包含 go/process 收集器，只有关闭时才需要额外注册
		if !config.RuntimeMetrics {
			prometheus.DefaultRegisterer.Unregister(collectors.NewGoCollector())
			prometheus.DefaultRegisterer.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		}

		for _, c := range cs {
			if err := registry.Register(c); err != nil {
				var are prometheus.AlreadyRegisteredError
				if !errors.As(err, &are) {
					initErr = err
					return
				}
			}
		}
	})

	return initErr
}

// Register 在 engine 上挂载指标端点.
// 端点同时输出本包注册表与默认注册表（gorm 插件、watermill 指标、运行时指标）.
func Register(engine *gin.Engine, config configs.MetricsConfig) {
	if !config.Enabled {
		return
	}

	path := config.Path
	if path == "" {
		path = "/metrics"
	}

	gatherers := prometheus.Gatherers{registry, prometheus.DefaultGatherer}
	engine.GET(path, gin.WrapH(promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})))
}

// GetRegistry 获取Prometheus注册表.
func GetRegistry() *prometheus.Registry {
	return registry
}

// RecordIntake 记录一次文件接收.
func RecordIntake(result IntakeResult, size int64, warnings int) {
	IntakeTotal.WithLabelValues(string(result)).Inc()

	if result == IntakeStored {
		IntakeBytes.Observe(float64(size))
	}

	if warnings > 0 {
		ValidationWarnings.Add(float64(warnings))
	}
}

// RecordCompensation 记录一次补偿删除.
func RecordCompensation(err error) {
	if err != nil {
		Compensations.WithLabelValues(CompensationFailed).Inc()
		return
	}

	Compensations.WithLabelValues(CompensationSucceeded).Inc()
}

// ObserveRequest 记录一次 HTTP 请求.
func ObserveRequest(method, endpoint string, status int, elapsed time.Duration) {
	RequestCounter.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}
