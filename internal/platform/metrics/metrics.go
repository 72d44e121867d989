// Package metrics は Prometheus メトリクスの収集と公開を提供します。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// トランスポート名です。
const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
)

// Recorder はリクエスト結果を記録するインターフェースです。
type Recorder interface {
	RecordRequest(transport, operation, status string, duration time.Duration)
}

// Collector は Prometheus メトリクスを収集する実装です。
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ Recorder = (*Collector)(nil)

// NewCollector は Collector を生成し、指定されたレジストリに登録します。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "usuario_requests_total",
			Help: "トランスポート・操作・結果別のリクエスト数",
		}, []string{"transport", "operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "usuario_request_duration_seconds",
			Help:    "トランスポート・操作別の処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"transport", "operation"}),
	}

	reg.MustRegister(c.requests, c.duration)

	return c
}

// RecordRequest は 1 リクエストの結果と処理時間を記録します。
func (c *Collector) RecordRequest(transport, operation, status string, duration time.Duration) {
	c.requests.WithLabelValues(transport, operation, status).Inc()
	c.duration.WithLabelValues(transport, operation).Observe(duration.Seconds())
}

// Handler は Prometheus スクレイプ用の HTTP ハンドラーを返します。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop は何も記録しない Recorder です。
type Nop struct{}

// RecordRequest は何もしません。
func (Nop) RecordRequest(string, string, string, time.Duration) {}
