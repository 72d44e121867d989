package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ogurasousui/codex-usuario-api/internal/platform/metrics"
)

// NewMetricsMiddleware はルートパターン単位でリクエスト数と処理時間を記録します。
// ルートに一致しなかったリクエストは "unmatched" として集計します。
func NewMetricsMiddleware(recorder metrics.Recorder) func(next http.Handler) http.Handler {
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			operation := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					operation = r.Method + " " + pattern
				}
			}

			recorder.RecordRequest(metrics.TransportHTTP, operation, strconv.Itoa(rec.statusCode), time.Since(start))
		})
	}
}
