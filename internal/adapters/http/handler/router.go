package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ogurasousui/codex-usuario-api/internal/adapters/http/middleware"
	"github.com/ogurasousui/codex-usuario-api/internal/core/user"
	"github.com/ogurasousui/codex-usuario-api/internal/platform/metrics"
)

// RouterDeps は NewRouter に必要な依存関係をまとめた構造体です。
type RouterDeps struct {
	UserService user.UseCase
	Logger      *slog.Logger

	// Recorder が nil の場合メトリクスは記録しません。
	Recorder metrics.Recorder
	// MetricsHandler が nil の場合 /metrics は公開しません。
	MetricsHandler http.Handler
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成した chi.Router を返します。
//
// ミドルウェアの実行順序:
//
//	RequestID → Logging → Metrics → Recovery
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewMetricsMiddleware(deps.Recorder))
	r.Use(middleware.NewRecoveryMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	h := NewUserHandler(deps.UserService, logger)

	r.Route("/usuarios", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/crear", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/actualizar/{id}", h.Update)
		r.Delete("/eliminar/{id}", h.Delete)
	})

	return r
}
