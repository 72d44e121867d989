package middleware

import (
	"net/http"

	"github.com/ogurasousui/codex-usuario-api/internal/platform/requestid"
)

// NewRequestIDMiddleware は X-Request-ID ヘッダーを引き継ぐか新たに採番し、
// コンテキストとレスポンスヘッダーに設定します。
func NewRequestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := requestid.Resolve(r.Header.Get(requestid.HeaderKey))
			w.Header().Set(requestid.HeaderKey, id)
			next.ServeHTTP(w, r.WithContext(requestid.NewContext(r.Context(), id)))
		})
	}
}
