// Package requestid はリクエスト相関 ID のコンテキスト伝搬を提供します。
package requestid

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// HTTP ヘッダーおよび gRPC メタデータのキーです。
const (
	HeaderKey   = "X-Request-ID"
	MetadataKey = "x-request-id"
)

const maxLength = 128

type contextKey struct{}

// New は新しいリクエスト ID を生成します。
func New() string {
	return uuid.NewString()
}

// Resolve は受け取った ID が利用可能ならそれを、そうでなければ新しい ID を返します。
func Resolve(incoming string) string {
	incoming = strings.TrimSpace(incoming)
	if incoming == "" || len(incoming) > maxLength {
		return New()
	}
	return incoming
}

// NewContext は ID を保持したコンテキストを返します。
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext はコンテキストの ID を返します。存在しなければ空文字です。
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
