package handler

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/ogurasousui/codex-usuario-api/internal/platform/metrics"
	"github.com/ogurasousui/codex-usuario-api/internal/platform/requestid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptors は RequestID → Logging → Metrics → Recovery の順で
// 適用されるインターセプターを返します。grpc.ChainUnaryInterceptor に渡して使用します。
func UnaryServerInterceptors(logger *slog.Logger, recorder metrics.Recorder) []grpc.UnaryServerInterceptor {
	return []grpc.UnaryServerInterceptor{
		RequestIDUnaryInterceptor(),
		LoggingUnaryInterceptor(logger),
		MetricsUnaryInterceptor(recorder),
		RecoveryUnaryInterceptor(logger),
	}
}

// RequestIDUnaryInterceptor は x-request-id メタデータを引き継ぐか採番し、
// コンテキストとレスポンスヘッダーに設定します。
func RequestIDUnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		var incoming string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get(requestid.MetadataKey); len(values) > 0 {
				incoming = values[0]
			}
		}

		id := requestid.Resolve(incoming)
		// ストリームが無い場合（直接呼び出し）は失敗するが無視してよい。
		_ = grpc.SetHeader(ctx, metadata.Pairs(requestid.MetadataKey, id))

		return handler(requestid.NewContext(ctx, id), req)
	}
}

// LoggingUnaryInterceptor は RPC ごとに method, code, duration_ms, request_id を記録します。
func LoggingUnaryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		durationMs := float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond)

		code := status.Code(err)
		attrs := []slog.Attr{
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.Float64("duration_ms", durationMs),
		}
		if id := requestid.FromContext(ctx); id != "" {
			attrs = append(attrs, slog.String("request_id", id))
		}

		level := slog.LevelInfo
		switch code {
		case codes.OK:
		case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
			level = slog.LevelError
			attrs = append(attrs, slog.String("error", err.Error()))
		default:
			level = slog.LevelWarn
		}

		logger.LogAttrs(ctx, level, "grpc_request", attrs...)
		return resp, err
	}
}

// MetricsUnaryInterceptor は RPC ごとのリクエスト数と処理時間を記録します。
func MetricsUnaryInterceptor(recorder metrics.Recorder) grpc.UnaryServerInterceptor {
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		recorder.RecordRequest(metrics.TransportGRPC, info.FullMethod, status.Code(err).String(), time.Since(start))
		return resp, err
	}
}

// RecoveryUnaryInterceptor は panic を Internal エラーに変換します。
func RecoveryUnaryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered",
					slog.Any("panic", rec),
					slog.String("method", info.FullMethod),
					slog.String("request_id", requestid.FromContext(ctx)),
					slog.String("stack", string(debug.Stack())),
				)
				resp = nil
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}
