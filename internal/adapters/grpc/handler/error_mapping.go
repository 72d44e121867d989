package handler

import (
	"context"
	"errors"

	"github.com/ogurasousui/codex-usuario-api/internal/core/user"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
)

const errorDomain = "usuario.v1"

// toStatusError はドメインエラーを gRPC ステータスに変換します。
// 入力エラーには ErrorInfo と BadRequest の詳細を付与します。
func toStatusError(err error) error {
	var (
		fieldErr *user.FieldError
		convErr  *conversionError
	)

	switch {
	case err == nil:
		return nil
	case errors.As(err, &fieldErr):
		return withDetails(codes.InvalidArgument, fieldErr.Message, user.ErrorCode(err), fieldErr.Field)
	case errors.As(err, &convErr):
		return withDetails(codes.InvalidArgument, convErr.message, "INVALID_REQUEST", convErr.field)
	case errors.Is(err, user.ErrInvalidID):
		return withDetails(codes.InvalidArgument, "El ID debe ser un número entero", user.CodeInvalidID, user.FieldID)
	case errors.Is(err, user.ErrUserNotFound):
		return withDetails(codes.NotFound, "Usuario no encontrado", user.CodeUserNotFound, "")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return &internalError{cause: err}
	}
}

// internalError はクライアントには詳細を隠し、ログには原因を残すためのエラーです。
type internalError struct {
	cause error
}

func (e *internalError) Error() string {
	return "internal error: " + e.cause.Error()
}

func (e *internalError) Unwrap() error {
	return e.cause
}

func (e *internalError) GRPCStatus() *status.Status {
	return status.New(codes.Internal, "internal error")
}

func withDetails(code codes.Code, message, reason, field string) error {
	st := status.New(code, message)

	details := []protoadapt.MessageV1{&errdetails.ErrorInfo{Reason: reason, Domain: errorDomain}}
	if field != "" {
		details = append(details, &errdetails.BadRequest{
			FieldViolations: []*errdetails.BadRequest_FieldViolation{{Field: field, Description: message}},
		})
	}

	detailed, err := st.WithDetails(details...)
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
