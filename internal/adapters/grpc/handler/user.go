// Package handler は usuario.v1.UsuarioService の gRPC 実装とインターセプターを提供します。
package handler

import (
	"context"

	"github.com/ogurasousui/codex-usuario-api/internal/adapters/grpc/usuariov1"
	"github.com/ogurasousui/codex-usuario-api/internal/core/user"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// UserGrpcHandler は UsuarioService の gRPC 実装です。
type UserGrpcHandler struct {
	svc user.UseCase
	usuariov1.UnimplementedUsuarioServiceServer
}

var _ usuariov1.UsuarioServiceServer = (*UserGrpcHandler)(nil)

// NewUserGrpcHandler は UserGrpcHandler を生成します。
func NewUserGrpcHandler(svc user.UseCase) *UserGrpcHandler {
	return &UserGrpcHandler{svc: svc}
}

// CreateUsuario はユーザーを作成します。
func (h *UserGrpcHandler) CreateUsuario(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	cs, err := toChangeSet(req)
	if err != nil {
		return nil, toStatusError(err)
	}

	created, err := h.svc.CreateUser(ctx, cs)
	if err != nil {
		return nil, toStatusError(err)
	}

	return toStruct(created), nil
}

// ListUsuarios は全ユーザーを登録順に返します。
func (h *UserGrpcHandler) ListUsuarios(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	views, err := h.svc.ListUsers(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(views))}
	for _, v := range views {
		list.Values = append(list.Values, structpb.NewStructValue(toStruct(v)))
	}
	return list, nil
}

// GetUsuario は ID でユーザーを返します。
func (h *UserGrpcHandler) GetUsuario(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.svc.GetUser(ctx, req.GetValue())
	if err != nil {
		return nil, toStatusError(err)
	}

	return toStruct(found), nil
}

// UpdateUsuario は usuario に含まれる項目のみ更新します。
func (h *UserGrpcHandler) UpdateUsuario(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	fields := req.GetFields()

	rawID, ok := fields[usuariov1.UpdateRequestIDKey]
	if !ok {
		return nil, toStatusError(&conversionError{field: user.FieldID, message: "El ID es obligatorio"})
	}
	id, err := idValue(rawID, user.FieldID)
	if err != nil {
		return nil, toStatusError(err)
	}

	// usuario が無い、または null の場合は空の変更として扱う。
	body := fields[usuariov1.UpdateRequestUsuarioKey]
	if body != nil && body.GetStructValue() == nil && body.GetKind() != nil {
		if _, isNull := body.GetKind().(*structpb.Value_NullValue); !isNull {
			return nil, toStatusError(&conversionError{field: usuariov1.UpdateRequestUsuarioKey, message: "El campo usuario debe ser un objeto"})
		}
	}

	cs, err := toChangeSet(body.GetStructValue())
	if err != nil {
		return nil, toStatusError(err)
	}

	updated, err := h.svc.UpdateUser(ctx, id, cs)
	if err != nil {
		return nil, toStatusError(err)
	}

	return toStruct(updated), nil
}

// DeleteUsuario はユーザーを削除します。
func (h *UserGrpcHandler) DeleteUsuario(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if err := h.svc.DeleteUser(ctx, req.GetValue()); err != nil {
		return nil, toStatusError(err)
	}

	return &emptypb.Empty{}, nil
}
