// Package usuariov1 は usuario.v1.UsuarioService の gRPC サービス定義です。
//
// メッセージには protobuf の well-known types を使用します。
// ユーザーは structpb.Struct で表現し、キーが無い項目と null 値を区別できます。
package usuariov1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName はサービスの完全修飾名です。
const ServiceName = "usuario.v1.UsuarioService"

const (
	CreateUsuarioFullMethodName = "/" + ServiceName + "/CreateUsuario"
	ListUsuariosFullMethodName  = "/" + ServiceName + "/ListUsuarios"
	GetUsuarioFullMethodName    = "/" + ServiceName + "/GetUsuario"
	UpdateUsuarioFullMethodName = "/" + ServiceName + "/UpdateUsuario"
	DeleteUsuarioFullMethodName = "/" + ServiceName + "/DeleteUsuario"
)

// UpdateUsuario リクエストのキーです。
const (
	UpdateRequestIDKey      = "id"
	UpdateRequestUsuarioKey = "usuario"
)

// UsuarioServiceServer はサーバー側の実装が満たすインターフェースです。
type UsuarioServiceServer interface {
	CreateUsuario(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListUsuarios(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetUsuario(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	// UpdateUsuario は {"id": <number>, "usuario": {...}} を受け取ります。
	UpdateUsuario(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteUsuario(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
}

// UnimplementedUsuarioServiceServer は全メソッドで Unimplemented を返します。
type UnimplementedUsuarioServiceServer struct{}

func (UnimplementedUsuarioServiceServer) CreateUsuario(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateUsuario not implemented")
}

func (UnimplementedUsuarioServiceServer) ListUsuarios(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ListUsuarios not implemented")
}

func (UnimplementedUsuarioServiceServer) GetUsuario(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUsuario not implemented")
}

func (UnimplementedUsuarioServiceServer) UpdateUsuario(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateUsuario not implemented")
}

func (UnimplementedUsuarioServiceServer) DeleteUsuario(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteUsuario not implemented")
}

// RegisterUsuarioServiceServer は srv を gRPC サーバーに登録します。
func RegisterUsuarioServiceServer(s grpc.ServiceRegistrar, srv UsuarioServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc は usuario.v1.UsuarioService のサービス記述子です。
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UsuarioServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateUsuario", Handler: unaryHandler(CreateUsuarioFullMethodName, UsuarioServiceServer.CreateUsuario)},
		{MethodName: "ListUsuarios", Handler: unaryHandler(ListUsuariosFullMethodName, UsuarioServiceServer.ListUsuarios)},
		{MethodName: "GetUsuario", Handler: unaryHandler(GetUsuarioFullMethodName, UsuarioServiceServer.GetUsuario)},
		{MethodName: "UpdateUsuario", Handler: unaryHandler(UpdateUsuarioFullMethodName, UsuarioServiceServer.UpdateUsuario)},
		{MethodName: "DeleteUsuario", Handler: unaryHandler(DeleteUsuarioFullMethodName, UsuarioServiceServer.DeleteUsuario)},
	},
	Streams: []grpc.StreamDesc{},
}

func unaryHandler[Req, Resp any](fullMethod string, call func(UsuarioServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(UsuarioServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(UsuarioServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
