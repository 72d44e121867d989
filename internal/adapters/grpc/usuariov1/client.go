package usuariov1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// UsuarioServiceClient は usuario.v1.UsuarioService のクライアントです。
type UsuarioServiceClient interface {
	CreateUsuario(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListUsuarios(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
	GetUsuario(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateUsuario(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteUsuario(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type usuarioServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewUsuarioServiceClient は接続 cc を利用するクライアントを返します。
func NewUsuarioServiceClient(cc grpc.ClientConnInterface) UsuarioServiceClient {
	return &usuarioServiceClient{cc: cc}
}

func (c *usuarioServiceClient) CreateUsuario(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, CreateUsuarioFullMethodName, in, opts)
}

func (c *usuarioServiceClient) ListUsuarios(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	return invoke[structpb.ListValue](ctx, c.cc, ListUsuariosFullMethodName, in, opts)
}

func (c *usuarioServiceClient) GetUsuario(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, GetUsuarioFullMethodName, in, opts)
}

func (c *usuarioServiceClient) UpdateUsuario(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, UpdateUsuarioFullMethodName, in, opts)
}

func (c *usuarioServiceClient) DeleteUsuario(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, DeleteUsuarioFullMethodName, in, opts)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
