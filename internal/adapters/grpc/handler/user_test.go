package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ogurasousui/codex-usuario-api/internal/core/user"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type stubUserUseCase struct {
	createInput user.ChangeSet
	createOut   user.View
	createErr   error

	listOut []user.View
	listErr error

	getID  int64
	getOut user.View
	getErr error

	updateID    int64
	updateInput user.ChangeSet
	updateOut   user.View
	updateErr   error

	deleteID  int64
	deleteErr error
}

func (s *stubUserUseCase) CreateUser(_ context.Context, cs user.ChangeSet) (user.View, error) {
	s.createInput = cs
	return s.createOut, s.createErr
}

func (s *stubUserUseCase) ListUsers(context.Context) ([]user.View, error) {
	return s.listOut, s.listErr
}

func (s *stubUserUseCase) GetUser(_ context.Context, id int64) (user.View, error) {
	s.getID = id
	return s.getOut, s.getErr
}

func (s *stubUserUseCase) UpdateUser(_ context.Context, id int64, cs user.ChangeSet) (user.View, error) {
	s.updateID = id
	s.updateInput = cs
	return s.updateOut, s.updateErr
}

func (s *stubUserUseCase) DeleteUser(_ context.Context, id int64) error {
	s.deleteID = id
	return s.deleteErr
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()

	s, err := structpb.NewStruct(m)
	if err != nil {
		t.Fatalf("structpb.NewStruct: %v", err)
	}
	return s
}

func TestUserGrpcHandler_CreateUsuario(t *testing.T) {
	t.Parallel()

	birth := time.Date(1990, time.March, 5, 0, 0, 0, 0, time.UTC)
	stub := &stubUserUseCase{
		createOut: user.NewBuilder().ID(1).FirstName("Ana").Email("ana@example.com").BirthDate(&birth).Build(),
	}
	h := NewUserGrpcHandler(stub)

	resp, err := h.CreateUsuario(context.Background(), mustStruct(t, map[string]any{
		"nombre":            "Ana",
		"email":             "ana@example.com",
		"apellido":          nil,
		"fechaDeNacimiento": "1990-03-05",
	}))
	if err != nil {
		t.Fatalf("CreateUsuario returned error: %v", err)
	}

	if v, ok := stub.createInput.FirstName.Get(); !ok || v != "Ana" {
		t.Errorf("nombre not passed through: %+v", stub.createInput.FirstName)
	}
	if !stub.createInput.LastName.IsNull() {
		t.Error("apellido should be explicit null")
	}
	if stub.createInput.Gender.Present() {
		t.Error("genero should be absent")
	}
	if d, ok := stub.createInput.BirthDate.Get(); !ok || !d.Equal(birth) {
		t.Errorf("unexpected birth date %v", d)
	}

	fields := resp.GetFields()
	if fields["id"].GetNumberValue() != 1 || fields["fechaDeNacimiento"].GetStringValue() != "1990-03-05" {
		t.Errorf("unexpected response %v", resp)
	}
	if _, isNull := fields["genero"].GetKind().(*structpb.Value_NullValue); !isNull {
		t.Errorf("genero should be null, got %v", fields["genero"])
	}
}

func TestUserGrpcHandler_CreateUsuario_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   map[string]any
	}{
		{"number name", map[string]any{"nombre": 12.0, "email": "a@b.co"}},
		{"bad date", map[string]any{"nombre": "Ana", "email": "a@b.co", "fechaDeNacimiento": "05/03/1990"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stub := &stubUserUseCase{}
			_, err := NewUserGrpcHandler(stub).CreateUsuario(context.Background(), mustStruct(t, tt.in))
			if status.Code(err) != codes.InvalidArgument {
				t.Fatalf("expected InvalidArgument, got %v", err)
			}
			if stub.createInput.FirstName.Present() {
				t.Error("service must not be called")
			}
		})
	}
}

func TestUserGrpcHandler_UpdateUsuario(t *testing.T) {
	t.Parallel()

	stub := &stubUserUseCase{
		updateOut: user.NewBuilder().ID(5).FirstName("Ana").Email("new@example.com").Build(),
	}
	h := NewUserGrpcHandler(stub)

	_, err := h.UpdateUsuario(context.Background(), mustStruct(t, map[string]any{
		"id":      5.0,
		"usuario": map[string]any{"email": "new@example.com", "estadoCivil": nil},
	}))
	if err != nil {
		t.Fatalf("UpdateUsuario returned error: %v", err)
	}

	if stub.updateID != 5 {
		t.Errorf("expected id 5, got %d", stub.updateID)
	}
	if stub.updateInput.FirstName.Present() {
		t.Error("nombre should be absent")
	}
	if !stub.updateInput.MaritalStatus.IsNull() {
		t.Error("estadoCivil should be explicit null")
	}
}

func TestUserGrpcHandler_UpdateUsuario_InvalidID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   map[string]any
	}{
		{"missing id", map[string]any{"usuario": map[string]any{}}},
		{"fractional id", map[string]any{"id": 1.5}},
		{"bool id", map[string]any{"id": true}},
		{"usuario not object", map[string]any{"id": 1.0, "usuario": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewUserGrpcHandler(&stubUserUseCase{}).UpdateUsuario(context.Background(), mustStruct(t, tt.in))
			if status.Code(err) != codes.InvalidArgument {
				t.Fatalf("expected InvalidArgument, got %v", err)
			}
		})
	}
}

func TestUserGrpcHandler_UpdateUsuario_StringID(t *testing.T) {
	t.Parallel()

	stub := &stubUserUseCase{}
	_, err := NewUserGrpcHandler(stub).UpdateUsuario(context.Background(), mustStruct(t, map[string]any{"id": "9007199254740993"}))
	if err != nil {
		t.Fatalf("UpdateUsuario returned error: %v", err)
	}
	if stub.updateID != 9007199254740993 {
		t.Errorf("expected exact id, got %d", stub.updateID)
	}
}

func TestUserGrpcHandler_ListUsuarios(t *testing.T) {
	t.Parallel()

	stub := &stubUserUseCase{listOut: []user.View{
		user.NewBuilder().ID(1).FirstName("Ana").Email("a@b.co").Build(),
		user.NewBuilder().ID(2).FirstName("Luis").Email("l@b.co").Build(),
	}}

	resp, err := NewUserGrpcHandler(stub).ListUsuarios(context.Background(), &emptypb.Empty{})
	if err != nil {
		t.Fatalf("ListUsuarios returned error: %v", err)
	}
	if len(resp.GetValues()) != 2 {
		t.Fatalf("expected 2 values, got %d", len(resp.GetValues()))
	}
	if got := resp.GetValues()[1].GetStructValue().GetFields()["nombre"].GetStringValue(); got != "Luis" {
		t.Errorf("unexpected second usuario %q", got)
	}
}

func TestUserGrpcHandler_GetAndDelete(t *testing.T) {
	t.Parallel()

	stub := &stubUserUseCase{getErr: user.ErrUserNotFound}
	h := NewUserGrpcHandler(stub)

	if _, err := h.GetUsuario(context.Background(), wrapperspb.Int64(3)); status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if stub.getID != 3 {
		t.Errorf("expected id 3, got %d", stub.getID)
	}

	if _, err := h.DeleteUsuario(context.Background(), wrapperspb.Int64(4)); err != nil {
		t.Fatalf("DeleteUsuario returned error: %v", err)
	}
	if stub.deleteID != 4 {
		t.Errorf("expected id 4, got %d", stub.deleteID)
	}
}

func TestUserGrpcHandler_NilRequest(t *testing.T) {
	t.Parallel()

	h := NewUserGrpcHandler(&stubUserUseCase{})

	if _, err := h.CreateUsuario(context.Background(), nil); status.Code(err) != codes.InvalidArgument {
		t.Errorf("CreateUsuario: expected InvalidArgument, got %v", err)
	}
	if _, err := h.GetUsuario(context.Background(), nil); status.Code(err) != codes.InvalidArgument {
		t.Errorf("GetUsuario: expected InvalidArgument, got %v", err)
	}
	if _, err := h.DeleteUsuario(context.Background(), nil); status.Code(err) != codes.InvalidArgument {
		t.Errorf("DeleteUsuario: expected InvalidArgument, got %v", err)
	}
}

func TestUserGrpcHandler_InternalErrorHidesCause(t *testing.T) {
	t.Parallel()

	stub := &stubUserUseCase{listErr: errors.New("password=secret")}
	_, err := NewUserGrpcHandler(stub).ListUsuarios(context.Background(), &emptypb.Empty{})

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Internal {
		t.Fatalf("expected Internal status, got %v", err)
	}
	if st.Message() != "internal error" {
		t.Errorf("cause leaked in status message: %q", st.Message())
	}
}
