package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ogurasousui/codex-usuario-api/internal/core/user"
)

const maxBodyBytes = 1 << 20

var jsonNull = []byte("null")

// optionalString はキーの有無と null を区別して文字列を受け取ります。
// UnmarshalJSON はキーが存在する場合のみ呼ばれます。
type optionalString struct {
	field user.Field[string]
}

func (o *optionalString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) {
		o.field = user.Null[string]()
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.field = user.Value(s)
	return nil
}

// optionalDate は "2006-01-02" 形式の日付を受け取ります。
type optionalDate struct {
	field user.Field[time.Time]
}

func (o *optionalDate) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) {
		o.field = user.Null[time.Time]()
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	d, err := time.Parse(user.BirthDateLayout, s)
	if err != nil {
		return &dateFormatError{value: s}
	}
	o.field = user.Value(d)
	return nil
}

type dateFormatError struct {
	value string
}

func (e *dateFormatError) Error() string {
	return fmt.Sprintf("fecha %q no tiene el formato %s", e.value, user.BirthDateLayout)
}

// usuarioRequest は作成・更新リクエストのボディです。id は無視されます。
type usuarioRequest struct {
	Nombre            optionalString `json:"nombre"`
	Apellido          optionalString `json:"apellido"`
	Email             optionalString `json:"email"`
	FechaDeNacimiento optionalDate   `json:"fechaDeNacimiento"`
	Genero            optionalString `json:"genero"`
	EstadoCivil       optionalString `json:"estadoCivil"`
}

// UnmarshalJSON はキー名が完全一致する項目のみを読み取ります。
// 大文字小文字だけが異なるキーは未知のキーとして無視されます。
func (req *usuarioRequest) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	fields := []struct {
		key    string
		target json.Unmarshaler
	}{
		{user.FieldFirstName, &req.Nombre},
		{user.FieldLastName, &req.Apellido},
		{user.FieldEmail, &req.Email},
		{user.FieldBirthDate, &req.FechaDeNacimiento},
		{user.FieldGender, &req.Genero},
		{user.FieldMaritalStatus, &req.EstadoCivil},
	}

	for _, f := range fields {
		value, ok := raw[f.key]
		if !ok {
			continue
		}
		if err := f.target.UnmarshalJSON(value); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				typeErr.Field = f.key
			}
			return err
		}
	}
	return nil
}

func (req usuarioRequest) toChangeSet() user.ChangeSet {
	return user.ChangeSet{
		FirstName:     req.Nombre.field,
		LastName:      req.Apellido.field,
		Email:         req.Email.field,
		BirthDate:     req.FechaDeNacimiento.field,
		Gender:        req.Genero.field,
		MaritalStatus: req.EstadoCivil.field,
	}
}

// requestError はリクエストボディの解析失敗を表します。
type requestError struct {
	field   string
	message string
}

func (e *requestError) Error() string {
	return e.message
}

func decodeChangeSet(w http.ResponseWriter, r *http.Request) (user.ChangeSet, error) {
	var req usuarioRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return user.ChangeSet{}, toRequestError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return user.ChangeSet{}, &requestError{message: "El cuerpo debe contener un único objeto JSON"}
	}

	return req.toChangeSet(), nil
}

func toRequestError(err error) *requestError {
	var (
		typeErr  *json.UnmarshalTypeError
		dateErr  *dateFormatError
		maxBytes *http.MaxBytesError
	)

	switch {
	case errors.As(err, &dateErr):
		return &requestError{field: user.FieldBirthDate, message: "La fecha de nacimiento debe tener el formato AAAA-MM-DD"}
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return &requestError{message: "El cuerpo contiene un valor de tipo no válido"}
		}
		return &requestError{field: typeErr.Field, message: fmt.Sprintf("El campo %s tiene un tipo no válido", typeErr.Field)}
	case errors.As(err, &maxBytes):
		return &requestError{message: "El cuerpo de la solicitud es demasiado grande"}
	case errors.Is(err, io.EOF):
		return &requestError{message: "El cuerpo de la solicitud es obligatorio"}
	default:
		return &requestError{message: "El cuerpo de la solicitud no es un JSON válido"}
	}
}
