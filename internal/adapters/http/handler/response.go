package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ogurasousui/codex-usuario-api/internal/core/user"
)

// usuarioResponse はユーザーの JSON 表現です。未設定の任意項目は null になります。
type usuarioResponse struct {
	ID                int64   `json:"id"`
	Nombre            string  `json:"nombre"`
	Apellido          *string `json:"apellido"`
	Email             string  `json:"email"`
	FechaDeNacimiento *string `json:"fechaDeNacimiento"`
	Genero            *string `json:"genero"`
	EstadoCivil       *string `json:"estadoCivil"`
}

// errorResponse は統一エラーフォーマットです。
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func toUsuarioResponse(v user.View) usuarioResponse {
	resp := usuarioResponse{
		ID:          v.ID(),
		Nombre:      v.FirstName(),
		Apellido:    v.LastName(),
		Email:       v.Email(),
		Genero:      v.Gender(),
		EstadoCivil: v.MaritalStatus(),
	}
	if birth := v.BirthDate(); birth != nil {
		s := birth.Format(user.BirthDateLayout)
		resp.FechaDeNacimiento = &s
	}
	return resp
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
