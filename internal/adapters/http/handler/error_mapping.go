package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ogurasousui/codex-usuario-api/internal/core/user"
	"github.com/ogurasousui/codex-usuario-api/internal/platform/requestid"
)

const codeInvalidRequest = "INVALID_REQUEST"

// writeError はエラー種別を HTTP ステータスに変換して書き込みます。
// 想定外のエラーは詳細をログにのみ記録します。
func (h *UserHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		fieldErr *user.FieldError
		reqErr   *requestError
	)

	switch {
	case errors.As(err, &reqErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: codeInvalidRequest, Message: reqErr.message, Field: reqErr.field})
	case errors.As(err, &fieldErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: user.ErrorCode(err), Message: fieldErr.Message, Field: fieldErr.Field})
	case errors.Is(err, user.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: user.CodeInvalidID, Message: "El ID debe ser un número entero", Field: user.FieldID})
	case errors.Is(err, user.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Code: user.CodeUserNotFound, Message: notFoundMessage(r)})
	default:
		h.logger.ErrorContext(r.Context(), "internal server error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", requestid.FromContext(r.Context())),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Code: user.CodeInternal, Message: "Error interno del servidor"})
	}
}

func notFoundMessage(r *http.Request) string {
	if id := idParam(r); id != "" {
		return "Usuario no encontrado con ID: " + id
	}
	return "Usuario no encontrado"
}
