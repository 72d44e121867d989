// Package handler は REST API の HTTP ハンドラーとルーティングを提供します。
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ogurasousui/codex-usuario-api/internal/core/user"
)

// UserHandler はユーザー管理の HTTP ハンドラーです。
type UserHandler struct {
	svc    user.UseCase
	logger *slog.Logger
}

// NewUserHandler は UserHandler を生成します。
func NewUserHandler(svc user.UseCase, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{svc: svc, logger: logger}
}

// Create はユーザーを作成します。
// POST /usuarios/crear
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	cs, err := decodeChangeSet(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.svc.CreateUser(r.Context(), cs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUsuarioResponse(created))
}

// List は全ユーザーを返します。
// GET /usuarios
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]usuarioResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toUsuarioResponse(v))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get は ID でユーザーを返します。
// GET /usuarios/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	found, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUsuarioResponse(found))
}

// Update はボディに含まれる項目のみ更新します。
// PUT /usuarios/actualizar/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	cs, err := decodeChangeSet(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.svc.UpdateUser(r.Context(), id, cs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUsuarioResponse(updated))
}

// Delete はユーザーを削除します。
// DELETE /usuarios/eliminar/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func idParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func parseID(r *http.Request) (int64, error) {
	raw := idParam(r)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id %q: %w", raw, user.ErrInvalidID)
	}
	return id, nil
}
